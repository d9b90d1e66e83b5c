package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

const entityColumns = `id, tenant_id, entity_type, sync_id, version, data, deleted, created_at, updated_at`

// GetEntity retrieves entity by sync id, tombstones included
func (s *Storage) GetEntity(ctx context.Context, tenantID, entityType, syncID string) (*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM sync_entities
		WHERE tenant_id = ? AND entity_type = ? AND sync_id = ?`

	entity, err := scanEntity(s.db.QueryRowContext(ctx, query, tenantID, entityType, syncID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return entity, nil
}

// ListEntitiesSince retrieves entities updated strictly after since
func (s *Storage) ListEntitiesSince(ctx context.Context, tenantID, entityType string, since *time.Time, limit int) ([]*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM sync_entities WHERE tenant_id = ? AND entity_type = ?`
	args := []any{tenantID, entityType}

	if since != nil {
		query += ` AND updated_at > ?`
		args = append(args, toNanos(*since))
	}

	query += ` ORDER BY updated_at ASC, id ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	entities := make([]*models.Entity, 0)
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}

	return entities, nil
}

// InsertEntity creates entity at version 1
func (s *Storage) InsertEntity(ctx context.Context, entity *models.Entity) error {
	query := `
		INSERT INTO sync_entities (tenant_id, entity_type, sync_id, version, data, deleted, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?, ?, ?)
		RETURNING id
	`

	now := time.Now().UTC()
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		entity.TenantID,
		entity.EntityType,
		entity.SyncID,
		entity.Data,
		boolToInt(entity.Deleted),
		toNanos(now),
		toNanos(now),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrEntityExists
		}
		return fmt.Errorf("failed to insert entity: %w", err)
	}

	entity.ID = id
	entity.Version = 1
	entity.CreatedAt = now
	entity.UpdatedAt = now

	return nil
}

// UpdateEntity performs the optimistic-lock write
func (s *Storage) UpdateEntity(ctx context.Context, entity *models.Entity, expectedVersion int64) error {
	query := `
		UPDATE sync_entities
		SET data = ?, deleted = ?, version = version + 1, updated_at = ?
		WHERE tenant_id = ? AND entity_type = ? AND sync_id = ? AND version = ?
		RETURNING id, version, created_at
	`

	now := time.Now().UTC()
	var (
		id, version int64
		createdAt   int64
	)
	err := s.db.QueryRowContext(ctx, query,
		entity.Data,
		boolToInt(entity.Deleted),
		toNanos(now),
		entity.TenantID,
		entity.EntityType,
		entity.SyncID,
		expectedVersion,
	).Scan(&id, &version, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Либо сущности нет, либо версия уже ушла вперед
			if _, getErr := s.GetEntity(ctx, entity.TenantID, entity.EntityType, entity.SyncID); getErr != nil {
				return getErr
			}
			return storage.ErrVersionMismatch
		}
		return fmt.Errorf("failed to update entity: %w", err)
	}

	entity.ID = id
	entity.Version = version
	entity.CreatedAt = fromNanos(createdAt)
	entity.UpdatedAt = now

	return nil
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	var (
		e                    models.Entity
		createdAt, updatedAt int64
		deleted              int
	)

	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.EntityType,
		&e.SyncID,
		&e.Version,
		&e.Data,
		&deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Deleted = deleted != 0
	e.CreatedAt = fromNanos(createdAt)
	e.UpdatedAt = fromNanos(updatedAt)

	return &e, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
