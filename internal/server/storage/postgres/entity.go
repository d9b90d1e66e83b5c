package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

const entityColumns = `id, tenant_id, entity_type, sync_id, version, data, deleted, created_at, updated_at`

// GetEntity retrieves entity by sync id, tombstones included
func (s *Storage) GetEntity(ctx context.Context, tenantID, entityType, syncID string) (*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM sync_entities
		WHERE tenant_id = $1 AND entity_type = $2 AND sync_id = $3`

	entity, err := scanEntity(s.pool.QueryRow(ctx, query, tenantID, entityType, syncID))
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	return entity, nil
}

// ListEntitiesSince retrieves entities updated strictly after since
func (s *Storage) ListEntitiesSince(ctx context.Context, tenantID, entityType string, since *time.Time, limit int) ([]*models.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM sync_entities WHERE tenant_id = $1 AND entity_type = $2`
	args := []any{tenantID, entityType}

	if since != nil {
		args = append(args, since.UnixNano())
		query += ` AND updated_at > ` + dollar(len(args))
	}

	query += ` ORDER BY updated_at ASC, id ASC`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT ` + dollar(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
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
		VALUES ($1, $2, $3, 1, $4, $5, $6, $6)
		RETURNING id
	`

	now := time.Now().UTC()
	var id int64
	err := s.pool.QueryRow(ctx, query,
		entity.TenantID,
		entity.EntityType,
		entity.SyncID,
		jsonArg(entity.Data),
		entity.Deleted,
		now.UnixNano(),
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
		SET data = $1, deleted = $2, version = version + 1, updated_at = $3
		WHERE tenant_id = $4 AND entity_type = $5 AND sync_id = $6 AND version = $7
		RETURNING id, version, created_at
	`

	now := time.Now().UTC()
	var id, version, createdAt int64
	err := s.pool.QueryRow(ctx, query,
		jsonArg(entity.Data),
		entity.Deleted,
		now.UnixNano(),
		entity.TenantID,
		entity.EntityType,
		entity.SyncID,
		expectedVersion,
	).Scan(&id, &version, &createdAt)
	if err != nil {
		if isNoRows(err) {
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

func scanEntity(row pgx.Row) (*models.Entity, error) {
	var (
		e                    models.Entity
		data                 []byte
		createdAt, updatedAt int64
	)

	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&e.EntityType,
		&e.SyncID,
		&e.Version,
		&data,
		&e.Deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := e.Data.Scan(data); err != nil {
		return nil, err
	}
	e.CreatedAt = fromNanos(createdAt)
	e.UpdatedAt = fromNanos(updatedAt)

	return &e, nil
}
