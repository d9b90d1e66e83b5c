package postgres

import (
	"context"
	"fmt"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

// GetCursor retrieves sync cursor of a user within a tenant
func (s *Storage) GetCursor(ctx context.Context, tenantID, userID string) (*models.SyncCursor, error) {
	query := `
		SELECT tenant_id, user_id, last_sync_at, updated_at
		FROM sync_cursors
		WHERE tenant_id = $1 AND user_id = $2
	`

	var (
		cursor              models.SyncCursor
		lastSync, updatedAt int64
	)
	err := s.pool.QueryRow(ctx, query, tenantID, userID).Scan(
		&cursor.TenantID,
		&cursor.UserID,
		&lastSync,
		&updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, storage.ErrCursorNotFound
		}
		return nil, fmt.Errorf("failed to get cursor: %w", err)
	}

	cursor.LastSyncAt = fromNanos(lastSync)
	cursor.UpdatedAt = fromNanos(updatedAt)

	return &cursor, nil
}

// SaveCursor creates or replaces cursor
func (s *Storage) SaveCursor(ctx context.Context, cursor *models.SyncCursor) error {
	query := `
		INSERT INTO sync_cursors (tenant_id, user_id, last_sync_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, user_id) DO UPDATE SET
			last_sync_at = EXCLUDED.last_sync_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		cursor.TenantID,
		cursor.UserID,
		cursor.LastSyncAt.UnixNano(),
		cursor.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}

	return nil
}
