package storage

import (
	"context"
	"time"

	"github.com/iudanet/medsync/internal/models"
)

// EntityStorage defines interface for the generic syncable entity table.
// Every row carries a sync id unique per (tenant, entity type) and a version
// that grows by exactly one on every committed write.
type EntityStorage interface {
	// GetEntity retrieves entity by sync id, tombstones included
	// Returns ErrEntityNotFound if entity doesn't exist
	GetEntity(ctx context.Context, tenantID, entityType, syncID string) (*models.Entity, error)

	// ListEntitiesSince retrieves entities (tombstones included) updated strictly
	// after since, ordered by update time ascending. A nil since lists everything.
	ListEntitiesSince(ctx context.Context, tenantID, entityType string, since *time.Time, limit int) ([]*models.Entity, error)

	// InsertEntity creates entity at version 1 and fills ID, Version and timestamps.
	// Returns ErrEntityExists if sync id is already taken
	InsertEntity(ctx context.Context, entity *models.Entity) error

	// UpdateEntity writes data and tombstone flag only if stored version equals
	// expectedVersion, then sets Version to expectedVersion+1.
	// Returns ErrVersionMismatch if the optimistic lock fails
	// Returns ErrEntityNotFound if entity doesn't exist
	UpdateEntity(ctx context.Context, entity *models.Entity, expectedVersion int64) error
}
