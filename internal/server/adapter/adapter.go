// Package adapter provides access to syncable entities by type.
//
// The sync core talks to entity storage only through the Adapter interface.
// A new entity type is a new registration, not a change in the coordinator.
package adapter

import (
	"context"
	"time"

	"github.com/iudanet/medsync/internal/models"
)

//go:generate moq -out adapter_mock.go . Adapter

// Adapter is a narrow read/write port for one entity type.
//
// Errors follow the storage sentinels: storage.ErrEntityNotFound,
// storage.ErrEntityExists and storage.ErrVersionMismatch.
type Adapter interface {
	// EntityType returns the registered type name
	EntityType() string

	// Get returns entity by sync id, tombstones included
	Get(ctx context.Context, tenantID, syncID string) (*models.Entity, error)

	// ChangedSince returns entities updated strictly after since (all if nil),
	// oldest first, at most limit items
	ChangedSince(ctx context.Context, tenantID string, since *time.Time, limit int) ([]*models.Entity, error)

	// Create stores a new entity at version 1
	Create(ctx context.Context, tenantID, syncID string, data models.Document, deleted bool) (*models.Entity, error)

	// Write replaces entity data if the stored version equals expectedVersion.
	// The returned entity carries version expectedVersion+1.
	Write(ctx context.Context, tenantID, syncID string, data models.Document, expectedVersion int64, deleted bool) (*models.Entity, error)
}
