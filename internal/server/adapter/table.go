package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

// TableAdapter implements Adapter over the generic entity table.
// Один экземпляр на тип сущности, таблица общая.
type TableAdapter struct {
	store      storage.EntityStorage
	entityType string
}

var _ Adapter = (*TableAdapter)(nil)

// NewTableAdapter creates adapter for entityType backed by store
func NewTableAdapter(entityType string, store storage.EntityStorage) *TableAdapter {
	return &TableAdapter{
		store:      store,
		entityType: entityType,
	}
}

// EntityType returns the registered type name
func (a *TableAdapter) EntityType() string {
	return a.entityType
}

// Get returns entity by sync id
func (a *TableAdapter) Get(ctx context.Context, tenantID, syncID string) (*models.Entity, error) {
	return a.store.GetEntity(ctx, tenantID, a.entityType, syncID)
}

// ChangedSince returns entities updated after since
func (a *TableAdapter) ChangedSince(ctx context.Context, tenantID string, since *time.Time, limit int) ([]*models.Entity, error) {
	entities, err := a.store.ListEntitiesSince(ctx, tenantID, a.entityType, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s changes: %w", a.entityType, err)
	}
	return entities, nil
}

// Create stores a new entity at version 1
func (a *TableAdapter) Create(ctx context.Context, tenantID, syncID string, data models.Document, deleted bool) (*models.Entity, error) {
	entity := &models.Entity{
		TenantID:   tenantID,
		EntityType: a.entityType,
		SyncID:     syncID,
		Data:       data,
		Deleted:    deleted,
	}

	if err := a.store.InsertEntity(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// Write performs the optimistic-lock write
func (a *TableAdapter) Write(ctx context.Context, tenantID, syncID string, data models.Document, expectedVersion int64, deleted bool) (*models.Entity, error) {
	entity := &models.Entity{
		TenantID:   tenantID,
		EntityType: a.entityType,
		SyncID:     syncID,
		Data:       data,
		Deleted:    deleted,
	}

	if err := a.store.UpdateEntity(ctx, entity, expectedVersion); err != nil {
		return nil, err
	}
	return entity, nil
}
