package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/adapter"
	"github.com/iudanet/medsync/internal/server/storage"
)

// Outcome is the reconciliation result of one change.
// Exactly one of Applied and Conflict is set.
type Outcome struct {
	Applied  *models.Entity
	Conflict *models.ConflictInfo
}

// Reconciler decides whether a client change can be applied.
// It never overwrites a version the client has not seen.
type Reconciler struct {
	logger *slog.Logger
}

// NewReconciler creates a new Reconciler
func NewReconciler(logger *slog.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile applies change through a or reports a conflict.
// An error means a storage failure, not a conflict.
func (r *Reconciler) Reconcile(ctx context.Context, a adapter.Adapter, tenantID string, change models.Change) (*Outcome, error) {
	current, err := r.load(ctx, a, tenantID, change.SyncID)
	if err != nil {
		return nil, err
	}

	switch change.Operation {
	case models.OperationCreate:
		if current != nil {
			return conflictOutcome(models.ConflictTypeVersion, change, current,
				fmt.Sprintf("entity already exists at version %d", current.Version)), nil
		}
		return r.create(ctx, a, tenantID, change)

	case models.OperationUpdate, models.OperationDelete:
		if current == nil {
			// Upsert: предыдущая частичная синхронизация могла не создать сущность
			return r.create(ctx, a, tenantID, change)
		}
		return r.write(ctx, a, tenantID, change, current, true)

	default:
		return nil, fmt.Errorf("%w: unsupported operation %q", ErrInvalidRequest, change.Operation)
	}
}

func (r *Reconciler) load(ctx context.Context, a adapter.Adapter, tenantID, syncID string) (*models.Entity, error) {
	current, err := a.Get(ctx, tenantID, syncID)
	if err != nil {
		if errors.Is(err, storage.ErrEntityNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load entity: %w", err)
	}
	return current, nil
}

func (r *Reconciler) create(ctx context.Context, a adapter.Adapter, tenantID string, change models.Change) (*Outcome, error) {
	deleted := change.Operation == models.OperationDelete

	created, err := a.Create(ctx, tenantID, change.SyncID, change.Data, deleted)
	if err == nil {
		return &Outcome{Applied: created}, nil
	}
	if !errors.Is(err, storage.ErrEntityExists) {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	// Параллельный create успел раньше: перечитываем один раз
	current, err := r.load(ctx, a, tenantID, change.SyncID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("failed to create entity: %w", storage.ErrEntityExists)
	}

	r.logger.Debug("Create lost race to concurrent writer",
		"entity_type", a.EntityType(),
		"sync_id", change.SyncID,
		"server_version", current.Version)

	return conflictOutcome(models.ConflictTypeVersion, change, current,
		fmt.Sprintf("entity was created concurrently at version %d", current.Version)), nil
}

func (r *Reconciler) write(ctx context.Context, a adapter.Adapter, tenantID string, change models.Change, current *models.Entity, retry bool) (*Outcome, error) {
	if current.Deleted {
		if change.Operation == models.OperationDelete {
			// Повторное удаление идемпотентно
			return &Outcome{Applied: current}, nil
		}
		return conflictOutcome(models.ConflictTypeDeletion, change, current,
			fmt.Sprintf("entity was deleted at version %d", current.Version)), nil
	}

	switch {
	case change.Version < current.Version:
		return conflictOutcome(models.ConflictTypeVersion, change, current,
			fmt.Sprintf("client version %d is behind server version %d", change.Version, current.Version)), nil
	case change.Version > current.Version:
		return conflictOutcome(models.ConflictTypeData, change, current,
			fmt.Sprintf("client version %d is ahead of server version %d, manual review required", change.Version, current.Version)), nil
	}

	data := change.Data
	deleted := change.Operation == models.OperationDelete
	if deleted && data == nil {
		data = current.Data
	}

	written, err := a.Write(ctx, tenantID, change.SyncID, data, current.Version, deleted)
	if err == nil {
		return &Outcome{Applied: written}, nil
	}
	if !errors.Is(err, storage.ErrVersionMismatch) {
		return nil, fmt.Errorf("failed to write entity: %w", err)
	}

	fresh, err := r.load(ctx, a, tenantID, change.SyncID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, fmt.Errorf("entity disappeared during write: %w", storage.ErrEntityNotFound)
	}

	if retry {
		r.logger.Debug("Optimistic write lost, re-comparing",
			"entity_type", a.EntityType(),
			"sync_id", change.SyncID,
			"expected_version", current.Version,
			"server_version", fresh.Version)
		return r.write(ctx, a, tenantID, change, fresh, false)
	}

	return conflictOutcome(models.ConflictTypeVersion, change, fresh,
		fmt.Sprintf("concurrent write moved entity to version %d", fresh.Version)), nil
}

func conflictOutcome(kind models.ConflictType, change models.Change, current *models.Entity, details string) *Outcome {
	return &Outcome{
		Conflict: &models.ConflictInfo{
			Type:          kind,
			Details:       details,
			ClientVersion: change.Version,
			ServerVersion: current.Version,
			ServerData:    current.Data,
			EntityID:      current.ID,
		},
	}
}
