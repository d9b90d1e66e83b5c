package storage

import (
	"context"
	"time"

	"github.com/iudanet/medsync/internal/models"
)

// LedgerFilter narrows ledger queries. Zero values mean "no restriction".
type LedgerFilter struct {
	From            *time.Time
	To              *time.Time
	UserID          *string
	TenantID        string
	SessionID       string
	SyncType        models.SyncType
	EntityType      string
	EntitySyncID    string
	Statuses        []models.SyncStatus
	Limit           int
	Offset          int
	ExcludeSessions bool
}

// LedgerStorage defines interface for Change Ledger persistence.
// The ledger is append-mostly: rows are inserted once and afterwards only
// their status columns change.
type LedgerStorage interface {
	// InsertEntry appends a new ledger entry. Entry ID must be set by the caller.
	InsertEntry(ctx context.Context, entry *models.LedgerEntry) error

	// FinishEntry atomically writes the mutable status columns of an entry:
	// status, versions, entity id, server data, conflict fields, error fields,
	// payload size, completion time and duration.
	// Returns ErrEntryNotFound if entry doesn't exist
	FinishEntry(ctx context.Context, entry *models.LedgerEntry) error

	// TransitionEntry atomically changes the status of an entry from `from` to `to`.
	// Returns ErrEntryNotFound if entry doesn't exist,
	// ErrEntryStatusChanged if entry is not in `from` status
	TransitionEntry(ctx context.Context, tenantID, id string, from, to models.SyncStatus) error

	// ResolveEntry moves a claimed conflict entry (in_progress after a conflict)
	// to success and stores the resolution fields. The update is guarded by
	// status = 'in_progress' AND had_conflict.
	// Returns ErrEntryNotConflict if entry is not a claimed conflict
	ResolveEntry(ctx context.Context, entry *models.LedgerEntry) error

	// GetEntry retrieves entry by ID scoped to a tenant
	// Returns ErrEntryNotFound if entry doesn't exist for the tenant
	GetEntry(ctx context.Context, tenantID, id string) (*models.LedgerEntry, error)

	// LatestEntityEntry retrieves the most recent non-session entry for an entity.
	// Returns ErrEntryNotFound if entity has never been synced
	LatestEntityEntry(ctx context.Context, tenantID, entityType, syncID string) (*models.LedgerEntry, error)

	// ListEntries returns entries matching the filter ordered by start time
	// (newest first) and the total number of matching rows.
	ListEntries(ctx context.Context, filter LedgerFilter) ([]*models.LedgerEntry, int, error)

	// Stats aggregates non-session entries started within [from, to).
	Stats(ctx context.Context, tenantID string, from, to time.Time) (*models.LedgerStats, error)

	// DeleteSucceededBefore removes entries in success status completed before cutoff.
	// Entries in any other status are never deleted.
	// Returns number of deleted entries
	DeleteSucceededBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
