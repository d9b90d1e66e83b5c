package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

// DefaultRetention is the default retention window for succeeded entries
const DefaultRetention = 30 * 24 * time.Hour

// Get returns an entry of the tenant
func (l *Ledger) Get(ctx context.Context, tenantID, id string) (*models.LedgerEntry, error) {
	return l.store.GetEntry(ctx, tenantID, id)
}

// History returns a page of entries matching the filter and the total count
func (l *Ledger) History(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, int, error) {
	entries, total, err := l.store.ListEntries(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger history: %w", err)
	}
	return entries, total, nil
}

// EntriesForEntity returns every ledger entry of one entity, newest first
func (l *Ledger) EntriesForEntity(ctx context.Context, tenantID, entityType, syncID string) ([]*models.LedgerEntry, error) {
	entries, _, err := l.store.ListEntries(ctx, storage.LedgerFilter{
		TenantID:     tenantID,
		EntityType:   entityType,
		EntitySyncID: syncID,
		Limit:        storage.MaxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entity entries: %w", err)
	}
	return entries, nil
}

// RecentFailures returns failed entries started within the last window
func (l *Ledger) RecentFailures(ctx context.Context, tenantID string, window time.Duration) ([]*models.LedgerEntry, error) {
	from := l.now().Add(-window)
	entries, _, err := l.store.ListEntries(ctx, storage.LedgerFilter{
		TenantID:        tenantID,
		From:            &from,
		Statuses:        []models.SyncStatus{models.StatusFailed},
		ExcludeSessions: true,
		Limit:           storage.MaxListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent failures: %w", err)
	}
	return entries, nil
}

// UnresolvedConflicts returns a page of entries still in conflict status.
// A nil userID lists conflicts of the whole tenant.
func (l *Ledger) UnresolvedConflicts(ctx context.Context, tenantID string, userID *string, limit, offset int) ([]*models.LedgerEntry, int, error) {
	entries, total, err := l.store.ListEntries(ctx, storage.LedgerFilter{
		TenantID:        tenantID,
		UserID:          userID,
		Statuses:        []models.SyncStatus{models.StatusConflict},
		ExcludeSessions: true,
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list unresolved conflicts: %w", err)
	}
	return entries, total, nil
}

// Stats aggregates entries started within [from, to)
func (l *Ledger) Stats(ctx context.Context, tenantID string, from, to time.Time) (*models.LedgerStats, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("invalid stats window: from %s is not before to %s", from, to)
	}
	stats, err := l.store.Stats(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger stats: %w", err)
	}
	return stats, nil
}

// Cleanup deletes succeeded entries older than olderThan.
// Conflict and failed entries are kept regardless of age.
func (l *Ledger) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		olderThan = DefaultRetention
	}
	cutoff := l.now().Add(-olderThan)

	deleted, err := l.store.DeleteSucceededBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up ledger: %w", err)
	}

	l.logger.Info("Ledger cleanup completed",
		"cutoff", cutoff,
		"deleted", deleted)

	return deleted, nil
}
