// Package ledger records every synchronization attempt.
//
// Ledger owns the entry lifecycle: ids, timing, payload sizes and status
// transitions. Persistence is delegated to storage.LedgerStorage.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

// SessionSpec describes a new sync session.
type SessionSpec struct {
	Metadata models.Document
	UserID   *string
	Batch    *Batch
	TenantID string
	SyncType models.SyncType
	Trigger  models.Trigger
}

// Batch is the optional chunking context copied onto every entry of a session.
type Batch struct {
	ID       string
	Size     int
	Offset   int
	Complete bool
}

// Resolution is the outcome of closing a conflict entry.
type Resolution struct {
	Data       models.Document
	EntityID   *int64
	Strategy   models.ResolutionStrategy
	ResolvedBy string
	Version    int64
}

// Ledger manages Change Ledger entries.
type Ledger struct {
	store  storage.LedgerStorage
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Ledger
func New(store storage.LedgerStorage, logger *slog.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// OpenSession allocates a session id and writes the session row in pending status.
func (l *Ledger) OpenSession(ctx context.Context, spec SessionSpec) (*models.LedgerEntry, error) {
	sessionID := uuid.New().String()

	session := &models.LedgerEntry{
		ID:         sessionID,
		SessionID:  sessionID,
		TenantID:   spec.TenantID,
		UserID:     spec.UserID,
		SyncType:   spec.SyncType,
		Trigger:    spec.Trigger,
		EntityType: models.SessionEntityType,
		Status:     models.StatusPending,
		Metadata:   spec.Metadata,
		StartedAt:  l.now(),
	}
	if spec.Batch != nil {
		batchID := spec.Batch.ID
		batchSize := spec.Batch.Size
		session.BatchID = &batchID
		session.BatchSize = &batchSize
		session.BatchComplete = spec.Batch.Complete
	}

	if err := l.store.InsertEntry(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	l.logger.Debug("Sync session opened",
		"session_id", sessionID,
		"tenant_id", spec.TenantID,
		"sync_type", spec.SyncType,
		"trigger", spec.Trigger)

	return session, nil
}

// Record appends a per-entity entry to the session in in_progress status.
// Identity, classification and batch fields are copied from the session.
// A re-push of an entity whose latest entry failed increments the retry counter.
func (l *Ledger) Record(ctx context.Context, session *models.LedgerEntry, entry *models.LedgerEntry) error {
	entry.ID = uuid.New().String()
	entry.SessionID = session.SessionID
	entry.TenantID = session.TenantID
	entry.UserID = session.UserID
	entry.SyncType = session.SyncType
	entry.Trigger = session.Trigger
	entry.Status = models.StatusInProgress
	entry.StartedAt = l.now()
	entry.PayloadSize = payloadSize(entry)

	if session.BatchID != nil {
		entry.BatchID = session.BatchID
		entry.BatchSize = session.BatchSize
		entry.BatchComplete = session.BatchComplete
	}

	if entry.EntitySyncID != "" {
		l.trackRetry(ctx, entry)
	}

	if err := l.store.InsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

func (l *Ledger) trackRetry(ctx context.Context, entry *models.LedgerEntry) {
	prev, err := l.store.LatestEntityEntry(ctx, entry.TenantID, entry.EntityType, entry.EntitySyncID)
	if err != nil {
		if !errors.Is(err, storage.ErrEntryNotFound) {
			l.logger.Warn("Failed to look up previous entity entry",
				"entity_type", entry.EntityType,
				"sync_id", entry.EntitySyncID,
				"error", err)
		}
		return
	}

	if prev.Status == models.StatusFailed {
		entry.RetryCount = prev.RetryCount + 1
		at := entry.StartedAt
		entry.LastRetryAt = &at
	}
}

// MarkInProgress moves an entry from pending to in_progress
func (l *Ledger) MarkInProgress(ctx context.Context, e *models.LedgerEntry) error {
	e.Status = models.StatusInProgress
	return l.update(ctx, e)
}

// MarkSuccess closes an entry as success. result is the entity state after the
// write (nil for session rows).
func (l *Ledger) MarkSuccess(ctx context.Context, e *models.LedgerEntry, result *models.Entity) error {
	if result != nil {
		id := result.ID
		version := result.Version
		e.EntityID = &id
		e.ServerVersion = &version
		e.ServerData = result.Data
		e.PayloadSize = payloadSize(e)
	}
	e.Status = models.StatusSuccess
	return l.finish(ctx, e)
}

// MarkFailed closes an entry as failed keeping the error chain as details.
func (l *Ledger) MarkFailed(ctx context.Context, e *models.LedgerEntry, cause error) error {
	e.Status = models.StatusFailed
	e.ErrorMessage = cause.Error()
	e.ErrorDetails = errorDetails(cause)
	return l.finish(ctx, e)
}

// MarkConflict closes an entry as conflict awaiting resolution.
func (l *Ledger) MarkConflict(ctx context.Context, e *models.LedgerEntry, info *models.ConflictInfo) error {
	conflictType := info.Type
	serverVersion := info.ServerVersion

	e.Status = models.StatusConflict
	e.HadConflict = true
	e.ConflictType = &conflictType
	e.ConflictDetails = info.Details
	e.ServerVersion = &serverVersion
	e.ServerData = info.ServerData
	if info.EntityID != 0 {
		id := info.EntityID
		e.EntityID = &id
	}
	e.PayloadSize = payloadSize(e)
	return l.finish(ctx, e)
}

// MarkPartial closes a session row that had failures or conflicts.
func (l *Ledger) MarkPartial(ctx context.Context, e *models.LedgerEntry) error {
	e.Status = models.StatusPartial
	return l.finish(ctx, e)
}

// ClaimConflict takes a conflict entry for resolution: conflict -> in_progress.
// Only one caller wins the claim, the others get storage.ErrEntryStatusChanged.
func (l *Ledger) ClaimConflict(ctx context.Context, e *models.LedgerEntry) error {
	if err := l.store.TransitionEntry(ctx, e.TenantID, e.ID, models.StatusConflict, models.StatusInProgress); err != nil {
		return fmt.Errorf("failed to claim conflict %s: %w", e.ID, err)
	}
	e.Status = models.StatusInProgress
	return nil
}

// ReleaseConflict returns a claimed entry to conflict after a failed attempt
func (l *Ledger) ReleaseConflict(ctx context.Context, e *models.LedgerEntry) error {
	if err := l.store.TransitionEntry(ctx, e.TenantID, e.ID, models.StatusInProgress, models.StatusConflict); err != nil {
		return fmt.Errorf("failed to release conflict %s: %w", e.ID, err)
	}
	e.Status = models.StatusConflict
	return nil
}

// Resolve moves a claimed conflict entry to success and records the resolution.
// Returns storage.ErrEntryNotConflict if the entry is not claimed.
func (l *Ledger) Resolve(ctx context.Context, e *models.LedgerEntry, res Resolution) error {
	now := l.now()
	strategy := res.Strategy
	version := res.Version
	resolvedBy := res.ResolvedBy

	resolved := e.Clone()
	resolved.ResolutionStrategy = &strategy
	resolved.ResolvedVersion = &version
	resolved.ResolvedData = res.Data
	resolved.ResolvedBy = &resolvedBy
	resolved.ResolvedAt = &now
	if res.EntityID != nil {
		resolved.EntityID = res.EntityID
	}

	if err := l.store.ResolveEntry(ctx, resolved); err != nil {
		return fmt.Errorf("failed to resolve ledger entry: %w", err)
	}

	resolved.Status = models.StatusSuccess
	*e = *resolved
	return nil
}

func (l *Ledger) finish(ctx context.Context, e *models.LedgerEntry) error {
	completed := l.now()
	duration := completed.Sub(e.StartedAt).Milliseconds()
	e.CompletedAt = &completed
	e.DurationMs = &duration
	return l.update(ctx, e)
}

func (l *Ledger) update(ctx context.Context, e *models.LedgerEntry) error {
	if err := l.store.FinishEntry(ctx, e); err != nil {
		return fmt.Errorf("failed to update ledger entry %s to %s: %w", e.ID, e.Status, err)
	}
	return nil
}

// payloadSize измеряет клиентский payload, а при его отсутствии серверный
func payloadSize(e *models.LedgerEntry) int64 {
	if size := e.ClientData.Size(); size > 0 {
		return size
	}
	return e.ServerData.Size()
}

// errorDetails разворачивает цепочку ошибок построчно
func errorDetails(err error) string {
	var lines []string
	for err != nil {
		lines = append(lines, fmt.Sprintf("%T: %s", err, err.Error()))
		err = errors.Unwrap(err)
	}
	return strings.Join(lines, "\n")
}
