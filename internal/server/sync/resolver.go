package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/adapter"
	"github.com/iudanet/medsync/internal/server/ledger"
	"github.com/iudanet/medsync/internal/server/storage"
	"github.com/iudanet/medsync/internal/validation"
)

// ResolveRequest closes one conflict entry with a strategy.
// ResolvedData is required for merge and ignored otherwise.
type ResolveRequest struct {
	ResolvedData models.Document
	TenantID     string
	UserID       string
	ConflictID   string
	Strategy     models.ResolutionStrategy
}

// ResolveOutcome is the recorded result of a resolution.
type ResolveOutcome struct {
	ResolvedData    models.Document           `json:"resolved_data,omitempty"`
	EntityID        *int64                    `json:"entity_id,omitempty"`
	ConflictID      string                    `json:"conflict_id"`
	EntityType      string                    `json:"entity_type"`
	SyncID          string                    `json:"sync_id"`
	Strategy        models.ResolutionStrategy `json:"strategy"`
	AuditSessionID  string                    `json:"audit_session_id,omitempty"`
	ResolvedVersion int64                     `json:"resolved_version"`
	AlreadyResolved bool                      `json:"already_resolved"`
}

// ResolveItem is one element of a batch resolution.
type ResolveItem struct {
	ResolvedData models.Document
	ConflictID   string
	Strategy     models.ResolutionStrategy
}

// ResolveItemResult is the per-item outcome of a batch resolution.
type ResolveItemResult struct {
	Err        error           `json:"-"`
	Outcome    *ResolveOutcome `json:"outcome,omitempty"`
	ConflictID string          `json:"conflict_id"`
	Error      string          `json:"error,omitempty"`
	Success    bool            `json:"success"`
}

// Resolver closes conflict entries of the Change Ledger.
type Resolver struct {
	registry *adapter.Registry
	ledger   *ledger.Ledger
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewResolver creates a new Resolver
func NewResolver(registry *adapter.Registry, l *ledger.Ledger, logger *slog.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		ledger:   l,
		logger:   logger,
		tracer:   otel.Tracer("github.com/iudanet/medsync/internal/server/sync"),
	}
}

// Resolve applies the strategy to a conflict entry.
// Resolving an already resolved entry returns the recorded outcome without writing.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (*ResolveOutcome, error) {
	ctx, span := r.tracer.Start(ctx, "sync.Resolve", trace.WithAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.String("conflict_id", req.ConflictID),
		attribute.String("strategy", string(req.Strategy)),
	))
	defer span.End()

	outcome, err := r.resolve(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve failed")
		return nil, err
	}
	return outcome, nil
}

func (r *Resolver) resolve(ctx context.Context, req ResolveRequest) (*ResolveOutcome, error) {
	entry, err := r.ledger.Get(ctx, req.TenantID, req.ConflictID)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return nil, ErrConflictNotFound
		}
		return nil, fmt.Errorf("failed to load conflict: %w", err)
	}
	if entry.IsSession() {
		return nil, ErrConflictNotFound
	}

	if entry.UserID == nil || *entry.UserID != req.UserID {
		return nil, ErrConflictForbidden
	}

	if entry.IsResolved() {
		return recordedOutcome(entry), nil
	}
	if entry.HadConflict && entry.Status == models.StatusInProgress {
		// Запись захвачена параллельным разрешением
		return nil, ErrResolutionRace
	}
	if entry.Status != models.StatusConflict {
		return nil, fmt.Errorf("%w: status is %s", ErrNotConflict, entry.Status)
	}

	// Аудит открывается до проверок и записи: отклоненная попытка тоже попадает в журнал
	audit, auditEntry, err := r.openAudit(ctx, req, entry)
	if err != nil {
		return nil, err
	}

	a, err := r.prepare(req, entry)
	if err != nil {
		r.failAudit(ctx, audit, auditEntry, err)
		return nil, err
	}

	// Захват до записи сущности: сущность пишет только владелец захвата
	if err := r.ledger.ClaimConflict(ctx, entry); err != nil {
		r.failAudit(ctx, audit, auditEntry, err)
		if errors.Is(err, storage.ErrEntryStatusChanged) {
			return r.concurrentOutcome(ctx, req)
		}
		return nil, err
	}

	result, err := r.apply(ctx, a, req, entry)
	if err != nil {
		r.release(ctx, entry)
		r.failAudit(ctx, audit, auditEntry, err)
		return nil, err
	}

	res := ledger.Resolution{
		Strategy:   req.Strategy,
		ResolvedBy: req.UserID,
	}
	if result != nil {
		id := result.ID
		res.EntityID = &id
		res.Version = result.Version
		res.Data = result.Data
	}

	if err := r.ledger.Resolve(ctx, entry, res); err != nil {
		// Сущность уже записана, запись остается захваченной до разбора
		r.logger.Error("Failed to record resolution after entity write",
			"conflict_id", entry.ID,
			"tenant_id", req.TenantID,
			"resolved_version", res.Version,
			"error", err)
		r.failAudit(ctx, audit, auditEntry, err)
		return nil, err
	}

	auditEntry.ResolvedData = res.Data
	if err := r.ledger.MarkSuccess(ctx, auditEntry, result); err != nil {
		r.logger.Error("Failed to close resolution audit entry",
			"entry_id", auditEntry.ID,
			"error", err)
	}
	if err := r.ledger.MarkSuccess(ctx, audit, nil); err != nil {
		r.logger.Error("Failed to close resolution audit session",
			"session_id", audit.SessionID,
			"error", err)
	}

	r.logger.Info("Conflict resolved",
		"conflict_id", entry.ID,
		"tenant_id", req.TenantID,
		"strategy", req.Strategy,
		"resolved_version", res.Version)

	outcome := recordedOutcome(entry)
	outcome.AlreadyResolved = false
	outcome.AuditSessionID = audit.SessionID
	return outcome, nil
}

// apply performs the entity write of the strategy. server_wins never writes.
// Returns the entity state after resolution, nil if entity doesn't exist.
func (r *Resolver) apply(ctx context.Context, a adapter.Adapter, req ResolveRequest, entry *models.LedgerEntry) (*models.Entity, error) {
	current, err := a.Get(ctx, req.TenantID, entry.EntitySyncID)
	if err != nil && !errors.Is(err, storage.ErrEntityNotFound) {
		return nil, fmt.Errorf("failed to load entity: %w", err)
	}

	var (
		data    models.Document
		deleted bool
	)
	switch req.Strategy {
	case models.StrategyServerWins:
		return current, nil
	case models.StrategyClientWins:
		data = entry.ClientData
		deleted = entry.Operation == models.OperationDelete
		if deleted && data == nil && current != nil {
			data = current.Data
		}
	case models.StrategyMerge:
		data = req.ResolvedData
	}

	if current == nil {
		created, err := a.Create(ctx, req.TenantID, entry.EntitySyncID, data, deleted)
		if err != nil {
			if errors.Is(err, storage.ErrEntityExists) {
				return nil, ErrResolutionRace
			}
			return nil, fmt.Errorf("failed to create entity: %w", err)
		}
		return created, nil
	}

	// Текущая версия сервера выступает ожиданием оптимистичной блокировки
	written, err := a.Write(ctx, req.TenantID, entry.EntitySyncID, data, current.Version, deleted)
	if err != nil {
		if errors.Is(err, storage.ErrVersionMismatch) {
			return nil, ErrResolutionRace
		}
		return nil, fmt.Errorf("failed to write entity: %w", err)
	}
	return written, nil
}

// prepare checks the strategy against the entry and finds its adapter
func (r *Resolver) prepare(req ResolveRequest, entry *models.LedgerEntry) (adapter.Adapter, error) {
	if err := validation.ValidateStrategy(req.Strategy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStrategy, err)
	}
	if req.Strategy == models.StrategyMerge && req.ResolvedData == nil {
		return nil, ErrMergeDataRequired
	}
	return r.registry.Get(entry.EntityType)
}

// concurrentOutcome answers a caller that lost the claim: the recorded outcome
// if the winner already finished, otherwise ErrResolutionRace.
func (r *Resolver) concurrentOutcome(ctx context.Context, req ResolveRequest) (*ResolveOutcome, error) {
	current, err := r.ledger.Get(ctx, req.TenantID, req.ConflictID)
	if err == nil && current.IsResolved() {
		return recordedOutcome(current), nil
	}
	return nil, ErrResolutionRace
}

func (r *Resolver) release(ctx context.Context, entry *models.LedgerEntry) {
	if err := r.ledger.ReleaseConflict(ctx, entry); err != nil {
		r.logger.Error("Failed to release conflict claim",
			"conflict_id", entry.ID,
			"error", err)
	}
}

func (r *Resolver) openAudit(ctx context.Context, req ResolveRequest, conflict *models.LedgerEntry) (*models.LedgerEntry, *models.LedgerEntry, error) {
	userID := req.UserID
	session, err := r.ledger.OpenSession(ctx, ledger.SessionSpec{
		TenantID: req.TenantID,
		UserID:   &userID,
		SyncType: models.SyncTypeConflictResolution,
		Trigger:  models.TriggerConflict,
		Metadata: models.Document{
			"conflict_id":         conflict.ID,
			"conflict_session":    conflict.SessionID,
			"resolution_strategy": string(req.Strategy),
		},
	})
	if err != nil {
		return nil, nil, err
	}

	if err := r.ledger.MarkInProgress(ctx, session); err != nil {
		r.logger.Warn("Failed to start resolution audit session",
			"session_id", session.SessionID,
			"error", err)
	}

	strategy := req.Strategy
	entry := &models.LedgerEntry{
		EntityType:         conflict.EntityType,
		EntitySyncID:       conflict.EntitySyncID,
		EntityID:           conflict.EntityID,
		Operation:          models.OperationConflict,
		ClientVersion:      conflict.ClientVersion,
		ClientData:         conflict.ClientData,
		ConflictType:       conflict.ConflictType,
		ConflictDetails:    conflict.ConflictDetails,
		ResolutionStrategy: &strategy,
		Metadata:           models.Document{"conflict_id": conflict.ID},
	}
	if err := r.ledger.Record(ctx, session, entry); err != nil {
		if markErr := r.ledger.MarkFailed(ctx, session, err); markErr != nil {
			r.logger.Error("Failed to mark audit session failed",
				"session_id", session.SessionID,
				"error", markErr)
		}
		return nil, nil, err
	}

	return session, entry, nil
}

func (r *Resolver) failAudit(ctx context.Context, session, entry *models.LedgerEntry, cause error) {
	if err := r.ledger.MarkFailed(ctx, entry, cause); err != nil {
		r.logger.Error("Failed to mark audit entry failed",
			"entry_id", entry.ID,
			"error", err)
	}
	if err := r.ledger.MarkFailed(ctx, session, cause); err != nil {
		r.logger.Error("Failed to mark audit session failed",
			"session_id", session.SessionID,
			"error", err)
	}
}

// ResolveBatch resolves items independently; one failure never blocks the others.
func (r *Resolver) ResolveBatch(ctx context.Context, tenantID, userID string, items []ResolveItem) []ResolveItemResult {
	results := make([]ResolveItemResult, 0, len(items))

	for _, item := range items {
		outcome, err := r.Resolve(ctx, ResolveRequest{
			TenantID:     tenantID,
			UserID:       userID,
			ConflictID:   item.ConflictID,
			Strategy:     item.Strategy,
			ResolvedData: item.ResolvedData,
		})

		res := ResolveItemResult{ConflictID: item.ConflictID}
		if err != nil {
			res.Err = err
			res.Error = err.Error()
		} else {
			res.Success = true
			res.Outcome = outcome
		}
		results = append(results, res)
	}

	return results
}

func recordedOutcome(entry *models.LedgerEntry) *ResolveOutcome {
	outcome := &ResolveOutcome{
		ConflictID:      entry.ID,
		EntityType:      entry.EntityType,
		SyncID:          entry.EntitySyncID,
		EntityID:        entry.EntityID,
		ResolvedData:    entry.ResolvedData,
		AlreadyResolved: true,
	}
	if entry.ResolutionStrategy != nil {
		outcome.Strategy = *entry.ResolutionStrategy
	}
	if entry.ResolvedVersion != nil {
		outcome.ResolvedVersion = *entry.ResolvedVersion
	}
	return outcome
}
