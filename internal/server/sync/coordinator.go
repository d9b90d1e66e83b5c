// Package sync implements the synchronization protocol: pull, push and
// bidirectional sessions, version reconciliation and conflict resolution.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

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

// DefaultPageSize ограничивает число сущностей одного типа в pull
const DefaultPageSize = 100

// PullRequest asks for entities changed since the last sync.
// A nil Since means full resync. Empty EntityTypes means every registered type.
type PullRequest struct {
	Since       *time.Time
	Metadata    models.Document
	TenantID    string
	UserID      string
	Trigger     models.Trigger
	EntityTypes []string
}

// PullResult is the outcome of a pull session.
// ServerTimestamp is the cursor for the next pull.
type PullResult struct {
	ServerTimestamp time.Time        `json:"server_timestamp"`
	SessionID       string           `json:"session_id"`
	Changes         []*models.Entity `json:"changes"`
	TotalItems      int              `json:"total_items"`
	HasMore         bool             `json:"has_more"`
}

// PushRequest carries client changes in causal order.
type PushRequest struct {
	ClientTime *time.Time
	Batch      *ledger.Batch
	Metadata   models.Document
	TenantID   string
	UserID     string
	Trigger    models.Trigger
	Changes    []models.Change
}

// PushResult is the per-change outcome of a push session.
// Successful + Failed + len(Conflicts) == Processed.
type PushResult struct {
	SessionID  string                `json:"session_id"`
	Results    []models.ChangeResult `json:"results"`
	Conflicts  []models.ChangeResult `json:"conflicts"`
	Processed  int                   `json:"processed"`
	Successful int                   `json:"successful"`
	Failed     int                   `json:"failed"`
}

// BidirectionalRequest combines a pull and a push of one client.
type BidirectionalRequest struct {
	Since       *time.Time
	ClientTime  *time.Time
	Batch       *ledger.Batch
	TenantID    string
	UserID      string
	Trigger     models.Trigger
	EntityTypes []string
	Changes     []models.Change
}

// BidirectionalResult holds both phase results.
type BidirectionalResult struct {
	Pull           *PullResult `json:"pull"`
	Push           *PushResult `json:"push"`
	TotalConflicts int         `json:"total_conflicts"`
}

// Coordinator drives sync sessions end-to-end.
// It holds no per-tenant state: each call is independent.
type Coordinator struct {
	registry   *adapter.Registry
	ledger     *ledger.Ledger
	cursors    storage.CursorStorage
	reconciler *Reconciler
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
	pageSize   int
}

// Option настраивает Coordinator
type Option func(*Coordinator)

// WithPageSize overrides per-type pull page size
func WithPageSize(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithTracer overrides the tracer used for session spans
func WithTracer(t trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = t
	}
}

// NewCoordinator creates a new Coordinator
func NewCoordinator(
	registry *adapter.Registry,
	l *ledger.Ledger,
	cursors storage.CursorStorage,
	logger *slog.Logger,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		registry:   registry,
		ledger:     l,
		cursors:    cursors,
		reconciler: NewReconciler(logger),
		logger:     logger,
		tracer:     otel.Tracer("github.com/iudanet/medsync/internal/server/sync"),
		now:        func() time.Time { return time.Now().UTC() },
		pageSize:   DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pull returns entities changed since req.Since for the requested types.
// The whole pull fails if any type cannot be read.
func (c *Coordinator) Pull(ctx context.Context, req PullRequest) (*PullResult, error) {
	ctx, span := c.tracer.Start(ctx, "sync.Pull", trace.WithAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.StringSlice("entity_types", req.EntityTypes),
	))
	defer span.End()

	result, err := c.pull(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pull failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("session_id", result.SessionID),
		attribute.Int("total_items", result.TotalItems),
	)
	return result, nil
}

func (c *Coordinator) pull(ctx context.Context, req PullRequest) (*PullResult, error) {
	session, err := c.ledger.OpenSession(ctx, ledger.SessionSpec{
		TenantID: req.TenantID,
		UserID:   userPtr(req.UserID),
		SyncType: models.SyncTypePull,
		Trigger:  triggerOrDefault(req.Trigger),
		Metadata: req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	// Метка снимается до чтения: изменения, зафиксированные во время чтения,
	// попадут в следующий pull
	serverTS := c.now()

	if err := c.ledger.MarkInProgress(ctx, session); err != nil {
		return nil, c.failSession(ctx, session, err)
	}

	types, err := c.resolveTypes(req.EntityTypes)
	if err != nil {
		return nil, c.failSession(ctx, session, err)
	}

	var (
		changes    = make([]*models.Entity, 0)
		hasMore    bool
		nextCursor *time.Time
	)
	for _, entityType := range types {
		a, err := c.registry.Get(entityType)
		if err != nil {
			return nil, c.failSession(ctx, session, err)
		}

		entities, cursor, err := c.readPage(ctx, a, req.TenantID, req.Since)
		if err != nil {
			return nil, c.failSession(ctx, session, fmt.Errorf("failed to pull %s: %w", entityType, err))
		}

		if cursor != nil {
			hasMore = true
			if nextCursor == nil || cursor.Before(*nextCursor) {
				nextCursor = cursor
			}
		}
		changes = append(changes, entities...)
	}

	if nextCursor != nil && nextCursor.Before(serverTS) {
		serverTS = *nextCursor
	}

	session.Metadata = withMetadata(session.Metadata, models.Document{
		"entity_types":     types,
		"total_items":      len(changes),
		"has_more":         hasMore,
		"server_timestamp": serverTS.Format(time.RFC3339Nano),
	})
	if err := c.ledger.MarkSuccess(ctx, session, nil); err != nil {
		return nil, err
	}

	if req.UserID != "" {
		cursor := &models.SyncCursor{
			TenantID:   req.TenantID,
			UserID:     req.UserID,
			LastSyncAt: serverTS,
			UpdatedAt:  c.now(),
		}
		if err := c.cursors.SaveCursor(ctx, cursor); err != nil {
			c.logger.Warn("Failed to save sync cursor",
				"tenant_id", req.TenantID,
				"user_id", req.UserID,
				"error", err)
		}
	}

	c.logger.Info("Pull completed",
		"session_id", session.SessionID,
		"tenant_id", req.TenantID,
		"total_items", len(changes),
		"has_more", hasMore)

	return &PullResult{
		Changes:         changes,
		ServerTimestamp: serverTS,
		SessionID:       session.SessionID,
		TotalItems:      len(changes),
		HasMore:         hasMore,
	}, nil
}

// readPage reads one page of changes of a type ordered by updated_at.
// For a full page it returns the cursor for the next page: the page ends
// on a complete updated_at group, so `updated_at > cursor` skips nothing.
// Группа, не поместившаяся в страницу целиком, переносится на следующую;
// если одна метка занимает всю страницу, лимит увеличивается до конца группы.
func (c *Coordinator) readPage(ctx context.Context, a adapter.Adapter, tenantID string, since *time.Time) ([]*models.Entity, *time.Time, error) {
	limit := c.pageSize
	for {
		entities, err := a.ChangedSince(ctx, tenantID, since, limit)
		if err != nil {
			return nil, nil, err
		}
		if len(entities) < limit {
			return entities, nil, nil
		}

		if cut := completeGroups(entities); cut > 0 {
			page := entities[:cut]
			cursor := page[cut-1].UpdatedAt
			return page, &cursor, nil
		}
		limit *= 2
	}
}

// completeGroups returns the length of the prefix that excludes the trailing
// updated_at group, which may continue past the page. 0 means one group.
func completeGroups(entities []*models.Entity) int {
	last := entities[len(entities)-1].UpdatedAt
	cut := len(entities)
	for cut > 0 && entities[cut-1].UpdatedAt.Equal(last) {
		cut--
	}
	return cut
}

// Push applies changes sequentially in the order received.
// A failing or conflicting change never aborts the batch.
func (c *Coordinator) Push(ctx context.Context, req PushRequest) (*PushResult, error) {
	ctx, span := c.tracer.Start(ctx, "sync.Push", trace.WithAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.Int("changes", len(req.Changes)),
	))
	defer span.End()

	result, err := c.push(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "push failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("session_id", result.SessionID),
		attribute.Int("successful", result.Successful),
		attribute.Int("failed", result.Failed),
		attribute.Int("conflicts", len(result.Conflicts)),
	)
	return result, nil
}

func (c *Coordinator) push(ctx context.Context, req PushRequest) (*PushResult, error) {
	session, err := c.ledger.OpenSession(ctx, ledger.SessionSpec{
		TenantID: req.TenantID,
		UserID:   userPtr(req.UserID),
		SyncType: models.SyncTypePush,
		Trigger:  triggerOrDefault(req.Trigger),
		Metadata: req.Metadata,
		Batch:    req.Batch,
	})
	if err != nil {
		return nil, err
	}

	if err := c.ledger.MarkInProgress(ctx, session); err != nil {
		return nil, c.failSession(ctx, session, err)
	}

	result := &PushResult{
		SessionID: session.SessionID,
		Results:   make([]models.ChangeResult, 0, len(req.Changes)),
		Conflicts: make([]models.ChangeResult, 0),
	}

	for i, change := range req.Changes {
		var position *int
		if req.Batch != nil {
			p := req.Batch.Offset + i
			position = &p
		}

		res := c.applyChange(ctx, session, req.TenantID, change, position)
		result.Results = append(result.Results, res)
		result.Processed++

		switch res.Status {
		case models.ChangeStatusSuccess:
			result.Successful++
		case models.ChangeStatusFailed:
			result.Failed++
		case models.ChangeStatusConflict:
			result.Conflicts = append(result.Conflicts, res)
		}
	}

	summary := models.Document{
		"processed":  result.Processed,
		"successful": result.Successful,
		"failed":     result.Failed,
		"conflicts":  len(result.Conflicts),
	}
	if req.ClientTime != nil {
		summary["client_time"] = req.ClientTime.UTC().Format(time.RFC3339Nano)
	}
	session.Metadata = withMetadata(session.Metadata, summary)

	if result.Failed == 0 && len(result.Conflicts) == 0 {
		err = c.ledger.MarkSuccess(ctx, session, nil)
	} else {
		err = c.ledger.MarkPartial(ctx, session)
	}
	if err != nil {
		// Изменения уже применены, поэтому результат возвращается
		c.logger.Error("Failed to close push session",
			"session_id", session.SessionID,
			"error", err)
	}

	c.logger.Info("Push completed",
		"session_id", session.SessionID,
		"tenant_id", req.TenantID,
		"processed", result.Processed,
		"successful", result.Successful,
		"failed", result.Failed,
		"conflicts", len(result.Conflicts))

	return result, nil
}

// applyChange reconciles one change and ledgers its outcome.
func (c *Coordinator) applyChange(ctx context.Context, session *models.LedgerEntry, tenantID string, change models.Change, position *int) models.ChangeResult {
	res := models.ChangeResult{
		EntityType: change.EntityType,
		SyncID:     change.SyncID,
	}

	clientVersion := change.Version
	entry := &models.LedgerEntry{
		EntityType:    change.EntityType,
		EntitySyncID:  change.SyncID,
		Operation:     change.Operation,
		ClientVersion: &clientVersion,
		ClientData:    change.Data,
		BatchPosition: position,
	}
	if err := c.ledger.Record(ctx, session, entry); err != nil {
		c.logger.Error("Failed to record change",
			"session_id", session.SessionID,
			"sync_id", change.SyncID,
			"error", err)
		res.Status = models.ChangeStatusFailed
		res.Error = err.Error()
		return res
	}
	res.LedgerEntryID = entry.ID

	fail := func(cause error) models.ChangeResult {
		if err := c.ledger.MarkFailed(ctx, entry, cause); err != nil {
			c.logger.Error("Failed to mark entry failed",
				"entry_id", entry.ID,
				"error", err)
		}
		res.Status = models.ChangeStatusFailed
		res.Error = cause.Error()
		return res
	}

	if err := validation.ValidateChange(change); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrInvalidRequest, err))
	}

	a, err := c.registry.Get(change.EntityType)
	if err != nil {
		return fail(err)
	}

	outcome, err := c.reconciler.Reconcile(ctx, a, tenantID, change)
	if err != nil {
		c.logger.Warn("Change failed",
			"session_id", session.SessionID,
			"entity_type", change.EntityType,
			"sync_id", change.SyncID,
			"error", err)
		return fail(err)
	}

	if outcome.Conflict != nil {
		if err := c.ledger.MarkConflict(ctx, entry, outcome.Conflict); err != nil {
			c.logger.Error("Failed to mark entry conflict",
				"entry_id", entry.ID,
				"error", err)
		}
		conflictType := outcome.Conflict.Type
		serverVersion := outcome.Conflict.ServerVersion
		res.Status = models.ChangeStatusConflict
		res.ConflictType = &conflictType
		res.ServerVersion = &serverVersion
		res.ServerData = outcome.Conflict.ServerData
		res.EntityID = outcome.Conflict.EntityID
		res.Error = outcome.Conflict.Details
		return res
	}

	if err := c.ledger.MarkSuccess(ctx, entry, outcome.Applied); err != nil {
		c.logger.Error("Failed to mark entry success",
			"entry_id", entry.ID,
			"error", err)
	}
	res.Status = models.ChangeStatusSuccess
	res.Version = outcome.Applied.Version
	res.EntityID = outcome.Applied.ID
	return res
}

// Bidirectional runs a pull and then a push. The phases are independent:
// a push failure does not undo the pull and the pull result is still returned.
func (c *Coordinator) Bidirectional(ctx context.Context, req BidirectionalRequest) (*BidirectionalResult, error) {
	ctx, span := c.tracer.Start(ctx, "sync.Bidirectional", trace.WithAttributes(
		attribute.String("tenant_id", req.TenantID),
	))
	defer span.End()

	parent := models.Document{"parent_sync_type": string(models.SyncTypeBidirectional)}

	pull, err := c.pull(ctx, PullRequest{
		TenantID:    req.TenantID,
		UserID:      req.UserID,
		Since:       req.Since,
		EntityTypes: req.EntityTypes,
		Trigger:     req.Trigger,
		Metadata:    parent.Clone(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pull phase failed")
		return nil, err
	}

	result := &BidirectionalResult{Pull: pull}
	parent["pull_session_id"] = pull.SessionID

	push, err := c.push(ctx, PushRequest{
		TenantID:   req.TenantID,
		UserID:     req.UserID,
		Changes:    req.Changes,
		ClientTime: req.ClientTime,
		Batch:      req.Batch,
		Trigger:    req.Trigger,
		Metadata:   parent,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "push phase failed")
		return result, fmt.Errorf("push phase failed: %w", err)
	}

	result.Push = push
	result.TotalConflicts = len(push.Conflicts)
	return result, nil
}

// resolveTypes validates requested entity types against the registry
func (c *Coordinator) resolveTypes(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return c.registry.Types(), nil
	}

	seen := make(map[string]bool, len(requested))
	types := make([]string, 0, len(requested))
	for _, t := range requested {
		if seen[t] {
			continue
		}
		if _, err := c.registry.Get(t); err != nil {
			return nil, err
		}
		seen[t] = true
		types = append(types, t)
	}
	return types, nil
}

// failSession marks session failed and returns the original error
func (c *Coordinator) failSession(ctx context.Context, session *models.LedgerEntry, cause error) error {
	if err := c.ledger.MarkFailed(ctx, session, cause); err != nil {
		c.logger.Error("Failed to mark session failed",
			"session_id", session.SessionID,
			"error", err)
		return errors.Join(cause, err)
	}

	c.logger.Warn("Sync session failed",
		"session_id", session.SessionID,
		"sync_type", session.SyncType,
		"error", cause)
	return cause
}

func userPtr(userID string) *string {
	if userID == "" {
		return nil
	}
	return &userID
}

func triggerOrDefault(t models.Trigger) models.Trigger {
	if t == "" {
		return models.TriggerManual
	}
	return t
}

func withMetadata(base, extra models.Document) models.Document {
	merged := base.Clone()
	if merged == nil {
		merged = make(models.Document, len(extra))
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
