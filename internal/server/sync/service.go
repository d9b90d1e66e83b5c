package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/adapter"
	"github.com/iudanet/medsync/internal/server/ledger"
	"github.com/iudanet/medsync/internal/server/storage"
)

// Service combines the coordinator, the resolver and ledger queries.
type Service struct {
	*Coordinator
	*Resolver
	journal *ledger.Ledger
}

// NewService wires a Service over the registry, ledger and cursor storage
func NewService(
	registry *adapter.Registry,
	l *ledger.Ledger,
	cursors storage.CursorStorage,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	return &Service{
		Coordinator: NewCoordinator(registry, l, cursors, logger, opts...),
		Resolver:    NewResolver(registry, l, logger),
		journal:     l,
	}
}

// ListConflicts returns a page of unresolved conflicts raised for the user.
// page starts at 1.
func (s *Service) ListConflicts(ctx context.Context, tenantID, userID string, page, limit int) ([]*models.LedgerEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}
	return s.journal.UnresolvedConflicts(ctx, tenantID, userPtr(userID), limit, (page-1)*limit)
}

// History returns a page of ledger entries matching the filter
func (s *Service) History(ctx context.Context, filter storage.LedgerFilter) ([]*models.LedgerEntry, int, error) {
	return s.journal.History(ctx, filter)
}

// Stats aggregates ledger metrics over [from, to)
func (s *Service) Stats(ctx context.Context, tenantID string, from, to time.Time) (*models.LedgerStats, error) {
	return s.journal.Stats(ctx, tenantID, from, to)
}

// EntityHistory returns the audit trail of one entity
func (s *Service) EntityHistory(ctx context.Context, tenantID, entityType, syncID string) ([]*models.LedgerEntry, error) {
	if _, err := s.Coordinator.registry.Get(entityType); err != nil {
		return nil, err
	}
	return s.journal.EntriesForEntity(ctx, tenantID, entityType, syncID)
}

// RecentFailures returns failed entries of the last window
func (s *Service) RecentFailures(ctx context.Context, tenantID string, window time.Duration) ([]*models.LedgerEntry, error) {
	return s.journal.RecentFailures(ctx, tenantID, window)
}

// EntityTypes returns the registered entity types
func (s *Service) EntityTypes() []string {
	return s.Coordinator.registry.Types()
}
