package sync

import (
	"context"
	"fmt"

	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/crypto"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/pkg/api"
)

// Status не требует ключа: показывает только счетчики
func (s *service) Status(ctx context.Context) (*Status, error) {
	lastSync, err := s.store.GetLastSync(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count outbox: %w", err)
	}
	conflicts, err := s.store.ListConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	records, err := s.store.ListRecords(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}

	return &Status{
		LastSync:  lastSync,
		Pending:   pending,
		Conflicts: len(conflicts),
		Cached:    len(records),
	}, nil
}

// Show returns one decrypted cached entity
func (s *service) Show(ctx context.Context, entityType, syncID string) (*Record, error) {
	if s.key == nil {
		return nil, ErrLocked
	}

	stored, err := s.store.GetRecord(ctx, entityType, syncID)
	if err != nil {
		return nil, err
	}
	pending, err := s.pendingByEntity(ctx)
	if err != nil {
		return nil, err
	}

	return s.openRecord(stored, pending)
}

// List returns decrypted cached entities of one type (all types when empty)
func (s *service) List(ctx context.Context, entityType string) ([]*Record, error) {
	if s.key == nil {
		return nil, ErrLocked
	}

	stored, err := s.store.ListRecords(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache: %w", err)
	}
	pending, err := s.pendingByEntity(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(stored))
	for _, r := range stored {
		record, err := s.openRecord(r, pending)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// History запрашивает аудит сущности у сервера
func (s *service) History(ctx context.Context, entityType, syncID string) (*api.EntityHistory, error) {
	return s.apiClient.EntityHistory(ctx, entityType, syncID)
}

func (s *service) openRecord(r *storage.Record, pending map[string]int) (*Record, error) {
	data, err := crypto.OpenJSON[models.Document](r.Data, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s %s: %w", r.EntityType, r.SyncID, err)
	}
	return &Record{
		UpdatedAt:  r.UpdatedAt,
		Data:       data,
		EntityType: r.EntityType,
		SyncID:     r.SyncID,
		Version:    r.Version,
		Deleted:    r.Deleted,
		Pending:    pending[r.EntityType+"/"+r.SyncID],
	}, nil
}

func (s *service) pendingByEntity(ctx context.Context) (map[string]int, error) {
	changes, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox: %w", err)
	}
	counts := make(map[string]int, len(changes))
	for _, c := range changes {
		counts[c.EntityType+"/"+c.SyncID]++
	}
	return counts, nil
}
