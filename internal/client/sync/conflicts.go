package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/crypto"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

// conflictPageSize размер страницы при загрузке конфликтов с сервера
const conflictPageSize = 100

// ErrResolveFailed сервер отклонил решение по конфликту
var ErrResolveFailed = errors.New("conflict resolution failed")

// Conflicts returns decrypted local conflicts
func (s *service) Conflicts(ctx context.Context) ([]*Conflict, error) {
	if s.key == nil {
		return nil, ErrLocked
	}

	stored, err := s.store.ListConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	conflicts := make([]*Conflict, 0, len(stored))
	for _, c := range stored {
		clientData, err := crypto.OpenJSON[models.Document](c.ClientData, s.key)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt conflict %s: %w", c.ID, err)
		}
		serverData, err := crypto.OpenJSON[models.Document](c.ServerData, s.key)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt conflict %s: %w", c.ID, err)
		}

		conflicts = append(conflicts, &Conflict{
			DetectedAt:    c.DetectedAt,
			ClientData:    clientData,
			ServerData:    serverData,
			ID:            c.ID,
			EntityType:    c.EntityType,
			SyncID:        c.SyncID,
			Operation:     c.Operation,
			ConflictType:  c.ConflictType,
			ServerVersion: c.ServerVersion,
		})
	}

	return conflicts, nil
}

// RefreshConflicts загружает все страницы конфликтов с сервера.
// Нужен, когда конфликт создан с другого устройства того же пользователя.
func (s *service) RefreshConflicts(ctx context.Context) (int, error) {
	if s.key == nil {
		return 0, ErrLocked
	}

	var saved int
	for page := 1; ; page++ {
		list, err := s.apiClient.ListConflicts(ctx, page, conflictPageSize)
		if err != nil {
			return saved, fmt.Errorf("failed to fetch conflicts: %w", err)
		}

		for _, c := range list.Conflicts {
			if err := s.saveRemoteConflict(ctx, c); err != nil {
				return saved, err
			}
			saved++
		}

		if len(list.Conflicts) == 0 || page*conflictPageSize >= list.Pagination.Total {
			return saved, nil
		}
	}
}

func (s *service) saveRemoteConflict(ctx context.Context, c api.Conflict) error {
	clientData, err := crypto.SealJSON(c.ClientData, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt client data: %w", err)
	}
	serverData, err := crypto.SealJSON(c.ServerData, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt server data: %w", err)
	}

	conflict := &storage.Conflict{
		DetectedAt:   c.DetectedAt,
		ClientData:   clientData,
		ServerData:   serverData,
		ID:           c.ConflictID,
		EntityType:   c.EntityType,
		SyncID:       c.SyncID,
		Operation:    c.Operation,
		ConflictType: c.ConflictType,
	}
	if c.ServerVersion != nil {
		conflict.ServerVersion = *c.ServerVersion
	}

	if err := s.store.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("failed to save conflict: %w", err)
	}
	return nil
}

// Resolve отправляет решение на сервер. При успехе кэш получает
// итоговые данные и версию, а конфликт удаляется из локального списка.
// Уже разрешенный на сервере конфликт тоже удаляется.
func (s *service) Resolve(ctx context.Context, conflictID string, strategy models.ResolutionStrategy, data models.Document) (*api.ResolveResult, error) {
	if s.key == nil {
		return nil, ErrLocked
	}
	if err := validation.ValidateStrategy(strategy); err != nil {
		return nil, err
	}
	if strategy == models.StrategyMerge && data == nil {
		return nil, fmt.Errorf("merge requires resolved data")
	}

	local, err := s.store.GetConflict(ctx, conflictID)
	if err != nil && !errors.Is(err, storage.ErrConflictNotFound) {
		return nil, err
	}

	resp, err := s.apiClient.Resolve(ctx, api.ResolveRequest{
		Conflicts: []api.ResolveItem{{
			ConflictID:   conflictID,
			Resolution:   string(strategy),
			ResolvedData: data,
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) != 1 {
		return nil, fmt.Errorf("%w: expected 1 result, got %d", ErrResolveFailed, len(resp.Results))
	}

	r := resp.Results[0]
	if !r.Success && !r.AlreadyResolved {
		return &r, fmt.Errorf("%w: %s", ErrResolveFailed, r.Error)
	}

	if local != nil && r.Success && r.ResolvedVersion > 0 {
		sealed, err := crypto.SealJSON(r.ResolvedData, s.key)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt resolved data: %w", err)
		}
		if _, err := s.store.SaveRecord(ctx, &storage.Record{
			UpdatedAt:  s.now(),
			Data:       sealed,
			EntityType: local.EntityType,
			SyncID:     local.SyncID,
			Version:    r.ResolvedVersion,
		}); err != nil {
			return nil, fmt.Errorf("failed to cache resolved entity: %w", err)
		}
	}

	if err := s.store.DeleteConflict(ctx, conflictID); err != nil && !errors.Is(err, storage.ErrConflictNotFound) {
		return nil, err
	}

	s.logger.Info("Conflict resolved",
		"conflict_id", conflictID,
		"strategy", strategy,
		"already_resolved", r.AlreadyResolved,
		"resolved_version", r.ResolvedVersion)

	return &r, nil
}
