package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/crypto"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/validation"
	"github.com/iudanet/medsync/pkg/api"
)

// Sync performs full synchronization with server
// 1. Collapses the outbox to one change per entity
// 2. Sends pull and push in one bidirectional request (extra changes go as push batches)
// 3. Applies server entities to the cache, following HasMore pages
// 4. Applies push results: success updates the cache, conflict is stored locally,
// failure stays in the outbox for the next run
func (s *service) Sync(ctx context.Context, trigger models.Trigger) (*SyncResult, error) {
	if s.key == nil {
		return nil, ErrLocked
	}

	result := &SyncResult{}

	lastSync, err := s.store.GetLastSync(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox: %w", err)
	}

	items, err := s.prepare(ctx, coalesce(pending), result)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting synchronization",
		"pending", len(pending),
		"changes", len(items),
		"dropped", result.Dropped)

	changes := make([]api.Change, 0, len(items))
	for _, item := range items {
		changes = append(changes, item.api)
	}
	chunks := chunkChanges(changes, validation.MaxChangesPerPush)

	var batchID string
	if len(chunks) > 1 {
		batchID = uuid.NewString()
	}
	clientTime := s.now()

	first := api.BidirectionalRequest{
		LastSync:   lastSync,
		ClientTime: &clientTime,
		Changes:    chunks[0],
		Batch:      batchFor(batchID, len(changes), 0, len(chunks) == 1),
	}
	resp, err := s.apiClient.Bidirectional(ctx, string(trigger), first)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	if resp.Pull == nil {
		return nil, errors.New("sync response has no pull result")
	}
	result.SessionID = resp.Pull.SyncSessionID

	cursor, err := s.applyPull(ctx, string(trigger), resp.Pull, result)
	if err != nil {
		return nil, err
	}

	var results []api.ChangeResult
	if resp.Push != nil {
		results = append(results, resp.Push.Results...)
	}

	offset := len(chunks[0])
	for i := 1; i < len(chunks); i++ {
		pushResp, err := s.apiClient.Push(ctx, string(trigger), api.PushRequest{
			ClientTime: &clientTime,
			Changes:    chunks[i],
			Batch:      batchFor(batchID, len(changes), offset, i == len(chunks)-1),
		})
		if err != nil {
			// Уже принятые части применяются, остальное останется в очереди
			s.logger.Warn("Push batch failed", "offset", offset, "error", err)
			result.Errors = append(result.Errors, err.Error())
			break
		}
		results = append(results, pushResp.Results...)
		offset += len(chunks[i])
	}

	if err := s.applyResults(ctx, items, results, result); err != nil {
		return nil, err
	}

	if err := s.store.SaveLastSync(ctx, cursor); err != nil {
		return nil, fmt.Errorf("failed to save last sync: %w", err)
	}

	s.logger.Info("Synchronization completed",
		"session_id", result.SessionID,
		"pushed", result.Pushed,
		"succeeded", result.Succeeded,
		"conflicts", result.Conflicts,
		"failed", result.Failed,
		"pulled", result.Pulled,
		"applied", result.Applied)

	return result, nil
}

// preparedItem изменение, готовое к отправке
type preparedItem struct {
	item *outboxItem
	api  api.Change
}

// prepare удаляет схлопнутые изменения и расшифровывает остальные
func (s *service) prepare(ctx context.Context, items []*outboxItem, result *SyncResult) ([]preparedItem, error) {
	prepared := make([]preparedItem, 0, len(items))

	for _, item := range items {
		if item.dropped {
			if err := s.store.RemovePending(ctx, item.seqs...); err != nil {
				return nil, fmt.Errorf("failed to drop collapsed changes: %w", err)
			}
			result.Dropped += len(item.seqs)
			continue
		}

		change := item.change
		data, err := crypto.OpenJSON[models.Document](change.Data, s.key)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt pending change %d: %w", change.Seq, err)
		}

		version, err := s.baseVersion(ctx, change)
		if err != nil {
			return nil, err
		}

		prepared = append(prepared, preparedItem{
			item: item,
			api: api.Change{
				Data:       data,
				EntityType: change.EntityType,
				SyncID:     change.SyncID,
				Operation:  change.Operation,
				Version:    version,
			},
		})
	}

	return prepared, nil
}

// baseVersion версия, которую клиент видел последней
func (s *service) baseVersion(ctx context.Context, change *storage.PendingChange) (int64, error) {
	if change.Operation == opCreate {
		return 0, nil
	}
	record, err := s.store.GetRecord(ctx, change.EntityType, change.SyncID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cached version: %w", err)
	}
	return record.Version, nil
}

// applyPull записывает сущности сервера в кэш и догружает страницы.
// Возвращает курсор для следующей синхронизации.
func (s *service) applyPull(ctx context.Context, trigger string, pull *api.PullResponse, result *SyncResult) (time.Time, error) {
	for page := 1; ; page++ {
		result.PulledPage = page
		result.Pulled += len(pull.Changes)

		for _, entity := range pull.Changes {
			written, err := s.cacheEntity(ctx, entity)
			if err != nil {
				return time.Time{}, err
			}
			if written {
				result.Applied++
			}
		}

		if !pull.HasMore || page >= maxPullPages {
			return pull.ServerTimestamp, nil
		}

		cursor := pull.ServerTimestamp
		next, err := s.apiClient.Pull(ctx, trigger, api.PullRequest{LastSync: &cursor})
		if err != nil {
			return time.Time{}, fmt.Errorf("pull page %d failed: %w", page+1, err)
		}
		pull = next
	}
}

func (s *service) cacheEntity(ctx context.Context, entity api.Entity) (bool, error) {
	sealed, err := crypto.SealJSON(entity.Data, s.key)
	if err != nil {
		return false, fmt.Errorf("failed to encrypt entity: %w", err)
	}

	written, err := s.store.SaveRecord(ctx, &storage.Record{
		UpdatedAt:  entity.UpdatedAt,
		Data:       sealed,
		EntityType: entity.EntityType,
		SyncID:     entity.SyncID,
		Version:    entity.Version,
		Deleted:    entity.Deleted,
	})
	if err != nil {
		return false, fmt.Errorf("failed to cache %s %s: %w", entity.EntityType, entity.SyncID, err)
	}
	return written, nil
}

// applyResults сопоставляет результаты с изменениями по позиции.
// Изменения без результата (неотправленная часть пакета) остаются в очереди.
func (s *service) applyResults(ctx context.Context, items []preparedItem, results []api.ChangeResult, result *SyncResult) error {
	result.Pushed = len(results)

	for i, r := range results {
		if i >= len(items) {
			break
		}
		item := items[i]

		switch models.ChangeStatus(r.Status) {
		case models.ChangeStatusSuccess:
			if err := s.applySuccess(ctx, item, r); err != nil {
				return err
			}
			result.Succeeded++

		case models.ChangeStatusConflict:
			if err := s.applyConflict(ctx, item, r); err != nil {
				return err
			}
			result.Conflicts++

		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %s", r.EntityType, r.SyncID, r.Error))
			s.logger.Warn("Change rejected, kept in outbox",
				"entity_type", r.EntityType,
				"sync_id", r.SyncID,
				"error", r.Error)
		}
	}

	return nil
}

func (s *service) applySuccess(ctx context.Context, item preparedItem, r api.ChangeResult) error {
	sealed, err := crypto.SealJSON(item.api.Data, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt entity: %w", err)
	}

	if _, err := s.store.SaveRecord(ctx, &storage.Record{
		UpdatedAt:  s.now(),
		Data:       sealed,
		EntityType: item.api.EntityType,
		SyncID:     item.api.SyncID,
		Version:    r.Version,
		Deleted:    item.api.Operation == opDelete,
	}); err != nil {
		return fmt.Errorf("failed to cache pushed entity: %w", err)
	}

	return s.store.RemovePending(ctx, item.item.seqs...)
}

// applyConflict сохраняет конфликт локально и снимает изменение с очереди:
// дальше конфликт живет в журнале сервера до явного решения
func (s *service) applyConflict(ctx context.Context, item preparedItem, r api.ChangeResult) error {
	clientData, err := crypto.SealJSON(item.api.Data, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt client data: %w", err)
	}
	serverData, err := crypto.SealJSON(r.ServerData, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt server data: %w", err)
	}

	conflict := &storage.Conflict{
		DetectedAt: s.now(),
		ClientData: clientData,
		ServerData: serverData,
		ID:         r.LedgerEntryID,
		EntityType: item.api.EntityType,
		SyncID:     item.api.SyncID,
		Operation:  item.api.Operation,
	}
	if r.ConflictType != nil {
		conflict.ConflictType = *r.ConflictType
	}
	if r.ServerVersion != nil {
		conflict.ServerVersion = *r.ServerVersion

		// Кэш получает серверное состояние, на котором произошел конфликт
		if _, err := s.store.SaveRecord(ctx, &storage.Record{
			UpdatedAt:  s.now(),
			Data:       serverData,
			EntityType: item.api.EntityType,
			SyncID:     item.api.SyncID,
			Version:    *r.ServerVersion,
			Deleted:    conflict.ConflictType == string(models.ConflictTypeDeletion),
		}); err != nil {
			return fmt.Errorf("failed to cache server state: %w", err)
		}
	}

	if err := s.store.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("failed to save conflict: %w", err)
	}

	s.logger.Warn("Conflict detected",
		"conflict_id", conflict.ID,
		"entity_type", conflict.EntityType,
		"sync_id", conflict.SyncID,
		"conflict_type", conflict.ConflictType)

	return s.store.RemovePending(ctx, item.item.seqs...)
}

// chunkChanges делит изменения на части не больше size.
// Пустой список дает одну пустую часть: bidirectional всегда выполняет pull.
func chunkChanges(changes []api.Change, size int) [][]api.Change {
	if len(changes) == 0 {
		return [][]api.Change{{}}
	}
	var chunks [][]api.Change
	for start := 0; start < len(changes); start += size {
		end := min(start+size, len(changes))
		chunks = append(chunks, changes[start:end])
	}
	return chunks
}

func batchFor(id string, size, offset int, complete bool) *api.Batch {
	if id == "" {
		return nil
	}
	return &api.Batch{ID: id, Size: size, Offset: offset, Complete: complete}
}
