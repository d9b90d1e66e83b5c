package sync

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/medsync/internal/client/api"
	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/client/storage/boltdb"
	"github.com/iudanet/medsync/internal/crypto"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/pkg/api"
)

const testPassphrase = "correct horse battery staple"

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestService создает разблокированный сервис на временной BoltDB
func newTestService(t *testing.T) (*service, *boltdb.Storage, *httpClient.ClientAPIMock) {
	t.Helper()

	store, err := boltdb.New(t.Context(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	mock := &httpClient.ClientAPIMock{}
	svc := NewService(mock, store, setupTestLogger()).(*service)
	svc.now = func() time.Time { return testNow }
	require.NoError(t, svc.Unlock(t.Context(), testPassphrase))

	return svc, store, mock
}

// seedRecord кладет в кэш серверное состояние сущности
func seedRecord(t *testing.T, svc *service, store *boltdb.Storage, syncID string, version int64, data models.Document) {
	t.Helper()

	sealed, err := crypto.SealJSON(data, svc.key)
	require.NoError(t, err)
	_, err = store.SaveRecord(t.Context(), &storage.Record{
		EntityType: "patient",
		SyncID:     syncID,
		Version:    version,
		Data:       sealed,
	})
	require.NoError(t, err)
}

func emptyPull() *api.PullResponse {
	return &api.PullResponse{SyncSessionID: "session-1", ServerTimestamp: testNow}
}

func TestService_Unlock(t *testing.T) {
	ctx := context.Background()
	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(&httpClient.ClientAPIMock{}, store, setupTestLogger()).(*service)

	// Слишком короткая фраза не создает ключ
	assert.Error(t, svc.Unlock(ctx, "short"))
	_, err = store.GetKeyInfo(ctx)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, svc.Unlock(ctx, testPassphrase))
	firstKey := svc.key
	require.Len(t, firstKey, crypto.KeyLen)

	other := NewService(&httpClient.ClientAPIMock{}, store, setupTestLogger()).(*service)
	assert.ErrorIs(t, other.Unlock(ctx, "a different passphrase"), crypto.ErrWrongPassphrase)
	assert.Nil(t, other.key)

	require.NoError(t, other.Unlock(ctx, testPassphrase))
	assert.Equal(t, firstKey, other.key)
}

func TestService_LockedOperations(t *testing.T) {
	ctx := context.Background()
	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(&httpClient.ClientAPIMock{}, store, setupTestLogger())

	_, err = svc.Queue(ctx, QueueRequest{EntityType: "patient", Operation: models.OperationCreate, Data: models.Document{}})
	assert.ErrorIs(t, err, ErrLocked)
	_, err = svc.Sync(ctx, models.TriggerManual)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = svc.Conflicts(ctx)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, ErrLocked)

	// Status работает без ключа
	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, status.LastSync)
}

func TestService_Queue(t *testing.T) {
	validID := uuid.NewString()

	tests := []struct {
		wantErr error
		req     QueueRequest
		name    string
		invalid bool
	}{
		{
			name: "create generates sync id",
			req:  QueueRequest{EntityType: "patient", Operation: models.OperationCreate, Data: models.Document{"name": "Jane"}},
		},
		{
			name: "update",
			req:  QueueRequest{EntityType: "patient", SyncID: validID, Operation: models.OperationUpdate, Data: models.Document{"name": "Jane"}},
		},
		{
			name: "delete ignores data",
			req:  QueueRequest{EntityType: "patient", SyncID: validID, Operation: models.OperationDelete, Data: models.Document{"x": 1}},
		},
		{
			name:    "unknown operation",
			req:     QueueRequest{EntityType: "patient", SyncID: validID, Operation: "upsert"},
			wantErr: ErrInvalidOperation,
		},
		{
			name:    "update without data",
			req:     QueueRequest{EntityType: "patient", SyncID: validID, Operation: models.OperationUpdate},
			wantErr: ErrDataRequired,
		},
		{
			name:    "invalid sync id",
			req:     QueueRequest{EntityType: "patient", SyncID: "not-a-uuid", Operation: models.OperationUpdate, Data: models.Document{}},
			invalid: true,
		},
		{
			name:    "invalid entity type",
			req:     QueueRequest{EntityType: "Patient!", Operation: models.OperationCreate, Data: models.Document{}},
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newTestService(t)

			change, err := svc.Queue(t.Context(), tt.req)
			if tt.wantErr != nil || tt.invalid {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				count, err := store.CountPending(t.Context())
				require.NoError(t, err)
				assert.Zero(t, count)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, change.Seq)
			assert.NoError(t, uuid.Validate(change.SyncID))
			assert.Equal(t, testNow, change.QueuedAt)

			if tt.req.Operation == models.OperationDelete {
				assert.Nil(t, change.Data)
			} else {
				// В очереди данные только в зашифрованном виде
				assert.NotContains(t, string(change.Data), "Jane")
				data, err := crypto.OpenJSON[models.Document](change.Data, svc.key)
				require.NoError(t, err)
				assert.Equal(t, "Jane", data["name"])
			}
		})
	}
}

func TestService_SyncPushAndPull(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	created, err := svc.Queue(ctx, QueueRequest{
		EntityType: "patient",
		Operation:  models.OperationCreate,
		Data:       models.Document{"name": "Jane"},
	})
	require.NoError(t, err)

	foreignID := uuid.NewString()
	serverTS := testNow.Add(time.Second)

	mock.BidirectionalFunc = func(_ context.Context, trigger string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		assert.Equal(t, "manual", trigger)
		assert.Nil(t, req.LastSync)
		assert.Nil(t, req.Batch)
		require.Len(t, req.Changes, 1)
		assert.Equal(t, api.Change{
			EntityType: "patient",
			SyncID:     created.SyncID,
			Operation:  "create",
			Version:    0,
			Data:       map[string]any{"name": "Jane"},
		}, req.Changes[0])

		return &api.BidirectionalResponse{
			Pull: &api.PullResponse{
				SyncSessionID:   "session-1",
				ServerTimestamp: serverTS,
				Changes: []api.Entity{
					{EntityType: "patient", SyncID: foreignID, Version: 3, Data: map[string]any{"name": "John"}},
				},
				TotalItems: 1,
			},
			Push: &api.PushResponse{
				Results: []api.ChangeResult{
					{EntityType: "patient", SyncID: created.SyncID, Status: "success", Version: 1},
				},
			},
		}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Pulled)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.PulledPage)

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "acknowledged change leaves the outbox")

	own, err := svc.Show(ctx, "patient", created.SyncID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), own.Version)
	assert.Equal(t, "Jane", own.Data["name"])

	foreign, err := svc.Show(ctx, "patient", foreignID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), foreign.Version)
	assert.Equal(t, "John", foreign.Data["name"])

	lastSync, err := store.GetLastSync(ctx)
	require.NoError(t, err)
	require.NotNil(t, lastSync)
	assert.True(t, serverTS.Equal(*lastSync))

	// Следующая синхронизация отправляет курсор и пустой список изменений
	mock.BidirectionalFunc = func(_ context.Context, _ string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		require.NotNil(t, req.LastSync)
		assert.True(t, serverTS.Equal(*req.LastSync))
		assert.Empty(t, req.Changes)
		return &api.BidirectionalResponse{Pull: emptyPull()}, nil
	}
	_, err = svc.Sync(ctx, models.TriggerAutomatic)
	require.NoError(t, err)
	assert.Len(t, mock.BidirectionalCalls(), 2)
}

func TestService_SyncUsesCachedVersion(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	syncID := uuid.NewString()
	seedRecord(t, svc, store, syncID, 4, models.Document{"name": "Jane"})

	_, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: syncID, Operation: models.OperationUpdate, Data: models.Document{"name": "Jane A."}})
	require.NoError(t, err)
	_, err = svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: syncID, Operation: models.OperationDelete})
	require.NoError(t, err)

	mock.BidirectionalFunc = func(_ context.Context, _ string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		require.Len(t, req.Changes, 1, "queue collapses to one change per entity")
		assert.Equal(t, "delete", req.Changes[0].Operation)
		assert.Equal(t, int64(4), req.Changes[0].Version)
		assert.Nil(t, req.Changes[0].Data)

		return &api.BidirectionalResponse{
			Pull: emptyPull(),
			Push: &api.PushResponse{Results: []api.ChangeResult{
				{EntityType: "patient", SyncID: syncID, Status: "success", Version: 5},
			}},
		}, nil
	}

	_, err = svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)

	record, err := svc.Show(ctx, "patient", syncID)
	require.NoError(t, err)
	assert.True(t, record.Deleted)
	assert.Equal(t, int64(5), record.Version)
}

func TestService_SyncConflict(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	syncID := uuid.NewString()
	seedRecord(t, svc, store, syncID, 1, models.Document{"name": "Jane"})

	_, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: syncID, Operation: models.OperationUpdate, Data: models.Document{"name": "Jane B."}})
	require.NoError(t, err)

	conflictType := "version"
	serverVersion := int64(2)
	mock.BidirectionalFunc = func(context.Context, string, api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		return &api.BidirectionalResponse{
			Pull: emptyPull(),
			Push: &api.PushResponse{Results: []api.ChangeResult{{
				EntityType:    "patient",
				SyncID:        syncID,
				Status:        "conflict",
				LedgerEntryID: "entry-1",
				ConflictType:  &conflictType,
				ServerVersion: &serverVersion,
				ServerData:    map[string]any{"name": "Jane C."},
			}}},
		}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicts)
	assert.Zero(t, result.Succeeded)

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	conflicts, err := svc.Conflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	c := conflicts[0]
	assert.Equal(t, "entry-1", c.ID)
	assert.Equal(t, "version", c.ConflictType)
	assert.Equal(t, int64(2), c.ServerVersion)
	assert.Equal(t, "Jane B.", c.ClientData["name"])
	assert.Equal(t, "Jane C.", c.ServerData["name"])

	// Кэш получил серверное состояние
	record, err := svc.Show(ctx, "patient", syncID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.Version)
	assert.Equal(t, "Jane C.", record.Data["name"])
	assert.False(t, record.Deleted)
}

func TestService_SyncDeletionConflict(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	syncID := uuid.NewString()
	seedRecord(t, svc, store, syncID, 1, models.Document{"substance": "latex"})

	_, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: syncID, Operation: models.OperationUpdate, Data: models.Document{"substance": "latex", "severity": "high"}})
	require.NoError(t, err)

	conflictType := string(models.ConflictTypeDeletion)
	serverVersion := int64(2)
	mock.BidirectionalFunc = func(context.Context, string, api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		return &api.BidirectionalResponse{
			Pull: emptyPull(),
			Push: &api.PushResponse{Results: []api.ChangeResult{{
				EntityType:    "patient",
				SyncID:        syncID,
				Status:        "conflict",
				LedgerEntryID: "entry-2",
				ConflictType:  &conflictType,
				ServerVersion: &serverVersion,
				ServerData:    map[string]any{"substance": "latex"},
			}}},
		}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicts)

	// Сервер держит tombstone, кэш не воскрешает запись
	record, err := svc.Show(ctx, "patient", syncID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), record.Version)
	assert.True(t, record.Deleted)
}

func TestService_SyncFailedChangeStaysQueued(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	change, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", Operation: models.OperationCreate, Data: models.Document{"a": 1}})
	require.NoError(t, err)

	mock.BidirectionalFunc = func(context.Context, string, api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		return &api.BidirectionalResponse{
			Pull: emptyPull(),
			Push: &api.PushResponse{Results: []api.ChangeResult{
				{EntityType: "patient", SyncID: change.SyncID, Status: "failed", Error: "storage unavailable"},
			}},
		}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "storage unavailable")

	pending, err := store.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, change.Seq, pending[0].Seq)
}

func TestService_SyncRequestErrorKeepsState(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	_, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", Operation: models.OperationCreate, Data: models.Document{"a": 1}})
	require.NoError(t, err)

	mock.BidirectionalFunc = func(context.Context, string, api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		return nil, errors.New("connection refused")
	}

	_, err = svc.Sync(ctx, models.TriggerManual)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lastSync, err := store.GetLastSync(ctx)
	require.NoError(t, err)
	assert.Nil(t, lastSync, "cursor must not advance on failure")
}

func TestService_SyncDropsCreateDelete(t *testing.T) {
	svc, store, mock := newTestService(t)
	ctx := t.Context()

	change, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", Operation: models.OperationCreate, Data: models.Document{"a": 1}})
	require.NoError(t, err)
	_, err = svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: change.SyncID, Operation: models.OperationDelete})
	require.NoError(t, err)

	mock.BidirectionalFunc = func(_ context.Context, _ string, req api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		assert.Empty(t, req.Changes)
		return &api.BidirectionalResponse{Pull: emptyPull()}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Dropped)

	count, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestService_SyncFollowsPullPages(t *testing.T) {
	svc, _, mock := newTestService(t)
	ctx := t.Context()

	firstCursor := testNow.Add(time.Minute)
	finalCursor := testNow.Add(2 * time.Minute)

	mock.BidirectionalFunc = func(context.Context, string, api.BidirectionalRequest) (*api.BidirectionalResponse, error) {
		return &api.BidirectionalResponse{Pull: &api.PullResponse{
			SyncSessionID:   "session-1",
			ServerTimestamp: firstCursor,
			Changes:         []api.Entity{{EntityType: "patient", SyncID: uuid.NewString(), Version: 1, Data: map[string]any{"n": 1}}},
			HasMore:         true,
		}}, nil
	}
	mock.PullFunc = func(_ context.Context, trigger string, req api.PullRequest) (*api.PullResponse, error) {
		assert.Equal(t, "scheduled", trigger)
		require.NotNil(t, req.LastSync)
		assert.True(t, firstCursor.Equal(*req.LastSync))
		return &api.PullResponse{
			ServerTimestamp: finalCursor,
			Changes:         []api.Entity{{EntityType: "patient", SyncID: uuid.NewString(), Version: 1, Data: map[string]any{"n": 2}}},
		}, nil
	}

	result, err := svc.Sync(ctx, models.TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, 2, result.PulledPage)
	assert.Equal(t, 2, result.Pulled)
	assert.Len(t, mock.PullCalls(), 1)

	lastSync, err := svc.store.GetLastSync(ctx)
	require.NoError(t, err)
	assert.True(t, finalCursor.Equal(*lastSync))

	records, err := svc.List(ctx, "patient")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestChunkChanges(t *testing.T) {
	changes := make([]api.Change, 5)

	assert.Equal(t, [][]api.Change{{}}, chunkChanges(nil, 2))

	chunks := chunkChanges(changes, 2)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[2], 1)

	assert.Nil(t, batchFor("", 5, 0, true))
	assert.Equal(t, &api.Batch{ID: "b", Size: 5, Offset: 2, Complete: false}, batchFor("b", 5, 2, false))
}

func TestService_Resolve(t *testing.T) {
	tests := []struct {
		result       api.ResolveResult
		name         string
		wantErr      bool
		wantDeleted  bool
		wantCacheVer int64
	}{
		{
			name:         "client wins",
			result:       api.ResolveResult{ConflictID: "entry-1", Success: true, ResolvedVersion: 3, ResolvedData: map[string]any{"name": "Jane B."}},
			wantDeleted:  true,
			wantCacheVer: 3,
		},
		{
			name:         "already resolved elsewhere",
			result:       api.ResolveResult{ConflictID: "entry-1", AlreadyResolved: true},
			wantDeleted:  true,
			wantCacheVer: 2,
		},
		{
			name:         "server rejects",
			result:       api.ResolveResult{ConflictID: "entry-1", Error: "resolution race"},
			wantErr:      true,
			wantCacheVer: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, mock := newTestService(t)
			ctx := t.Context()

			syncID := uuid.NewString()
			seedRecord(t, svc, store, syncID, 2, models.Document{"name": "Jane C."})
			require.NoError(t, store.SaveConflict(ctx, &storage.Conflict{ID: "entry-1", EntityType: "patient", SyncID: syncID}))

			mock.ResolveFunc = func(_ context.Context, req api.ResolveRequest) (*api.ResolveResponse, error) {
				require.Len(t, req.Conflicts, 1)
				assert.Equal(t, "entry-1", req.Conflicts[0].ConflictID)
				assert.Equal(t, "client_wins", req.Conflicts[0].Resolution)
				return &api.ResolveResponse{Results: []api.ResolveResult{tt.result}}, nil
			}

			_, err := svc.Resolve(ctx, "entry-1", models.StrategyClientWins, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrResolveFailed)
			} else {
				require.NoError(t, err)
			}

			_, err = store.GetConflict(ctx, "entry-1")
			if tt.wantDeleted {
				assert.ErrorIs(t, err, storage.ErrConflictNotFound)
			} else {
				assert.NoError(t, err)
			}

			record, err := svc.Show(ctx, "patient", syncID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCacheVer, record.Version)
		})
	}
}

func TestService_ResolveValidation(t *testing.T) {
	svc, _, mock := newTestService(t)

	_, err := svc.Resolve(t.Context(), "entry-1", "manual", nil)
	assert.Error(t, err)

	_, err = svc.Resolve(t.Context(), "entry-1", models.StrategyMerge, nil)
	assert.Error(t, err)

	assert.Empty(t, mock.ResolveCalls())
}

func TestService_RefreshConflicts(t *testing.T) {
	svc, _, mock := newTestService(t)

	serverVersion := int64(7)
	mock.ListConflictsFunc = func(_ context.Context, page, limit int) (*api.ConflictList, error) {
		assert.Equal(t, conflictPageSize, limit)
		conflicts := make([]api.Conflict, 0, limit)
		n := limit
		if page == 2 {
			n = 1
		}
		for i := range n {
			conflicts = append(conflicts, api.Conflict{
				ConflictID:    uuid.NewString(),
				EntityType:    "encounter",
				SyncID:        uuid.NewString(),
				ConflictType:  "data",
				ServerVersion: &serverVersion,
				ClientData:    map[string]any{"i": i},
			})
		}
		return &api.ConflictList{
			Conflicts:  conflicts,
			Pagination: api.Pagination{Page: page, Limit: limit, Total: conflictPageSize + 1},
		}, nil
	}

	saved, err := svc.RefreshConflicts(t.Context())
	require.NoError(t, err)
	assert.Equal(t, conflictPageSize+1, saved)
	assert.Len(t, mock.ListConflictsCalls(), 2)

	conflicts, err := svc.Conflicts(t.Context())
	require.NoError(t, err)
	require.Len(t, conflicts, conflictPageSize+1)
	assert.Equal(t, int64(7), conflicts[0].ServerVersion)
}

func TestService_StatusAndList(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := t.Context()

	syncID := uuid.NewString()
	seedRecord(t, svc, store, syncID, 1, models.Document{"name": "Jane"})
	_, err := svc.Queue(ctx, QueueRequest{EntityType: "patient", SyncID: syncID, Operation: models.OperationUpdate, Data: models.Document{"name": "J"}})
	require.NoError(t, err)
	require.NoError(t, store.SaveConflict(ctx, &storage.Conflict{ID: "c-1"}))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Pending)
	assert.Equal(t, 1, status.Conflicts)
	assert.Equal(t, 1, status.Cached)

	records, err := svc.List(ctx, "patient")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Pending)
	assert.Equal(t, "Jane", records[0].Data["name"])

	_, err = svc.Show(ctx, "patient", uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}
