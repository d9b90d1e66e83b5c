package sync

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/adapter"
	"github.com/iudanet/medsync/internal/server/ledger"
	"github.com/iudanet/medsync/internal/server/storage"
	"github.com/iudanet/medsync/internal/server/storage/sqlite"
)

const (
	testTenant = "tenant-1"
	testUserA  = "user-a"
	testUserB  = "user-b"
)

type testEnv struct {
	service  *Service
	store    *sqlite.Storage
	registry *adapter.Registry
	ledger   *ledger.Ledger
	logger   *slog.Logger
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupTestEnv собирает сервис поверх in-memory SQLite.
// extra адаптеры регистрируются вместе с типами по умолчанию.
func setupTestEnv(t *testing.T, extra []adapter.Adapter, opts ...Option) *testEnv {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	registry, err := adapter.NewTableRegistry(store, models.DefaultEntityTypes())
	require.NoError(t, err)
	for _, a := range extra {
		require.NoError(t, registry.Register(a))
	}

	logger := testLogger()
	l := ledger.New(store, logger)

	return &testEnv{
		service:  NewService(registry, l, store, logger, opts...),
		store:    store,
		registry: registry,
		ledger:   l,
		logger:   logger,
	}
}

func (e *testEnv) push(t *testing.T, userID string, changes ...models.Change) *PushResult {
	result, err := e.service.Push(context.Background(), PushRequest{
		TenantID: testTenant,
		UserID:   userID,
		Changes:  changes,
	})
	require.NoError(t, err)
	return result
}

func (e *testEnv) entity(t *testing.T, entityType, syncID string) *models.Entity {
	entity, err := e.store.GetEntity(context.Background(), testTenant, entityType, syncID)
	require.NoError(t, err)
	return entity
}

func (e *testEnv) sessions(t *testing.T, syncType models.SyncType) []*models.LedgerEntry {
	entries, _, err := e.store.ListEntries(context.Background(), storage.LedgerFilter{
		TenantID:   testTenant,
		SyncType:   syncType,
		EntityType: models.SessionEntityType,
	})
	require.NoError(t, err)
	return entries
}

func createChange(entityType string, data models.Document) models.Change {
	return models.Change{
		EntityType: entityType,
		SyncID:     uuid.New().String(),
		Operation:  models.OperationCreate,
		Data:       data,
	}
}

func updateChange(entityType, syncID string, version int64, data models.Document) models.Change {
	return models.Change{
		EntityType: entityType,
		SyncID:     syncID,
		Operation:  models.OperationUpdate,
		Version:    version,
		Data:       data,
	}
}
