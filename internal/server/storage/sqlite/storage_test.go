package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/models"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func TestNew_MigrationsApplied(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	for _, table := range []string{"sync_ledger", "sync_entities", "sync_cursors"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	assert.NoError(t, s.Ping(context.Background()))
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func newTestEntry(tenantID, sessionID string, status models.SyncStatus) *models.LedgerEntry {
	return &models.LedgerEntry{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		TenantID:     tenantID,
		UserID:       strPtr("user-1"),
		SyncType:     models.SyncTypePush,
		Trigger:      models.TriggerManual,
		EntityType:   models.EntityTypePatient,
		EntitySyncID: uuid.New().String(),
		Operation:    models.OperationUpdate,
		Status:       status,
		StartedAt:    time.Now().UTC(),
	}
}
