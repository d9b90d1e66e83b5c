package retention

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/ledger"
	"github.com/iudanet/medsync/internal/server/storage"
	"github.com/iudanet/medsync/internal/server/storage/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWorker_Run(t *testing.T) {
	tests := []struct {
		err  error
		name string
	}{
		{name: "successful passes"},
		{name: "failing passes keep running", err: errors.New("database is locked")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaner := &CleanerMock{
				CleanupFunc: func(ctx context.Context, olderThan time.Duration) (int64, error) {
					return 3, tt.err
				},
			}
			w := NewWorker(cleaner, 48*time.Hour, 5*time.Millisecond, testLogger())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})
			go func() {
				w.Run(ctx)
				close(done)
			}()

			require.Eventually(t, func() bool {
				return len(cleaner.CleanupCalls()) >= 3
			}, time.Second, 5*time.Millisecond)

			cancel()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("worker did not stop after cancel")
			}

			for _, call := range cleaner.CleanupCalls() {
				assert.Equal(t, 48*time.Hour, call.OlderThan)
			}
		})
	}
}

func TestWorker_Disabled(t *testing.T) {
	cleaner := &CleanerMock{}
	w := NewWorker(cleaner, time.Hour, 0, testLogger())

	// Run без интервала возвращается сразу
	w.Run(context.Background())
	assert.Empty(t, cleaner.CleanupCalls())
}

func TestWorker_WithLedger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()

	old := time.Now().UTC().Add(-72 * time.Hour)
	entry := func(status models.SyncStatus) *models.LedgerEntry {
		return &models.LedgerEntry{
			ID:          uuid.New().String(),
			SessionID:   "session-1",
			TenantID:    "tenant-1",
			SyncType:    models.SyncTypePush,
			Trigger:     models.TriggerScheduled,
			EntityType:  models.EntityTypePatient,
			Operation:   models.OperationCreate,
			Status:      status,
			StartedAt:   old,
			CompletedAt: &old,
		}
	}
	succeeded := entry(models.StatusSuccess)
	failed := entry(models.StatusFailed)
	require.NoError(t, store.InsertEntry(ctx, succeeded))
	require.NoError(t, store.InsertEntry(ctx, failed))

	w := NewWorker(ledger.New(store, testLogger()), 48*time.Hour, time.Hour, testLogger())
	go w.Run(ctx)

	require.Eventually(t, func() bool {
		_, err := store.GetEntry(ctx, "tenant-1", succeeded.ID)
		return errors.Is(err, storage.ErrEntryNotFound)
	}, time.Second, 10*time.Millisecond)

	kept, err := store.GetEntry(ctx, "tenant-1", failed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, kept.Status)
}
