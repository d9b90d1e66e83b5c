package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
	"github.com/iudanet/medsync/internal/server/storage/sqlite"
)

func setupTestLedger(t *testing.T) (*Ledger, *sqlite.Storage) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(store, logger), store
}

func openTestSession(t *testing.T, l *Ledger, batch *Batch) *models.LedgerEntry {
	user := "user-1"
	session, err := l.OpenSession(context.Background(), SessionSpec{
		TenantID: "tenant-1",
		UserID:   &user,
		SyncType: models.SyncTypePush,
		Trigger:  models.TriggerManual,
		Batch:    batch,
	})
	require.NoError(t, err)
	return session
}

func recordTestEntry(t *testing.T, l *Ledger, session *models.LedgerEntry, syncID string) *models.LedgerEntry {
	entry := &models.LedgerEntry{
		EntityType:    models.EntityTypePatient,
		EntitySyncID:  syncID,
		Operation:     models.OperationUpdate,
		ClientVersion: new(int64),
		ClientData:    models.Document{"name": "Jane"},
	}
	require.NoError(t, l.Record(context.Background(), session, entry))
	return entry
}

func TestLedger_OpenSession(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)

	session := openTestSession(t, l, &Batch{ID: "batch-1", Size: 250, Complete: false})
	assert.Equal(t, session.ID, session.SessionID)
	assert.True(t, session.IsSession())
	assert.Equal(t, models.StatusPending, session.Status)
	assert.Nil(t, session.CompletedAt)

	_, err := uuid.Parse(session.SessionID)
	assert.NoError(t, err)

	stored, err := store.GetEntry(ctx, "tenant-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, "batch-1", *stored.BatchID)
	assert.Equal(t, 250, *stored.BatchSize)

	require.NoError(t, l.MarkInProgress(ctx, session))
	stored, err = store.GetEntry(ctx, "tenant-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Nil(t, stored.CompletedAt)

	other := openTestSession(t, l, nil)
	assert.NotEqual(t, session.SessionID, other.SessionID)
}

func TestLedger_Record(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)
	session := openTestSession(t, l, &Batch{ID: "batch-1", Size: 3})

	entry := recordTestEntry(t, l, session, uuid.New().String())
	assert.Equal(t, session.SessionID, entry.SessionID)
	assert.Equal(t, models.StatusInProgress, entry.Status)
	assert.Equal(t, int64(len(`{"name":"Jane"}`)), entry.PayloadSize)
	assert.Equal(t, "user-1", *entry.UserID)
	assert.Equal(t, "batch-1", *entry.BatchID)
	assert.Zero(t, entry.RetryCount)

	stored, err := store.GetEntry(ctx, "tenant-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.SessionID, stored.SessionID)
}

func TestLedger_TerminalTransitions(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)
	session := openTestSession(t, l, nil)

	tests := []struct {
		mark       func(e *models.LedgerEntry) error
		check      func(t *testing.T, e *models.LedgerEntry)
		name       string
		wantStatus models.SyncStatus
	}{
		{
			name: "success",
			mark: func(e *models.LedgerEntry) error {
				return l.MarkSuccess(ctx, e, &models.Entity{ID: 7, Version: 2, Data: models.Document{"name": "Jane"}})
			},
			wantStatus: models.StatusSuccess,
			check: func(t *testing.T, e *models.LedgerEntry) {
				assert.Equal(t, int64(7), *e.EntityID)
				assert.Equal(t, int64(2), *e.ServerVersion)
			},
		},
		{
			name: "failed",
			mark: func(e *models.LedgerEntry) error {
				cause := fmt.Errorf("failed to write entity: %w", errors.New("disk I/O error"))
				return l.MarkFailed(ctx, e, cause)
			},
			wantStatus: models.StatusFailed,
			check: func(t *testing.T, e *models.LedgerEntry) {
				assert.Equal(t, "failed to write entity: disk I/O error", e.ErrorMessage)
				assert.Contains(t, e.ErrorDetails, "disk I/O error")
				assert.Contains(t, e.ErrorDetails, "\n")
			},
		},
		{
			name: "conflict",
			mark: func(e *models.LedgerEntry) error {
				return l.MarkConflict(ctx, e, &models.ConflictInfo{
					Type:          models.ConflictTypeVersion,
					Details:       "client is behind",
					ClientVersion: 1,
					ServerVersion: 2,
					EntityID:      9,
					ServerData:    models.Document{"name": "John"},
				})
			},
			wantStatus: models.StatusConflict,
			check: func(t *testing.T, e *models.LedgerEntry) {
				assert.True(t, e.HadConflict)
				require.NotNil(t, e.ConflictType)
				assert.Equal(t, models.ConflictTypeVersion, *e.ConflictType)
				assert.Equal(t, int64(2), *e.ServerVersion)
				assert.Equal(t, models.Document{"name": "John"}, e.ServerData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := recordTestEntry(t, l, session, uuid.New().String())
			require.NoError(t, tt.mark(entry))

			stored, err := store.GetEntry(ctx, "tenant-1", entry.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.True(t, stored.Status.IsTerminal())
			require.NotNil(t, stored.CompletedAt)
			require.NotNil(t, stored.DurationMs)
			assert.GreaterOrEqual(t, *stored.DurationMs, int64(0))
			tt.check(t, stored)
		})
	}

	t.Run("partial session", func(t *testing.T) {
		require.NoError(t, l.MarkPartial(ctx, session))
		stored, err := store.GetEntry(ctx, "tenant-1", session.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPartial, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
	})
}

func TestLedger_RetryTracking(t *testing.T) {
	ctx := context.Background()
	l, _ := setupTestLedger(t)
	syncID := uuid.New().String()

	first := recordTestEntry(t, l, openTestSession(t, l, nil), syncID)
	require.NoError(t, l.MarkFailed(ctx, first, errors.New("timeout")))

	second := recordTestEntry(t, l, openTestSession(t, l, nil), syncID)
	assert.Equal(t, 1, second.RetryCount)
	assert.NotNil(t, second.LastRetryAt)
	require.NoError(t, l.MarkFailed(ctx, second, errors.New("timeout")))

	third := recordTestEntry(t, l, openTestSession(t, l, nil), syncID)
	assert.Equal(t, 2, third.RetryCount)
	require.NoError(t, l.MarkSuccess(ctx, third, nil))

	fourth := recordTestEntry(t, l, openTestSession(t, l, nil), syncID)
	assert.Zero(t, fourth.RetryCount)
	assert.Nil(t, fourth.LastRetryAt)
}

func TestLedger_Resolve(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)

	entry := recordTestEntry(t, l, openTestSession(t, l, nil), uuid.New().String())
	require.NoError(t, l.MarkConflict(ctx, entry, &models.ConflictInfo{Type: models.ConflictTypeVersion, ServerVersion: 2}))

	res := Resolution{
		Strategy:   models.StrategyClientWins,
		Version:    3,
		Data:       models.Document{"name": "Jane"},
		ResolvedBy: "user-1",
	}

	// Без захвата разрешение не проходит
	assert.ErrorIs(t, l.Resolve(ctx, entry.Clone(), res), storage.ErrEntryNotConflict)

	require.NoError(t, l.ClaimConflict(ctx, entry))
	assert.Equal(t, models.StatusInProgress, entry.Status)
	require.NoError(t, l.Resolve(ctx, entry, res))
	assert.Equal(t, models.StatusSuccess, entry.Status)
	assert.True(t, entry.IsResolved())

	stored, err := store.GetEntry(ctx, "tenant-1", entry.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsResolved())
	assert.Equal(t, int64(3), *stored.ResolvedVersion)
	assert.Equal(t, "user-1", *stored.ResolvedBy)

	// Повторное закрытие не проходит guard по статусу
	stale := stored.Clone()
	stale.Status = models.StatusInProgress
	err = l.Resolve(ctx, stale, res)
	assert.ErrorIs(t, err, storage.ErrEntryNotConflict)
	assert.Equal(t, models.StatusInProgress, stale.Status)

	assert.ErrorIs(t, l.ClaimConflict(ctx, stored.Clone()), storage.ErrEntryStatusChanged)
}

func TestLedger_ClaimConflict(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)

	entry := recordTestEntry(t, l, openTestSession(t, l, nil), uuid.New().String())
	require.NoError(t, l.MarkConflict(ctx, entry, &models.ConflictInfo{Type: models.ConflictTypeVersion, ServerVersion: 2}))

	first := entry.Clone()
	second := entry.Clone()
	require.NoError(t, l.ClaimConflict(ctx, first))

	// Второй захват проигрывает
	err := l.ClaimConflict(ctx, second)
	assert.ErrorIs(t, err, storage.ErrEntryStatusChanged)
	assert.Equal(t, models.StatusConflict, second.Status)

	require.NoError(t, l.ReleaseConflict(ctx, first))
	assert.Equal(t, models.StatusConflict, first.Status)

	stored, err := store.GetEntry(ctx, "tenant-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConflict, stored.Status)

	// После освобождения запись снова доступна
	require.NoError(t, l.ClaimConflict(ctx, second))
	require.NoError(t, l.ReleaseConflict(ctx, second))
	assert.ErrorIs(t, l.ReleaseConflict(ctx, second), storage.ErrEntryStatusChanged)
}

func TestLedger_Queries(t *testing.T) {
	ctx := context.Background()
	l, _ := setupTestLedger(t)
	session := openTestSession(t, l, nil)
	syncID := uuid.New().String()

	failed := recordTestEntry(t, l, session, uuid.New().String())
	require.NoError(t, l.MarkFailed(ctx, failed, errors.New("boom")))

	conflict := recordTestEntry(t, l, session, syncID)
	require.NoError(t, l.MarkConflict(ctx, conflict, &models.ConflictInfo{Type: models.ConflictTypeData}))

	ok := recordTestEntry(t, l, session, syncID)
	require.NoError(t, l.MarkSuccess(ctx, ok, nil))
	require.NoError(t, l.MarkPartial(ctx, session))

	failures, err := l.RecentFailures(ctx, "tenant-1", time.Hour)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, failed.ID, failures[0].ID)

	conflicts, total, err := l.UnresolvedConflicts(ctx, "tenant-1", session.UserID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, conflicts, 1)
	assert.Equal(t, conflict.ID, conflicts[0].ID)

	other := "user-2"
	_, total, err = l.UnresolvedConflicts(ctx, "tenant-1", &other, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	history, err := l.EntriesForEntity(ctx, "tenant-1", models.EntityTypePatient, syncID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	stats, err := l.Stats(ctx, "tenant-1", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalEntries)
	assert.Equal(t, int64(1), stats.ConflictCount)

	_, err = l.Stats(ctx, "tenant-1", time.Now(), time.Now().Add(-time.Hour))
	assert.Error(t, err)
}

func TestLedger_Cleanup(t *testing.T) {
	ctx := context.Background()
	l, store := setupTestLedger(t)
	session := openTestSession(t, l, nil)

	ok := recordTestEntry(t, l, session, uuid.New().String())
	require.NoError(t, l.MarkSuccess(ctx, ok, nil))
	conflict := recordTestEntry(t, l, session, uuid.New().String())
	require.NoError(t, l.MarkConflict(ctx, conflict, &models.ConflictInfo{Type: models.ConflictTypeVersion}))
	failed := recordTestEntry(t, l, session, uuid.New().String())
	require.NoError(t, l.MarkFailed(ctx, failed, errors.New("boom")))
	require.NoError(t, l.MarkSuccess(ctx, session, nil))

	// Внутри окна ничего не удаляется
	deleted, err := l.Cleanup(ctx, DefaultRetention)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// Сдвигаем часы за пределы окна
	l.now = func() time.Time { return time.Now().UTC().Add(31 * 24 * time.Hour) }
	deleted, err = l.Cleanup(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = store.GetEntry(ctx, "tenant-1", ok.ID)
	assert.ErrorIs(t, err, storage.ErrEntryNotFound)
	_, err = store.GetEntry(ctx, "tenant-1", conflict.ID)
	assert.NoError(t, err)
	_, err = store.GetEntry(ctx, "tenant-1", failed.ID)
	assert.NoError(t, err)
}
