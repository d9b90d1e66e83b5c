package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/client/storage"
)

func TestConflicts_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	conflict := &storage.Conflict{
		DetectedAt:    time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
		ID:            "entry-1",
		EntityType:    "patient",
		SyncID:        "p-1",
		Operation:     "update",
		ConflictType:  "version",
		ServerVersion: 4,
		ClientData:    []byte("client"),
		ServerData:    []byte("server"),
	}
	require.NoError(t, store.SaveConflict(ctx, conflict))

	got, err := store.GetConflict(ctx, "entry-1")
	require.NoError(t, err)
	assert.Equal(t, conflict, got)

	list, err := store.ListConflicts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.DeleteConflict(ctx, "entry-1"))
	assert.ErrorIs(t, store.DeleteConflict(ctx, "entry-1"), storage.ErrConflictNotFound)

	_, err = store.GetConflict(ctx, "entry-1")
	assert.ErrorIs(t, err, storage.ErrConflictNotFound)
}
