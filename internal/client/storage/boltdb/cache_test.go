package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/client/storage"
)

func TestCache_SaveRecordVersioning(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	record := func(version int64, data string) *storage.Record {
		return &storage.Record{
			UpdatedAt:  time.Now().UTC(),
			EntityType: "patient",
			SyncID:     "p-1",
			Version:    version,
			Data:       []byte(data),
		}
	}

	tests := []struct {
		record   *storage.Record
		name     string
		wantData string
		written  bool
	}{
		{name: "first write", record: record(2, "v2"), written: true, wantData: "v2"},
		{name: "same version redelivered", record: record(2, "v2-again"), written: true, wantData: "v2-again"},
		{name: "stale version ignored", record: record(1, "v1"), written: false, wantData: "v2-again"},
		{name: "newer version", record: record(3, "v3"), written: true, wantData: "v3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written, err := store.SaveRecord(ctx, tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.written, written)

			got, err := store.GetRecord(ctx, "patient", "p-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(got.Data))
		})
	}
}

func TestCache_GetRecordNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetRecord(context.Background(), "patient", "missing")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestCache_ListRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	for _, r := range []*storage.Record{
		{EntityType: "patient", SyncID: "b", Version: 1},
		{EntityType: "patient", SyncID: "a", Version: 1, Deleted: true},
		{EntityType: "encounter", SyncID: "c", Version: 1},
		// префикс "patient" не должен захватывать "patients"
		{EntityType: "patients", SyncID: "d", Version: 1},
	} {
		_, err := store.SaveRecord(ctx, r)
		require.NoError(t, err)
	}

	patients, err := store.ListRecords(ctx, "patient")
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "a", patients[0].SyncID)
	assert.True(t, patients[0].Deleted)
	assert.Equal(t, "b", patients[1].SyncID)

	all, err := store.ListRecords(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := store.ListRecords(ctx, "medication")
	require.NoError(t, err)
	assert.Empty(t, none)
}
