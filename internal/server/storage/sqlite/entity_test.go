package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/internal/server/storage"
)

func newTestEntity(tenantID string) *models.Entity {
	return &models.Entity{
		TenantID:   tenantID,
		EntityType: models.EntityTypePatient,
		SyncID:     uuid.New().String(),
		Data:       models.Document{"name": "Jane"},
	}
}

func TestEntityStorage_InsertEntity(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	entity := newTestEntity("tenant-1")
	require.NoError(t, s.InsertEntity(ctx, entity))
	assert.NotZero(t, entity.ID)
	assert.Equal(t, int64(1), entity.Version)
	assert.False(t, entity.UpdatedAt.IsZero())

	got, err := s.GetEntity(ctx, "tenant-1", models.EntityTypePatient, entity.SyncID)
	require.NoError(t, err)
	assert.Equal(t, entity, got)

	t.Run("duplicate sync id", func(t *testing.T) {
		dup := newTestEntity("tenant-1")
		dup.SyncID = entity.SyncID
		assert.ErrorIs(t, s.InsertEntity(ctx, dup), storage.ErrEntityExists)
	})

	t.Run("same sync id in another tenant", func(t *testing.T) {
		other := newTestEntity("tenant-2")
		other.SyncID = entity.SyncID
		assert.NoError(t, s.InsertEntity(ctx, other))
	})

	t.Run("same sync id with another type", func(t *testing.T) {
		other := newTestEntity("tenant-1")
		other.SyncID = entity.SyncID
		other.EntityType = models.EntityTypeEncounter
		assert.NoError(t, s.InsertEntity(ctx, other))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetEntity(ctx, "tenant-1", models.EntityTypePatient, uuid.New().String())
		assert.ErrorIs(t, err, storage.ErrEntityNotFound)
	})
}

func TestEntityStorage_UpdateEntity(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	entity := newTestEntity("tenant-1")
	require.NoError(t, s.InsertEntity(ctx, entity))

	tests := []struct {
		wantError       error
		name            string
		data            models.Document
		expectedVersion int64
		wantVersion     int64
		deleted         bool
	}{
		{
			name:            "matching version",
			data:            models.Document{"name": "Jane Doe"},
			expectedVersion: 1,
			wantVersion:     2,
		},
		{
			name:            "stale version",
			data:            models.Document{"name": "stale"},
			expectedVersion: 1,
			wantError:       storage.ErrVersionMismatch,
			wantVersion:     2,
		},
		{
			name:            "future version",
			data:            models.Document{"name": "future"},
			expectedVersion: 5,
			wantError:       storage.ErrVersionMismatch,
			wantVersion:     2,
		},
		{
			name:            "tombstone",
			data:            models.Document{"name": "Jane Doe"},
			expectedVersion: 2,
			deleted:         true,
			wantVersion:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := entity.Clone()
			update.Data = tt.data
			update.Deleted = tt.deleted

			err := s.UpdateEntity(ctx, update, tt.expectedVersion)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantVersion, update.Version)
				assert.Equal(t, entity.ID, update.ID)
			}

			got, err := s.GetEntity(ctx, "tenant-1", models.EntityTypePatient, entity.SyncID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.deleted, got.Deleted)
		})
	}

	t.Run("missing entity", func(t *testing.T) {
		missing := newTestEntity("tenant-1")
		assert.ErrorIs(t, s.UpdateEntity(ctx, missing, 1), storage.ErrEntityNotFound)
	})
}

func TestEntityStorage_ListEntitiesSince(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	var created []*models.Entity
	for i := 0; i < 3; i++ {
		entity := newTestEntity("tenant-1")
		require.NoError(t, s.InsertEntity(ctx, entity))
		created = append(created, entity)
		time.Sleep(time.Millisecond)
	}
	require.NoError(t, s.InsertEntity(ctx, newTestEntity("tenant-2")))

	all, err := s.ListEntitiesSince(ctx, "tenant-1", models.EntityTypePatient, nil, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range created {
		assert.Equal(t, created[i].SyncID, all[i].SyncID)
	}

	since := created[0].UpdatedAt
	later, err := s.ListEntitiesSince(ctx, "tenant-1", models.EntityTypePatient, &since, 100)
	require.NoError(t, err)
	require.Len(t, later, 2)
	assert.Equal(t, created[1].SyncID, later[0].SyncID)

	limited, err := s.ListEntitiesSince(ctx, "tenant-1", models.EntityTypePatient, nil, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	// Tombstones are part of the change feed
	tomb := created[0].Clone()
	tomb.Deleted = true
	require.NoError(t, s.UpdateEntity(ctx, tomb, 1))

	since = created[2].UpdatedAt
	changed, err := s.ListEntitiesSince(ctx, "tenant-1", models.EntityTypePatient, &since, 100)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.True(t, changed[0].Deleted)
	assert.Equal(t, int64(2), changed[0].Version)
}
