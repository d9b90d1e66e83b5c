package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/medsync/internal/client/storage"
	"github.com/iudanet/medsync/internal/client/sync"
	"github.com/iudanet/medsync/internal/models"
	"github.com/iudanet/medsync/pkg/api"
)

func TestQueue(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "patient.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`{"name":"From File"}`), 0600))

	tests := []struct {
		name    string
		args    []string
		inputs  []string
		want    sync.QueueRequest
		wantErr string
	}{
		{
			name: "create с данными из флага",
			args: []string{"create", "-type", "patient", "-data", `{"name":"Jane"}`},
			want: sync.QueueRequest{
				Data:       models.Document{"name": "Jane"},
				EntityType: "patient",
				Operation:  models.OperationCreate,
			},
		},
		{
			name: "update из файла",
			args: []string{"update", "-type", "patient", "-id", "id-1", "-file", dataFile},
			want: sync.QueueRequest{
				Data:       models.Document{"name": "From File"},
				EntityType: "patient",
				SyncID:     "id-1",
				Operation:  models.OperationUpdate,
			},
		},
		{
			name:   "данные спрашиваются интерактивно",
			args:   []string{"update", "-type", "visit", "-id", "id-2"},
			inputs: []string{`{"status":"done"}`},
			want: sync.QueueRequest{
				Data:       models.Document{"status": "done"},
				EntityType: "visit",
				SyncID:     "id-2",
				Operation:  models.OperationUpdate,
			},
		},
		{
			name: "delete без данных",
			args: []string{"delete", "-type", "patient", "-id", "id-3"},
			want: sync.QueueRequest{
				EntityType: "patient",
				SyncID:     "id-3",
				Operation:  models.OperationDelete,
			},
		},
		{
			name:    "нет операции",
			args:    nil,
			wantErr: "missing operation",
		},
		{
			name:    "неизвестная операция",
			args:    []string{"upsert", "-type", "patient"},
			wantErr: "unknown operation",
		},
		{
			name:    "нет типа",
			args:    []string{"create", "-data", `{}`},
			wantErr: "-type is required",
		},
		{
			name:    "update без id",
			args:    []string{"update", "-type", "patient", "-data", `{}`},
			wantErr: "-id is required",
		},
		{
			name:    "данные не объект",
			args:    []string{"create", "-type", "patient", "-data", `[1,2]`},
			wantErr: "JSON object",
		},
		{
			name:    "data и file одновременно",
			args:    []string{"create", "-type", "patient", "-data", `{}`, "-file", dataFile},
			wantErr: "either -data or -file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			svc := &sync.ServiceMock{
				QueueFunc: func(ctx context.Context, req sync.QueueRequest) (*storage.PendingChange, error) {
					syncID := req.SyncID
					if syncID == "" {
						syncID = "generated-id"
					}
					return &storage.PendingChange{
						EntityType: req.EntityType,
						SyncID:     syncID,
						Operation:  string(req.Operation),
						Seq:        7,
					}, nil
				},
			}
			c := New(newTestIO(&out, tt.inputs...), svc, Passphrases{})

			err := c.runQueue(t.Context(), tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, svc.QueueCalls())
				return
			}

			require.NoError(t, err)
			require.Len(t, svc.QueueCalls(), 1)
			assert.Equal(t, tt.want, svc.QueueCalls()[0].Req)
			assert.Contains(t, out.String(), "✓ Queued "+string(tt.want.Operation))
			assert.Contains(t, out.String(), "(#7)")
		})
	}
}

func TestSync(t *testing.T) {
	t.Run("успешная синхронизация с конфликтами", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{
			SyncFunc: func(ctx context.Context, trigger models.Trigger) (*sync.SyncResult, error) {
				return &sync.SyncResult{
					SessionID: "session-1",
					Errors:    []string{"patient id-9: validation failed"},
					Pushed:    4,
					Succeeded: 2,
					Conflicts: 1,
					Failed:    1,
					Pulled:    3,
					Applied:   3,
				}, nil
			},
		}
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runSync(t.Context(), []string{"-trigger", "scheduled"}))
		require.Len(t, svc.SyncCalls(), 1)
		assert.Equal(t, models.TriggerScheduled, svc.SyncCalls()[0].Trigger)

		output := out.String()
		assert.Contains(t, output, "session-1")
		assert.Contains(t, output, "1 conflict(s) detected")
		assert.Contains(t, output, "patient id-9: validation failed")
	})

	t.Run("по умолчанию ручной запуск", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{
			SyncFunc: func(ctx context.Context, trigger models.Trigger) (*sync.SyncResult, error) {
				return &sync.SyncResult{}, nil
			},
		}
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runSync(t.Context(), nil))
		assert.Equal(t, models.TriggerManual, svc.SyncCalls()[0].Trigger)
		assert.NotContains(t, out.String(), "conflict(s) detected")
	})

	t.Run("неизвестный trigger", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{}
		c := New(newTestIO(&out), svc, Passphrases{})

		assert.Error(t, c.runSync(t.Context(), []string{"-trigger", "conflict"}))
		assert.Empty(t, svc.SyncCalls())
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{
			SyncFunc: func(ctx context.Context, trigger models.Trigger) (*sync.SyncResult, error) {
				return nil, errors.New("connection refused")
			},
		}
		c := New(newTestIO(&out), svc, Passphrases{})

		err := c.runSync(t.Context(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "synchronization failed")
	})
}

func TestConflicts(t *testing.T) {
	conflicts := []*sync.Conflict{
		{
			DetectedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			ClientData:    models.Document{"name": "Local"},
			ServerData:    models.Document{"name": "Server"},
			ID:            "conflict-1",
			EntityType:    "patient",
			SyncID:        "id-1",
			Operation:     "update",
			ConflictType:  "version",
			ServerVersion: 3,
		},
	}

	t.Run("локальный список", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{
			ConflictsFunc: func(ctx context.Context) ([]*sync.Conflict, error) {
				return conflicts, nil
			},
		}
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runConflicts(t.Context(), nil))
		assert.Empty(t, svc.RefreshConflictsCalls())

		output := out.String()
		assert.Contains(t, output, "conflict-1")
		assert.Contains(t, output, "version (update)")
		assert.Contains(t, output, `{"name":"Local"}`)
		assert.Contains(t, output, `{"name":"Server"}`)
	})

	t.Run("remote сначала загружает с сервера", func(t *testing.T) {
		var out bytes.Buffer
		svc := &sync.ServiceMock{
			RefreshConflictsFunc: func(ctx context.Context) (int, error) {
				return 0, nil
			},
			ConflictsFunc: func(ctx context.Context) ([]*sync.Conflict, error) {
				return nil, nil
			},
		}
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runConflicts(t.Context(), []string{"-remote"}))
		assert.Len(t, svc.RefreshConflictsCalls(), 1)
		assert.Contains(t, out.String(), "No unresolved conflicts")
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		result    *api.ResolveResult
		wantData  models.Document
		wantOut   string
		wantErr   string
		wantCalls int
	}{
		{
			name:      "server_wins",
			args:      []string{"-id", "conflict-1", "-strategy", "server_wins"},
			result:    &api.ResolveResult{ConflictID: "conflict-1", Success: true, ResolvedVersion: 3},
			wantOut:   "resolved with server_wins, version 3",
			wantCalls: 1,
		},
		{
			name:      "merge с данными",
			args:      []string{"-id", "conflict-1", "-strategy", "merge", "-data", `{"name":"Merged"}`},
			result:    &api.ResolveResult{ConflictID: "conflict-1", Success: true, ResolvedVersion: 4},
			wantData:  models.Document{"name": "Merged"},
			wantOut:   "resolved with merge, version 4",
			wantCalls: 1,
		},
		{
			name:      "уже разрешен",
			args:      []string{"-id", "conflict-1", "-strategy", "client_wins"},
			result:    &api.ResolveResult{ConflictID: "conflict-1", Success: true, AlreadyResolved: true},
			wantOut:   "already resolved",
			wantCalls: 1,
		},
		{
			name:    "нет id",
			args:    []string{"-strategy", "client_wins"},
			wantErr: "-id and -strategy are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			svc := &sync.ServiceMock{
				ResolveFunc: func(ctx context.Context, conflictID string, strategy models.ResolutionStrategy, data models.Document) (*api.ResolveResult, error) {
					return tt.result, nil
				},
			}
			c := New(newTestIO(&out), svc, Passphrases{})

			err := c.runResolve(t.Context(), tt.args)
			require.Len(t, svc.ResolveCalls(), tt.wantCalls)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "conflict-1", svc.ResolveCalls()[0].ConflictID)
			assert.Equal(t, tt.wantData, svc.ResolveCalls()[0].Data)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestStatus(t *testing.T) {
	lastSync := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  *sync.Status
		wantOut []string
	}{
		{
			name:    "есть изменения в очереди",
			status:  &sync.Status{LastSync: &lastSync, Pending: 2, Conflicts: 1, Cached: 10},
			wantOut: []string{"Pending sync: 2", "Conflicts:  1", "Cached:     10"},
		},
		{
			name:    "никогда не синхронизировался",
			status:  &sync.Status{},
			wantOut: []string{"Last sync:  never", "All local changes synchronized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			svc := &sync.ServiceMock{
				StatusFunc: func(ctx context.Context) (*sync.Status, error) {
					return tt.status, nil
				},
			}
			c := New(newTestIO(&out), svc, Passphrases{})

			require.NoError(t, c.runStatus(t.Context(), nil))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestShowAndList(t *testing.T) {
	records := []*sync.Record{
		{Data: models.Document{"name": "Jane"}, EntityType: "patient", SyncID: "id-1", Version: 2, Pending: 1},
		{EntityType: "patient", SyncID: "id-2", Version: 5, Deleted: true},
	}
	svc := &sync.ServiceMock{
		ShowFunc: func(ctx context.Context, entityType string, syncID string) (*sync.Record, error) {
			for _, r := range records {
				if r.EntityType == entityType && r.SyncID == syncID {
					return r, nil
				}
			}
			return nil, storage.ErrRecordNotFound
		},
		ListFunc: func(ctx context.Context, entityType string) ([]*sync.Record, error) {
			return records, nil
		},
	}

	t.Run("show печатает данные", func(t *testing.T) {
		var out bytes.Buffer
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runShow(t.Context(), []string{"-type", "patient", "-id", "id-1"}))
		assert.Contains(t, out.String(), "Version:  2")
		assert.Contains(t, out.String(), `"name": "Jane"`)
	})

	t.Run("show отсутствующей записи", func(t *testing.T) {
		var out bytes.Buffer
		c := New(newTestIO(&out), svc, Passphrases{})

		err := c.runShow(t.Context(), []string{"-type", "patient", "-id", "missing"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in the local cache")
	})

	t.Run("list скрывает удаленные", func(t *testing.T) {
		var out bytes.Buffer
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runList(t.Context(), []string{"-type", "patient"}))
		assert.Contains(t, out.String(), "id-1 v2 *")
		assert.NotContains(t, out.String(), "id-2")
		assert.Contains(t, out.String(), "Total: 1")
	})

	t.Run("list с удаленными", func(t *testing.T) {
		var out bytes.Buffer
		c := New(newTestIO(&out), svc, Passphrases{})

		require.NoError(t, c.runList(t.Context(), []string{"-deleted"}))
		assert.Contains(t, out.String(), "id-2 v5 (deleted)")
		assert.Contains(t, out.String(), "Total: 2")
	})
}

func TestHistory(t *testing.T) {
	serverVersion := int64(3)
	var out bytes.Buffer
	svc := &sync.ServiceMock{
		HistoryFunc: func(ctx context.Context, entityType string, syncID string) (*api.EntityHistory, error) {
			return &api.EntityHistory{
				EntityType: entityType,
				SyncID:     syncID,
				Entries: []api.LedgerEntry{
					{
						StartedAt:          time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
						ServerVersion:      &serverVersion,
						ConflictType:       string(models.ConflictTypeVersion),
						ResolutionStrategy: string(models.StrategyServerWins),
						SyncType:           string(models.SyncTypePush),
						Operation:          string(models.OperationUpdate),
						Status:             string(models.StatusConflict),
					},
				},
			}, nil
		},
	}
	c := New(newTestIO(&out), svc, Passphrases{})

	require.NoError(t, c.runHistory(t.Context(), []string{"-type", "patient", "-id", "id-1"}))
	assert.Contains(t, out.String(), "History of patient id-1")
	assert.Contains(t, out.String(), "v3 conflict=version resolved=server_wins")

	assert.Error(t, c.runHistory(t.Context(), []string{"-type", "patient"}))
}
