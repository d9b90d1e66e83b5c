package storage

import (
	"context"
	"time"
)

// Conflict конфликт, полученный в ответ на push и ожидающий решения.
// ID совпадает с идентификатором записи журнала на сервере.
type Conflict struct {
	DetectedAt    time.Time `json:"detected_at"`
	ClientData    []byte    `json:"client_data,omitempty"`
	ServerData    []byte    `json:"server_data,omitempty"`
	ID            string    `json:"id"`
	EntityType    string    `json:"entity_type"`
	SyncID        string    `json:"sync_id"`
	Operation     string    `json:"operation"`
	ConflictType  string    `json:"conflict_type"`
	ServerVersion int64     `json:"server_version"`
}

// ConflictStorage локальный список неразрешенных конфликтов
type ConflictStorage interface {
	SaveConflict(ctx context.Context, conflict *Conflict) error
	// GetConflict returns ErrConflictNotFound for unknown ids
	GetConflict(ctx context.Context, id string) (*Conflict, error)
	ListConflicts(ctx context.Context) ([]*Conflict, error)
	DeleteConflict(ctx context.Context, id string) error
}
