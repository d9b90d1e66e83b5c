package storage

import (
	"context"
	"time"
)

// Record последнее известное серверное состояние сущности.
// Data зашифрована ключом клиента.
type Record struct {
	UpdatedAt  time.Time `json:"updated_at"`
	Data       []byte    `json:"data,omitempty"`
	EntityType string    `json:"entity_type"`
	SyncID     string    `json:"sync_id"`
	Version    int64     `json:"version"`
	Deleted    bool      `json:"deleted"`
}

// CacheStorage локальная копия серверных сущностей
type CacheStorage interface {
	// SaveRecord stores the record unless the cached version is newer.
	// Returns true when the record was written.
	SaveRecord(ctx context.Context, record *Record) (bool, error)

	// GetRecord returns ErrRecordNotFound if the entity was never cached
	GetRecord(ctx context.Context, entityType, syncID string) (*Record, error)

	// ListRecords returns cached records of one type, tombstones included.
	// An empty entityType lists every type.
	ListRecords(ctx context.Context, entityType string) ([]*Record, error)
}
