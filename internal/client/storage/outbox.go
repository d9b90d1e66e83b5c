package storage

import (
	"context"
	"time"
)

// PendingChange локальное изменение, ожидающее отправки на сервер.
// Data хранится зашифрованной, Seq задает порядок возникновения.
type PendingChange struct {
	QueuedAt   time.Time `json:"queued_at"`
	Data       []byte    `json:"data,omitempty"`
	EntityType string    `json:"entity_type"`
	SyncID     string    `json:"sync_id"`
	Operation  string    `json:"operation"`
	Seq        uint64    `json:"seq"`
}

// OutboxStorage очередь изменений, сделанных без связи с сервером
type OutboxStorage interface {
	// Enqueue присваивает изменению Seq и добавляет его в конец очереди
	Enqueue(ctx context.Context, change *PendingChange) error

	// ListPending returns queued changes in Seq order
	ListPending(ctx context.Context) ([]*PendingChange, error)

	// RemovePending deletes changes by Seq. Unknown Seq values are ignored.
	RemovePending(ctx context.Context, seqs ...uint64) error

	// CountPending returns the queue length
	CountPending(ctx context.Context) (int, error)
}
