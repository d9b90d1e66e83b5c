package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/medsync/internal/client/storage"
)

// seqKey big-endian ключ: порядок курсора совпадает с порядком Seq
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// Enqueue adds a change to the tail of the outbox
func (s *Storage) Enqueue(ctx context.Context, change *storage.PendingChange) error {
	return s.update(bucketOutbox, func(b *bbolt.Bucket) error {
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		change.Seq = seq
		if change.QueuedAt.IsZero() {
			change.QueuedAt = time.Now().UTC()
		}
		return putJSON(b, seqKey(seq), change)
	})
}

// ListPending returns queued changes oldest first
func (s *Storage) ListPending(ctx context.Context) ([]*storage.PendingChange, error) {
	var changes []*storage.PendingChange

	err := s.view(bucketOutbox, func(b *bbolt.Bucket) error {
		return b.ForEach(func(_, v []byte) error {
			var change storage.PendingChange
			if err := json.Unmarshal(v, &change); err != nil {
				return fmt.Errorf("failed to unmarshal pending change: %w", err)
			}
			changes = append(changes, &change)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return changes, nil
}

// RemovePending deletes acknowledged changes
func (s *Storage) RemovePending(ctx context.Context, seqs ...uint64) error {
	if len(seqs) == 0 {
		return nil
	}
	return s.update(bucketOutbox, func(b *bbolt.Bucket) error {
		for _, seq := range seqs {
			if err := b.Delete(seqKey(seq)); err != nil {
				return fmt.Errorf("failed to remove pending change %d: %w", seq, err)
			}
		}
		return nil
	})
}

// CountPending returns the number of queued changes
func (s *Storage) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.view(bucketOutbox, func(b *bbolt.Bucket) error {
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}
