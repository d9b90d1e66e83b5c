package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/medsync/internal/client/storage"
)

// SaveConflict stores or replaces a conflict by id
func (s *Storage) SaveConflict(ctx context.Context, conflict *storage.Conflict) error {
	return s.update(bucketConflicts, func(b *bbolt.Bucket) error {
		return putJSON(b, []byte(conflict.ID), conflict)
	})
}

// GetConflict retrieves a conflict by id
func (s *Storage) GetConflict(ctx context.Context, id string) (*storage.Conflict, error) {
	var conflict *storage.Conflict

	err := s.view(bucketConflicts, func(b *bbolt.Bucket) error {
		data := b.Get([]byte(id))
		if data == nil {
			return storage.ErrConflictNotFound
		}
		conflict = &storage.Conflict{}
		if err := json.Unmarshal(data, conflict); err != nil {
			return fmt.Errorf("failed to unmarshal conflict: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return conflict, nil
}

// ListConflicts returns all unresolved conflicts
func (s *Storage) ListConflicts(ctx context.Context) ([]*storage.Conflict, error) {
	var conflicts []*storage.Conflict

	err := s.view(bucketConflicts, func(b *bbolt.Bucket) error {
		return b.ForEach(func(_, v []byte) error {
			var conflict storage.Conflict
			if err := json.Unmarshal(v, &conflict); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}
			conflicts = append(conflicts, &conflict)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return conflicts, nil
}

// DeleteConflict removes a conflict. Missing ids return ErrConflictNotFound.
func (s *Storage) DeleteConflict(ctx context.Context, id string) error {
	return s.update(bucketConflicts, func(b *bbolt.Bucket) error {
		if b.Get([]byte(id)) == nil {
			return storage.ErrConflictNotFound
		}
		return b.Delete([]byte(id))
	})
}
