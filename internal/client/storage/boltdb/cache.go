package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/medsync/internal/client/storage"
)

// cacheKey "entityType/syncID": записи одного типа идут подряд
func cacheKey(entityType, syncID string) []byte {
	return []byte(entityType + "/" + syncID)
}

// SaveRecord stores the record unless the cached copy has a higher version.
// Равная версия перезаписывается: pull доставляет изменения at-least-once.
func (s *Storage) SaveRecord(ctx context.Context, record *storage.Record) (bool, error) {
	var written bool

	err := s.update(bucketCache, func(b *bbolt.Bucket) error {
		key := cacheKey(record.EntityType, record.SyncID)

		if data := b.Get(key); data != nil {
			var existing storage.Record
			if err := json.Unmarshal(data, &existing); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			if existing.Version > record.Version {
				return nil
			}
		}

		if err := putJSON(b, key, record); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return written, nil
}

// GetRecord retrieves a cached entity
func (s *Storage) GetRecord(ctx context.Context, entityType, syncID string) (*storage.Record, error) {
	var record *storage.Record

	err := s.view(bucketCache, func(b *bbolt.Bucket) error {
		data := b.Get(cacheKey(entityType, syncID))
		if data == nil {
			return storage.ErrRecordNotFound
		}
		record = &storage.Record{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords returns cached records ordered by type and sync id
func (s *Storage) ListRecords(ctx context.Context, entityType string) ([]*storage.Record, error) {
	var records []*storage.Record

	err := s.view(bucketCache, func(b *bbolt.Bucket) error {
		var prefix []byte
		if entityType != "" {
			prefix = []byte(entityType + "/")
		}

		c := b.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var record storage.Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}
