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

var (
	keyLastSync = []byte("last_sync")
	keyKeyInfo  = []byte("key_info")
)

// SaveLastSync saves the server timestamp of the last successful pull
func (s *Storage) SaveLastSync(ctx context.Context, ts time.Time) error {
	return s.update(bucketMetadata, func(b *bbolt.Bucket) error {
		// Наносекунды: курсор сервера имеет ту же точность
		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(ts.UnixNano()))

		if err := b.Put(keyLastSync, value); err != nil {
			return fmt.Errorf("failed to save last sync: %w", err)
		}
		return nil
	})
}

// GetLastSync returns nil if no sync has been performed yet
func (s *Storage) GetLastSync(ctx context.Context) (*time.Time, error) {
	var ts *time.Time

	err := s.view(bucketMetadata, func(b *bbolt.Bucket) error {
		value := b.Get(keyLastSync)
		if value == nil {
			return nil
		}
		t := time.Unix(0, int64(binary.BigEndian.Uint64(value))).UTC()
		ts = &t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync: %w", err)
	}

	return ts, nil
}

// SaveKeyInfo stores encryption key parameters
func (s *Storage) SaveKeyInfo(ctx context.Context, info *storage.KeyInfo) error {
	return s.update(bucketMetadata, func(b *bbolt.Bucket) error {
		return putJSON(b, keyKeyInfo, info)
	})
}

// GetKeyInfo returns storage.ErrKeyNotFound before the first unlock
func (s *Storage) GetKeyInfo(ctx context.Context) (*storage.KeyInfo, error) {
	var info *storage.KeyInfo

	err := s.view(bucketMetadata, func(b *bbolt.Bucket) error {
		data := b.Get(keyKeyInfo)
		if data == nil {
			return storage.ErrKeyNotFound
		}
		info = &storage.KeyInfo{}
		if err := json.Unmarshal(data, info); err != nil {
			return fmt.Errorf("failed to unmarshal key info: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}
