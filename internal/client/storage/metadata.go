package storage

import (
	"context"
	"time"
)

// KeyInfo параметры производного ключа шифрования кэша
type KeyInfo struct {
	Salt     []byte `json:"salt"`
	Verifier string `json:"verifier"`
}

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSync saves the server timestamp returned by the last successful pull
	SaveLastSync(ctx context.Context, ts time.Time) error

	// GetLastSync returns nil if no sync has been performed yet
	GetLastSync(ctx context.Context) (*time.Time, error)

	// SaveKeyInfo stores the salt and verifier of the encryption key
	SaveKeyInfo(ctx context.Context, info *KeyInfo) error

	// GetKeyInfo returns ErrKeyNotFound on a fresh database
	GetKeyInfo(ctx context.Context) (*KeyInfo, error)
}
