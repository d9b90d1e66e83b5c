package storage

import "errors"

// Common client storage errors
var (
	// ErrRecordNotFound indicates that the entity is not in the local cache
	ErrRecordNotFound = errors.New("record not found")

	// ErrConflictNotFound indicates that no local conflict has the given id
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrKeyNotFound indicates that the local encryption key was never set up
	ErrKeyNotFound = errors.New("encryption key not initialized")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
