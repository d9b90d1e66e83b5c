package storage

import "errors"

// Common storage errors
var (
	// ErrEntryNotFound indicates that ledger entry was not found for the tenant
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrEntryNotConflict indicates that ledger entry is not in conflict status
	// (already resolved or never conflicted)
	ErrEntryNotConflict = errors.New("ledger entry is not in conflict status")

	// ErrEntryStatusChanged indicates that a guarded status transition lost:
	// the entry is no longer in the expected status
	ErrEntryStatusChanged = errors.New("ledger entry status changed")

	// ErrEntityNotFound indicates that entity with the sync id does not exist
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityExists indicates that entity with the sync id already exists
	ErrEntityExists = errors.New("entity already exists")

	// ErrVersionMismatch indicates that optimistic lock failed:
	// stored version differs from the expected one
	ErrVersionMismatch = errors.New("entity version mismatch")

	// ErrCursorNotFound indicates that user has never completed a pull
	ErrCursorNotFound = errors.New("sync cursor not found")
)
