package sync

import (
	"errors"

	"github.com/iudanet/medsync/internal/server/adapter"
)

var (
	// ErrInvalidRequest is returned for malformed sync requests
	ErrInvalidRequest = errors.New("invalid sync request")
	// ErrUnknownEntityType is returned when a requested type has no adapter
	ErrUnknownEntityType = adapter.ErrUnknownEntityType
	// ErrConflictNotFound is returned when conflict entry doesn't exist for the tenant
	ErrConflictNotFound = errors.New("conflict not found")
	// ErrConflictForbidden is returned when conflict was raised for another user
	ErrConflictForbidden = errors.New("conflict belongs to another user")
	// ErrNotConflict is returned when ledger entry is not in conflict status
	ErrNotConflict = errors.New("ledger entry is not a conflict")
	// ErrInvalidStrategy is returned for unsupported resolution strategies
	ErrInvalidStrategy = errors.New("invalid resolution strategy")
	// ErrMergeDataRequired is returned when merge is requested without data
	ErrMergeDataRequired = errors.New("merge resolution requires resolved data")
	// ErrResolutionRace is returned when entity changed between read and write
	ErrResolutionRace = errors.New("entity changed during resolution, retry")
)
