package storage

import (
	"context"

	"github.com/iudanet/medsync/internal/models"
)

// CursorStorage defines interface for sync cursor persistence.
// The cursor belongs to the user's identity record of a tenant.
type CursorStorage interface {
	// GetCursor retrieves the last successful pull timestamp
	// Returns ErrCursorNotFound if user never pulled
	GetCursor(ctx context.Context, tenantID, userID string) (*models.SyncCursor, error)

	// SaveCursor creates or replaces cursor
	SaveCursor(ctx context.Context, cursor *models.SyncCursor) error
}

// Storage is the full persistence surface a backend provides.
type Storage interface {
	LedgerStorage
	EntityStorage
	CursorStorage

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error

	// Close releases underlying connections
	Close() error
}
