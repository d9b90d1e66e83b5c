package models

import "time"

// Change is one client-side modification submitted in a push.
// Version is the entity version the client last saw (0 for a fresh create).
type Change struct {
	Data       Document  `json:"data"`
	EntityType string    `json:"entity_type"`
	SyncID     string    `json:"sync_id"`
	Operation  Operation `json:"operation"`
	Version    int64     `json:"version"`
}

// ConflictInfo describes a detected divergence between a change and the server state.
type ConflictInfo struct {
	ServerData    Document     `json:"server_data,omitempty"`
	Type          ConflictType `json:"type"`
	Details       string       `json:"details"`
	ClientVersion int64        `json:"client_version"`
	ServerVersion int64        `json:"server_version"`
	EntityID      int64        `json:"entity_id,omitempty"`
}

// ChangeStatus итог обработки одного изменения
type ChangeStatus string

const (
	ChangeStatusSuccess  ChangeStatus = "success"
	ChangeStatusFailed   ChangeStatus = "failed"
	ChangeStatusConflict ChangeStatus = "conflict"
)

// ChangeResult is the per-change outcome of a push.
type ChangeResult struct {
	ServerData    Document      `json:"server_data,omitempty"`
	ConflictType  *ConflictType `json:"conflict_type,omitempty"`
	ServerVersion *int64        `json:"server_version,omitempty"`
	EntityType    string        `json:"entity_type"`
	SyncID        string        `json:"sync_id"`
	Status        ChangeStatus  `json:"status"`
	LedgerEntryID string        `json:"ledger_entry_id"`
	Error         string        `json:"error,omitempty"`
	Version       int64         `json:"version,omitempty"`
	EntityID      int64         `json:"entity_id,omitempty"`
}

// SyncCursor is the timestamp of the last successful pull of a user within a tenant.
// It is owned by the identity record and used as the lower bound of the next pull.
type SyncCursor struct {
	LastSyncAt time.Time `json:"last_sync_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
}
