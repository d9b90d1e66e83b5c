package models

import "time"

// SyncType направление синхронизации
type SyncType string

const (
	SyncTypePull               SyncType = "pull"
	SyncTypePush               SyncType = "push"
	SyncTypeBidirectional      SyncType = "bidirectional"
	SyncTypeConflictResolution SyncType = "conflict_resolution"
)

// Trigger источник запуска синхронизации
type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerAutomatic Trigger = "automatic"
	TriggerScheduled Trigger = "scheduled"
	TriggerConflict  Trigger = "conflict"
)

// Operation операция над сущностью
type Operation string

const (
	OperationCreate   Operation = "create"
	OperationUpdate   Operation = "update"
	OperationDelete   Operation = "delete"
	OperationConflict Operation = "conflict"
)

// SyncStatus статус записи журнала
type SyncStatus string

const (
	StatusPending    SyncStatus = "pending"
	StatusInProgress SyncStatus = "in_progress"
	StatusSuccess    SyncStatus = "success"
	StatusFailed     SyncStatus = "failed"
	StatusConflict   SyncStatus = "conflict"
	StatusPartial    SyncStatus = "partial"
)

// IsTerminal reports whether no further automatic transition is expected.
// A conflict is terminal until an explicit resolution call.
func (s SyncStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusConflict, StatusPartial:
		return true
	default:
		return false
	}
}

// ConflictType вид обнаруженного расхождения
type ConflictType string

const (
	ConflictTypeVersion   ConflictType = "version"
	ConflictTypeTimestamp ConflictType = "timestamp"
	ConflictTypeData      ConflictType = "data"
	ConflictTypeDeletion  ConflictType = "deletion"
)

// ResolutionStrategy политика закрытия конфликта
type ResolutionStrategy string

const (
	StrategyClientWins ResolutionStrategy = "client_wins"
	StrategyServerWins ResolutionStrategy = "server_wins"
	StrategyMerge      ResolutionStrategy = "merge"
	StrategyManual     ResolutionStrategy = "manual"
)

// SessionEntityType marks the per-session row of the ledger.
const SessionEntityType = "*"

// LedgerEntry is one attempted synchronization of one entity within a sync
// session. The session itself is recorded as an entry with EntityType "*".
type LedgerEntry struct {
	StartedAt          time.Time           `json:"started_at"`
	ResolvedData       Document            `json:"resolved_data,omitempty"`
	ServerData         Document            `json:"server_data,omitempty"`
	ClientData         Document            `json:"client_data,omitempty"`
	Metadata           Document            `json:"metadata,omitempty"`
	CompletedAt        *time.Time          `json:"completed_at,omitempty"`
	LastRetryAt        *time.Time          `json:"last_retry_at,omitempty"`
	ResolvedAt         *time.Time          `json:"resolved_at,omitempty"`
	UserID             *string             `json:"user_id,omitempty"`
	EntityID           *int64              `json:"entity_id,omitempty"`
	ClientVersion      *int64              `json:"client_version,omitempty"`
	ServerVersion      *int64              `json:"server_version,omitempty"`
	ResolvedVersion    *int64              `json:"resolved_version,omitempty"`
	ConflictType       *ConflictType       `json:"conflict_type,omitempty"`
	ResolutionStrategy *ResolutionStrategy `json:"resolution_strategy,omitempty"`
	ResolvedBy         *string             `json:"resolved_by,omitempty"`
	DurationMs         *int64              `json:"duration_ms,omitempty"`
	BatchID            *string             `json:"batch_id,omitempty"`
	BatchSize          *int                `json:"batch_size,omitempty"`
	BatchPosition      *int                `json:"batch_position,omitempty"`
	ID                 string              `json:"id"`
	SessionID          string              `json:"session_id"`
	TenantID           string              `json:"tenant_id"`
	SyncType           SyncType            `json:"sync_type"`
	Trigger            Trigger             `json:"trigger"`
	EntityType         string              `json:"entity_type"`
	EntitySyncID       string              `json:"entity_sync_id,omitempty"`
	Operation          Operation           `json:"operation,omitempty"`
	ConflictDetails    string              `json:"conflict_details,omitempty"`
	Status             SyncStatus          `json:"status"`
	ErrorMessage       string              `json:"error_message,omitempty"`
	ErrorDetails       string              `json:"error_details,omitempty"`
	PayloadSize        int64               `json:"payload_size"`
	RetryCount         int                 `json:"retry_count"`
	HadConflict        bool                `json:"had_conflict"`
	BatchComplete      bool                `json:"batch_complete"`
}

// IsSession reports whether the entry is the session-level row.
func (e *LedgerEntry) IsSession() bool {
	return e.EntityType == SessionEntityType
}

// IsResolved reports whether a conflict entry has been closed by a resolution.
func (e *LedgerEntry) IsResolved() bool {
	return e.HadConflict && e.ResolvedAt != nil && e.Status == StatusSuccess
}

// LedgerStats aggregated ledger metrics over a time window.
type LedgerStats struct {
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	TotalEntries       int64     `json:"total_entries"`
	SuccessCount       int64     `json:"success_count"`
	FailedCount        int64     `json:"failed_count"`
	ConflictCount      int64     `json:"conflict_count"`
	ResolvedCount      int64     `json:"resolved_count"`
	SuccessRate        float64   `json:"success_rate"`
	ConflictRate       float64   `json:"conflict_rate"`
	AvgDurationMs      float64   `json:"avg_duration_ms"`
	AvgPayloadSize     float64   `json:"avg_payload_size"`
	TotalPayloadSize   int64     `json:"total_payload_size"`
	DistinctSessions   int64     `json:"distinct_sessions"`
	DistinctEntityKeys int64     `json:"distinct_entities"`
}

// Clone returns a copy of the entry. Documents are deep-copied,
// pointer fields are shared.
func (e *LedgerEntry) Clone() *LedgerEntry {
	if e == nil {
		return nil
	}
	clone := *e
	clone.ClientData = e.ClientData.Clone()
	clone.ServerData = e.ServerData.Clone()
	clone.ResolvedData = e.ResolvedData.Clone()
	clone.Metadata = e.Metadata.Clone()
	return &clone
}
