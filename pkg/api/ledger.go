package api

import "time"

// LedgerEntry запись журнала синхронизации для истории
type LedgerEntry struct {
	StartedAt          time.Time      `json:"startedAt"`
	CompletedAt        *time.Time     `json:"completedAt,omitempty"`
	ResolvedAt         *time.Time     `json:"resolvedAt,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	EntityID           *int64         `json:"entityId,omitempty"`
	ClientVersion      *int64         `json:"clientVersion,omitempty"`
	ServerVersion      *int64         `json:"serverVersion,omitempty"`
	ResolvedVersion    *int64         `json:"resolvedVersion,omitempty"`
	DurationMs         *int64         `json:"durationMs,omitempty"`
	BatchPosition      *int           `json:"batchPosition,omitempty"`
	UserID             string         `json:"userId,omitempty"`
	ConflictType       string         `json:"conflictType,omitempty"`
	ResolutionStrategy string         `json:"resolutionStrategy,omitempty"`
	ResolvedBy         string         `json:"resolvedBy,omitempty"`
	BatchID            string         `json:"batchId,omitempty"`
	ID                 string         `json:"id"`
	SyncSessionID      string         `json:"syncSessionId"`
	SyncType           string         `json:"syncType"`
	Trigger            string         `json:"trigger"`
	EntityType         string         `json:"entityType"`
	SyncID             string         `json:"syncId,omitempty"`
	Operation          string         `json:"operation,omitempty"`
	Status             string         `json:"status"`
	ErrorMessage       string         `json:"errorMessage,omitempty"`
	ConflictDetails    string         `json:"conflictDetails,omitempty"`
	PayloadSize        int64          `json:"payloadSize"`
	RetryCount         int            `json:"retryCount"`
	HadConflict        bool           `json:"hadConflict"`
}

// History страница записей журнала
type History struct {
	Entries    []LedgerEntry `json:"entries"`
	Pagination Pagination    `json:"pagination"`
}

// EntityHistory полный аудит одной сущности
type EntityHistory struct {
	EntityType string        `json:"entityType"`
	SyncID     string        `json:"syncId"`
	Entries    []LedgerEntry `json:"entries"`
}

// Stats агрегированные метрики журнала за окно [from, to)
type Stats struct {
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	TotalEntries     int64     `json:"totalEntries"`
	SuccessCount     int64     `json:"successCount"`
	FailedCount      int64     `json:"failedCount"`
	ConflictCount    int64     `json:"conflictCount"`
	ResolvedCount    int64     `json:"resolvedCount"`
	DistinctSessions int64     `json:"distinctSessions"`
	DistinctEntities int64     `json:"distinctEntities"`
	TotalPayloadSize int64     `json:"totalPayloadSize"`
	SuccessRate      float64   `json:"successRate"`
	ConflictRate     float64   `json:"conflictRate"`
	AvgDurationMs    float64   `json:"avgDurationMs"`
	AvgPayloadSize   float64   `json:"avgPayloadSize"`
}
