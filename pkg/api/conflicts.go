package api

import "time"

// Conflict неразрешенный конфликт из журнала синхронизации
type Conflict struct {
	DetectedAt      time.Time      `json:"detectedAt"`
	ClientData      map[string]any `json:"clientData,omitempty"`
	ServerData      map[string]any `json:"serverData,omitempty"`
	ClientVersion   *int64         `json:"clientVersion,omitempty"`
	ServerVersion   *int64         `json:"serverVersion,omitempty"`
	EntityID        *int64         `json:"entityId,omitempty"`
	ConflictID      string         `json:"conflictId"`
	SyncSessionID   string         `json:"syncSessionId"`
	EntityType      string         `json:"entityType"`
	SyncID          string         `json:"syncId"`
	Operation       string         `json:"operation"`
	ConflictType    string         `json:"conflictType"`
	ConflictDetails string         `json:"conflictDetails,omitempty"`
}

// ConflictList страница неразрешенных конфликтов
type ConflictList struct {
	Conflicts  []Conflict `json:"conflicts"`
	Pagination Pagination `json:"pagination"`
}

// ResolveItem решение по одному конфликту
type ResolveItem struct {
	ResolvedData map[string]any `json:"resolvedData,omitempty"`
	ConflictID   string         `json:"conflictId"`
	Resolution   string         `json:"resolution"`
}

// ResolveRequest пакет решений по конфликтам
type ResolveRequest struct {
	Conflicts []ResolveItem `json:"conflicts"`
}

// ResolveResult итог разрешения одного конфликта
type ResolveResult struct {
	ResolvedData    map[string]any `json:"resolvedData,omitempty"`
	EntityID        *int64         `json:"entityId,omitempty"`
	ConflictID      string         `json:"conflictId"`
	Resolution      string         `json:"resolution,omitempty"`
	AuditSessionID  string         `json:"auditSessionId,omitempty"`
	Error           string         `json:"error,omitempty"`
	ResolvedVersion int64          `json:"resolvedVersion,omitempty"`
	Success         bool           `json:"success"`
	AlreadyResolved bool           `json:"alreadyResolved,omitempty"`
}

// ResolveResponse итоги пакета решений
type ResolveResponse struct {
	Results  []ResolveResult `json:"results"`
	Resolved int             `json:"resolved"`
	Failed   int             `json:"failed"`
}
