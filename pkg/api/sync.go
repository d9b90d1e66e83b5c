package api

import "time"

// Change представляет одно клиентское изменение в push
type Change struct {
	Data       map[string]any `json:"data,omitempty"`
	EntityType string         `json:"entityType"`
	SyncID     string         `json:"syncId"`
	Operation  string         `json:"operation"`
	Version    int64          `json:"version"`
}

// Entity представляет серверное состояние сущности в pull
type Entity struct {
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Data       map[string]any `json:"data,omitempty"`
	EntityType string         `json:"entityType"`
	SyncID     string         `json:"syncId"`
	ID         int64          `json:"id"`
	Version    int64          `json:"version"`
	Deleted    bool           `json:"deleted"`
}

// Batch описывает положение запроса в многочастной загрузке
type Batch struct {
	ID       string `json:"id"`
	Size     int    `json:"size"`
	Offset   int    `json:"offset"`
	Complete bool   `json:"complete"`
}

// PullRequest запрос изменений с сервера.
// Пустой LastSync означает полную синхронизацию.
type PullRequest struct {
	LastSync    *time.Time `json:"lastSync,omitempty"`
	EntityTypes []string   `json:"entityTypes,omitempty"`
}

// PullResponse изменения с сервера и курсор для следующего pull
type PullResponse struct {
	ServerTimestamp time.Time `json:"serverTimestamp"`
	SyncSessionID   string    `json:"syncSessionId"`
	Changes         []Entity  `json:"changes"`
	TotalItems      int       `json:"totalItems"`
	HasMore         bool      `json:"hasMore"`
}

// PushRequest изменения клиента в порядке их возникновения
type PushRequest struct {
	ClientTime *time.Time `json:"clientTime,omitempty"`
	Batch      *Batch     `json:"batch,omitempty"`
	Changes    []Change   `json:"changes"`
}

// ChangeResult итог обработки одного изменения
type ChangeResult struct {
	ServerData    map[string]any `json:"serverData,omitempty"`
	ConflictType  *string        `json:"conflictType,omitempty"`
	ServerVersion *int64         `json:"serverVersion,omitempty"`
	EntityType    string         `json:"entityType"`
	SyncID        string         `json:"syncId"`
	Status        string         `json:"status"`
	LedgerEntryID string         `json:"ledgerEntryId"`
	Error         string         `json:"error,omitempty"`
	Version       int64          `json:"version,omitempty"`
	EntityID      int64          `json:"entityId,omitempty"`
}

// PushResponse итоги push по каждому изменению
type PushResponse struct {
	SyncSessionID string         `json:"syncSessionId"`
	Results       []ChangeResult `json:"results"`
	Conflicts     []ChangeResult `json:"conflicts"`
	Processed     int            `json:"processed"`
	Successful    int            `json:"successful"`
	Failed        int            `json:"failed"`
}

// BidirectionalRequest pull и push одним запросом
type BidirectionalRequest struct {
	LastSync    *time.Time `json:"lastSync,omitempty"`
	ClientTime  *time.Time `json:"clientTime,omitempty"`
	Batch       *Batch     `json:"batch,omitempty"`
	EntityTypes []string   `json:"entityTypes,omitempty"`
	Changes     []Change   `json:"changes"`
}

// BidirectionalResponse результаты обеих фаз
type BidirectionalResponse struct {
	Pull           *PullResponse `json:"pull"`
	Push           *PushResponse `json:"push"`
	TotalConflicts int           `json:"totalConflicts"`
}
