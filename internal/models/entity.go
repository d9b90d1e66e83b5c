package models

import "time"

// Entity представляет синхронизируемую сущность в центральном хранилище.
// Каждая сущность имеет стабильный SyncID (UUID клиента) и версию,
// которая увеличивается ровно на 1 при каждой зафиксированной записи.
type Entity struct {
	CreatedAt  time.Time `json:"created_at"` // CreatedAt время создания на сервере
	UpdatedAt  time.Time `json:"updated_at"` // UpdatedAt время последней зафиксированной записи
	Data       Document  `json:"data"`       // Data payload сущности
	TenantID   string    `json:"tenant_id"`  // TenantID арендатор-владелец
	EntityType string    `json:"entity_type"`
	SyncID     string    `json:"sync_id"` // SyncID клиентский UUID, не переиспользуется
	ID         int64     `json:"id"`      // ID первичный ключ хранилища
	Version    int64     `json:"version"` // Version монотонно растущая версия, начиная с 1
	Deleted    bool      `json:"deleted"` // Deleted tombstone (soft delete)
}

// Entity types registered by default for the healthcare records platform.
const (
	EntityTypePatient     = "patient"
	EntityTypeEncounter   = "encounter"
	EntityTypeObservation = "observation"
	EntityTypeMedication  = "medication"
	EntityTypeAllergy     = "allergy"
	EntityTypeAppointment = "appointment"
	EntityTypeDocument    = "document"
)

// DefaultEntityTypes returns the entity types a fresh deployment syncs.
func DefaultEntityTypes() []string {
	return []string{
		EntityTypePatient,
		EntityTypeEncounter,
		EntityTypeObservation,
		EntityTypeMedication,
		EntityTypeAllergy,
		EntityTypeAppointment,
		EntityTypeDocument,
	}
}

// Clone создает глубокую копию сущности
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Data = e.Data.Clone()
	return &clone
}
