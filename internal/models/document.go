package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document представляет непрозрачный структурированный payload сущности.
// Ядро синхронизации не зависит от формы полей: документ только
// сериализуется, сравнивается по размеру и передается дальше.
type Document map[string]any

// Size возвращает размер сериализованного документа в байтах.
// Пустой документ имеет размер 0.
func (d Document) Size() int64 {
	if len(d) == 0 {
		return 0
	}
	data, err := json.Marshal(d)
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// Clone создает глубокую копию документа через JSON round-trip.
// Вложенные map/slice не разделяются между копиями.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	var clone Document
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil
	}
	return clone
}

// Value implements driver.Valuer. A nil document is stored as SQL NULL.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for TEXT/BLOB/JSON columns.
func (d *Document) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported document source type %T", src)
	}

	if len(raw) == 0 {
		*d = nil
		return nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}
	*d = doc
	return nil
}
