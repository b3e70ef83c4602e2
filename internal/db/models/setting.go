package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// SettingType is the declared logical type of a setting value.
// The settings table only stores text; the type tag drives coercion
// between the stored text and the native value.
type SettingType string

const (
	// SettingTypeString stores the text as-is.
	SettingTypeString SettingType = "string"
	// SettingTypeNumber stores a decimal float as text.
	SettingTypeNumber SettingType = "number"
	// SettingTypeBoolean stores the literal "true" or "false".
	SettingTypeBoolean SettingType = "boolean"
	// SettingTypeJSON stores a JSON-encoded document.
	SettingTypeJSON SettingType = "json"
)

// Setting represents a typed configuration value stored behind a string key.
type Setting struct {
	ID          uint64      `gorm:"primaryKey"                               json:"id"`
	Key         string      `gorm:"unique;size:255;not null"                 json:"key"`
	Value       string      `gorm:"type:text;not null"                       json:"-"`
	Type        SettingType `gorm:"type:varchar(20);not null;default:string" json:"type"`
	Description string      `gorm:"type:text"                                json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// settingJSON mirrors Setting with the value decoded to its native form.
type settingJSON struct {
	ID          uint64      `json:"id"`
	Key         string      `json:"key"`
	Value       any         `json:"value"`
	Type        SettingType `json:"type"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// MarshalJSON renders the stored text decoded per the type tag, so API
// responses always carry native values.
func (s Setting) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingJSON{
		ID:          s.ID,
		Key:         s.Key,
		Value:       s.ParsedValue(),
		Type:        s.Type,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	})
}

// ParsedValue decodes the stored text according to the setting's type tag.
func (s *Setting) ParsedValue() any {
	return ParseValue(s.Value, s.Type)
}

// ParseValue decodes stored text into its native form.
// Malformed boolean text decodes to false and malformed JSON text is
// returned unchanged; both fallbacks are silent and intentional.
func ParseValue(value string, typ SettingType) any {
	switch typ {
	case SettingTypeNumber:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return float64(0)
		}

		return f
	case SettingTypeBoolean:
		return value == "true"
	case SettingTypeJSON:
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return value
		}

		return v
	default:
		return value
	}
}

// StringifyValue encodes a native value to the text stored in the database.
func StringifyValue(value any, typ SettingType) string {
	switch typ {
	case SettingTypeJSON:
		if s, ok := value.(string); ok {
			return s
		}

		data, err := json.Marshal(value)
		if err != nil {
			return ""
		}

		return string(data)
	case SettingTypeBoolean:
		return strconv.FormatBool(truthy(value))
	case SettingTypeNumber:
		return strconv.FormatFloat(toFloat(value), 'f', -1, 64)
	default:
		return toString(value)
	}
}

// ValidSettingType reports whether typ is one of the four known type tags.
func ValidSettingType(typ SettingType) bool {
	switch typ {
	case SettingTypeString, SettingTypeNumber, SettingTypeBoolean, SettingTypeJSON:
		return true
	}

	return false
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case float64:
		return v != 0
	case int:
		return v != 0
	case nil:
		return false
	default:
		return true
	}
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}

		return string(data)
	}
}
