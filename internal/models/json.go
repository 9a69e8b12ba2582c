package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
)

// StringArray is a []string stored as a JSON column.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// IngredientList stores ingredients in canonical units as a JSON column.
type IngredientList []units.Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *IngredientList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// JSONMap holds free-form metadata.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value interface{}, dst interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
