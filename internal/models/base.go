// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

type BaseModel struct {
	gorm.Model
}

// StringSlice is a JSONB list column, used for the player ids of a match.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(s))
}

// Scan unmarshals a JSONB column into the slice.
func (s *StringSlice) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("StringSlice: expected []byte, got %T", src)
	}
}

// Contains reports whether id is in the slice.
func (s StringSlice) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
