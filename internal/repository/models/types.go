package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"learnloop/internal/domain"
)

// StringSlice stores a []string column as a JSON string, which keeps the
// Oracle schema to plain CLOBs.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// SkillScoreMap stores the per-skill score map as a JSON CLOB.
type SkillScoreMap map[string]domain.SkillScore

// Value implements the driver.Valuer interface
func (m SkillScoreMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *SkillScoreMap) Scan(value interface{}) error {
	if value == nil {
		*m = SkillScoreMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("SkillScoreMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = SkillScoreMap{}
		return nil
	}
	return json.Unmarshal(bytesToParse, m)
}
