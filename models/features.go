package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Features is the ordered list of feature bullet points shown on a plan.
type Features []string

// Value implements the driver.Valuer interface
func (f Features) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (f *Features) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Features: unsupported type %T", value)
	}

	return json.Unmarshal(data, f)
}
