package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ConsultationData is the intake questionnaire captured after registration,
// stored as a JSON column on the booking.
type ConsultationData struct {
	HairHealth struct {
		Stage         string `json:"stage,omitempty"`
		FamilyHistory string `json:"family_history,omitempty"`
		Dandruff      string `json:"dandruff,omitempty"`
		SelectedStage string `json:"selected_stage,omitempty"`
	} `json:"hair_health,omitempty"`
	InternalHealth struct {
		Sleep        string `json:"sleep,omitempty"`
		Stress       string `json:"stress,omitempty"`
		Constipation string `json:"constipation,omitempty"`
		GasAcidity   string `json:"gas_acidity,omitempty"`
		Energy       string `json:"energy,omitempty"`
		Supplements  string `json:"supplements,omitempty"`
	} `json:"internal_health,omitempty"`
	ScalpAssessment struct {
		ScalpPhoto string `json:"scalp_photo,omitempty"`
	} `json:"scalp_assessment,omitempty"`
}

// Value implements the driver.Valuer interface
func (d ConsultationData) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (d *ConsultationData) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal ConsultationData: unsupported type %T", value)
	}

	return json.Unmarshal(data, d)
}
