package models

import (
	"time"

	"gorm.io/gorm"
)

type PlanType string

const (
	PlanGeneral       PlanType = "GENERAL"
	PlanHairTreatment PlanType = "HAIR_TREATMENT"
	PlanAddon         PlanType = "ADDON"
	PlanAppointment   PlanType = "APPOINTMENT"
)

type DurationCode string

const (
	DurationOneTime     DurationCode = "ONE_TIME"
	DurationOneMonth    DurationCode = "1_MONTH"
	DurationThreeMonth  DurationCode = "3_MONTH"
	DurationSixMonth    DurationCode = "6_MONTH"
	DurationTwelveMonth DurationCode = "12_MONTH"
)

// Months returns the plan validity in calendar months, 0 for ONE_TIME.
func (d DurationCode) Months() int {
	switch d {
	case DurationOneMonth:
		return 1
	case DurationThreeMonth:
		return 3
	case DurationSixMonth:
		return 6
	case DurationTwelveMonth:
		return 12
	default:
		return 0
	}
}

// ExpiryFrom computes the expiry date for a plan starting at the given time.
// Calendar-month arithmetic via AddDate, so month-end start dates roll over
// the way the host calendar does (Jan 31 + 1 month lands in early March).
// ONE_TIME plans never expire and yield nil.
func (d DurationCode) ExpiryFrom(start time.Time) *time.Time {
	months := d.Months()
	if months == 0 {
		return nil
	}
	expiry := start.AddDate(0, months, 0)
	return &expiry
}

func (d DurationCode) Valid() bool {
	switch d {
	case DurationOneTime, DurationOneMonth, DurationThreeMonth, DurationSixMonth, DurationTwelveMonth:
		return true
	}
	return false
}

type Plan struct {
	gorm.Model
	Type         PlanType     `json:"type"`
	Stage        int          `json:"stage,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DurationCode DurationCode `json:"duration_code"`
	PriceIndia   float64      `json:"price_india"`
	PriceForeign *float64     `json:"price_foreign"`
	Features     Features     `json:"features" gorm:"type:text"`
	IsActive     bool         `json:"is_active" gorm:"default:true"`
}

// PriceFor resolves the region-appropriate amount. The catalog is the single
// source of truth for price; client-submitted amounts are never trusted.
func (p *Plan) PriceFor(userType UserType) (float64, error) {
	if userType == UserTypeIndia {
		return p.PriceIndia, nil
	}
	if p.PriceForeign == nil {
		return 0, ErrNoForeignPrice
	}
	return *p.PriceForeign, nil
}
