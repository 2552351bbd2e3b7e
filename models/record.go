package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNoForeignPrice = errors.New("plan has no foreign price")

type UserType string

const (
	UserTypeIndia   UserType = "india"
	UserTypeForeign UserType = "foreign"
)

func (u UserType) Valid() bool {
	return u == UserTypeIndia || u == UserTypeForeign
}

// Currency returns the gateway currency charged for this user type.
func (u UserType) Currency() string {
	if u == UserTypeIndia {
		return "INR"
	}
	return "USD"
}

type Region string

const (
	RegionIndia        Region = "India"
	RegionAsia         Region = "Asia"
	RegionEurope       Region = "Europe, Australia"
	RegionNorthAmerica Region = "USA, Canada"
	RegionSouthAfrica  Region = "South America, Africa"
)

func (r Region) Valid() bool {
	switch r {
	case RegionIndia, RegionAsia, RegionEurope, RegionNorthAmerica, RegionSouthAfrica:
		return true
	}
	return false
}

// UserType derives the pricing bucket from the region.
func (r Region) UserType() UserType {
	if r == RegionIndia {
		return UserTypeIndia
	}
	return UserTypeForeign
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentAtClinic  PaymentStatus = "at_clinic"
	PaymentEMI       PaymentStatus = "emi"
)

// SelectedPlan is the price snapshot taken at order time so later catalog
// changes do not retroactively affect already-priced orders. StartDate and
// ExpiryDate stay nil until an online payment completes.
type SelectedPlan struct {
	gorm.Model
	OwnerID        uint         `json:"-" gorm:"index"`
	OwnerType      string       `json:"-" gorm:"index"`
	PlanID         uint         `json:"plan_id"`
	Title          string       `json:"title"`
	Type           PlanType     `json:"type"`
	DurationCode   DurationCode `json:"duration_code"`
	Amount         float64      `json:"amount"`
	StartDate      *time.Time   `json:"start_date"`
	ExpiryDate     *time.Time   `json:"expiry_date"`
	ReminderSentAt *time.Time   `json:"reminder_sent_at,omitempty"`
}

// PaymentDetails is the payment sub-structure shared by both record
// variants; embed it rather than duplicating the fields.
type PaymentDetails struct {
	UserType       UserType      `json:"user_type"`
	Amount         float64       `json:"amount"`
	OriginalAmount float64       `json:"original_amount"`
	CouponCode     string        `json:"coupon_code,omitempty"`
	CouponDiscount float64       `json:"coupon_discount,omitempty"`
	OrderID        string        `json:"order_id"`
	PaymentStatus  PaymentStatus `json:"payment_status" gorm:"default:pending"`
	PaymentMethod  string        `json:"payment_method"`
	PaymentID      string        `json:"payment_id"`
}

// PayableRecord is the capability shared by bookings and appointments so the
// order/verify/deferred handlers run once instead of per variant.
type PayableRecord interface {
	Payment() *PaymentDetails
	SelectedPlans() []SelectedPlan
	SetSelectedPlans([]SelectedPlan)
	ContactName() string
	ContactEmail() string
	ExternalID() string
	IsVerified() bool
}
