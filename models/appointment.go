package models

import (
	"gorm.io/gorm"
)

// Appointment is the direct-appointment variant of a payable record. It
// shares the plan/payment sub-structure with Booking but carries its own
// contact fields.
type Appointment struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone" gorm:"index"`
	Region    Region `json:"region"`
	Condition string `json:"condition"`

	Verified      bool   `json:"verified" gorm:"default:false"`
	AppointmentID string `json:"appointment_id" gorm:"uniqueIndex"`

	Plans []SelectedPlan `json:"plans" gorm:"polymorphic:Owner"`
	PaymentDetails
}

func (a *Appointment) Payment() *PaymentDetails          { return &a.PaymentDetails }
func (a *Appointment) SelectedPlans() []SelectedPlan     { return a.Plans }
func (a *Appointment) SetSelectedPlans(p []SelectedPlan) { a.Plans = p }
func (a *Appointment) ContactName() string               { return a.Name }
func (a *Appointment) ContactEmail() string              { return a.Email }
func (a *Appointment) ExternalID() string                { return a.AppointmentID }
func (a *Appointment) IsVerified() bool                  { return a.Verified }
