package models

import (
	"gorm.io/gorm"
)

// Booking is a consultation booking: the patient registers, verifies via
// OTP, then moves through plan selection and payment.
type Booking struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile" gorm:"index"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Region      Region `json:"region"`
	HealthIssue string `json:"health_issue"`

	Verified     bool   `json:"verified" gorm:"default:false"`
	ConsultantID string `json:"consultant_id" gorm:"uniqueIndex"`

	ConsultationData ConsultationData `json:"consultation_data,omitempty" gorm:"type:text"`

	Plans []SelectedPlan `json:"plans" gorm:"polymorphic:Owner"`
	PaymentDetails
}

func (b *Booking) Payment() *PaymentDetails          { return &b.PaymentDetails }
func (b *Booking) SelectedPlans() []SelectedPlan     { return b.Plans }
func (b *Booking) SetSelectedPlans(p []SelectedPlan) { b.Plans = p }
func (b *Booking) ContactName() string               { return b.Name }
func (b *Booking) ContactEmail() string              { return b.Email }
func (b *Booking) ExternalID() string                { return b.ConsultantID }
func (b *Booking) IsVerified() bool                  { return b.Verified }
