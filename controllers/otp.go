package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/identity"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// OTPController verifies records against the external identity provider's
// token. Verification is a one-way latch: a record becomes verified exactly
// once and there is no de-verification path.
type OTPController struct {
	Verifier    identity.Verifier
	CountryCode string
}

func NewOTPController(verifier identity.Verifier, countryCode string) *OTPController {
	if countryCode == "" {
		countryCode = "+91"
	}
	return &OTPController{Verifier: verifier, CountryCode: countryCode}
}

type verifyInput struct {
	Contact       string `json:"contact"`
	ExternalToken string `json:"externalToken"`
	RecordID      string `json:"recordId"`
}

// checkToken decodes the token and matches its canonical phone number
// against the submitted contact with the fixed country-code prefix applied.
func (o *OTPController) checkToken(input *verifyInput) (ok bool) {
	phone, err := o.Verifier.PhoneNumber(input.ExternalToken)
	if err != nil {
		return false
	}
	return phone == o.CountryCode+input.Contact
}

// VerifyBooking handles OTP verification for consultation bookings.
func (o *OTPController) VerifyBooking(c *fiber.Ctx) error {
	input := new(verifyInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Contact == "" || input.ExternalToken == "" || input.RecordID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "contact, externalToken and recordId are required")
	}

	if !o.checkToken(input) {
		return utils.Fail(c, fiber.StatusBadRequest, "OTP verification failed: phone number mismatch")
	}

	var booking models.Booking
	err := db.DB.Where("consultant_id = ? AND mobile = ?", input.RecordID, input.Contact).First(&booking).Error
	if err == gorm.ErrRecordNotFound {
		return utils.Fail(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if booking.Verified {
		return utils.Fail(c, fiber.StatusBadRequest, "Booking already verified")
	}

	booking.Verified = true
	if err := db.DB.Save(&booking).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking verified successfully",
	})
}

// VerifyAppointment handles OTP verification for direct appointments.
func (o *OTPController) VerifyAppointment(c *fiber.Ctx) error {
	input := new(verifyInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Contact == "" || input.ExternalToken == "" || input.RecordID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "contact, externalToken and recordId are required")
	}

	if !o.checkToken(input) {
		return utils.Fail(c, fiber.StatusBadRequest, "OTP verification failed: phone number mismatch")
	}

	var appointment models.Appointment
	err := db.DB.Where("appointment_id = ? AND phone = ?", input.RecordID, input.Contact).First(&appointment).Error
	if err == gorm.ErrRecordNotFound {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if appointment.Verified {
		return utils.Fail(c, fiber.StatusBadRequest, "Appointment already verified")
	}

	appointment.Verified = true
	if err := db.DB.Save(&appointment).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Appointment verified successfully",
	})
}
