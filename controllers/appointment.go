package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// RegisterAppointment registers a direct appointment. Like bookings, an
// unverified record for the same phone is updated in place.
func RegisterAppointment(c *fiber.Ctx) error {
	type registerInput struct {
		Name      string        `json:"name"`
		Email     string        `json:"email"`
		Phone     string        `json:"phone"`
		Region    models.Region `json:"region"`
		Condition string        `json:"condition"`
	}

	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.Region == "" || input.Condition == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "name, email, phone, region, condition fields are required")
	}

	if !input.Region.Valid() {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid region")
	}

	appointmentID := uuid.NewString()

	var existing models.Appointment
	if db.DB.Where("phone = ? AND verified = ?", input.Phone, false).First(&existing).RowsAffected > 0 {
		existing.Name = input.Name
		existing.Email = input.Email
		existing.Region = input.Region
		existing.Condition = input.Condition
		existing.AppointmentID = appointmentID

		if err := db.DB.Save(&existing).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"success":       true,
			"message":       "Appointment updated successfully.",
			"appointmentId": appointmentID,
		})
	}

	appointment := models.Appointment{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Region:        input.Region,
		Condition:     input.Condition,
		Verified:      false,
		AppointmentID: appointmentID,
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"message":       "Appointment registered successfully.",
		"appointmentId": appointmentID,
	})
}
