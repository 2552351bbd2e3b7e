package controllers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// RegisterBooking registers a consultation booking. A repeat registration
// with the same mobile while the earlier record is still unverified updates
// that record in place instead of leaving orphaned unverified rows behind.
func RegisterBooking(c *fiber.Ctx) error {
	type registerInput struct {
		Name        string        `json:"name"`
		Email       string        `json:"email"`
		Mobile      string        `json:"mobile"`
		Age         int           `json:"age"`
		Gender      string        `json:"gender"`
		Region      models.Region `json:"region"`
		HealthIssue string        `json:"healthIssue"`
	}

	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Name == "" || input.Email == "" || input.Mobile == "" || input.Age == 0 ||
		input.Gender == "" || input.HealthIssue == "" || input.Region == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "All fields are required")
	}

	if !input.Region.Valid() {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid region")
	}

	consultantID := uuid.NewString()

	// Reuse an unverified record for the same mobile rather than creating
	// a duplicate. A verified record is left alone and a fresh one created.
	var existing models.Booking
	if db.DB.Where("mobile = ? AND verified = ?", input.Mobile, false).First(&existing).RowsAffected > 0 {
		existing.Name = input.Name
		existing.Email = input.Email
		existing.Age = input.Age
		existing.Gender = input.Gender
		existing.Region = input.Region
		existing.HealthIssue = input.HealthIssue
		existing.ConsultantID = consultantID

		if err := db.DB.Save(&existing).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(fiber.Map{
			"success":      true,
			"message":      "Booking updated successfully.",
			"consultantId": consultantID,
		})
	}

	booking := models.Booking{
		Name:         input.Name,
		Email:        input.Email,
		Mobile:       input.Mobile,
		Age:          input.Age,
		Gender:       input.Gender,
		Region:       input.Region,
		HealthIssue:  input.HealthIssue,
		Verified:     false,
		ConsultantID: consultantID,
	}

	if err := db.DB.Create(&booking).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Booking registered successfully.",
		"consultantId": consultantID,
	})
}

// SubmitConsultation stores the intake questionnaire and the optional scalp
// photo for a registered booking.
func SubmitConsultation(c *fiber.Ctx) error {
	consultantID := c.FormValue("consultantId")
	if consultantID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Consultant ID is required")
	}

	var booking models.Booking
	if db.DB.Where("consultant_id = ?", consultantID).First(&booking).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusNotFound, "Invalid consultant ID")
	}

	var data models.ConsultationData
	if raw := c.FormValue("consultationData"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Invalid consultation data format")
		}
	}

	if fileHeader, err := c.FormFile("scalpPhoto"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return utils.Fail(c, fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		defer file.Close()

		url, err := utils.UploadToCloudinary(file, fmt.Sprintf("scalp_%s", consultantID), "scalp-assessments")
		if err != nil {
			log.Printf("Scalp photo upload failed for %s: %v", consultantID, err)
			return utils.Fail(c, fiber.StatusInternalServerError, "Failed to upload scalp photo")
		}
		data.ScalpAssessment.ScalpPhoto = url
	}

	booking.ConsultationData = data
	if err := db.DB.Save(&booking).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Consultation data submitted successfully",
	})
}
