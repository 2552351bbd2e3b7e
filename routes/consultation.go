package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
)

// SetupConsultationRoutes configures the consultation booking routes
func SetupConsultationRoutes(app *fiber.App, otp *controllers.OTPController) {
	consultation := app.Group("/api/bookingconsultancy")
	consultation.Post("/register", controllers.RegisterBooking)
	consultation.Post("/verify-otp", otp.VerifyBooking)
	consultation.Post("/submit", controllers.SubmitConsultation)
}
