package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
)

// SetupAppointmentRoutes configures the direct appointment routes
func SetupAppointmentRoutes(app *fiber.App, otp *controllers.OTPController) {
	appointment := app.Group("/api/appointments")
	appointment.Post("/register", controllers.RegisterAppointment)
	appointment.Post("/verify-otp", otp.VerifyAppointment)
}
