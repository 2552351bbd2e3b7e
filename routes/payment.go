package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
)

// SetupPaymentRoutes configures the payment routes for both record variants
func SetupPaymentRoutes(app *fiber.App, payments *controllers.PaymentController) {
	payment := app.Group("/api/payments")
	payment.Post("/create-order", payments.CreateBookingOrder)
	payment.Post("/verify", payments.VerifyBookingPayment)
	payment.Post("/update-method", payments.UpdateBookingMethod)

	payment.Post("/appointment/create-order", payments.CreateAppointmentOrder)
	payment.Post("/appointment/verify", payments.VerifyAppointmentPayment)
	payment.Post("/appointment/update-method", payments.UpdateAppointmentMethod)
}
