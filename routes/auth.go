package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
)

// SetupAuthRoutes configures the admin authentication routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/admin/login", controllers.AdminLogin)
}
