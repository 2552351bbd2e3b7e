package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
	"github.com/modernclinic/booking-api/middleware"
)

// SetupPlanRoutes configures the plan catalog routes
func SetupPlanRoutes(app *fiber.App) {
	app.Get("/api/plans", controllers.GetPlans)
	app.Post("/api/admin/plans", middleware.Protected(), controllers.CreatePlan)
}
