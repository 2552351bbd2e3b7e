package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/controllers"
	"github.com/modernclinic/booking-api/middleware"
)

// SetupCouponRoutes configures the coupon routes
func SetupCouponRoutes(app *fiber.App) {
	coupon := app.Group("/api/coupons")

	// Admin routes
	coupon.Post("/create", middleware.Protected(), controllers.CreateCoupon)
	coupon.Get("/all", middleware.Protected(), controllers.GetCoupons)
	coupon.Put("/:id", middleware.Protected(), controllers.UpdateCoupon)
	coupon.Delete("/:id", middleware.Protected(), controllers.DeleteCoupon)

	// User route
	coupon.Post("/apply", controllers.ApplyCoupon)
}
