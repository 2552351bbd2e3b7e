package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/modernclinic/booking-api/controllers"
	"github.com/modernclinic/booking-api/cron"
	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/gateway"
	"github.com/modernclinic/booking-api/identity"
	"github.com/modernclinic/booking-api/mailer"
	"github.com/modernclinic/booking-api/redis"
	"github.com/modernclinic/booking-api/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()

	// Collaborators are constructed once here and handed to the handlers
	// that need them.
	razorpay := gateway.NewRazorpayGateway(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
	)
	smtp := mailer.NewSMTPMailer()
	verifier := identity.NewJWTVerifier(os.Getenv("OTP_TOKEN_SECRET"))

	payments := controllers.NewPaymentController(razorpay, smtp)
	otp := controllers.NewOTPController(verifier, os.Getenv("COUNTRY_CODE"))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "API Running"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupPlanRoutes(app)
	routes.SetupCouponRoutes(app)
	routes.SetupConsultationRoutes(app, otp)
	routes.SetupAppointmentRoutes(app, otp)
	routes.SetupPaymentRoutes(app, payments)

	cron.StartCronJobs(smtp)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
