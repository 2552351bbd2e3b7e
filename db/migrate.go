package db

import (
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/modernclinic/booking-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Plan{},
		&models.Booking{},
		&models.Appointment{},
		&models.SelectedPlan{},
		&models.Coupon{},
		&models.Admin{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedAdmin()

	log.Println("Migrations applied successfully")
}

// seedAdmin creates the default admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// if it does not already exist.
func seedAdmin() {
	// Emails are stored lowercased so login lookups always match.
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.Admin
	if DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.Admin{Email: email, Password: string(hashed)}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin: %v", err)
		return
	}
	log.Printf("Default admin created: %s", email)
}
