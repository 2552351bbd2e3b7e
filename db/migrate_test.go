package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/models"
)

func TestSeedAdminNormalizesEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", " Admin@Clinic.com ")
	t.Setenv("ADMIN_PASSWORD", "secret123")

	conn, err := gorm.Open(sqlite.Open("file:TestSeedAdminNormalizesEmail?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	DB = conn
	if err := DB.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	seedAdmin()

	// The row must be findable by the lowercased form the login handler uses.
	var admin models.Admin
	if DB.Where("email = ?", "admin@clinic.com").First(&admin).RowsAffected == 0 {
		t.Fatal("seeded admin not found under lowercased email")
	}
	if !admin.ComparePassword("secret123") {
		t.Fatal("seeded admin password does not verify")
	}

	// Re-running the seed must not duplicate the account.
	seedAdmin()
	var count int64
	DB.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("admin count = %d after reseed, want 1", count)
	}
}
