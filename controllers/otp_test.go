package controllers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
)

func newOTPApp(t *testing.T) *fiber.App {
	t.Helper()
	verifier := &fakeVerifier{tokens: map[string]string{
		"tok_good": "+919876543210",
	}}
	return newTestApp(nil, NewOTPController(verifier, "+91"))
}

func TestVerifyBookingOTP(t *testing.T) {
	setupTestDB(t)
	app := newOTPApp(t)

	status, resp := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9876543210"))
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}
	consultantID := resp["consultantId"].(string)

	status, _ = postJSON(t, app, "/api/bookingconsultancy/verify-otp", fiber.Map{
		"contact":       "9876543210",
		"externalToken": "tok_good",
		"recordId":      consultantID,
	})
	if status != http.StatusOK {
		t.Fatalf("verify: status = %d, want 200", status)
	}

	var booking models.Booking
	db.DB.Where("consultant_id = ?", consultantID).First(&booking)
	if !booking.Verified {
		t.Fatal("booking must be verified after OTP match")
	}
}

func TestVerifyBookingOTPPhoneMismatch(t *testing.T) {
	setupTestDB(t)
	app := newOTPApp(t)

	status, resp := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9000000000"))
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}

	// tok_good was issued for a different number.
	status, _ = postJSON(t, app, "/api/bookingconsultancy/verify-otp", fiber.Map{
		"contact":       "9000000000",
		"externalToken": "tok_good",
		"recordId":      resp["consultantId"],
	})
	if status != http.StatusBadRequest {
		t.Fatalf("mismatched phone: status = %d, want 400", status)
	}
}

func TestVerifyBookingOTPUnknownRecord(t *testing.T) {
	setupTestDB(t)
	app := newOTPApp(t)

	status, _ := postJSON(t, app, "/api/bookingconsultancy/verify-otp", fiber.Map{
		"contact":       "9876543210",
		"externalToken": "tok_good",
		"recordId":      "no-such-record",
	})
	if status != http.StatusNotFound {
		t.Fatalf("unknown record: status = %d, want 404", status)
	}
}

func TestVerifyBookingOTPAlreadyVerified(t *testing.T) {
	setupTestDB(t)
	app := newOTPApp(t)

	consultantID := seedVerifiedBooking(t, app, "9876543210")

	status, _ := postJSON(t, app, "/api/bookingconsultancy/verify-otp", fiber.Map{
		"contact":       "9876543210",
		"externalToken": "tok_good",
		"recordId":      consultantID,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("second verification: status = %d, want 400", status)
	}
}

func TestVerifyAppointmentOTP(t *testing.T) {
	setupTestDB(t)
	app := newOTPApp(t)

	status, resp := postJSON(t, app, "/api/appointments/register", fiber.Map{
		"name":      "Meera Shah",
		"email":     "meera@example.com",
		"phone":     "9876543210",
		"region":    "India",
		"condition": "acne",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: status %d", status)
	}

	status, _ = postJSON(t, app, "/api/appointments/verify-otp", fiber.Map{
		"contact":       "9876543210",
		"externalToken": "tok_good",
		"recordId":      resp["appointmentId"],
	})
	if status != http.StatusOK {
		t.Fatalf("verify: status = %d, want 200", status)
	}
}
