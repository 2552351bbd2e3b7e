package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/gateway"
	"github.com/modernclinic/booking-api/models"
)

const testGatewaySecret = "test_secret"

// setupTestDB points the package-global connection at a fresh in-memory
// database for one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = conn.AutoMigrate(
		&models.Plan{},
		&models.Booking{},
		&models.Appointment{},
		&models.SelectedPlan{},
		&models.Coupon{},
		&models.Admin{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	db.DB = conn
}

type fakeGateway struct {
	orders    []int64
	nextID    string
	createErr error
}

func (f *fakeGateway) CreateOrder(amount int64, currency, receipt string) (*gateway.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.orders = append(f.orders, amount)
	id := f.nextID
	if id == "" {
		id = "order_test_1"
	}
	return &gateway.Order{ID: id, Amount: amount, Currency: currency}, nil
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func (f *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return gateway.VerifySignature(orderID, paymentID, signature, testGatewaySecret)
}

type sentMail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject})
	return nil
}

// fakeVerifier maps identity tokens to the canonical phone numbers they
// were issued for.
type fakeVerifier struct {
	tokens map[string]string
}

func (f *fakeVerifier) PhoneNumber(token string) (string, error) {
	phone, ok := f.tokens[token]
	if !ok {
		return "", fmt.Errorf("invalid identity token")
	}
	return phone, nil
}

// sign produces the signature the gateway would attach to a callback.
func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// newTestApp wires the public routes against the given collaborators.
func newTestApp(payments *PaymentController, otp *OTPController) *fiber.App {
	app := fiber.New()

	app.Post("/api/bookingconsultancy/register", RegisterBooking)
	app.Post("/api/bookingconsultancy/submit", SubmitConsultation)
	app.Post("/api/appointments/register", RegisterAppointment)
	app.Post("/api/coupons/apply", ApplyCoupon)
	app.Get("/api/plans", GetPlans)

	if otp != nil {
		app.Post("/api/bookingconsultancy/verify-otp", otp.VerifyBooking)
		app.Post("/api/appointments/verify-otp", otp.VerifyAppointment)
	}
	if payments != nil {
		app.Post("/api/payments/create-order", payments.CreateBookingOrder)
		app.Post("/api/payments/verify", payments.VerifyBookingPayment)
		app.Post("/api/payments/update-method", payments.UpdateBookingMethod)
		app.Post("/api/payments/appointment/create-order", payments.CreateAppointmentOrder)
		app.Post("/api/payments/appointment/verify", payments.VerifyAppointmentPayment)
		app.Post("/api/payments/appointment/update-method", payments.UpdateAppointmentMethod)
	}

	return app
}

// postJSON posts a JSON body and decodes the JSON response.
func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response from %s: %v", path, err)
	}
	return resp.StatusCode, decoded
}

// seedPlan inserts a catalog plan and returns its id.
func seedPlan(t *testing.T, title string, code models.DurationCode, india float64, foreign *float64) uint {
	t.Helper()

	plan := models.Plan{
		Type:         models.PlanHairTreatment,
		Stage:        1,
		Title:        title,
		Description:  title,
		DurationCode: code,
		PriceIndia:   india,
		PriceForeign: foreign,
		Features:     models.Features{"feature"},
		IsActive:     true,
	}
	if err := db.DB.Create(&plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return plan.ID
}

// seedVerifiedBooking registers and force-verifies a booking, returning its
// external id.
func seedVerifiedBooking(t *testing.T, app *fiber.App, mobile string) string {
	t.Helper()

	status, resp := postJSON(t, app, "/api/bookingconsultancy/register", fiber.Map{
		"name":        "Asha Patel",
		"email":       "asha@example.com",
		"mobile":      mobile,
		"age":         31,
		"gender":      "female",
		"region":      "India",
		"healthIssue": "hair fall",
	})
	if status != http.StatusCreated {
		t.Fatalf("register booking: status %d, resp %v", status, resp)
	}
	consultantID := resp["consultantId"].(string)

	err := db.DB.Model(&models.Booking{}).
		Where("consultant_id = ?", consultantID).
		Update("verified", true).Error
	if err != nil {
		t.Fatalf("mark booking verified: %v", err)
	}
	return consultantID
}

// seedVerifiedAppointment registers and force-verifies an appointment,
// returning its external id.
func seedVerifiedAppointment(t *testing.T, app *fiber.App, phone string) string {
	t.Helper()

	status, resp := postJSON(t, app, "/api/appointments/register", fiber.Map{
		"name":      "Ravi Kumar",
		"email":     "ravi@example.com",
		"phone":     phone,
		"region":    "India",
		"condition": "dandruff",
	})
	if status != http.StatusCreated {
		t.Fatalf("register appointment: status %d, resp %v", status, resp)
	}
	appointmentID := resp["appointmentId"].(string)

	err := db.DB.Model(&models.Appointment{}).
		Where("appointment_id = ?", appointmentID).
		Update("verified", true).Error
	if err != nil {
		t.Fatalf("mark appointment verified: %v", err)
	}
	return appointmentID
}
