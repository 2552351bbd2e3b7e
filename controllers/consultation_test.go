package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
)

// postForm submits a multipart form the way the consultation page does.
func postForm(t *testing.T, app *fiber.App, path string, fields map[string]string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write form field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

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

func registerBody(mobile string) fiber.Map {
	return fiber.Map{
		"name":        "Ravi Kumar",
		"email":       "ravi@example.com",
		"mobile":      mobile,
		"age":         28,
		"gender":      "male",
		"region":      "India",
		"healthIssue": "hair thinning",
	}
}

func TestRegisterBookingCreatesUnverifiedRecord(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	status, resp := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9876543210"))
	if status != http.StatusCreated {
		t.Fatalf("status = %d, resp %v", status, resp)
	}
	if resp["consultantId"] == "" || resp["consultantId"] == nil {
		t.Fatalf("missing consultantId in %v", resp)
	}

	var booking models.Booking
	if err := db.DB.Where("mobile = ?", "9876543210").First(&booking).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if booking.Verified {
		t.Fatal("fresh registration must start unverified")
	}
	if booking.PaymentStatus != models.PaymentPending {
		t.Fatalf("payment status = %s, want pending", booking.PaymentStatus)
	}
}

func TestRegisterBookingMissingFieldFails(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	body := registerBody("9876543210")
	delete(body, "healthIssue")

	status, _ := postJSON(t, app, "/api/bookingconsultancy/register", body)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestRegisterBookingInvalidRegionFails(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	body := registerBody("9876543210")
	body["region"] = "Atlantis"

	status, _ := postJSON(t, app, "/api/bookingconsultancy/register", body)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestReRegisterUnverifiedUpdatesExistingRecord(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	status, first := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9876543210"))
	if status != http.StatusCreated {
		t.Fatalf("first register: status %d", status)
	}

	body := registerBody("9876543210")
	body["name"] = "Ravi K"
	body["age"] = 29

	status, second := postJSON(t, app, "/api/bookingconsultancy/register", body)
	if status != http.StatusOK {
		t.Fatalf("re-register: status = %d, want 200", status)
	}
	if first["consultantId"] == second["consultantId"] {
		t.Fatal("re-registration must assign a fresh external id")
	}

	var count int64
	db.DB.Model(&models.Booking{}).Where("mobile = ?", "9876543210").Count(&count)
	if count != 1 {
		t.Fatalf("bookings for mobile = %d, want 1 (no orphaned rows)", count)
	}

	var booking models.Booking
	db.DB.Where("mobile = ?", "9876543210").First(&booking)
	if booking.Name != "Ravi K" || booking.Age != 29 {
		t.Fatalf("mutable fields not updated: %+v", booking)
	}
}

func TestRegisterAfterVerifiedCreatesFreshRecord(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	seedVerifiedBooking(t, app, "9876543210")

	body := registerBody("9876543210")
	body["name"] = "Asha Patel"

	status, _ := postJSON(t, app, "/api/bookingconsultancy/register", body)
	if status != http.StatusCreated {
		t.Fatalf("register after verified: status = %d, want 201", status)
	}

	var count int64
	db.DB.Model(&models.Booking{}).Where("mobile = ?", "9876543210").Count(&count)
	if count != 2 {
		t.Fatalf("bookings for mobile = %d, want 2 distinct records", count)
	}
}

func TestRegisterAppointmentUpsertsUnverified(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	body := fiber.Map{
		"name":      "Meera Shah",
		"email":     "meera@example.com",
		"phone":     "9123456780",
		"region":    "Asia",
		"condition": "acne",
	}

	status, first := postJSON(t, app, "/api/appointments/register", body)
	if status != http.StatusCreated {
		t.Fatalf("first register: status %d", status)
	}

	status, second := postJSON(t, app, "/api/appointments/register", body)
	if status != http.StatusOK {
		t.Fatalf("re-register: status = %d, want 200", status)
	}
	if first["appointmentId"] == second["appointmentId"] {
		t.Fatal("re-registration must assign a fresh external id")
	}

	var count int64
	db.DB.Model(&models.Appointment{}).Where("phone = ?", "9123456780").Count(&count)
	if count != 1 {
		t.Fatalf("appointments for phone = %d, want 1", count)
	}
}

func TestSubmitConsultationStoresQuestionnaire(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	_, resp := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9000000011"))
	consultantID := resp["consultantId"].(string)

	data := `{"hair_health":{"stage":"2","dandruff":"yes"},"internal_health":{"sleep":"poor","stress":"high"}}`
	status, resp := postForm(t, app, "/api/bookingconsultancy/submit", map[string]string{
		"consultantId":     consultantID,
		"consultationData": data,
	})
	if status != http.StatusOK {
		t.Fatalf("submit: status %d, resp %v", status, resp)
	}

	var booking models.Booking
	db.DB.Where("consultant_id = ?", consultantID).First(&booking)
	if booking.ConsultationData.HairHealth.Stage != "2" {
		t.Fatalf("hair health stage = %q, want 2", booking.ConsultationData.HairHealth.Stage)
	}
	if booking.ConsultationData.InternalHealth.Sleep != "poor" {
		t.Fatalf("internal health sleep = %q, want poor", booking.ConsultationData.InternalHealth.Sleep)
	}
}

func TestSubmitConsultationUnknownConsultant(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	status, _ := postForm(t, app, "/api/bookingconsultancy/submit", map[string]string{
		"consultantId":     "no-such-id",
		"consultationData": `{"hair_health":{"stage":"1"}}`,
	})
	if status != http.StatusNotFound {
		t.Fatalf("unknown consultant: status = %d, want 404", status)
	}
}

func TestSubmitConsultationRequiresConsultantID(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	status, _ := postForm(t, app, "/api/bookingconsultancy/submit", map[string]string{
		"consultationData": `{"hair_health":{"stage":"1"}}`,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("missing consultant id: status = %d, want 400", status)
	}
}

func TestSubmitConsultationRejectsMalformedData(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(nil, nil)

	_, resp := postJSON(t, app, "/api/bookingconsultancy/register", registerBody("9000000012"))
	consultantID := resp["consultantId"].(string)

	status, _ := postForm(t, app, "/api/bookingconsultancy/submit", map[string]string{
		"consultantId":     consultantID,
		"consultationData": "not-json",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("malformed data: status = %d, want 400", status)
	}
}
