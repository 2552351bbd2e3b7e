package controllers

import (
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/gateway"
	"github.com/modernclinic/booking-api/mailer"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// PaymentController handles the payment-order lifecycle for both record
// variants through one implementation parameterized by record lookup.
type PaymentController struct {
	Gateway gateway.PaymentGateway
	Mailer  mailer.Mailer
}

func NewPaymentController(gw gateway.PaymentGateway, m mailer.Mailer) *PaymentController {
	return &PaymentController{Gateway: gw, Mailer: m}
}

// recordFinder resolves a record by its external id with plan snapshots
// loaded.
type recordFinder func(externalID string) (models.PayableRecord, error)

func findBooking(externalID string) (models.PayableRecord, error) {
	var booking models.Booking
	if err := db.DB.Preload("Plans").Where("consultant_id = ?", externalID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func findAppointment(externalID string) (models.PayableRecord, error) {
	var appointment models.Appointment
	if err := db.DB.Preload("Plans").Where("appointment_id = ?", externalID).First(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

type createOrderInput struct {
	ConsultantID  string          `json:"consultantId"`
	AppointmentID string          `json:"appointmentId"`
	SelectedPlans []planSelection `json:"selectedPlans"`
	UserType      models.UserType `json:"userType"`
	CouponCode    string          `json:"couponCode"`
}

// CreateBookingOrder opens a gateway order for a consultation booking.
func (p *PaymentController) CreateBookingOrder(c *fiber.Ctx) error {
	input := new(createOrderInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.ConsultantID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Consultant ID is required")
	}
	return p.createOrder(c, input, input.ConsultantID, findBooking)
}

// CreateAppointmentOrder opens a gateway order for a direct appointment.
func (p *PaymentController) CreateAppointmentOrder(c *fiber.Ctx) error {
	input := new(createOrderInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.AppointmentID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Appointment ID is required")
	}
	return p.createOrder(c, input, input.AppointmentID, findAppointment)
}

func (p *PaymentController) createOrder(c *fiber.Ctx, input *createOrderInput, externalID string, find recordFinder) error {
	rec, err := find(externalID)
	if err == gorm.ErrRecordNotFound {
		return utils.Fail(c, fiber.StatusNotFound, "Record not found")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if !rec.IsVerified() {
		return utils.Fail(c, fiber.StatusBadRequest, "Record is not verified")
	}
	if rec.Payment().PaymentStatus != models.PaymentPending {
		return utils.Fail(c, fiber.StatusBadRequest, "Payment is already settled for this record")
	}

	snapshots, total, reqErr := priceSelection(input.SelectedPlans, input.UserType)
	if reqErr != nil {
		return utils.Fail(c, reqErr.status, reqErr.message)
	}

	payment := rec.Payment()
	payment.UserType = input.UserType
	payment.OriginalAmount = total
	payment.Amount = total
	payment.CouponCode = ""
	payment.CouponDiscount = 0

	if input.CouponCode != "" {
		coupon, reqErr := resolveCoupon(input.CouponCode, time.Now())
		if reqErr != nil {
			return utils.Fail(c, reqErr.status, reqErr.message)
		}
		discount := coupon.Discount(total)
		payment.CouponCode = coupon.Code
		payment.CouponDiscount = discount
		payment.Amount = total - discount
	}

	// Drop stale snapshots from a previous order attempt before attaching
	// the fresh ones.
	for _, old := range rec.SelectedPlans() {
		if err := db.DB.Unscoped().Delete(&models.SelectedPlan{}, old.ID).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	rec.SetSelectedPlans(snapshots)

	// Persist the snapshot and total before contacting the gateway so a
	// crash between the two writes never loses the priced order.
	if err := db.DB.Save(rec).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	currency := input.UserType.Currency()
	paise := int64(math.Round(payment.Amount * 100))

	order, err := p.Gateway.CreateOrder(paise, currency, externalID)
	if err != nil {
		log.Printf("Gateway order creation failed for %s: %v", externalID, err)
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to create payment order")
	}

	payment.OrderID = order.ID
	if err := db.DB.Save(rec).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key":      p.Gateway.KeyID(),
	})
}

type verifyPaymentInput struct {
	ConsultantID  string `json:"consultantId"`
	AppointmentID string `json:"appointmentId"`
	PaymentID     string `json:"razorpay_payment_id"`
	OrderID       string `json:"razorpay_order_id"`
	Signature     string `json:"razorpay_signature"`
}

// VerifyBookingPayment verifies the gateway callback for a booking.
func (p *PaymentController) VerifyBookingPayment(c *fiber.Ctx) error {
	input := new(verifyPaymentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.ConsultantID == "" || input.PaymentID == "" || input.OrderID == "" || input.Signature == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "All payment details are required")
	}
	return p.verifyPayment(c, input, input.ConsultantID, findBooking)
}

// VerifyAppointmentPayment verifies the gateway callback for an appointment.
func (p *PaymentController) VerifyAppointmentPayment(c *fiber.Ctx) error {
	input := new(verifyPaymentInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.AppointmentID == "" || input.PaymentID == "" || input.OrderID == "" || input.Signature == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "All payment details are required")
	}
	return p.verifyPayment(c, input, input.AppointmentID, findAppointment)
}

func (p *PaymentController) verifyPayment(c *fiber.Ctx, input *verifyPaymentInput, externalID string, find recordFinder) error {
	rec, err := find(externalID)
	if err == gorm.ErrRecordNotFound {
		return utils.Fail(c, fiber.StatusNotFound, "Record not found")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	payment := rec.Payment()

	// Replay guard: a previously captured valid signature must not re-stamp
	// the plan dates and extend expiry.
	if payment.PaymentStatus == models.PaymentCompleted {
		return utils.Fail(c, fiber.StatusBadRequest, "Payment already verified")
	}

	if !p.Gateway.VerifyPaymentSignature(input.OrderID, input.PaymentID, input.Signature) {
		return utils.Fail(c, fiber.StatusBadRequest, "Payment verification failed")
	}

	payment.PaymentStatus = models.PaymentCompleted
	payment.PaymentMethod = "online"
	payment.PaymentID = input.PaymentID

	now := time.Now()
	plans := rec.SelectedPlans()
	for i := range plans {
		plans[i].StartDate = &now
		plans[i].ExpiryDate = plans[i].DurationCode.ExpiryFrom(now)
		if err := db.DB.Save(&plans[i]).Error; err != nil {
			return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	rec.SetSelectedPlans(plans)

	if err := db.DB.Save(rec).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	// Usage counts are charged on capture, not on quote.
	if payment.CouponCode != "" {
		err := db.DB.Model(&models.Coupon{}).
			Where("code = ?", payment.CouponCode).
			UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error
		if err != nil {
			log.Printf("Failed to increment coupon usage for %s: %v", payment.CouponCode, err)
		}
	}

	subject, body := mailer.PaymentSuccessEmail(rec.ContactName(), plans, payment.Amount, payment.UserType.Currency())
	if err := p.Mailer.Send(rec.ContactEmail(), subject, body); err != nil {
		log.Printf("Failed to send payment success email to %s: %v", rec.ContactEmail(), err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment verified successfully",
	})
}

type updateMethodInput struct {
	ConsultantID  string `json:"consultantId"`
	AppointmentID string `json:"appointmentId"`
	PaymentMethod string `json:"paymentMethod"`
}

// UpdateBookingMethod records a deferred payment method for a booking.
func (p *PaymentController) UpdateBookingMethod(c *fiber.Ctx) error {
	input := new(updateMethodInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.ConsultantID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid data")
	}
	return p.updateMethod(c, input, input.ConsultantID, findBooking)
}

// UpdateAppointmentMethod records a deferred payment method for an
// appointment.
func (p *PaymentController) UpdateAppointmentMethod(c *fiber.Ctx) error {
	input := new(updateMethodInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.AppointmentID == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid data")
	}
	return p.updateMethod(c, input, input.AppointmentID, findAppointment)
}

// updateMethod transitions pending → at_clinic|emi. No plan dates are
// stamped on this path; they stay null unless an online payment completes.
// The deferred states are terminal.
func (p *PaymentController) updateMethod(c *fiber.Ctx, input *updateMethodInput, externalID string, find recordFinder) error {
	if input.PaymentMethod != string(models.PaymentAtClinic) && input.PaymentMethod != string(models.PaymentEMI) {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid data")
	}

	rec, err := find(externalID)
	if err == gorm.ErrRecordNotFound {
		return utils.Fail(c, fiber.StatusNotFound, "Record not found")
	}
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	payment := rec.Payment()
	if payment.PaymentStatus != models.PaymentPending {
		return utils.Fail(c, fiber.StatusBadRequest, "Payment method can no longer be changed")
	}

	payment.PaymentMethod = input.PaymentMethod
	payment.PaymentStatus = models.PaymentStatus(input.PaymentMethod)

	if err := db.DB.Save(rec).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment method updated",
	})
}
