package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// CreateCoupon creates a coupon. Admin only.
func CreateCoupon(c *fiber.Ctx) error {
	type couponInput struct {
		Code          string              `json:"code"`
		DiscountType  models.DiscountType `json:"discount_type"`
		DiscountValue float64             `json:"discount_value"`
		ExpiryDate    time.Time           `json:"expiry_date"`
		UsageLimit    *int                `json:"usage_limit"`
		Description   string              `json:"description"`
	}

	input := new(couponInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Code == "" || input.DiscountType == "" || input.DiscountValue == 0 || input.ExpiryDate.IsZero() {
		return utils.Fail(c, fiber.StatusBadRequest, "code, discount_type, discount_value, and expiry_date are required")
	}

	if input.DiscountType != models.DiscountPercentage && input.DiscountType != models.DiscountFixed {
		return utils.Fail(c, fiber.StatusBadRequest, "discount_type must be percentage or fixed")
	}
	if input.DiscountType == models.DiscountPercentage && (input.DiscountValue < 0 || input.DiscountValue > 100) {
		return utils.Fail(c, fiber.StatusBadRequest, "Percentage discount must be between 0 and 100")
	}
	if input.DiscountType == models.DiscountFixed && input.DiscountValue < 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "Fixed discount must be positive")
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))

	var existing models.Coupon
	if db.DB.Where("code = ?", code).First(&existing).RowsAffected > 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "Coupon code already exists")
	}

	coupon := models.Coupon{
		Code:          code,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		ExpiryDate:    input.ExpiryDate,
		UsageLimit:    input.UsageLimit,
		Description:   input.Description,
		IsActive:      true,
	}

	if err := db.DB.Create(&coupon).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Coupon created successfully",
		"coupon":  coupon,
	})
}

// GetCoupons lists every coupon, newest first. Admin only.
func GetCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := db.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"success": true,
		"coupons": coupons,
	})
}

// UpdateCoupon updates a coupon. The code itself is immutable. Admin only.
func UpdateCoupon(c *fiber.Ctx) error {
	id := c.Params("id")

	updates := make(map[string]interface{})
	if err := c.BodyParser(&updates); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	delete(updates, "code")

	if dt, ok := updates["discount_type"].(string); ok {
		if dt != string(models.DiscountPercentage) && dt != string(models.DiscountFixed) {
			return utils.Fail(c, fiber.StatusBadRequest, "discount_type must be percentage or fixed")
		}
	}

	var coupon models.Coupon
	if err := db.DB.First(&coupon, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Fail(c, fiber.StatusNotFound, "Coupon not found")
		}
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := db.DB.Model(&coupon).Updates(updates).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Coupon updated successfully",
		"coupon":  coupon,
	})
}

// DeleteCoupon deletes a coupon. Admin only.
func DeleteCoupon(c *fiber.Ctx) error {
	id := c.Params("id")

	var coupon models.Coupon
	if db.DB.First(&coupon, id).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusNotFound, "Coupon not found")
	}

	if err := db.DB.Delete(&coupon).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Coupon deleted successfully",
	})
}

// ApplyCoupon quotes a discounted total for a plan selection. Nothing is
// persisted and the usage count is untouched; usage is charged when the
// payment actually completes.
func ApplyCoupon(c *fiber.Ctx) error {
	type applyInput struct {
		CouponCode    string          `json:"couponCode"`
		SelectedPlans []planSelection `json:"selectedPlans"`
		UserType      models.UserType `json:"userType"`
	}

	input := new(applyInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.CouponCode == "" || len(input.SelectedPlans) == 0 || input.UserType == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "couponCode, selectedPlans (array), and userType are required")
	}

	snapshots, totalAmount, reqErr := priceSelection(input.SelectedPlans, input.UserType)
	if reqErr != nil {
		return utils.Fail(c, reqErr.status, reqErr.message)
	}

	coupon, reqErr := resolveCoupon(input.CouponCode, time.Now())
	if reqErr != nil {
		return utils.Fail(c, reqErr.status, reqErr.message)
	}

	discount := coupon.Discount(totalAmount)
	finalAmount := totalAmount - discount

	plansData := make([]fiber.Map, 0, len(snapshots))
	for _, snapshot := range snapshots {
		plansData = append(plansData, fiber.Map{
			"plan_id": snapshot.PlanID,
			"title":   snapshot.Title,
			"amount":  snapshot.Amount,
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"totalAmount":   totalAmount,
		"discount":      discount,
		"finalAmount":   finalAmount,
		"couponCode":    coupon.Code,
		"discountType":  coupon.DiscountType,
		"discountValue": coupon.DiscountValue,
		"plansData":     plansData,
	})
}
