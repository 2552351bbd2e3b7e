package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
)

type planSelection struct {
	PlanID uint `json:"planId"`
}

type requestError struct {
	status  int
	message string
}

// priceSelection resolves every selected plan against the catalog and sums
// the region-appropriate amounts. All-or-nothing: one unresolvable plan or
// one missing foreign price fails the whole selection. The returned
// snapshots pin title, type, duration and amount so later catalog edits do
// not retroactively change this order.
func priceSelection(selections []planSelection, userType models.UserType) ([]models.SelectedPlan, float64, *requestError) {
	if len(selections) == 0 {
		return nil, 0, &requestError{fiber.StatusBadRequest, "selectedPlans must not be empty"}
	}
	if !userType.Valid() {
		return nil, 0, &requestError{fiber.StatusBadRequest, "Invalid userType. Allowed: india | foreign"}
	}

	var total float64
	snapshots := make([]models.SelectedPlan, 0, len(selections))

	for _, selected := range selections {
		var plan models.Plan
		err := db.DB.Where("is_active = ?", true).First(&plan, selected.PlanID).Error
		if err == gorm.ErrRecordNotFound {
			return nil, 0, &requestError{fiber.StatusNotFound, fmt.Sprintf("Plan not found: %d", selected.PlanID)}
		}
		if err != nil {
			return nil, 0, &requestError{fiber.StatusInternalServerError, err.Error()}
		}

		amount, err := plan.PriceFor(userType)
		if err != nil {
			return nil, 0, &requestError{fiber.StatusBadRequest, fmt.Sprintf("Foreign price not available for plan: %s", plan.Title)}
		}

		total += amount
		snapshots = append(snapshots, models.SelectedPlan{
			PlanID:       plan.ID,
			Title:        plan.Title,
			Type:         plan.Type,
			DurationCode: plan.DurationCode,
			Amount:       amount,
		})
	}

	return snapshots, total, nil
}

// resolveCoupon looks up an active coupon by normalized code and checks
// expiry and the usage limit.
func resolveCoupon(code string, now time.Time) (*models.Coupon, *requestError) {
	var coupon models.Coupon
	err := db.DB.Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).First(&coupon).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &requestError{fiber.StatusBadRequest, "Invalid coupon code"}
	}
	if err != nil {
		return nil, &requestError{fiber.StatusInternalServerError, err.Error()}
	}

	if coupon.Expired(now) {
		return nil, &requestError{fiber.StatusBadRequest, "Coupon has expired"}
	}
	if coupon.LimitReached() {
		return nil, &requestError{fiber.StatusBadRequest, "Coupon usage limit exceeded"}
	}

	return &coupon, nil
}
