package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/redis"
	"github.com/modernclinic/booking-api/utils"
)

const planCacheTTL = 10 * time.Minute

// CreatePlan creates a catalog plan. Admin only.
func CreatePlan(c *fiber.Ctx) error {
	type planInput struct {
		Type         models.PlanType     `json:"type"`
		Stage        int                 `json:"stage"`
		Title        string              `json:"title"`
		Description  string              `json:"description"`
		DurationCode models.DurationCode `json:"duration_code"`
		PriceIndia   float64             `json:"price_india"`
		PriceForeign *float64            `json:"price_foreign"`
		Features     models.Features     `json:"features"`
	}

	input := new(planInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Type == "" || input.Title == "" || input.PriceIndia <= 0 || input.Features == nil {
		return utils.Fail(c, fiber.StatusBadRequest, "type, title, prices and features are required")
	}

	// Stage only means something for hair-treatment plans.
	if input.Type == models.PlanHairTreatment && input.Stage <= 0 {
		return utils.Fail(c, fiber.StatusBadRequest, "Stage is required and must be a number for HAIR_TREATMENT plans")
	}
	if input.Type != models.PlanHairTreatment {
		input.Stage = 0
	}

	if input.Type == models.PlanGeneral {
		var existing models.Plan
		if db.DB.Where("type = ? AND is_active = ?", models.PlanGeneral, true).First(&existing).RowsAffected > 0 {
			return utils.Fail(c, fiber.StatusBadRequest, "General plan already exists")
		}
		// GENERAL is always a one-time purchase.
		input.DurationCode = models.DurationOneTime
	}

	if !input.DurationCode.Valid() {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid or missing duration_code")
	}
	if input.DurationCode == models.DurationOneTime && input.Type != models.PlanGeneral {
		return utils.Fail(c, fiber.StatusBadRequest, "ONE_TIME duration allowed only for GENERAL plan")
	}

	plan := models.Plan{
		Type:         input.Type,
		Stage:        input.Stage,
		Title:        input.Title,
		Description:  input.Description,
		DurationCode: input.DurationCode,
		PriceIndia:   input.PriceIndia,
		PriceForeign: input.PriceForeign,
		Features:     input.Features,
		IsActive:     true,
	}

	if err := db.DB.Create(&plan).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	invalidatePlanCache()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Plan created successfully",
		"plan":    plan,
	})
}

// GetPlans lists active plans with optional type/stage/region filters.
// Responses are cached per filter key.
func GetPlans(c *fiber.Ctx) error {
	planType := c.Query("type")
	stage := c.Query("stage")
	region := c.Query("region")

	cacheKey := fmt.Sprintf("plans:%s:%s:%s", planType, stage, region)
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, cacheKey).Result(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(cached)
		}
	}

	query := db.DB.Where("is_active = ?", true)
	if planType != "" {
		query = query.Where("type = ?", planType)
	}
	if stage != "" && planType == string(models.PlanHairTreatment) {
		if s, err := strconv.Atoi(stage); err == nil {
			query = query.Where("stage = ?", s)
		}
	}

	// Only an explicit India region is labelled india; an absent region is
	// reported as foreign but does not narrow the listing.
	userType := models.UserTypeForeign
	if region == string(models.RegionIndia) {
		userType = models.UserTypeIndia
	}
	if region != "" && region != string(models.RegionIndia) {
		// Foreign visitors only see plans they can actually buy.
		query = query.Where("price_foreign IS NOT NULL")
	}

	var plans []models.Plan
	if err := query.Order("duration_code").Find(&plans).Error; err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	response := fiber.Map{
		"success":   true,
		"user_type": userType,
		"count":     len(plans),
		"plans":     plans,
	}

	if redis.Client != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := redis.Client.Set(redis.Ctx, cacheKey, payload, planCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache plan listing: %v", err)
			}
		}
	}

	return c.JSON(response)
}

// invalidatePlanCache drops every cached plan listing after a catalog write.
func invalidatePlanCache() {
	if redis.Client == nil {
		return
	}
	keys, err := redis.Client.Keys(redis.Ctx, "plans:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := redis.Client.Del(redis.Ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate plan cache: %v", err)
	}
}
