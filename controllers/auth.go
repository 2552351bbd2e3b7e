package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/models"
	"github.com/modernclinic/booking-api/utils"
)

// AdminLogin authenticates the clinic admin and issues the bearer token the
// protected endpoints require.
func AdminLogin(c *fiber.Ctx) error {
	type loginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Email == "" || input.Password == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var admin models.Admin
	if db.DB.Where("email = ?", strings.ToLower(input.Email)).First(&admin).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !admin.ComparePassword(input.Password) {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	claims := jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return utils.Fail(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   tokenString,
		"admin": fiber.Map{
			"id":    admin.ID,
			"email": admin.Email,
			"role":  admin.Role,
		},
	})
}
