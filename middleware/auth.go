package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// Protected guards the admin-only endpoints with the bearer credential
// issued by the admin login.
func Protected() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken := c.Locals("user")
			token, ok := userToken.(*jwt.Token)
			if !ok {
				return jwtError(c, nil)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return jwtError(c, nil)
			}

			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			if role != "admin" {
				return jwtError(c, nil)
			}

			c.Locals("adminEmail", email)
			return c.Next()
		},
	})
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Invalid or expired token",
	})
}
