package utils

import "github.com/gofiber/fiber/v2"

// Fail writes the uniform error shape every endpoint returns.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
