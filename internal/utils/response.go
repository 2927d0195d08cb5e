package utils

import "github.com/gofiber/fiber/v2"

// JSONSuccess writes the standard success envelope.
func JSONSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

// JSONError writes the standard failure envelope. The message is the only
// detail exposed to the client.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}

// JSONMessage writes a success envelope carrying only a human-readable message.
func JSONMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "message": msg})
}
