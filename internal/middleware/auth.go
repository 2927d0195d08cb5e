package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docfinder/internal/utils"
)

// UserIDKey is the fiber.Ctx locals key the auth middleware populates.
const UserIDKey = "userID"

// RequireAuth verifies the bearer token and stores the user id in locals.
// Every failure mode maps to a 401 with the standard envelope.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "No token provided")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "No token provided")
		}

		userID, err := utils.VerifyToken(parts[1], secret)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
