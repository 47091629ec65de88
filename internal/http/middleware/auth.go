package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/auth"
)

// UserIDLocalKey is the key used to store the authenticated user ID in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// Auth guards a route group with bearer-token authentication. The verified
// subject is stored in locals under UserIDLocalKey; requests without a valid
// token are rejected before any handler runs.
func Auth(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.ErrUnauthorized
		}

		userID, err := verifier.Verify(c.UserContext(), token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID set by Auth, or "" when the
// request is unauthenticated.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
