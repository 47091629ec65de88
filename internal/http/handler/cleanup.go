package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/service"
)

// CleanupCron runs the retention pass that permanently removes expired
// trashed documents and orphaned upload blobs. When a secret is configured
// the caller must present it as a bearer token; the scheduler is the only
// intended client.
func CleanupCron(svc service.CleanupService, secret string, enforceSecret bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if enforceSecret {
			token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
			if !ok || secret == "" || token != secret {
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
			}
		}

		result, err := svc.Run(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"result":    result,
		})
	}
}
