package handler

import (
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/http/middleware"
	"dataroom/internal/service"
)

// SearchStorage finds the caller's folders and documents by name. A blank
// query returns empty results rather than an error.
func SearchStorage(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		results, err := svc.Search(c.UserContext(), middleware.UserID(c), c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(results)
	}
}
