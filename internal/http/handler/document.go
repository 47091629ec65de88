package handler

import (
	"math"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/http/middleware"
	"dataroom/internal/service"
)

// RenameDocument updates a document's name.
func RenameDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}

		if err := svc.Rename(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Name); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeleteDocument moves a document to the trash. The blob stays in object
// storage until the cleanup job permanently removes it.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// RestoreDocument takes a document back out of the trash.
func RestoreDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Restore(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DocumentNames lists every document name in a folder so clients can check
// for collisions before starting an upload.
func DocumentNames(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := svc.NamesByFolder(c.UserContext(), middleware.UserID(c), optionalQuery(c, "folderId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		if names == nil {
			names = []string{}
		}
		return c.JSON(fiber.Map{"names": names})
	}
}

type validateNamesRequest struct {
	FolderID *string  `json:"folderId"`
	Names    []string `json:"names"`
}

func (r validateNamesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Names, validation.Required),
	)
}

// ValidateNames reports whether the candidate file names are all free in the
// target folder.
func ValidateNames(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validateNamesRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "NAMES_REQUIRED", "names are required")
		}

		ok, err := svc.ValidateUniqueNames(c.UserContext(), middleware.UserID(c), req.FolderID, req.Names)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"valid": ok})
	}
}

// PreviewDocument returns a short-lived URL for inline viewing.
func PreviewDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.PreviewURL(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DownloadDocument streams a document's blob as an attachment. Headers force
// a save dialog and stop browsers from sniffing the payload.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
		}

		rc, info, doc, err := svc.Download(c.UserContext(), middleware.UserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		encoded := url.PathEscape(doc.Name)
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		c.Set(fiber.HeaderContentDisposition,
			`attachment; filename="`+encoded+`"; filename*=UTF-8''`+encoded)
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")

		// Size only fits the sized stream path when it survives the int
		// conversion; on 32-bit platforms large blobs fall back to chunked.
		if info.Size > 0 && info.Size <= math.MaxInt {
			c.Set(fiber.HeaderContentLength, strconv.FormatInt(info.Size, 10))
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}
