package handler

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"dataroom/internal/http/middleware"
	"dataroom/internal/model"
	"dataroom/internal/service"
)

type createFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parentFolderId"`
}

func (r createFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (r renameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
	)
}

// FolderMetadata returns one folder with its immediate children and
// documents. Without a folderId query the response is JSON null, which
// clients use for the root view.
func FolderMetadata(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Query("folderId")
		if folderID == "" {
			return c.JSON(nil)
		}

		node, err := svc.Metadata(c.UserContext(), middleware.UserID(c), folderID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(node)
	}
}

// CreateFolder creates a folder under the optional parent.
func CreateFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}

		folder, err := svc.Create(c.UserContext(), middleware.UserID(c), req.Name, req.ParentFolderID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(folder)
	}
}

// RenameFolder updates a folder's name.
func RenameFolder(svc service.FolderService) fiber.Handler {
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

// DeleteFolder soft-deletes a folder and its whole subtree.
func DeleteFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// RestoreFolder brings back a soft-deleted folder and the contents removed
// with it.
func RestoreFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Restore(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// FolderPath returns the breadcrumb trail for a folder.
func FolderPath(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Query("folderId")
		if folderID == "" {
			return c.JSON([]model.PathEntry{})
		}

		trail, err := svc.Path(c.UserContext(), middleware.UserID(c), folderID)
		if err != nil {
			return writeServiceError(c, err)
		}
		if trail == nil {
			trail = []model.PathEntry{}
		}
		return c.JSON(trail)
	}
}

// GetStorage returns the dashboard view: folders and documents under the
// given parent, narrowed by type and period filters. A type filter suppresses
// the folder listing since folders have no document type.
func GetStorage(folderSvc service.FolderService, docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		folderID := optionalQuery(c, "folderId")
		filter := model.Filter{
			DocTypes: splitCSV(c.Query("docTypes")),
			Periods:  splitCSV(c.Query("periods")),
		}

		folders := []model.FolderNode{}
		if len(filter.DocTypes) == 0 {
			var err error
			folders, err = folderSvc.ListByParent(c.UserContext(), userID, folderID, filter)
			if err != nil {
				return writeServiceError(c, err)
			}
		}

		documents, err := docSvc.ListByFolder(c.UserContext(), userID, folderID, filter)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(fiber.Map{
			"folders":   folders,
			"documents": documents,
		})
	}
}

// optionalQuery returns a pointer to the query value, or nil when absent.
func optionalQuery(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// splitCSV parses a comma-separated query value into trimmed parts.
func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
