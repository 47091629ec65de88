package repository

import (
	"context"
	"time"

	"dataroom/internal/model"
)

// FolderRepository defines data access for folders using SQL queries only.
//
// Listing methods are owner-scoped and exclude soft-deleted rows. Subtree
// mutations run both folder and document updates inside one transaction so
// a cascade is never half-applied.
type FolderRepository interface {
	// Create inserts a new folder row. ID and timestamps come from database
	// defaults; the stored row is returned.
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)

	// FindByID returns a folder by its ID regardless of deletion state.
	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// FindByNameAndParent returns the live folder with the given name under
	// parentID (nil = root) for the owner, or nil when absent.
	FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*model.Folder, error)

	// Rename updates the folder name and bumps updated_at.
	Rename(ctx context.Context, id, name string) error

	// SoftDeleteSubtree marks the folder and every descendant folder and
	// document as deleted at the given instant, in one transaction. The
	// recursive walk is depth-bounded so a corrupt cycle cannot hang it.
	SoftDeleteSubtree(ctx context.Context, ownerID, folderID string, at time.Time) error

	// RestoreSubtree clears the deletion marker on the folder and on every
	// descendant row that was deleted in the same cascade (matching
	// deleted_at). Rows trashed separately beforehand stay deleted.
	RestoreSubtree(ctx context.Context, ownerID, folderID string) error

	// ListByParent returns live folders owned by ownerID directly under
	// parentID (nil = root), optionally modified at or after the cutoff.
	ListByParent(ctx context.Context, ownerID string, parentID *string, modifiedAfter *time.Time) ([]model.Folder, error)

	// ListByParentIDs returns live folders whose parent is any of parentIDs,
	// used to fill one level of children in a single query.
	ListByParentIDs(ctx context.Context, ownerID string, parentIDs []string) ([]model.Folder, error)

	// SearchByName returns up to limit live folders whose name contains the
	// query, case-insensitively.
	SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Folder, error)
}
