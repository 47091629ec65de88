package repository

import (
	"context"
	"time"

	"dataroom/internal/model"
)

// DocumentListQuery narrows a folder listing. MimeSubstrings are OR'd
// (ILIKE '%s%'); ModifiedAfter keeps rows touched at or after the cutoff.
type DocumentListQuery struct {
	FolderID       *string
	MimeSubstrings []string
	ModifiedAfter  *time.Time
}

// DocumentRepository defines data access for documents and pending-upload
// markers.
type DocumentRepository interface {
	// Create inserts a new document row and returns the stored record.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID regardless of deletion state.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// Rename updates the document name and bumps updated_at.
	Rename(ctx context.Context, id, name string) error

	// SetDeleted sets (or clears, when at is nil) the soft-delete marker.
	SetDeleted(ctx context.Context, id string, at *time.Time) error

	// ListByFolder returns live documents owned by ownerID under the folder
	// in q (nil = root), filtered per q, ordered by creation time ascending.
	ListByFolder(ctx context.Context, ownerID string, q DocumentListQuery) ([]model.Document, error)

	// ListByFolderIDs returns live documents in any of the given folders,
	// used to fill one level of folder contents in a single query.
	ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]model.Document, error)

	// NamesByFolder returns the names of all documents (deleted included)
	// under the folder, for collision pre-checks.
	NamesByFolder(ctx context.Context, ownerID string, folderID *string) ([]string, error)

	// SearchByName returns up to limit live documents whose name contains
	// the query, case-insensitively.
	SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Document, error)

	// ListDeletedBefore returns soft-deleted documents whose marker is older
	// than the cutoff, eligible for permanent removal.
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]model.Document, error)

	// HardDelete permanently removes a soft-deleted document row.
	HardDelete(ctx context.Context, id string) error

	// CreatePending records a pending-upload marker before blob transfer.
	CreatePending(ctx context.Context, p *model.PendingUpload) (*model.PendingUpload, error)

	// DeletePendingByKey removes the marker once the document row committed.
	DeletePendingByKey(ctx context.Context, objectKey string) error

	// ListPendingBefore returns stale markers older than the cutoff whose
	// blobs are considered orphaned.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]model.PendingUpload, error)
}
