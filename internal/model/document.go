package model

import "time"

// Document represents a stored file: a metadata row pointing at a blob in
// object storage. This is a pure domain model with no database-specific
// dependencies or tags; it can be used across layers (HTTP, service,
// storage) without coupling to persistence.
//
// Version and PreviousVersionID are persisted but no mutation path advances
// them past their defaults; re-uploads do not create version chains.
type Document struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	FolderID          *string    `json:"folderId"`
	UploadedByID      string     `json:"uploadedById"`
	BlobURL           string     `json:"blobUrl"`
	BlobPathname      string     `json:"blobPathname"`
	FileSize          int64      `json:"fileSize"`
	MimeType          string     `json:"mimeType"`
	Version           int        `json:"version"`
	PreviousVersionID *string    `json:"previousVersionId"`
	DeletedAt         *time.Time `json:"deletedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PendingUpload marks a blob transfer that has started but whose document
// row has not been written yet. Stale markers identify orphaned blobs for
// the cleanup job.
type PendingUpload struct {
	ID        string    `json:"id"`
	ObjectKey string    `json:"objectKey"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
