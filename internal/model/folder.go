package model

import "time"

// Folder is a node in a user's storage hierarchy.
// This is a pure domain model with no database-specific dependencies or tags.
// A nil ParentFolderID means the folder lives at the root level; a non-nil
// DeletedAt marks the folder soft-deleted and hides it from listings until
// restored.
type Folder struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ParentFolderID *string    `json:"parentFolderId"`
	OwnerID        string     `json:"ownerId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}

// FolderNode is a folder augmented with its immediate children and documents.
// Listings return one level of nesting so the UI can show per-folder item
// counts without issuing extra queries.
type FolderNode struct {
	Folder
	Children  []Folder   `json:"children"`
	Documents []Document `json:"documents"`
}

// PathEntry is one hop of a breadcrumb trail, ordered root to leaf.
type PathEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
