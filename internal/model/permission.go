package model

import "time"

// Permission is the access level granted on a document.
type Permission string

const (
	PermissionView     Permission = "view"
	PermissionDownload Permission = "download"
	PermissionComment  Permission = "comment"
	PermissionEdit     Permission = "edit"
	PermissionDelete   Permission = "delete"
)

// DocumentPermission links a document to a user with a permission level.
// The table is part of the schema but no user-facing flow grants or checks
// these rows yet.
type DocumentPermission struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"documentId"`
	UserID     string     `json:"userId"`
	Permission Permission `json:"permission"`
	GrantedAt  time.Time  `json:"grantedAt"`
}
