package service

import "errors"

// Sentinel errors shared by the services. Handlers translate them to HTTP
// status codes; everything else is treated as an internal failure.
var (
	ErrIDRequired    = errors.New("id is required")
	ErrNameRequired  = errors.New("name is required")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrDuplicateName = errors.New("name already exists at this level")
	ErrFileTooLarge  = errors.New("file exceeds the maximum allowed size")
	ErrReaderNil     = errors.New("reader is nil")
	ErrCycleDetected = errors.New("folder hierarchy contains a cycle")
)

// authorizeOwner is the single ownership gate: every mutating operation and
// every owner-scoped read calls it before touching storage. A missing caller
// or a foreign resource both fail it.
func authorizeOwner(resourceOwnerID, callerID string) error {
	if callerID == "" || resourceOwnerID != callerID {
		return ErrUnauthorized
	}
	return nil
}
