package service

import (
	"context"
	"fmt"
	"time"

	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

// CleanupError records one document the cleanup pass could not remove.
type CleanupError struct {
	DocumentID string `json:"documentId"`
	Error      string `json:"error"`
}

// CleanupResult summarizes one cleanup pass.
type CleanupResult struct {
	DeletedCount  int            `json:"deletedCount"`
	ErrorCount    int            `json:"errorCount"`
	PendingPurged int            `json:"pendingPurged"`
	Errors        []CleanupError `json:"errors,omitempty"`
	Message       string         `json:"message"`
}

// CleanupService permanently removes expired soft-deleted documents and
// orphaned pending-upload blobs.
type CleanupService interface {
	// Run performs one cleanup pass. Per-document failures are collected in
	// the result instead of aborting the pass.
	Run(ctx context.Context) (*CleanupResult, error)
}

type cleanupService struct {
	documents  repository.DocumentRepository
	store      storage.Storage
	retention  time.Duration
	pendingTTL time.Duration
	now        func() time.Time
}

// NewCleanupService wires a CleanupService. retention is how long trashed
// documents survive; pendingTTL is how long an unpromoted upload marker may
// live before its blob counts as orphaned.
func NewCleanupService(documents repository.DocumentRepository, store storage.Storage, retention, pendingTTL time.Duration) CleanupService {
	return &cleanupService{
		documents:  documents,
		store:      store,
		retention:  retention,
		pendingTTL: pendingTTL,
		now:        time.Now,
	}
}

func (s *cleanupService) Run(ctx context.Context) (*CleanupResult, error) {
	now := s.now().UTC()
	result := &CleanupResult{}

	expired, err := s.documents.ListDeletedBefore(ctx, now.Add(-s.retention))
	if err != nil {
		return nil, fmt.Errorf("list expired documents: %w", err)
	}

	for _, doc := range expired {
		// A missing blob is not fatal; the row must still go.
		if err := s.store.Delete(ctx, doc.BlobPathname); err != nil {
			result.Errors = append(result.Errors, CleanupError{DocumentID: doc.ID, Error: fmt.Sprintf("delete blob: %v", err)})
			result.ErrorCount++
			continue
		}
		if err := s.documents.HardDelete(ctx, doc.ID); err != nil {
			result.Errors = append(result.Errors, CleanupError{DocumentID: doc.ID, Error: fmt.Sprintf("delete row: %v", err)})
			result.ErrorCount++
			continue
		}
		result.DeletedCount++
	}

	stale, err := s.documents.ListPendingBefore(ctx, now.Add(-s.pendingTTL))
	if err != nil {
		return nil, fmt.Errorf("list stale pending uploads: %w", err)
	}
	for _, p := range stale {
		if err := s.store.Delete(ctx, p.ObjectKey); err != nil {
			result.Errors = append(result.Errors, CleanupError{DocumentID: p.ID, Error: fmt.Sprintf("delete orphaned blob: %v", err)})
			result.ErrorCount++
			continue
		}
		if err := s.documents.DeletePendingByKey(ctx, p.ObjectKey); err != nil {
			result.Errors = append(result.Errors, CleanupError{DocumentID: p.ID, Error: fmt.Sprintf("delete marker: %v", err)})
			result.ErrorCount++
			continue
		}
		result.PendingPurged++
	}

	result.Message = fmt.Sprintf("cleanup removed %d expired document(s) and %d orphaned upload(s), %d error(s)",
		result.DeletedCount, result.PendingPurged, result.ErrorCount)
	return result, nil
}
