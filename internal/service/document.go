package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"dataroom/internal/filetype"
	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

// unsafeKeyChars matches everything that may not appear in an object key
// segment derived from a user-supplied filename.
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadInput describes one file in an upload batch.
type UploadInput struct {
	OwnerID  string
	FolderID *string
	Name     string
	Size     int64
	MimeType string
	Reader   io.Reader
}

// ProgressFunc receives upload progress as bytes are transferred.
type ProgressFunc func(p model.UploadProgress)

// DocumentService covers document lifecycle: upload, rename, trash/restore,
// listing, download and preview.
type DocumentService interface {
	// Upload streams one file to object storage and records its metadata.
	// A pending-upload marker is written before the transfer so the cleanup
	// job can find orphaned blobs if the metadata write never happens. The
	// optional progress callback fires as bytes move.
	Upload(ctx context.Context, in UploadInput, onProgress ProgressFunc) (*model.Document, error)

	// Rename changes a document's name. Only the uploader may rename.
	Rename(ctx context.Context, callerID, documentID, name string) error

	// Delete soft-deletes a document; the blob stays until cleanup runs.
	Delete(ctx context.Context, callerID, documentID string) error

	// Restore clears the soft-delete marker.
	Restore(ctx context.Context, callerID, documentID string) error

	// ListByFolder returns the caller's live documents under folderID
	// (nil = root), narrowed by the filter.
	ListByFolder(ctx context.Context, callerID string, folderID *string, filter model.Filter) ([]model.Document, error)

	// NamesByFolder returns every document name under the folder, deleted
	// included, so clients can pre-check collisions before uploading.
	NamesByFolder(ctx context.Context, callerID string, folderID *string) ([]string, error)

	// ValidateUniqueNames reports whether none of the candidate names collide
	// with an existing document in the folder, case-insensitively.
	ValidateUniqueNames(ctx context.Context, callerID string, folderID *string, names []string) (bool, error)

	// Download opens the blob behind a document for streaming. The caller
	// must close the reader.
	Download(ctx context.Context, callerID, documentID string) (io.ReadCloser, storage.ObjectInfo, *model.Document, error)

	// PreviewURL returns a short-lived link for inline viewing.
	PreviewURL(ctx context.Context, callerID, documentID string) (string, error)
}

type documentService struct {
	documents   repository.DocumentRepository
	folders     repository.FolderRepository
	store       storage.Storage
	maxFileSize int64
	presignTTL  time.Duration
	now         func() time.Time
}

// NewDocumentService wires a DocumentService over the repositories and object
// store. maxFileSize bounds a single file; presignTTL is the preview link
// lifetime.
func NewDocumentService(documents repository.DocumentRepository, folders repository.FolderRepository, store storage.Storage, maxFileSize int64, presignTTL time.Duration) DocumentService {
	return &documentService{
		documents:   documents,
		folders:     folders,
		store:       store,
		maxFileSize: maxFileSize,
		presignTTL:  presignTTL,
		now:         time.Now,
	}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput, onProgress ProgressFunc) (*model.Document, error) {
	if in.OwnerID == "" {
		return nil, ErrUnauthorized
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	// Size is checked before a single byte reaches the store.
	if in.Size > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	// The destination folder must exist, be live and belong to the uploader;
	// otherwise a document could be attached to another owner's subtree.
	if in.FolderID != nil {
		folder, err := s.folders.FindByID(ctx, *in.FolderID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if err := authorizeOwner(folder.OwnerID, in.OwnerID); err != nil {
			return nil, err
		}
		if folder.DeletedAt != nil {
			return nil, ErrNotFound
		}
	}

	taken, err := s.documents.NamesByFolder(ctx, in.OwnerID, in.FolderID)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(in.Name)
	for _, n := range taken {
		if strings.ToLower(n) == lower {
			return nil, ErrDuplicateName
		}
	}

	key := fmt.Sprintf("documents/%s/%d-%s", in.OwnerID, s.now().UnixMilli(), sanitizeFileName(in.Name))

	// The marker goes in first: if the process dies between blob transfer
	// and metadata commit, cleanup finds the orphan through it.
	if _, err := s.documents.CreatePending(ctx, &model.PendingUpload{ObjectKey: key, OwnerID: in.OwnerID}); err != nil {
		return nil, fmt.Errorf("record pending upload: %w", err)
	}

	reader := in.Reader
	if onProgress != nil {
		reader = storage.NewProgressReader(in.Reader, in.Size, func(loaded, total int64) {
			var pct float64
			if total > 0 {
				pct = float64(loaded) / float64(total) * 100
			}
			onProgress(model.UploadProgress{Percentage: pct, Loaded: loaded, Total: total})
		})
	}

	if _, err := s.store.Put(ctx, key, reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.MimeType,
		Metadata:    map[string]string{"original-filename": in.Name},
	}); err != nil {
		// Nothing usable landed; drop whatever partial object exists and
		// retire the marker.
		_ = s.store.Delete(ctx, key)
		_ = s.documents.DeletePendingByKey(ctx, key)
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc, err := s.documents.Create(ctx, &model.Document{
		Name:         in.Name,
		FolderID:     in.FolderID,
		UploadedByID: in.OwnerID,
		BlobURL:      s.store.ObjectURL(key),
		BlobPathname: key,
		FileSize:     in.Size,
		MimeType:     in.MimeType,
		Version:      1,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			// The marker stays so cleanup retries the orphaned blob.
			return nil, fmt.Errorf("save document metadata: %v; rollback delete failed: %v", err, delErr)
		}
		_ = s.documents.DeletePendingByKey(ctx, key)
		return nil, fmt.Errorf("save document metadata: %w", err)
	}

	// Best effort: a leftover marker is ignored by cleanup once the document
	// row exists.
	_ = s.documents.DeletePendingByKey(ctx, key)
	return doc, nil
}

func (s *documentService) Rename(ctx context.Context, callerID, documentID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	doc, err := s.authorizedDocument(ctx, callerID, documentID)
	if err != nil {
		return err
	}
	if doc.Name == name {
		return nil
	}

	taken, err := s.documents.NamesByFolder(ctx, callerID, doc.FolderID)
	if err != nil {
		return err
	}
	lower := strings.ToLower(name)
	for _, n := range taken {
		if strings.ToLower(n) == lower {
			return ErrDuplicateName
		}
	}

	return s.documents.Rename(ctx, documentID, name)
}

func (s *documentService) Delete(ctx context.Context, callerID, documentID string) error {
	doc, err := s.authorizedDocument(ctx, callerID, documentID)
	if err != nil {
		return err
	}
	if doc.DeletedAt != nil {
		return nil
	}
	at := s.now().UTC()
	return s.documents.SetDeleted(ctx, documentID, &at)
}

func (s *documentService) Restore(ctx context.Context, callerID, documentID string) error {
	doc, err := s.authorizedDocument(ctx, callerID, documentID)
	if err != nil {
		return err
	}
	if doc.DeletedAt == nil {
		return nil
	}
	return s.documents.SetDeleted(ctx, documentID, nil)
}

func (s *documentService) ListByFolder(ctx context.Context, callerID string, folderID *string, filter model.Filter) ([]model.Document, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	q := repository.DocumentListQuery{FolderID: folderID}
	for _, dt := range filter.DocTypes {
		q.MimeSubstrings = append(q.MimeSubstrings, filetype.MimeSubstrings(dt)...)
	}
	if cutoff, ok := filter.ModifiedCutoff(s.now()); ok {
		q.ModifiedAfter = &cutoff
	}

	return s.documents.ListByFolder(ctx, callerID, q)
}

func (s *documentService) NamesByFolder(ctx context.Context, callerID string, folderID *string) ([]string, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	return s.documents.NamesByFolder(ctx, callerID, folderID)
}

func (s *documentService) ValidateUniqueNames(ctx context.Context, callerID string, folderID *string, names []string) (bool, error) {
	taken, err := s.NamesByFolder(ctx, callerID, folderID)
	if err != nil {
		return false, err
	}
	seen := make(map[string]bool, len(taken))
	for _, n := range taken {
		seen[strings.ToLower(n)] = true
	}
	for _, n := range names {
		if seen[strings.ToLower(strings.TrimSpace(n))] {
			return false, nil
		}
	}
	return true, nil
}

func (s *documentService) Download(ctx context.Context, callerID, documentID string) (io.ReadCloser, storage.ObjectInfo, *model.Document, error) {
	doc, err := s.accessibleDocument(ctx, callerID, documentID)
	if err != nil {
		return nil, storage.ObjectInfo{}, nil, err
	}
	rc, info, err := s.store.Get(ctx, doc.BlobPathname)
	if err != nil {
		return nil, storage.ObjectInfo{}, nil, fmt.Errorf("open blob: %w", err)
	}
	return rc, info, doc, nil
}

func (s *documentService) PreviewURL(ctx context.Context, callerID, documentID string) (string, error) {
	doc, err := s.accessibleDocument(ctx, callerID, documentID)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.BlobPathname, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("presign blob: %w", err)
	}
	return url, nil
}

// authorizedDocument loads a document and runs the ownership gate. Missing
// rows become ErrNotFound.
func (s *documentService) authorizedDocument(ctx context.Context, callerID, documentID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.documents.FindByID(ctx, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(doc.UploadedByID, callerID); err != nil {
		return nil, err
	}
	return doc, nil
}

// accessibleDocument is the read gate for blob access: a foreign or trashed
// document is reported as missing rather than forbidden, so existence does
// not leak across tenants.
func (s *documentService) accessibleDocument(ctx context.Context, callerID, documentID string) (*model.Document, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.documents.FindByID(ctx, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.UploadedByID != callerID || doc.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

// sanitizeFileName keeps object keys portable: anything outside
// [a-zA-Z0-9.-] becomes an underscore.
func sanitizeFileName(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}
