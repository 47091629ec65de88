package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

const documentColumns = "id, name, folder_id, uploaded_by_id, blob_url, blob_pathname, " +
	"file_size, mime_type, version, previous_version_id, deleted_at, created_at, updated_at"

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.FolderID,
		&d.UploadedByID,
		&d.BlobURL,
		&d.BlobPathname,
		&d.FileSize,
		&d.MimeType,
		&d.Version,
		&d.PreviousVersionID,
		&d.DeletedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (name, folder_id, uploaded_by_id, blob_url, blob_pathname, file_size, mime_type, version, previous_version_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.Name,
		doc.FolderID,
		doc.UploadedByID,
		doc.BlobURL,
		doc.BlobPathname,
		doc.FileSize,
		doc.MimeType,
		doc.Version,
		doc.PreviousVersionID,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// Rename updates the document name.
func (r *DocumentPostgres) Rename(ctx context.Context, id, name string) error {
	const q = `UPDATE documents SET name = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetDeleted stamps or clears the soft-delete marker.
func (r *DocumentPostgres) SetDeleted(ctx context.Context, id string, at *time.Time) error {
	const q = `UPDATE documents SET deleted_at = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByFolder returns live documents under a folder, oldest first.
// MIME filters are OR'd; the modified cutoff is inclusive.
func (r *DocumentPostgres) ListByFolder(ctx context.Context, ownerID string, q repository.DocumentListQuery) ([]model.Document, error) {
	sqlQ := `SELECT ` + documentColumns + ` FROM documents
		WHERE uploaded_by_id = $1 AND deleted_at IS NULL AND `
	args := []any{ownerID}

	if q.FolderID == nil {
		sqlQ += "folder_id IS NULL"
	} else {
		args = append(args, *q.FolderID)
		sqlQ += fmt.Sprintf("folder_id = $%d", len(args))
	}

	if len(q.MimeSubstrings) > 0 {
		clauses := make([]string, 0, len(q.MimeSubstrings))
		for _, sub := range q.MimeSubstrings {
			args = append(args, "%"+sub+"%")
			clauses = append(clauses, fmt.Sprintf("mime_type ILIKE $%d", len(args)))
		}
		sqlQ += " AND (" + strings.Join(clauses, " OR ") + ")"
	}

	if q.ModifiedAfter != nil {
		args = append(args, *q.ModifiedAfter)
		sqlQ += fmt.Sprintf(" AND updated_at >= $%d", len(args))
	}

	sqlQ += " ORDER BY created_at ASC"

	return r.queryDocuments(ctx, sqlQ, args...)
}

// ListByFolderIDs fetches one level of documents for a batch of folders.
func (r *DocumentPostgres) ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]model.Document, error) {
	if len(folderIDs) == 0 {
		return []model.Document{}, nil
	}

	placeholders := make([]string, len(folderIDs))
	args := []any{ownerID}
	for i, id := range folderIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	q := `SELECT ` + documentColumns + ` FROM documents
		WHERE uploaded_by_id = $1 AND deleted_at IS NULL
		AND folder_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY created_at ASC`

	return r.queryDocuments(ctx, q, args...)
}

// NamesByFolder lists document names for the collision pre-check. Deleted
// rows are included on purpose: their blobs still occupy the namespace until
// cleanup runs.
func (r *DocumentPostgres) NamesByFolder(ctx context.Context, ownerID string, folderID *string) ([]string, error) {
	q := `SELECT name FROM documents WHERE uploaded_by_id = $1 AND `
	args := []any{ownerID}
	if folderID == nil {
		q += "folder_id IS NULL"
	} else {
		q += "folder_id = $2"
		args = append(args, *folderID)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// SearchByName matches live document names case-insensitively.
func (r *DocumentPostgres) SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents
		WHERE uploaded_by_id = $1 AND deleted_at IS NULL AND name ILIKE $2
		ORDER BY name ASC
		LIMIT $3`
	return r.queryDocuments(ctx, q, ownerID, "%"+escapeLike(query)+"%", limit)
}

// ListDeletedBefore returns soft-deleted rows old enough for permanent removal.
func (r *DocumentPostgres) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
		ORDER BY deleted_at ASC`
	return r.queryDocuments(ctx, q, cutoff)
}

// HardDelete permanently removes a document row. The deleted_at predicate
// keeps a concurrent restore from losing the row.
func (r *DocumentPostgres) HardDelete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1 AND deleted_at IS NOT NULL`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// CreatePending records a pending-upload marker.
func (r *DocumentPostgres) CreatePending(ctx context.Context, p *model.PendingUpload) (*model.PendingUpload, error) {
	const q = `
		INSERT INTO pending_uploads (object_key, owner_id)
		VALUES ($1, $2)
		RETURNING id, object_key, owner_id, created_at`
	var out model.PendingUpload
	if err := r.db.QueryRowContext(ctx, q, p.ObjectKey, p.OwnerID).Scan(
		&out.ID,
		&out.ObjectKey,
		&out.OwnerID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePendingByKey removes a marker after promotion (or rollback).
func (r *DocumentPostgres) DeletePendingByKey(ctx context.Context, objectKey string) error {
	const q = `DELETE FROM pending_uploads WHERE object_key = $1`
	_, err := r.db.ExecContext(ctx, q, objectKey)
	return err
}

// ListPendingBefore returns stale markers whose blob never became a
// document. Markers matching a committed document's pathname are leftovers
// from a failed best-effort delete, not orphans, so they are excluded here.
func (r *DocumentPostgres) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]model.PendingUpload, error) {
	const q = `SELECT id, object_key, owner_id, created_at FROM pending_uploads
		WHERE created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM documents d WHERE d.blob_pathname = pending_uploads.object_key)
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PendingUpload, 0)
	for rows.Next() {
		var p model.PendingUpload
		if err := rows.Scan(&p.ID, &p.ObjectKey, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
