package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// Folders are soft-deleted only: no query here ever issues a DELETE against
// the folders table.
const folderColumns = "id, name, parent_folder_id, owner_id, created_at, updated_at, deleted_at"

// subtreeDepthLimit bounds the recursive cascade walk so a corrupt parent
// cycle terminates instead of recursing forever.
const subtreeDepthLimit = 64

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*model.Folder, error) {
	var f model.Folder
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.ParentFolderID,
		&f.OwnerID,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO folders (name, parent_folder_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + folderColumns
	row := r.db.QueryRowContext(ctx, q, f.Name, f.ParentFolderID, f.OwnerID)
	return scanFolder(row)
}

// FindByID fetches a single folder by its ID.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	const q = `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// FindByNameAndParent looks up a live sibling by name. Root-level NULL
// parents need their own query shape, so the predicate is assembled here.
func (r *FolderPostgres) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*model.Folder, error) {
	q := `SELECT ` + folderColumns + ` FROM folders
		WHERE owner_id = $1 AND name = $2 AND deleted_at IS NULL AND `
	args := []any{ownerID, name}
	if parentID == nil {
		q += "parent_folder_id IS NULL"
	} else {
		q += "parent_folder_id = $3"
		args = append(args, *parentID)
	}

	f, err := scanFolder(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Rename updates the folder name.
func (r *FolderPostgres) Rename(ctx context.Context, id, name string) error {
	const q = `UPDATE folders SET name = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// subtreeCTE selects the IDs of a folder and all its descendants, bounded by
// subtreeDepthLimit levels.
var subtreeCTE = fmt.Sprintf(`
	WITH RECURSIVE subtree(id, depth) AS (
		SELECT id, 1 FROM folders WHERE id = $1 AND owner_id = $2
		UNION ALL
		SELECT f.id, s.depth + 1
		FROM folders f
		JOIN subtree s ON f.parent_folder_id = s.id
		WHERE s.depth < %d
	)`, subtreeDepthLimit)

// SoftDeleteSubtree marks the subtree deleted in one transaction: first the
// folders, then every document living in one of them. Both updates stamp the
// same instant so a later restore can tell this cascade apart from rows
// trashed earlier.
func (r *FolderPostgres) SoftDeleteSubtree(ctx context.Context, ownerID, folderID string, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qFolders := subtreeCTE + `
		UPDATE folders SET deleted_at = $3, updated_at = $3
		WHERE id IN (SELECT id FROM subtree) AND deleted_at IS NULL`
	res, err := tx.ExecContext(ctx, qFolders, folderID, ownerID, at)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	qDocuments := subtreeCTE + `
		UPDATE documents SET deleted_at = $3, updated_at = $3
		WHERE folder_id IN (SELECT id FROM subtree)
		AND uploaded_by_id = $2 AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, qDocuments, folderID, ownerID, at); err != nil {
		return err
	}

	return tx.Commit()
}

// RestoreSubtree clears deletion markers stamped by the cascade that removed
// folderID. Rows soft-deleted at a different instant are left alone.
func (r *FolderPostgres) RestoreSubtree(ctx context.Context, ownerID, folderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var stamp sql.NullTime
	const qStamp = `SELECT deleted_at FROM folders WHERE id = $1 AND owner_id = $2`
	if err := tx.QueryRowContext(ctx, qStamp, folderID, ownerID).Scan(&stamp); err != nil {
		return err
	}
	if !stamp.Valid {
		// Already live; restoring again is a no-op.
		return tx.Commit()
	}

	qFolders := subtreeCTE + `
		UPDATE folders SET deleted_at = NULL, updated_at = now()
		WHERE id IN (SELECT id FROM subtree) AND deleted_at = $3`
	if _, err := tx.ExecContext(ctx, qFolders, folderID, ownerID, stamp.Time); err != nil {
		return err
	}

	qDocuments := subtreeCTE + `
		UPDATE documents SET deleted_at = NULL, updated_at = now()
		WHERE folder_id IN (SELECT id FROM subtree)
		AND uploaded_by_id = $2 AND deleted_at = $3`
	if _, err := tx.ExecContext(ctx, qDocuments, folderID, ownerID, stamp.Time); err != nil {
		return err
	}

	return tx.Commit()
}

// ListByParent returns live folders directly under parentID.
func (r *FolderPostgres) ListByParent(ctx context.Context, ownerID string, parentID *string, modifiedAfter *time.Time) ([]model.Folder, error) {
	q := `SELECT ` + folderColumns + ` FROM folders
		WHERE owner_id = $1 AND deleted_at IS NULL AND `
	args := []any{ownerID}
	if parentID == nil {
		q += "parent_folder_id IS NULL"
	} else {
		args = append(args, *parentID)
		q += fmt.Sprintf("parent_folder_id = $%d", len(args))
	}
	if modifiedAfter != nil {
		args = append(args, *modifiedAfter)
		q += fmt.Sprintf(" AND updated_at >= $%d", len(args))
	}
	q += " ORDER BY name ASC"

	return r.queryFolders(ctx, q, args...)
}

// ListByParentIDs fetches one level of children for a batch of folders.
func (r *FolderPostgres) ListByParentIDs(ctx context.Context, ownerID string, parentIDs []string) ([]model.Folder, error) {
	if len(parentIDs) == 0 {
		return []model.Folder{}, nil
	}

	placeholders := make([]string, len(parentIDs))
	args := []any{ownerID}
	for i, id := range parentIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	q := `SELECT ` + folderColumns + ` FROM folders
		WHERE owner_id = $1 AND deleted_at IS NULL
		AND parent_folder_id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY name ASC`

	return r.queryFolders(ctx, q, args...)
}

// SearchByName matches live folder names case-insensitively.
func (r *FolderPostgres) SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Folder, error) {
	const q = `SELECT ` + folderColumns + ` FROM folders
		WHERE owner_id = $1 AND deleted_at IS NULL AND name ILIKE $2
		ORDER BY name ASC
		LIMIT $3`
	return r.queryFolders(ctx, q, ownerID, "%"+escapeLike(query)+"%", limit)
}

// likeEscaper neutralizes LIKE metacharacters so a query of "%" or "_"
// matches those characters literally instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *FolderPostgres) queryFolders(ctx context.Context, q string, args ...any) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
