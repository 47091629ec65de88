package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"dataroom/internal/model"
	"dataroom/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentCols = []string{
	"id", "name", "folder_id", "uploaded_by_id", "blob_url", "blob_pathname",
	"file_size", "mime_type", "version", "previous_version_id", "deleted_at",
	"created_at", "updated_at",
}

func docRow(id, name string, folderID *string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(documentCols).
		AddRow(id, name, folderID, "user-1", "http://blob/"+id, "documents/user-1/"+name,
			2097152, "application/pdf", 1, nil, nil, now, now)
}

func newDocumentRepo(t *testing.T) (*DocumentPostgres, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewDocumentPostgres(db), mock, func() { db.Close() }
}

func TestDocumentPostgres_Create(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()

	doc := &model.Document{
		Name:         "q1.pdf",
		UploadedByID: "user-1",
		BlobURL:      "http://blob/doc-id",
		BlobPathname: "documents/user-1/q1.pdf",
		FileSize:     2097152,
		MimeType:     "application/pdf",
		Version:      1,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Name, nil, doc.UploadedByID, doc.BlobURL, doc.BlobPathname,
			doc.FileSize, doc.MimeType, doc.Version, nil).
		WillReturnRows(docRow("doc-id", "q1.pdf", nil))

	got, err := repo.Create(context.Background(), doc)

	assert.NoError(t, err)
	assert.Equal(t, "doc-id", got.ID)
	assert.Equal(t, int64(2097152), got.FileSize)
	assert.Equal(t, 1, got.Version)
	assert.Nil(t, got.PreviousVersionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-id").
			WillReturnRows(docRow("doc-id", "q1.pdf", nil))

		doc, err := repo.FindByID(context.Background(), "doc-id")
		assert.NoError(t, err)
		assert.Equal(t, "doc-id", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_SetDeleted(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()

	t.Run("soft delete stamps marker", func(t *testing.T) {
		at := time.Now().UTC()
		mock.ExpectExec("UPDATE documents SET deleted_at").
			WithArgs("doc-id", &at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetDeleted(context.Background(), "doc-id", &at))
	})

	t.Run("restore clears marker", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET deleted_at").
			WithArgs("doc-id", nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetDeleted(context.Background(), "doc-id", nil))
	})

	t.Run("missing row maps to ErrNoRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents SET deleted_at").
			WithArgs("missing", nil).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetDeleted(context.Background(), "missing", nil), sql.ErrNoRows)
	})
}

func TestDocumentPostgres_ListByFolder(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()
	ctx := context.Background()

	t.Run("root listing excludes deleted and orders by creation", func(t *testing.T) {
		mock.ExpectQuery("deleted_at IS NULL AND folder_id IS NULL(.+)ORDER BY created_at ASC").
			WithArgs("user-1").
			WillReturnRows(docRow("doc-id", "q1.pdf", nil))

		got, err := repo.ListByFolder(ctx, "user-1", repository.DocumentListQuery{})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("mime substrings are OR'd", func(t *testing.T) {
		mock.ExpectQuery("mime_type ILIKE (.+) OR mime_type ILIKE").
			WithArgs("user-1", "folder-id", "%excel%", "%spreadsheet%").
			WillReturnRows(sqlmock.NewRows(documentCols))

		got, err := repo.ListByFolder(ctx, "user-1", repository.DocumentListQuery{
			FolderID:       strPtr("folder-id"),
			MimeSubstrings: []string{"excel", "spreadsheet"},
		})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("modified cutoff adds predicate", func(t *testing.T) {
		cutoff := time.Now().Add(-30 * 24 * time.Hour)
		mock.ExpectQuery("updated_at >= ?").
			WithArgs("user-1", cutoff).
			WillReturnRows(sqlmock.NewRows(documentCols))

		got, err := repo.ListByFolder(ctx, "user-1", repository.DocumentListQuery{ModifiedAfter: &cutoff})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDocumentPostgres_NamesByFolder(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()

	rows := sqlmock.NewRows([]string{"name"}).AddRow("q1.pdf").AddRow("q2.pdf")
	mock.ExpectQuery("SELECT name FROM documents").
		WithArgs("user-1", "folder-id").
		WillReturnRows(rows)

	names, err := repo.NamesByFolder(context.Background(), "user-1", strPtr("folder-id"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"q1.pdf", "q2.pdf"}, names)
}

func TestDocumentPostgres_CleanupQueries(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()
	ctx := context.Background()

	t.Run("list deleted before cutoff", func(t *testing.T) {
		cutoff := time.Now().UTC()
		stale := time.Now().Add(-time.Hour)
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-id", "old.pdf", nil, "user-1", "http://blob/doc-id", "documents/user-1/old.pdf",
				100, "application/pdf", 1, nil, stale, stale, stale)

		mock.ExpectQuery("deleted_at IS NOT NULL AND deleted_at < ?").
			WithArgs(cutoff).
			WillReturnRows(rows)

		got, err := repo.ListDeletedBefore(ctx, cutoff)
		assert.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].DeletedAt)
	})

	t.Run("hard delete keeps live rows safe", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = (.+) AND deleted_at IS NOT NULL").
			WithArgs("doc-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.HardDelete(ctx, "doc-id"))
	})
}

func TestDocumentPostgres_Pending(t *testing.T) {
	repo, mock, done := newDocumentRepo(t)
	defer done()
	ctx := context.Background()

	t.Run("create marker", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "object_key", "owner_id", "created_at"}).
			AddRow("pending-id", "documents/user-1/1-q1.pdf", "user-1", time.Now())

		mock.ExpectQuery("INSERT INTO pending_uploads").
			WithArgs("documents/user-1/1-q1.pdf", "user-1").
			WillReturnRows(rows)

		p, err := repo.CreatePending(ctx, &model.PendingUpload{
			ObjectKey: "documents/user-1/1-q1.pdf",
			OwnerID:   "user-1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "pending-id", p.ID)
	})

	t.Run("delete marker by key", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM pending_uploads WHERE object_key").
			WithArgs("documents/user-1/1-q1.pdf").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeletePendingByKey(ctx, "documents/user-1/1-q1.pdf"))
	})

	t.Run("list stale markers", func(t *testing.T) {
		cutoff := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "object_key", "owner_id", "created_at"}).
			AddRow("pending-id", "documents/user-1/1-q1.pdf", "user-1", cutoff.Add(-48*time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM pending_uploads").
			WithArgs(cutoff).
			WillReturnRows(rows)

		got, err := repo.ListPendingBefore(ctx, cutoff)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
