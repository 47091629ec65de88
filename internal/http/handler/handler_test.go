package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dataroom/internal/model"
	"dataroom/internal/service"
	serviceMocks "dataroom/internal/service/mocks"
	"dataroom/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// asUser injects an authenticated user the way the auth middleware would.
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func strPtr(s string) *string { return &s }

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateFolder(t *testing.T) {
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Post("/api/folder", asUser("user-1"), CreateFolder(mockSvc))

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "user-1", "Reports", (*string)(nil)).
			Return(&model.Folder{ID: "f-1", Name: "Reports", OwnerID: "user-1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/folder", strings.NewReader(`{"name":"Reports"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body model.Folder
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "f-1", body.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "user-1", "Reports", (*string)(nil)).
			Return(nil, service.ErrDuplicateName).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/folder", strings.NewReader(`{"name":"Reports"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "DUPLICATE_NAME", body.Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/folder", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFolderMetadata(t *testing.T) {
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Get("/api/folder", asUser("user-1"), FolderMetadata(mockSvc))

	t.Run("returns node", func(t *testing.T) {
		node := &model.FolderNode{
			Folder:    model.Folder{ID: "f-1", Name: "Reports"},
			Children:  []model.Folder{},
			Documents: []model.Document{},
		}
		mockSvc.On("Metadata", mock.Anything, "user-1", "f-1").Return(node, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/folder?folderId=f-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body model.FolderNode
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Reports", body.Name)
	})

	t.Run("no folder id yields null", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/folder", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "null", strings.TrimSpace(string(b)))
	})

	t.Run("foreign folder is not found", func(t *testing.T) {
		mockSvc.On("Metadata", mock.Anything, "user-1", "foreign").
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/folder?folderId=foreign", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestFolderLifecycle(t *testing.T) {
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Patch("/api/folder/:id", asUser("user-1"), RenameFolder(mockSvc))
	app.Delete("/api/folder/:id", asUser("user-1"), DeleteFolder(mockSvc))
	app.Post("/api/folder/:id/restore", asUser("user-1"), RestoreFolder(mockSvc))

	t.Run("rename", func(t *testing.T) {
		mockSvc.On("Rename", mock.Anything, "user-1", "f-1", "New").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/folder/f-1", strings.NewReader(`{"name":"New"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "user-1", "f-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/folder/f-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("restore", func(t *testing.T) {
		mockSvc.On("Restore", mock.Anything, "user-1", "f-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/folder/f-1/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("foreign folder is unauthorized", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "user-1", "foreign").
			Return(service.ErrUnauthorized).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/folder/foreign", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestFolderPath(t *testing.T) {
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Get("/api/folder/path", asUser("user-1"), FolderPath(mockSvc))

	t.Run("returns breadcrumb", func(t *testing.T) {
		mockSvc.On("Path", mock.Anything, "user-1", "leaf").
			Return([]model.PathEntry{{ID: "root", Name: "Root"}, {ID: "leaf", Name: "Leaf"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/folder/path?folderId=leaf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var trail []model.PathEntry
		json.NewDecoder(resp.Body).Decode(&trail)
		assert.Len(t, trail, 2)
		assert.Equal(t, "Root", trail[0].Name)
	})

	t.Run("no folder id yields empty trail", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/folder/path", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", strings.TrimSpace(string(b)))
	})
}

func TestGetStorage(t *testing.T) {
	t.Run("lists folders and documents", func(t *testing.T) {
		folderSvc := new(serviceMocks.MockFolderService)
		docSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/api/storage", asUser("user-1"), GetStorage(folderSvc, docSvc))

		folderSvc.On("ListByParent", mock.Anything, "user-1", (*string)(nil), model.Filter{}).
			Return([]model.FolderNode{{Folder: model.Folder{ID: "f-1"}}}, nil).Once()
		docSvc.On("ListByFolder", mock.Anything, "user-1", (*string)(nil), model.Filter{}).
			Return([]model.Document{{ID: "d-1"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/storage", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Folders   []model.FolderNode `json:"folders"`
			Documents []model.Document   `json:"documents"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Folders, 1)
		assert.Len(t, body.Documents, 1)
	})

	t.Run("type filter suppresses folders", func(t *testing.T) {
		folderSvc := new(serviceMocks.MockFolderService)
		docSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/api/storage", asUser("user-1"), GetStorage(folderSvc, docSvc))

		docSvc.On("ListByFolder", mock.Anything, "user-1", (*string)(nil),
			model.Filter{DocTypes: []string{"pdf"}}).
			Return([]model.Document{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/storage?docTypes=pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		folderSvc.AssertNotCalled(t, "ListByParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDocumentLifecycle(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Patch("/api/document/:id", asUser("user-1"), RenameDocument(mockSvc))
	app.Delete("/api/document/:id", asUser("user-1"), DeleteDocument(mockSvc))
	app.Post("/api/document/:id/restore", asUser("user-1"), RestoreDocument(mockSvc))

	t.Run("rename", func(t *testing.T) {
		mockSvc.On("Rename", mock.Anything, "user-1", "d-1", "new.pdf").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/api/document/d-1", strings.NewReader(`{"name":"new.pdf"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete then restore", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "user-1", "d-1").Return(nil).Once()
		mockSvc.On("Restore", mock.Anything, "user-1", "d-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/document/d-1", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(http.MethodPost, "/api/document/d-1/restore", nil)
		resp, _ = app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing document", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, "user-1", "nope").Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/document/nope", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDocumentNames(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/names", asUser("user-1"), DocumentNames(mockSvc))

	mockSvc.On("NamesByFolder", mock.Anything, "user-1", strPtr("f-1")).
		Return([]string{"a.pdf", "b.pdf"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/documents/names?folderId=f-1", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Names []string `json:"names"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, body.Names)
}

func TestValidateNames(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/documents/validate-names", asUser("user-1"), ValidateNames(mockSvc))

	t.Run("all free", func(t *testing.T) {
		mockSvc.On("ValidateUniqueNames", mock.Anything, "user-1", (*string)(nil), []string{"a.pdf"}).
			Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/validate-names",
			strings.NewReader(`{"names":["a.pdf"]}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body["valid"])
	})

	t.Run("empty names rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/validate-names", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPreviewDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/document/:id/preview", asUser("user-1"), PreviewDocument(mockSvc))

	mockSvc.On("PreviewURL", mock.Anything, "user-1", "d-1").
		Return("http://minio.local/presigned", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/document/d-1/preview", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "http://minio.local/presigned", body["url"])
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/download", asUser("user-1"), DownloadDocument(mockSvc))

	t.Run("streams with attachment headers", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "user-1", "d-1").
			Return(io.NopCloser(strings.NewReader("payload")),
				storage.ObjectInfo{Size: 7},
				&model.Document{ID: "d-1", Name: "Q1 report.pdf"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/download?id=d-1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, fiber.MIMEOctetStream, resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "UTF-8''")
		assert.Equal(t, "no-cache", resp.Header.Get(fiber.HeaderCacheControl))
		assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))

		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "payload", string(b))
	})

	t.Run("unknown length streams without Content-Length", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "user-1", "d-2").
			Return(io.NopCloser(strings.NewReader("chunked body")),
				storage.ObjectInfo{Size: 0},
				&model.Document{ID: "d-2", Name: "huge.bin"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/download?id=d-2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "chunked body", string(b))
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/download", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("foreign document reads as missing", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, "user-1", "foreign").
			Return(nil, storage.ObjectInfo{}, nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/download?id=foreign", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSearchStorage(t *testing.T) {
	mockSvc := new(serviceMocks.MockSearchService)
	app := fiber.New()
	app.Get("/api/search", asUser("user-1"), SearchStorage(mockSvc))

	mockSvc.On("Search", mock.Anything, "user-1", "report").
		Return(&model.SearchResults{
			Folders: []model.Folder{{ID: "f-1", Name: "Reports"}},
			Files:   []model.SearchFile{},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=report", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body model.SearchResults
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Len(t, body.Folders, 1)
}

func TestCleanupCron(t *testing.T) {
	t.Run("secret enforced", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/cron/cleanup", CleanupCron(mockSvc, "s3cret", true))

		req := httptest.NewRequest(http.MethodPost, "/api/cron/cleanup", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		req = httptest.NewRequest(http.MethodPost, "/api/cron/cleanup", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer wrong")
		resp, _ = app.Test(req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		mockSvc.On("Run", mock.Anything).
			Return(&service.CleanupResult{DeletedCount: 2, Message: "cleanup removed 2 expired document(s) and 0 orphaned upload(s), 0 error(s)"}, nil).Once()

		req = httptest.NewRequest(http.MethodPost, "/api/cron/cleanup", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer s3cret")
		resp, _ = app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool                   `json:"success"`
			Result  *service.CleanupResult `json:"result"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, 2, body.Result.DeletedCount)
	})

	t.Run("secret not enforced outside production", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/cron/cleanup", CleanupCron(mockSvc, "", false))

		mockSvc.On("Run", mock.Anything).Return(&service.CleanupResult{}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/cron/cleanup", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestUploadDocuments(t *testing.T) {
	newUploadRequest := func(t *testing.T, fieldAndFiles map[string]string) *http.Request {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for name, content := range fieldAndFiles {
			fw, err := mw.CreateFormFile("files", name)
			require.NoError(t, err)
			fw.Write([]byte(content))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
		return req
	}

	t.Run("streams success and done events", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/api/upload", asUser("user-1"), UploadDocuments(mockSvc, 10))

		mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.OwnerID == "user-1" && in.Name == "a.pdf"
		}), mock.Anything).Return(&model.Document{ID: "d-1", Name: "a.pdf"}, nil).Once()

		resp, err := app.Test(newUploadRequest(t, map[string]string{"a.pdf": "content"}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get(fiber.HeaderContentType))

		b, _ := io.ReadAll(resp.Body)
		body := string(b)
		assert.Contains(t, body, `"type":"success"`)
		assert.Contains(t, body, `"fileName":"a.pdf"`)
		assert.Contains(t, body, `"type":"done"`)
		assert.Contains(t, body, `"succeeded":1`)
	})

	t.Run("per-file failure does not abort the batch", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/api/upload", asUser("user-1"), UploadDocuments(mockSvc, 10))

		mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Name == "good.pdf"
		}), mock.Anything).Return(&model.Document{ID: "d-1"}, nil).Once()
		mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Name == "dup.pdf"
		}), mock.Anything).Return(nil, service.ErrDuplicateName).Once()

		resp, err := app.Test(newUploadRequest(t, map[string]string{
			"good.pdf": "data",
			"dup.pdf":  "data",
		}), -1)
		require.NoError(t, err)

		b, _ := io.ReadAll(resp.Body)
		body := string(b)
		assert.Contains(t, body, `"type":"success"`)
		assert.Contains(t, body, "a file with this name already exists")
		assert.Contains(t, body, `"succeeded":1`)
		assert.Contains(t, body, `"failed":1`)
	})

	t.Run("too many files", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/api/upload", asUser("user-1"), UploadDocuments(mockSvc, 1))

		resp, _ := app.Test(newUploadRequest(t, map[string]string{
			"a.pdf": "x",
			"b.pdf": "y",
		}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no files", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/api/upload", asUser("user-1"), UploadDocuments(mockSvc, 10))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("folderId", "f-1")
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
