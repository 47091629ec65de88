package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"dataroom/internal/model"
	"dataroom/internal/service"
	"dataroom/internal/storage"
)

// MockFolderService is a testify mock of service.FolderService.
type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) Create(ctx context.Context, callerID, name string, parentID *string) (*model.Folder, error) {
	args := m.Called(ctx, callerID, name, parentID)
	if v := args.Get(0); v != nil {
		return v.(*model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) Rename(ctx context.Context, callerID, folderID, name string) error {
	args := m.Called(ctx, callerID, folderID, name)
	return args.Error(0)
}

func (m *MockFolderService) Delete(ctx context.Context, callerID, folderID string) error {
	args := m.Called(ctx, callerID, folderID)
	return args.Error(0)
}

func (m *MockFolderService) Restore(ctx context.Context, callerID, folderID string) error {
	args := m.Called(ctx, callerID, folderID)
	return args.Error(0)
}

func (m *MockFolderService) ListByParent(ctx context.Context, callerID string, parentID *string, filter model.Filter) ([]model.FolderNode, error) {
	args := m.Called(ctx, callerID, parentID, filter)
	if v := args.Get(0); v != nil {
		return v.([]model.FolderNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) Metadata(ctx context.Context, callerID, folderID string) (*model.FolderNode, error) {
	args := m.Called(ctx, callerID, folderID)
	if v := args.Get(0); v != nil {
		return v.(*model.FolderNode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderService) Path(ctx context.Context, callerID, folderID string) ([]model.PathEntry, error) {
	args := m.Called(ctx, callerID, folderID)
	if v := args.Get(0); v != nil {
		return v.([]model.PathEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDocumentService is a testify mock of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, in service.UploadInput, onProgress service.ProgressFunc) (*model.Document, error) {
	args := m.Called(ctx, in, onProgress)
	if v := args.Get(0); v != nil {
		return v.(*model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Rename(ctx context.Context, callerID, documentID, name string) error {
	args := m.Called(ctx, callerID, documentID, name)
	return args.Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, callerID, documentID string) error {
	args := m.Called(ctx, callerID, documentID)
	return args.Error(0)
}

func (m *MockDocumentService) Restore(ctx context.Context, callerID, documentID string) error {
	args := m.Called(ctx, callerID, documentID)
	return args.Error(0)
}

func (m *MockDocumentService) ListByFolder(ctx context.Context, callerID string, folderID *string, filter model.Filter) ([]model.Document, error) {
	args := m.Called(ctx, callerID, folderID, filter)
	if v := args.Get(0); v != nil {
		return v.([]model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) NamesByFolder(ctx context.Context, callerID string, folderID *string) ([]string, error) {
	args := m.Called(ctx, callerID, folderID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) ValidateUniqueNames(ctx context.Context, callerID string, folderID *string, names []string) (bool, error) {
	args := m.Called(ctx, callerID, folderID, names)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, callerID, documentID string) (io.ReadCloser, storage.ObjectInfo, *model.Document, error) {
	args := m.Called(ctx, callerID, documentID)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	var doc *model.Document
	if v := args.Get(2); v != nil {
		doc = v.(*model.Document)
	}
	return rc, args.Get(1).(storage.ObjectInfo), doc, args.Error(3)
}

func (m *MockDocumentService) PreviewURL(ctx context.Context, callerID, documentID string) (string, error) {
	args := m.Called(ctx, callerID, documentID)
	return args.String(0), args.Error(1)
}

// MockSearchService is a testify mock of service.SearchService.
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, callerID, query string) (*model.SearchResults, error) {
	args := m.Called(ctx, callerID, query)
	if v := args.Get(0); v != nil {
		return v.(*model.SearchResults), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCleanupService is a testify mock of service.CleanupService.
type MockCleanupService struct {
	mock.Mock
}

func (m *MockCleanupService) Run(ctx context.Context) (*service.CleanupResult, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*service.CleanupResult), args.Error(1)
	}
	return nil, args.Error(1)
}
