package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// MockDocumentRepository is a testify mock of repository.DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if v := args.Get(0); v != nil {
		return v.(*model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) Rename(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockDocumentRepository) SetDeleted(ctx context.Context, id string, at *time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByFolder(ctx context.Context, ownerID string, q repository.DocumentListQuery) ([]model.Document, error) {
	args := m.Called(ctx, ownerID, q)
	if v := args.Get(0); v != nil {
		return v.([]model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) ListByFolderIDs(ctx context.Context, ownerID string, folderIDs []string) ([]model.Document, error) {
	args := m.Called(ctx, ownerID, folderIDs)
	if v := args.Get(0); v != nil {
		return v.([]model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) NamesByFolder(ctx context.Context, ownerID string, folderID *string) ([]string, error) {
	args := m.Called(ctx, ownerID, folderID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Document, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]model.Document, error) {
	args := m.Called(ctx, cutoff)
	if v := args.Get(0); v != nil {
		return v.([]model.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) HardDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) CreatePending(ctx context.Context, p *model.PendingUpload) (*model.PendingUpload, error) {
	args := m.Called(ctx, p)
	if v := args.Get(0); v != nil {
		return v.(*model.PendingUpload), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentRepository) DeletePendingByKey(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]model.PendingUpload, error) {
	args := m.Called(ctx, cutoff)
	if v := args.Get(0); v != nil {
		return v.([]model.PendingUpload), args.Error(1)
	}
	return nil, args.Error(1)
}
