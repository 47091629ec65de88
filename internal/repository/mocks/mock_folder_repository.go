package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dataroom/internal/model"
)

// MockFolderRepository is a testify mock of repository.FolderRepository.
type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.(*model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) FindByNameAndParent(ctx context.Context, ownerID, name string, parentID *string) (*model.Folder, error) {
	args := m.Called(ctx, ownerID, name, parentID)
	if v := args.Get(0); v != nil {
		return v.(*model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) Rename(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockFolderRepository) SoftDeleteSubtree(ctx context.Context, ownerID, folderID string, at time.Time) error {
	args := m.Called(ctx, ownerID, folderID, at)
	return args.Error(0)
}

func (m *MockFolderRepository) RestoreSubtree(ctx context.Context, ownerID, folderID string) error {
	args := m.Called(ctx, ownerID, folderID)
	return args.Error(0)
}

func (m *MockFolderRepository) ListByParent(ctx context.Context, ownerID string, parentID *string, modifiedAfter *time.Time) ([]model.Folder, error) {
	args := m.Called(ctx, ownerID, parentID, modifiedAfter)
	if v := args.Get(0); v != nil {
		return v.([]model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) ListByParentIDs(ctx context.Context, ownerID string, parentIDs []string) ([]model.Folder, error) {
	args := m.Called(ctx, ownerID, parentIDs)
	if v := args.Get(0); v != nil {
		return v.([]model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFolderRepository) SearchByName(ctx context.Context, ownerID, query string, limit int) ([]model.Folder, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]model.Folder), args.Error(1)
	}
	return nil, args.Error(1)
}
