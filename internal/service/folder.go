package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// maxPathDepth bounds the breadcrumb walk; hierarchies this deep only occur
// when parent links are corrupt.
const maxPathDepth = 64

// FolderService covers folder lifecycle and navigation.
type FolderService interface {
	// Create makes a new folder under parentID (nil = root) for the caller.
	// Sibling names must be unique among live folders.
	Create(ctx context.Context, callerID, name string, parentID *string) (*model.Folder, error)

	// Rename changes a folder's name. Only the owner may rename.
	Rename(ctx context.Context, callerID, folderID, name string) error

	// Delete soft-deletes the folder and everything beneath it.
	Delete(ctx context.Context, callerID, folderID string) error

	// Restore brings back a soft-deleted folder together with the contents
	// removed in the same cascade.
	Restore(ctx context.Context, callerID, folderID string) error

	// ListByParent returns the caller's live folders directly under parentID,
	// each augmented with one level of children and documents.
	ListByParent(ctx context.Context, callerID string, parentID *string, filter model.Filter) ([]model.FolderNode, error)

	// Metadata returns one folder with its immediate children and documents.
	Metadata(ctx context.Context, callerID, folderID string) (*model.FolderNode, error)

	// Path returns the breadcrumb trail from the root down to folderID. The
	// trail is truncated at the first missing or foreign ancestor; a cycle in
	// the parent links is an error.
	Path(ctx context.Context, callerID, folderID string) ([]model.PathEntry, error)
}

type folderService struct {
	folders   repository.FolderRepository
	documents repository.DocumentRepository
	now       func() time.Time
}

// NewFolderService wires a FolderService over the given repositories.
func NewFolderService(folders repository.FolderRepository, documents repository.DocumentRepository) FolderService {
	return &folderService{folders: folders, documents: documents, now: time.Now}
}

func (s *folderService) Create(ctx context.Context, callerID, name string, parentID *string) (*model.Folder, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if parentID != nil {
		parent, err := s.folders.FindByID(ctx, *parentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if err := authorizeOwner(parent.OwnerID, callerID); err != nil {
			return nil, err
		}
		if parent.DeletedAt != nil {
			return nil, ErrNotFound
		}
	}

	existing, err := s.folders.FindByNameAndParent(ctx, callerID, name, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	return s.folders.Create(ctx, &model.Folder{
		Name:           name,
		ParentFolderID: parentID,
		OwnerID:        callerID,
	})
}

func (s *folderService) Rename(ctx context.Context, callerID, folderID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	f, err := s.authorizedFolder(ctx, callerID, folderID)
	if err != nil {
		return err
	}
	if f.Name == name {
		return nil
	}

	dup, err := s.folders.FindByNameAndParent(ctx, callerID, name, f.ParentFolderID)
	if err != nil {
		return err
	}
	if dup != nil && dup.ID != f.ID {
		return ErrDuplicateName
	}

	return s.folders.Rename(ctx, folderID, name)
}

func (s *folderService) Delete(ctx context.Context, callerID, folderID string) error {
	f, err := s.authorizedFolder(ctx, callerID, folderID)
	if err != nil {
		return err
	}
	if f.DeletedAt != nil {
		return nil
	}
	return s.folders.SoftDeleteSubtree(ctx, callerID, folderID, s.now().UTC())
}

func (s *folderService) Restore(ctx context.Context, callerID, folderID string) error {
	f, err := s.authorizedFolder(ctx, callerID, folderID)
	if err != nil {
		return err
	}
	if f.DeletedAt == nil {
		return nil
	}
	return s.folders.RestoreSubtree(ctx, callerID, folderID)
}

func (s *folderService) ListByParent(ctx context.Context, callerID string, parentID *string, filter model.Filter) ([]model.FolderNode, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	var modifiedAfter *time.Time
	if cutoff, ok := filter.ModifiedCutoff(s.now()); ok {
		modifiedAfter = &cutoff
	}

	folders, err := s.folders.ListByParent(ctx, callerID, parentID, modifiedAfter)
	if err != nil {
		return nil, err
	}
	return s.buildNodes(ctx, callerID, folders)
}

func (s *folderService) Metadata(ctx context.Context, callerID, folderID string) (*model.FolderNode, error) {
	f, err := s.authorizedFolder(ctx, callerID, folderID)
	if err != nil {
		return nil, err
	}
	if f.DeletedAt != nil {
		return nil, ErrNotFound
	}

	nodes, err := s.buildNodes(ctx, callerID, []model.Folder{*f})
	if err != nil {
		return nil, err
	}
	return &nodes[0], nil
}

func (s *folderService) Path(ctx context.Context, callerID, folderID string) ([]model.PathEntry, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}
	if folderID == "" {
		return nil, ErrIDRequired
	}

	visited := make(map[string]bool)
	var trail []model.PathEntry

	next := &folderID
	for next != nil {
		if visited[*next] || len(visited) >= maxPathDepth {
			return nil, ErrCycleDetected
		}
		visited[*next] = true

		f, err := s.folders.FindByID(ctx, *next)
		if errors.Is(err, sql.ErrNoRows) {
			break
		}
		if err != nil {
			return nil, err
		}
		if f.OwnerID != callerID {
			break
		}

		trail = append(trail, model.PathEntry{ID: f.ID, Name: f.Name})
		next = f.ParentFolderID
	}

	// Walked leaf to root; the breadcrumb reads root to leaf.
	for i, j := 0, len(trail)-1; i < j; i, j = i+1, j-1 {
		trail[i], trail[j] = trail[j], trail[i]
	}
	return trail, nil
}

// authorizedFolder loads a folder and runs the ownership gate. Missing rows
// become ErrNotFound.
func (s *folderService) authorizedFolder(ctx context.Context, callerID, folderID string) (*model.Folder, error) {
	if folderID == "" {
		return nil, ErrIDRequired
	}
	f, err := s.folders.FindByID(ctx, folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(f.OwnerID, callerID); err != nil {
		return nil, err
	}
	return f, nil
}

// buildNodes augments folders with one level of children and documents using
// two batched queries instead of a query per folder.
func (s *folderService) buildNodes(ctx context.Context, callerID string, folders []model.Folder) ([]model.FolderNode, error) {
	nodes := make([]model.FolderNode, len(folders))
	if len(folders) == 0 {
		return nodes, nil
	}

	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
		nodes[i] = model.FolderNode{Folder: f, Children: []model.Folder{}, Documents: []model.Document{}}
	}

	children, err := s.folders.ListByParentIDs(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByFolderIDs(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.FolderNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}
	for _, c := range children {
		if c.ParentFolderID == nil {
			continue
		}
		if n, ok := byID[*c.ParentFolderID]; ok {
			n.Children = append(n.Children, c)
		}
	}
	for _, d := range docs {
		if d.FolderID == nil {
			continue
		}
		if n, ok := byID[*d.FolderID]; ok {
			n.Documents = append(n.Documents, d)
		}
	}

	return nodes, nil
}
