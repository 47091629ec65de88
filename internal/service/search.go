package service

import (
	"context"
	"strings"

	"dataroom/internal/filetype"
	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// searchResultCap bounds each result category; the search box shows a short
// list, not a full listing.
const searchResultCap = 10

// SearchService finds the caller's folders and documents by name.
type SearchService interface {
	// Search returns up to ten folder hits and ten file hits for the query.
	// A blank query returns empty results without touching the database.
	Search(ctx context.Context, callerID, query string) (*model.SearchResults, error)
}

type searchService struct {
	folders   repository.FolderRepository
	documents repository.DocumentRepository
}

// NewSearchService wires a SearchService over the given repositories.
func NewSearchService(folders repository.FolderRepository, documents repository.DocumentRepository) SearchService {
	return &searchService{folders: folders, documents: documents}
}

func (s *searchService) Search(ctx context.Context, callerID, query string) (*model.SearchResults, error) {
	if callerID == "" {
		return nil, ErrUnauthorized
	}

	results := &model.SearchResults{Folders: []model.Folder{}, Files: []model.SearchFile{}}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	folders, err := s.folders.SearchByName(ctx, callerID, query, searchResultCap)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.SearchByName(ctx, callerID, query, searchResultCap)
	if err != nil {
		return nil, err
	}

	results.Folders = append(results.Folders, folders...)
	for _, d := range docs {
		results.Files = append(results.Files, model.SearchFile{
			Document: d,
			Type:     filetype.Label(d.MimeType),
			Size:     d.FileSize,
		})
	}
	return results, nil
}
