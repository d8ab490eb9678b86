package service

import (
	"context"
	"html/template"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// DefaultPerPage is the page size used when a caller does not supply one.
const DefaultPerPage = 10

// DocumentRepository defines the interface for database operations on documents.
type DocumentRepository interface {
	List(ctx context.Context, filter data.DocumentFilter, page, perPage int) ([]*data.Document, int64, error)
	GetByID(ctx context.Context, id int64) (*data.Document, error)
}

// DocumentPage is one page of a document listing plus pagination totals.
// BaseQuery holds extra query parameters (category filter, search term) that
// pagination links append, so the active filter survives page navigation.
type DocumentPage struct {
	Items      []*data.Document
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
	BaseQuery  template.URL
}

// HasPrev reports whether an earlier page exists.
func (p *DocumentPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *DocumentPage) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number.
func (p *DocumentPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the next page number.
func (p *DocumentPage) NextPage() int { return p.Page + 1 }

// DocumentService provides the paginated, optionally filtered document listing.
type DocumentService struct {
	repo DocumentRepository
}

// NewDocumentService creates a new DocumentService with the given repository.
func NewDocumentService(repo DocumentRepository) *DocumentService {
	return &DocumentService{repo: repo}
}

// ListDocuments returns one page of documents matching the optional category and
// search filters. The page number is 1-based; values below 1 are clamped to the
// first page, and a page past the end yields an empty page rather than an error.
func (s *DocumentService) ListDocuments(ctx context.Context, page, perPage int, categoryID *int64, search string) (*DocumentPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	items, total, err := s.repo.List(ctx, data.DocumentFilter{CategoryID: categoryID, Search: search}, page, perPage)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return &DocumentPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

// GetDocument retrieves a single document including its binary content.
func (s *DocumentService) GetDocument(ctx context.Context, id int64) (*data.Document, error) {
	return s.repo.GetByID(ctx, id)
}
