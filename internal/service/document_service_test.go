//go:build unit

package service

import (
	"context"
	"testing"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// mockDocumentRepository records the arguments of the last List call and
// returns a canned page.
type mockDocumentRepository struct {
	lastFilter  data.DocumentFilter
	lastPage    int
	lastPerPage int
	items       []*data.Document
	total       int64
}

func (m *mockDocumentRepository) List(ctx context.Context, filter data.DocumentFilter, page, perPage int) ([]*data.Document, int64, error) {
	m.lastFilter = filter
	m.lastPage = page
	m.lastPerPage = perPage
	return m.items, m.total, nil
}

func (m *mockDocumentRepository) GetByID(ctx context.Context, id int64) (*data.Document, error) {
	return nil, data.ErrDocumentNotFound
}

func TestDocumentService_ListDocuments_ClampsPage(t *testing.T) {
	repo := &mockDocumentRepository{}
	svc := NewDocumentService(repo)

	page, err := svc.ListDocuments(context.Background(), 0, 0, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastPage != 1 {
		t.Errorf("expected page clamped to 1, repository saw %d", repo.lastPage)
	}
	if repo.lastPerPage != DefaultPerPage {
		t.Errorf("expected default page size %d, repository saw %d", DefaultPerPage, repo.lastPerPage)
	}
	if page.Page != 1 {
		t.Errorf("expected reported page 1, got %d", page.Page)
	}
}

func TestDocumentService_ListDocuments_PassesFilter(t *testing.T) {
	repo := &mockDocumentRepository{}
	svc := NewDocumentService(repo)

	categoryID := int64(3)
	if _, err := svc.ListDocuments(context.Background(), 2, 4, &categoryID, "resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.CategoryID == nil || *repo.lastFilter.CategoryID != 3 {
		t.Errorf("category filter not forwarded: %+v", repo.lastFilter)
	}
	if repo.lastFilter.Search != "resume" {
		t.Errorf("search filter not forwarded: %q", repo.lastFilter.Search)
	}
	if repo.lastPage != 2 || repo.lastPerPage != 4 {
		t.Errorf("expected page=2 perPage=4, repository saw page=%d perPage=%d", repo.lastPage, repo.lastPerPage)
	}
}

func TestDocumentService_ListDocuments_Totals(t *testing.T) {
	repo := &mockDocumentRepository{total: 9}
	svc := NewDocumentService(repo)

	page, err := svc.ListDocuments(context.Background(), 1, 4, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages for 9 items at 4 per page, got %d", page.TotalPages)
	}
	if page.HasPrev() {
		t.Error("first page must not report a previous page")
	}
	if !page.HasNext() {
		t.Error("first of three pages must report a next page")
	}

	last, err := svc.ListDocuments(context.Background(), 3, 4, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.HasNext() {
		t.Error("last page must not report a next page")
	}
	if !last.HasPrev() || last.PrevPage() != 2 {
		t.Error("last page must link back to page 2")
	}
}
