package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrDocumentNotFound is returned when no document matches the requested id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentFilter narrows a document listing. Zero values mean "no filter".
type DocumentFilter struct {
	CategoryID *int64
	Search     string
}

// DocumentRepository handles database operations for documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns one page of documents plus the total matching count.
// The blob column is not selected; use GetByID to load content.
// Rows are ordered by id so paging is stable. An out-of-range page
// yields an empty slice and no error.
func (r *DocumentRepository) List(ctx context.Context, filter DocumentFilter, page, perPage int) ([]*Document, int64, error) {
	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)
	if filter.CategoryID != nil {
		where = append(where, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Search != "" {
		where = append(where, "LOWER(document_filename) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM documents" + clause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := "SELECT id, document_filename, category_id, upl_date FROM documents" + clause +
		" ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, perPage, (page-1)*perPage)

	var documents []*Document
	if err := r.db.SelectContext(ctx, &documents, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, total, nil
}

// GetByID retrieves a single document, including its binary content.
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*Document, error) {
	var document Document
	query := `SELECT id, document_filename, document, category_id, upl_date FROM documents WHERE id = ?`
	if err := r.db.GetContext(ctx, &document, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document by id: %w", err)
	}
	return &document, nil
}

// Create inserts a new document and returns its id.
func (r *DocumentRepository) Create(ctx context.Context, document *Document) (int64, error) {
	query := `INSERT INTO documents (document_filename, document, category_id) VALUES (:document_filename, :document, :category_id)`
	res, err := r.db.NamedExecContext(ctx, query, document)
	if err != nil {
		return 0, fmt.Errorf("failed to create document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted document id: %w", err)
	}
	return id, nil
}

// Update rewrites the filename, content, and category of an existing document.
func (r *DocumentRepository) Update(ctx context.Context, document *Document) error {
	query := `UPDATE documents SET document_filename = :document_filename, document = :document, category_id = :category_id WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, document)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document by its id.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
