package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves all categories ordered by id.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	err := r.db.SelectContext(ctx, &categories, "SELECT c_id, category FROM categories ORDER BY c_id")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID finds a category by its id. Not found yields a nil category, not an error.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.db.GetContext(ctx, &category, "SELECT c_id, category FROM categories WHERE c_id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &category, nil
}

// Create inserts a new category and returns its id.
func (r *CategoryRepository) Create(ctx context.Context, category *Category) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, "INSERT INTO categories (category) VALUES (:category)", category)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted category id: %w", err)
	}
	return id, nil
}

// Update renames an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *Category) error {
	result, err := r.db.NamedExecContext(ctx, "UPDATE categories SET category = :category WHERE c_id = :c_id", category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no category found to update with id %d", category.ID)
	}
	return nil
}

// Delete removes a category by its id.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE c_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
