package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// CategoryResource manages document categories.
type CategoryResource struct {
	repo *data.CategoryRepository
}

// NewCategoryResource creates a new CategoryResource.
func NewCategoryResource(repo *data.CategoryRepository) *CategoryResource {
	return &CategoryResource{repo: repo}
}

func (r *CategoryResource) Name() string  { return "category" }
func (r *CategoryResource) Title() string { return "Categories" }

func (r *CategoryResource) List(ctx context.Context, page int) (*ListPage, error) {
	categories, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, Row{ID: c.ID, Cells: []string{fmt.Sprint(c.ID), c.Name}})
	}
	return paginate(rows, []string{"ID", "Category"}, page), nil
}

func (r *CategoryResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "category", Label: "Category", Type: FieldText, Required: true},
	}, nil
}

func (r *CategoryResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	category, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category not found")
	}
	return map[string]string{"category": category.Name}, nil
}

func (r *CategoryResource) Create(ctx context.Context, form *Form) error {
	_, err := r.repo.Create(ctx, &data.Category{Name: form.Get("category")})
	return err
}

func (r *CategoryResource) Update(ctx context.Context, id int64, form *Form) error {
	return r.repo.Update(ctx, &data.Category{ID: id, Name: form.Get("category")})
}

func (r *CategoryResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}
