package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// ProfileAboutResource manages the sections of the public profile page.
type ProfileAboutResource struct {
	repo *data.ProfileAboutRepository
}

// NewProfileAboutResource creates a new ProfileAboutResource.
func NewProfileAboutResource(repo *data.ProfileAboutRepository) *ProfileAboutResource {
	return &ProfileAboutResource{repo: repo}
}

func (r *ProfileAboutResource) Name() string  { return "profileabout" }
func (r *ProfileAboutResource) Title() string { return "Profile About" }

func (r *ProfileAboutResource) List(ctx context.Context, page int) (*ListPage, error) {
	abouts, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(abouts))
	for _, about := range abouts {
		rows = append(rows, Row{ID: about.ID, Cells: []string{fmt.Sprint(about.ID), about.Title, about.Detail}})
	}
	return paginate(rows, []string{"ID", "Title", "Detail"}, page), nil
}

func (r *ProfileAboutResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "title", Label: "Title", Type: FieldText, Required: true},
		// Detail uses a literal "/n" as a paragraph break on the profile page.
		{Name: "detail", Label: "Detail", Type: FieldTextarea, Required: true},
	}, nil
}

func (r *ProfileAboutResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	about, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if about == nil {
		return nil, errors.New("profile section not found")
	}
	return map[string]string{"title": about.Title, "detail": about.Detail}, nil
}

func (r *ProfileAboutResource) Create(ctx context.Context, form *Form) error {
	_, err := r.repo.Create(ctx, &data.ProfileAbout{Title: form.Get("title"), Detail: form.Get("detail")})
	return err
}

func (r *ProfileAboutResource) Update(ctx context.Context, id int64, form *Form) error {
	return r.repo.Update(ctx, &data.ProfileAbout{ID: id, Title: form.Get("title"), Detail: form.Get("detail")})
}

func (r *ProfileAboutResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}
