package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// PageInfoResource manages the home page profile record.
type PageInfoResource struct {
	repo *data.PageInfoRepository
}

// NewPageInfoResource creates a new PageInfoResource.
func NewPageInfoResource(repo *data.PageInfoRepository) *PageInfoResource {
	return &PageInfoResource{repo: repo}
}

func (r *PageInfoResource) Name() string  { return "pageinformation" }
func (r *PageInfoResource) Title() string { return "Page Information" }

func (r *PageInfoResource) List(ctx context.Context, page int) (*ListPage, error) {
	infos, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, Row{ID: info.ID, Cells: []string{
			fmt.Sprint(info.ID), info.Name, info.Job, info.Slogan, info.ProfileURL, info.AboutMeURL,
		}})
	}
	return paginate(rows, []string{"ID", "Name", "Job", "Slogan", "Profile URL", "About URL"}, page), nil
}

func (r *PageInfoResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "name", Label: "Name", Type: FieldText, Required: true},
		{Name: "job", Label: "Job", Type: FieldText, Required: true},
		{Name: "slogan", Label: "Slogan", Type: FieldTextarea, Required: true},
		{Name: "aboutme", Label: "About Me", Type: FieldTextarea, Required: true},
		{Name: "profile_url", Label: "Profile Image URL", Type: FieldText, Required: true},
		{Name: "about_me_url", Label: "About Image URL", Type: FieldText, Required: true},
	}, nil
}

func (r *PageInfoResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	info, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, errors.New("page information not found")
	}
	return map[string]string{
		"name":         info.Name,
		"job":          info.Job,
		"slogan":       info.Slogan,
		"aboutme":      info.AboutMe,
		"profile_url":  info.ProfileURL,
		"about_me_url": info.AboutMeURL,
	}, nil
}

func (r *PageInfoResource) Create(ctx context.Context, form *Form) error {
	_, err := r.repo.Create(ctx, pageInfoFromForm(0, form))
	return err
}

func (r *PageInfoResource) Update(ctx context.Context, id int64, form *Form) error {
	return r.repo.Update(ctx, pageInfoFromForm(id, form))
}

func (r *PageInfoResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}

func pageInfoFromForm(id int64, form *Form) *data.PageInformation {
	return &data.PageInformation{
		ID:         id,
		Name:       form.Get("name"),
		Job:        form.Get("job"),
		Slogan:     form.Get("slogan"),
		AboutMe:    form.Get("aboutme"),
		ProfileURL: form.Get("profile_url"),
		AboutMeURL: form.Get("about_me_url"),
	}
}
