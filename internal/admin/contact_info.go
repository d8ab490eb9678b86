package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// ContactInfoResource manages the external links shown on the home page.
type ContactInfoResource struct {
	repo *data.ContactInfoRepository
}

// NewContactInfoResource creates a new ContactInfoResource.
func NewContactInfoResource(repo *data.ContactInfoRepository) *ContactInfoResource {
	return &ContactInfoResource{repo: repo}
}

func (r *ContactInfoResource) Name() string  { return "contactinfo" }
func (r *ContactInfoResource) Title() string { return "Contact Info" }

func (r *ContactInfoResource) List(ctx context.Context, page int) (*ListPage, error) {
	infos, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, Row{ID: info.ID, Cells: []string{fmt.Sprint(info.ID), info.AppName, info.Link}})
	}
	return paginate(rows, []string{"ID", "App Name", "Link"}, page), nil
}

func (r *ContactInfoResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "app_name", Label: "App Name", Type: FieldText, Required: true},
		{Name: "link", Label: "Link", Type: FieldText, Required: true},
	}, nil
}

func (r *ContactInfoResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	info, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, errors.New("contact info not found")
	}
	return map[string]string{"app_name": info.AppName, "link": info.Link}, nil
}

func (r *ContactInfoResource) Create(ctx context.Context, form *Form) error {
	_, err := r.repo.Create(ctx, &data.ContactInfo{AppName: form.Get("app_name"), Link: form.Get("link")})
	return err
}

func (r *ContactInfoResource) Update(ctx context.Context, id int64, form *Form) error {
	return r.repo.Update(ctx, &data.ContactInfo{ID: id, AppName: form.Get("app_name"), Link: form.Get("link")})
}

func (r *ContactInfoResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}
