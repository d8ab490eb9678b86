package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// ContactResource manages messages submitted through the public contact form.
type ContactResource struct {
	repo *data.ContactRepository
}

// NewContactResource creates a new ContactResource.
func NewContactResource(repo *data.ContactRepository) *ContactResource {
	return &ContactResource{repo: repo}
}

func (r *ContactResource) Name() string  { return "contact" }
func (r *ContactResource) Title() string { return "Contacts" }

func (r *ContactResource) List(ctx context.Context, page int) (*ListPage, error) {
	contacts, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, Row{ID: c.ID, Cells: []string{fmt.Sprint(c.ID), c.Name, c.Email, c.Message}})
	}
	return paginate(rows, []string{"ID", "Name", "Email", "Message"}, page), nil
}

func (r *ContactResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "name", Label: "Name", Type: FieldText, Required: true},
		{Name: "email", Label: "Email", Type: FieldText, Required: true},
		{Name: "message", Label: "Message", Type: FieldTextarea, Required: true},
	}, nil
}

func (r *ContactResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	contact, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact not found")
	}
	return map[string]string{
		"name":    contact.Name,
		"email":   contact.Email,
		"message": contact.Message,
	}, nil
}

func (r *ContactResource) Create(ctx context.Context, form *Form) error {
	_, err := r.repo.Create(ctx, &data.Contact{
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Message: form.Get("message"),
	})
	return err
}

func (r *ContactResource) Update(ctx context.Context, id int64, form *Form) error {
	return r.repo.Update(ctx, &data.Contact{
		ID:      id,
		Name:    form.Get("name"),
		Email:   form.Get("email"),
		Message: form.Get("message"),
	})
}

func (r *ContactResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}
