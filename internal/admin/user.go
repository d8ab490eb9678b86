package admin

import (
	"context"
	"fmt"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/service"
)

// UserResource manages back-office credentials. Passwords are hashed before
// storage and never echoed back into the edit form.
type UserResource struct {
	repo *data.UserRepository
}

// NewUserResource creates a new UserResource.
func NewUserResource(repo *data.UserRepository) *UserResource {
	return &UserResource{repo: repo}
}

func (r *UserResource) Name() string  { return "user" }
func (r *UserResource) Title() string { return "Users" }

func (r *UserResource) List(ctx context.Context, page int) (*ListPage, error) {
	users, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		// The password hash stays out of the list view.
		rows = append(rows, Row{ID: u.ID, Cells: []string{fmt.Sprint(u.ID), u.Username}})
	}
	return paginate(rows, []string{"ID", "Username"}, page), nil
}

func (r *UserResource) FormFields(ctx context.Context) ([]Field, error) {
	return []Field{
		{Name: "username", Label: "Username", Type: FieldText, Required: true},
		{Name: "password", Label: "Password", Type: FieldPassword},
	}, nil
}

func (r *UserResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	user, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]string{"username": user.Username}, nil
}

func (r *UserResource) Create(ctx context.Context, form *Form) error {
	password := form.Get("password")
	if password == "" {
		return &ValidationError{Message: "A password is required"}
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = r.repo.Create(ctx, &data.User{Username: form.Get("username"), Password: hash})
	return err
}

func (r *UserResource) Update(ctx context.Context, id int64, form *Form) error {
	user, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Username = form.Get("username")
	// A blank password field keeps the stored hash.
	if password := form.Get("password"); password != "" {
		hash, err := service.HashPassword(password)
		if err != nil {
			return err
		}
		user.Password = hash
	}
	return r.repo.Update(ctx, user)
}

func (r *UserResource) Delete(ctx context.Context, id int64) error {
	return r.repo.Delete(ctx, id)
}
