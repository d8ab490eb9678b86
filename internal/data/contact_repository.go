package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ContactRepository handles database operations for contact messages.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact message and returns its id.
func (r *ContactRepository) Create(ctx context.Context, contact *Contact) (int64, error) {
	query := `INSERT INTO contacts (name, email, message) VALUES (:name, :email, :message)`
	res, err := r.db.NamedExecContext(ctx, query, contact)
	if err != nil {
		return 0, fmt.Errorf("failed to create contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted contact id: %w", err)
	}
	return id, nil
}

// GetAll retrieves all contact messages ordered by id.
func (r *ContactRepository) GetAll(ctx context.Context) ([]*Contact, error) {
	var contacts []*Contact
	err := r.db.SelectContext(ctx, &contacts, "SELECT id, name, email, message FROM contacts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return contacts, nil
}

// GetByID finds a contact message by its id. Not found yields a nil contact.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	var contact Contact
	err := r.db.GetContext(ctx, &contact, "SELECT id, name, email, message FROM contacts WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact by id: %w", err)
	}
	return &contact, nil
}

// Update rewrites an existing contact message.
func (r *ContactRepository) Update(ctx context.Context, contact *Contact) error {
	query := `UPDATE contacts SET name = :name, email = :email, message = :message WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, contact)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

// Delete removes a contact message by its id.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
