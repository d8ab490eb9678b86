package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PageInfoRepository handles database operations for the home page profile record.
type PageInfoRepository struct {
	db *sqlx.DB
}

// NewPageInfoRepository creates a new PageInfoRepository.
func NewPageInfoRepository(db *sqlx.DB) *PageInfoRepository {
	return &PageInfoRepository{db: db}
}

// First returns the lowest-id page information row, or nil when the table is empty.
// The table is not constrained to a single row; the home page treats the first
// row as the profile record.
func (r *PageInfoRepository) First(ctx context.Context) (*PageInformation, error) {
	var info PageInformation
	query := `SELECT id, name, job, slogan, aboutme, profile_url, about_me_url FROM page_information ORDER BY id LIMIT 1`
	if err := r.db.GetContext(ctx, &info, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page information: %w", err)
	}
	return &info, nil
}

// GetAll retrieves all page information rows ordered by id.
func (r *PageInfoRepository) GetAll(ctx context.Context) ([]*PageInformation, error) {
	var infos []*PageInformation
	query := `SELECT id, name, job, slogan, aboutme, profile_url, about_me_url FROM page_information ORDER BY id`
	if err := r.db.SelectContext(ctx, &infos, query); err != nil {
		return nil, fmt.Errorf("failed to get page information rows: %w", err)
	}
	return infos, nil
}

// GetByID finds a page information row by its id. Not found yields nil.
func (r *PageInfoRepository) GetByID(ctx context.Context, id int64) (*PageInformation, error) {
	var info PageInformation
	query := `SELECT id, name, job, slogan, aboutme, profile_url, about_me_url FROM page_information WHERE id = ?`
	if err := r.db.GetContext(ctx, &info, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get page information by id: %w", err)
	}
	return &info, nil
}

// Create inserts a new page information row and returns its id.
func (r *PageInfoRepository) Create(ctx context.Context, info *PageInformation) (int64, error) {
	query := `INSERT INTO page_information (name, job, slogan, aboutme, profile_url, about_me_url)
		VALUES (:name, :job, :slogan, :aboutme, :profile_url, :about_me_url)`
	res, err := r.db.NamedExecContext(ctx, query, info)
	if err != nil {
		return 0, fmt.Errorf("failed to create page information: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted page information id: %w", err)
	}
	return id, nil
}

// Update rewrites an existing page information row.
func (r *PageInfoRepository) Update(ctx context.Context, info *PageInformation) error {
	query := `UPDATE page_information SET name = :name, job = :job, slogan = :slogan,
		aboutme = :aboutme, profile_url = :profile_url, about_me_url = :about_me_url WHERE id = :id`
	_, err := r.db.NamedExecContext(ctx, query, info)
	if err != nil {
		return fmt.Errorf("failed to update page information: %w", err)
	}
	return nil
}

// Delete removes a page information row by its id.
func (r *PageInfoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM page_information WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete page information: %w", err)
	}
	return nil
}

// ContactInfoRepository handles database operations for home page contact links.
type ContactInfoRepository struct {
	db *sqlx.DB
}

// NewContactInfoRepository creates a new ContactInfoRepository.
func NewContactInfoRepository(db *sqlx.DB) *ContactInfoRepository {
	return &ContactInfoRepository{db: db}
}

// GetAll retrieves all contact links ordered by id.
func (r *ContactInfoRepository) GetAll(ctx context.Context) ([]*ContactInfo, error) {
	var infos []*ContactInfo
	if err := r.db.SelectContext(ctx, &infos, "SELECT id, app_name, link FROM contact_info ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get contact info: %w", err)
	}
	return infos, nil
}

// GetByID finds a contact link by its id. Not found yields nil.
func (r *ContactInfoRepository) GetByID(ctx context.Context, id int64) (*ContactInfo, error) {
	var info ContactInfo
	if err := r.db.GetContext(ctx, &info, "SELECT id, app_name, link FROM contact_info WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contact info by id: %w", err)
	}
	return &info, nil
}

// Create inserts a new contact link and returns its id.
func (r *ContactInfoRepository) Create(ctx context.Context, info *ContactInfo) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, "INSERT INTO contact_info (app_name, link) VALUES (:app_name, :link)", info)
	if err != nil {
		return 0, fmt.Errorf("failed to create contact info: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted contact info id: %w", err)
	}
	return id, nil
}

// Update rewrites an existing contact link.
func (r *ContactInfoRepository) Update(ctx context.Context, info *ContactInfo) error {
	_, err := r.db.NamedExecContext(ctx, "UPDATE contact_info SET app_name = :app_name, link = :link WHERE id = :id", info)
	if err != nil {
		return fmt.Errorf("failed to update contact info: %w", err)
	}
	return nil
}

// Delete removes a contact link by its id.
func (r *ContactInfoRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM contact_info WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact info: %w", err)
	}
	return nil
}

// ProfileAboutRepository handles database operations for profile page sections.
type ProfileAboutRepository struct {
	db *sqlx.DB
}

// NewProfileAboutRepository creates a new ProfileAboutRepository.
func NewProfileAboutRepository(db *sqlx.DB) *ProfileAboutRepository {
	return &ProfileAboutRepository{db: db}
}

// GetAll retrieves all profile sections ordered by id.
func (r *ProfileAboutRepository) GetAll(ctx context.Context) ([]*ProfileAbout, error) {
	var abouts []*ProfileAbout
	if err := r.db.SelectContext(ctx, &abouts, "SELECT id, title, detail FROM profile_about ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get profile sections: %w", err)
	}
	return abouts, nil
}

// GetByID finds a profile section by its id. Not found yields nil.
func (r *ProfileAboutRepository) GetByID(ctx context.Context, id int64) (*ProfileAbout, error) {
	var about ProfileAbout
	if err := r.db.GetContext(ctx, &about, "SELECT id, title, detail FROM profile_about WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile section by id: %w", err)
	}
	return &about, nil
}

// Create inserts a new profile section and returns its id.
func (r *ProfileAboutRepository) Create(ctx context.Context, about *ProfileAbout) (int64, error) {
	res, err := r.db.NamedExecContext(ctx, "INSERT INTO profile_about (title, detail) VALUES (:title, :detail)", about)
	if err != nil {
		return 0, fmt.Errorf("failed to create profile section: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted profile section id: %w", err)
	}
	return id, nil
}

// Update rewrites an existing profile section.
func (r *ProfileAboutRepository) Update(ctx context.Context, about *ProfileAbout) error {
	_, err := r.db.NamedExecContext(ctx, "UPDATE profile_about SET title = :title, detail = :detail WHERE id = :id", about)
	if err != nil {
		return fmt.Errorf("failed to update profile section: %w", err)
	}
	return nil
}

// Delete removes a profile section by its id.
func (r *ProfileAboutRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM profile_about WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile section: %w", err)
	}
	return nil
}
