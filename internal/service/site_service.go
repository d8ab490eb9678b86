package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ErrInvalidContact is returned when a contact submission has an empty field.
var ErrInvalidContact = errors.New("contact submission is missing a required field")

// detailDelimiter is the literal sequence the profile author uses as a
// paragraph break inside ProfileAbout.Detail.
const detailDelimiter = "/n"

// PageInfoRepository defines the read operations the site service needs for
// the home page profile record.
type PageInfoRepository interface {
	First(ctx context.Context) (*data.PageInformation, error)
}

// ContactInfoRepository defines the read operations for home page contact links.
type ContactInfoRepository interface {
	GetAll(ctx context.Context) ([]*data.ContactInfo, error)
}

// ProfileAboutRepository defines the read operations for profile page sections.
type ProfileAboutRepository interface {
	GetAll(ctx context.Context) ([]*data.ProfileAbout, error)
}

// CategoryReader defines the read operations for the category filter UI.
type CategoryReader interface {
	GetAll(ctx context.Context) ([]*data.Category, error)
}

// ContactCreator defines the write operation for contact form submissions.
type ContactCreator interface {
	Create(ctx context.Context, contact *data.Contact) (int64, error)
}

// HomeData carries everything the home page template renders. PageInfo is nil
// when no profile record has been seeded yet; the template handles that.
type HomeData struct {
	PageInfo   *data.PageInformation
	AboutHTML  template.HTML
	Links      []*data.ContactInfo
	Categories []*data.Category
}

// ProfileSection is one profile page section with its detail text split into
// ordered paragraphs.
type ProfileSection struct {
	Title      string
	Paragraphs []string
}

// contactSubmission is the validated shape of a public contact form post.
type contactSubmission struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Message string `validate:"required"`
}

// SiteService provides business logic for the public pages.
type SiteService struct {
	pageInfo   PageInfoRepository
	links      ContactInfoRepository
	abouts     ProfileAboutRepository
	categories CategoryReader
	contacts   ContactCreator
	markdown   goldmark.Markdown
	sanitizer  *bluemonday.Policy
	validate   *validator.Validate
}

// NewSiteService creates a new SiteService with the given repositories.
func NewSiteService(pageInfo PageInfoRepository, links ContactInfoRepository, abouts ProfileAboutRepository, categories CategoryReader, contacts ContactCreator) *SiteService {
	return &SiteService{
		pageInfo:   pageInfo,
		links:      links,
		abouts:     abouts,
		categories: categories,
		contacts:   contacts,
		markdown:   goldmark.New(),
		sanitizer:  bluemonday.UGCPolicy(),
		validate:   validator.New(),
	}
}

// HomeData gathers the profile record, contact links, and categories for the
// home page. A missing profile record is not an error.
func (s *SiteService) HomeData(ctx context.Context) (*HomeData, error) {
	info, err := s.pageInfo.First(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.links.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	home := &HomeData{PageInfo: info, Links: links, Categories: categories}
	if info != nil {
		home.AboutHTML, err = s.renderAbout(info.AboutMe)
		if err != nil {
			return nil, err
		}
	}
	return home, nil
}

// renderAbout converts the about-me text from Markdown to sanitized HTML.
// Plain text passes through as a single paragraph.
func (s *SiteService) renderAbout(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render about text: %w", err)
	}
	return template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// Categories lists all categories for the download page filter UI.
func (s *SiteService) Categories(ctx context.Context) ([]*data.Category, error) {
	return s.categories.GetAll(ctx)
}

// ProfileSections returns all profile sections with their detail text split on
// the literal "/n" delimiter into ordered paragraphs.
func (s *SiteService) ProfileSections(ctx context.Context) ([]ProfileSection, error) {
	abouts, err := s.abouts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sections := make([]ProfileSection, 0, len(abouts))
	for _, about := range abouts {
		sections = append(sections, ProfileSection{
			Title:      about.Title,
			Paragraphs: strings.Split(about.Detail, detailDelimiter),
		})
	}
	return sections, nil
}

// SubmitContact persists a contact message when all three fields are non-empty.
// A submission with any empty field yields ErrInvalidContact and no row. The
// stored values are exactly what was submitted.
func (s *SiteService) SubmitContact(ctx context.Context, name, email, message string) error {
	submission := contactSubmission{Name: name, Email: email, Message: message}
	if err := s.validate.Struct(submission); err != nil {
		return ErrInvalidContact
	}
	_, err := s.contacts.Create(ctx, &data.Contact{Name: name, Email: email, Message: message})
	return err
}
