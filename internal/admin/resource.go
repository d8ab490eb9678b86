// Package admin implements the back-office CRUD surface. Each managed entity
// is a Resource: a capability object that knows how to list, render a form
// for, create, edit, and delete its rows. The HTTP layer drives resources
// generically; only the document resource carries extra upload behavior.
package admin

import (
	"context"
	"html/template"
	"mime/multipart"
	"net/url"
	"strconv"
)

// ListPerPage is the fixed page size of back-office list views.
const ListPerPage = 20

// FieldType selects the form widget used for a field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldPassword FieldType = "password"
	FieldSelect   FieldType = "select"
	FieldFile     FieldType = "file"
)

// ValidationError reports a user-correctable problem with a submitted form.
// The HTTP layer re-renders the form with the message instead of failing the
// request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Choice is one selectable option of a select field.
type Choice struct {
	Value string
	Label string
}

// Field describes one input of a resource's create/edit form.
type Field struct {
	Name     string
	Label    string
	Type     FieldType
	Choices  []Choice
	Required bool
}

// Form wraps a submitted create/edit form, including any multipart file parts.
type Form struct {
	Values url.Values
	Files  map[string]*multipart.FileHeader
}

// Get returns the submitted value for a field.
func (f *Form) Get(name string) string {
	return f.Values.Get(name)
}

// Int64 parses the submitted value for a field as an integer.
func (f *Form) Int64(name string) (int64, error) {
	return strconv.ParseInt(f.Get(name), 10, 64)
}

// File returns the uploaded file header for a field, or nil when the
// submission carried none.
func (f *Form) File(name string) *multipart.FileHeader {
	if f.Files == nil {
		return nil
	}
	return f.Files[name]
}

// Row is one row of a list view.
type Row struct {
	ID    int64
	Cells []string
}

// ListPage is one page of a resource's list view. BaseQuery holds extra query
// parameters that pagination links append; back-office lists carry none.
type ListPage struct {
	Columns    []string
	Rows       []Row
	Page       int
	Total      int64
	TotalPages int
	BaseQuery  template.URL
}

// HasPrev reports whether an earlier page exists.
func (p *ListPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *ListPage) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number.
func (p *ListPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the next page number.
func (p *ListPage) NextPage() int { return p.Page + 1 }

// Resource is a managed entity of the back-office. FormFields is called on
// every form render so dynamic choices (e.g. the document category dropdown)
// always reflect the current table contents.
type Resource interface {
	Name() string
	Title() string
	List(ctx context.Context, page int) (*ListPage, error)
	FormFields(ctx context.Context) ([]Field, error)
	Values(ctx context.Context, id int64) (map[string]string, error)
	Create(ctx context.Context, form *Form) error
	Update(ctx context.Context, id int64, form *Form) error
	Delete(ctx context.Context, id int64) error
}

// paginate slices pre-fetched rows into one list page. Small tables are listed
// this way; the document resource paginates in SQL instead to keep blobs out
// of memory.
func paginate(rows []Row, columns []string, page int) *ListPage {
	if page < 1 {
		page = 1
	}
	total := int64(len(rows))
	totalPages := int((total + ListPerPage - 1) / ListPerPage)

	start := (page - 1) * ListPerPage
	if start > len(rows) {
		start = len(rows)
	}
	end := start + ListPerPage
	if end > len(rows) {
		end = len(rows)
	}

	return &ListPage{
		Columns:    columns,
		Rows:       rows[start:end],
		Page:       page,
		Total:      total,
		TotalPages: totalPages,
	}
}
