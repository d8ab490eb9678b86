package admin

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
)

// documentFileField is the multipart field name carrying the uploaded file.
const documentFileField = "document"

// DocumentResource manages uploaded documents. It differs from the generic
// resources: the blob column is excluded from the list view, the filename and
// upload timestamp are system-assigned rather than form fields, and the
// category foreign key is a dropdown whose choices are reloaded from the
// categories table on every form render.
type DocumentResource struct {
	docs       *data.DocumentRepository
	categories *data.CategoryRepository
	uploadDir  string
	log        logger.Logger
}

// NewDocumentResource creates a new DocumentResource.
func NewDocumentResource(docs *data.DocumentRepository, categories *data.CategoryRepository, uploadDir string, log logger.Logger) *DocumentResource {
	return &DocumentResource{docs: docs, categories: categories, uploadDir: uploadDir, log: log}
}

func (r *DocumentResource) Name() string  { return "document" }
func (r *DocumentResource) Title() string { return "Documents" }

// List pages through documents in SQL so blobs never load into memory.
func (r *DocumentResource) List(ctx context.Context, page int) (*ListPage, error) {
	if page < 1 {
		page = 1
	}
	documents, total, err := r.docs.List(ctx, data.DocumentFilter{}, page, ListPerPage)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(documents))
	for _, d := range documents {
		rows = append(rows, Row{ID: d.ID, Cells: []string{
			fmt.Sprint(d.ID),
			d.Filename,
			fmt.Sprint(d.CategoryID),
			d.UploadedAt.Format("2006-01-02 15:04"),
		}})
	}
	return &ListPage{
		Columns:    []string{"ID", "Filename", "Category", "Uploaded"},
		Rows:       rows,
		Page:       page,
		Total:      total,
		TotalPages: int((total + ListPerPage - 1) / ListPerPage),
	}, nil
}

// FormFields loads the category choices fresh on every call, so a category
// created a moment ago is immediately selectable.
func (r *DocumentResource) FormFields(ctx context.Context) ([]Field, error) {
	categories, err := r.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]Choice, 0, len(categories))
	for _, c := range categories {
		choices = append(choices, Choice{Value: strconv.FormatInt(c.ID, 10), Label: c.Name})
	}
	return []Field{
		{Name: "category_id", Label: "Category", Type: FieldSelect, Choices: choices, Required: true},
		{Name: documentFileField, Label: "Document", Type: FieldFile},
	}, nil
}

func (r *DocumentResource) Values(ctx context.Context, id int64) (map[string]string, error) {
	document, err := r.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"category_id": strconv.FormatInt(document.CategoryID, 10),
	}, nil
}

func (r *DocumentResource) Create(ctx context.Context, form *Form) error {
	categoryID, err := form.Int64("category_id")
	if err != nil {
		return &ValidationError{Message: "A valid category is required"}
	}
	fh := form.File(documentFileField)
	if fh == nil {
		return &ValidationError{Message: "A document file is required"}
	}
	content, filename, err := readUpload(fh)
	if err != nil {
		return err
	}
	document := &data.Document{
		Filename:   filename,
		Content:    content,
		CategoryID: categoryID,
	}
	if _, err := r.docs.Create(ctx, document); err != nil {
		return err
	}
	r.removeStaged(filename)
	return nil
}

func (r *DocumentResource) Update(ctx context.Context, id int64, form *Form) error {
	document, err := r.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	categoryID, err := form.Int64("category_id")
	if err != nil {
		return &ValidationError{Message: "A valid category is required"}
	}
	document.CategoryID = categoryID

	// An edit without a new file keeps the stored content and filename.
	var staged string
	if fh := form.File(documentFileField); fh != nil {
		content, filename, err := readUpload(fh)
		if err != nil {
			return err
		}
		document.Content = content
		document.Filename = filename
		staged = filename
	}
	if err := r.docs.Update(ctx, document); err != nil {
		return err
	}
	r.removeStaged(staged)
	return nil
}

func (r *DocumentResource) Delete(ctx context.Context, id int64) error {
	return r.docs.Delete(ctx, id)
}

// readUpload reads the full content of an uploaded file part.
// The stream is rewound first: a part that was already consumed upstream
// would otherwise read back empty and an empty blob would be stored.
func readUpload(fh *multipart.FileHeader) ([]byte, string, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return content, filepath.Base(fh.Filename), nil
}

// removeStaged deletes a leftover temp file from the upload staging area.
// The database row owns the content, so a failure here is logged and
// swallowed; it never blocks the save.
func (r *DocumentResource) removeStaged(filename string) {
	if filename == "" {
		return
	}
	path := filepath.Join(r.uploadDir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.log.Error(err, fmt.Sprintf("Failed to delete staged upload %s", path))
	}
}
