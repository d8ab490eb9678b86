//go:build integration

package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Rameshkumar-V/Tamilmani/internal/config"
	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupDocumentResource creates an in-memory SQLite database with one seeded
// category and a DocumentResource staging into a temp dir.
func setupDocumentResource(t *testing.T) (*DocumentResource, *data.DocumentRepository, int64, string) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	schema := `
	CREATE TABLE categories (
		c_id INTEGER PRIMARY KEY,
		category VARCHAR(30) NOT NULL UNIQUE
	);
	CREATE TABLE documents (
		id INTEGER PRIMARY KEY,
		document_filename VARCHAR(100) NOT NULL,
		document BLOB NOT NULL,
		category_id INTEGER NOT NULL REFERENCES categories (c_id),
		upl_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	res := db.MustExec("INSERT INTO categories (category) VALUES ('Resume')")
	categoryID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get category id: %v", err)
	}

	docs := data.NewDocumentRepository(db)
	categories := data.NewCategoryRepository(db)
	uploadDir := t.TempDir()
	log := logger.New(config.LogConfig{Level: "error", Format: "console"}, io.Discard)

	return NewDocumentResource(docs, categories, uploadDir, log), docs, categoryID, uploadDir
}

// uploadForm builds a Form carrying a real multipart file part.
func uploadForm(t *testing.T, categoryID int64, filename string, content []byte) *Form {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(documentFileField, filename)
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	parsed, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	t.Cleanup(func() { parsed.RemoveAll() })

	return &Form{
		Values: url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}},
		Files:  map[string]*multipart.FileHeader{documentFileField: parsed.File[documentFileField][0]},
	}
}

// writeStaged drops a leftover file into the upload staging dir.
func writeStaged(t *testing.T, dir, filename string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte("staged"), 0o644); err != nil {
		t.Fatalf("failed to write staged file: %v", err)
	}
	return path
}

func TestDocumentResource_Create(t *testing.T) {
	resource, docs, categoryID, uploadDir := setupDocumentResource(t)

	staged := writeStaged(t, uploadDir, "resume.pdf")
	content := []byte("%PDF-1.4 fresh upload")
	form := uploadForm(t, categoryID, "resume.pdf", content)

	if err := resource.Create(context.Background(), form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, total, err := docs.List(context.Background(), data.DocumentFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 document, got %d", total)
	}
	stored, err := docs.GetByID(context.Background(), rows[0].ID)
	if err != nil {
		t.Fatalf("failed to load stored document: %v", err)
	}
	if stored.Filename != "resume.pdf" || !bytes.Equal(stored.Content, content) {
		t.Error("stored document does not match the upload")
	}

	// The database row owns the content; the staging copy goes away.
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Error("expected staged file to be removed after a successful create")
	}
}

func TestDocumentResource_Create_RequiresFile(t *testing.T) {
	resource, docs, categoryID, _ := setupDocumentResource(t)

	form := &Form{Values: url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}}
	err := resource.Create(context.Background(), form)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	_, total, err := docs.List(context.Background(), data.DocumentFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no documents, got %d", total)
	}
}

func TestDocumentResource_Update_StagedFileFollowsOutcome(t *testing.T) {
	resource, docs, categoryID, uploadDir := setupDocumentResource(t)

	original := []byte("original bytes")
	id, err := docs.Create(context.Background(), &data.Document{
		Filename:   "resume.pdf",
		Content:    original,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	t.Run("failed save keeps the staged file", func(t *testing.T) {
		staged := writeStaged(t, uploadDir, "replacement.pdf")
		// A nonexistent category makes the update fail its foreign key.
		form := uploadForm(t, 999, "replacement.pdf", []byte("replacement"))

		if err := resource.Update(context.Background(), id, form); err == nil {
			t.Fatal("expected update to fail for an unknown category")
		}
		if _, err := os.Stat(staged); err != nil {
			t.Errorf("staged file must survive a failed save: %v", err)
		}

		stored, err := docs.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("failed to load stored document: %v", err)
		}
		if stored.Filename != "resume.pdf" || !bytes.Equal(stored.Content, original) {
			t.Error("failed update must not alter the stored document")
		}
	})

	t.Run("successful save removes the staged file", func(t *testing.T) {
		staged := writeStaged(t, uploadDir, "replacement.pdf")
		form := uploadForm(t, categoryID, "replacement.pdf", []byte("replacement"))

		if err := resource.Update(context.Background(), id, form); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(staged); !os.IsNotExist(err) {
			t.Error("expected staged file to be removed after a successful save")
		}

		stored, err := docs.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("failed to load stored document: %v", err)
		}
		if stored.Filename != "replacement.pdf" || !bytes.Equal(stored.Content, []byte("replacement")) {
			t.Error("successful update must persist the new file")
		}
	})
}
