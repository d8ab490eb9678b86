//go:build integration

package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
)

// multipartBody builds a multipart form with the given values and one file.
func multipartBody(t *testing.T, values map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range values {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field %q: %v", name, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestAdminDocumentUpload(t *testing.T) {
	app := newTestApp(t, "adminupload")
	client := app.client(t)
	app.login(t, client)

	categoryID := app.seedCategory(t, "Resume")
	content := []byte("%PDF-1.4 uploaded via admin")

	body, contentType := multipartBody(t,
		map[string]string{"category_id": strconv.FormatInt(categoryID, 10)},
		"document", "My Resume.pdf", content)
	resp, err := client.Post(app.server.URL+"/admin/document/new", contentType, body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/document" {
		t.Fatalf("expected redirect to document list, got status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}

	docs, total, err := app.documents.List(context.Background(), data.DocumentFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 document, got %d", total)
	}

	stored, err := app.documents.GetByID(context.Background(), docs[0].ID)
	if err != nil {
		t.Fatalf("failed to load stored document: %v", err)
	}
	if stored.Filename != "My Resume.pdf" {
		t.Errorf("expected stored filename 'My Resume.pdf', got %q", stored.Filename)
	}
	if !bytes.Equal(stored.Content, content) {
		t.Error("stored content differs from uploaded bytes")
	}
	if stored.CategoryID != categoryID {
		t.Errorf("expected category %d, got %d", categoryID, stored.CategoryID)
	}
}

func TestAdminDocumentUpload_RequiresFile(t *testing.T) {
	app := newTestApp(t, "adminuploadnofile")
	client := app.client(t)
	app.login(t, client)

	categoryID := app.seedCategory(t, "Resume")

	body, contentType := multipartBody(t,
		map[string]string{"category_id": strconv.FormatInt(categoryID, 10)},
		"", "", nil)
	resp, err := client.Post(app.server.URL+"/admin/document/new", contentType, body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	// The form re-renders with a validation message instead of failing.
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected re-rendered form, got %d", resp.StatusCode)
	}
	assertContains(t, readBody(t, resp), "A document file is required")

	_, total, err := app.documents.List(context.Background(), data.DocumentFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no documents, got %d", total)
	}
}

func TestAdminUserCreate_RequiresPassword(t *testing.T) {
	app := newTestApp(t, "adminuserpassword")
	client := app.client(t)
	app.login(t, client)

	resp, err := client.PostForm(app.server.URL+"/admin/user/new", url.Values{"username": {"second"}})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected re-rendered form, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	assertContains(t, body, "A password is required")
	// The submitted username survives the round trip.
	assertContains(t, body, "second")

	count, err := app.users.Count(context.Background())
	if err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected only the seeded user, got %d", count)
	}
}

func TestAdminDocumentEdit_KeepsContentWithoutNewFile(t *testing.T) {
	app := newTestApp(t, "adminedit")
	client := app.client(t)
	app.login(t, client)

	resumeID := app.seedCategory(t, "Resume")
	certID := app.seedCategory(t, "Certificates")
	content := []byte("original bytes")
	id := app.seedDocument(t, "resume.pdf", content, resumeID)

	// Re-categorize without uploading a replacement file.
	body, contentType := multipartBody(t,
		map[string]string{"category_id": strconv.FormatInt(certID, 10)},
		"", "", nil)
	resp, err := client.Post(app.server.URL+"/admin/document/"+strconv.FormatInt(id, 10)+"/edit", contentType, body)
	if err != nil {
		t.Fatalf("edit request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after edit, got %d", resp.StatusCode)
	}

	stored, err := app.documents.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load stored document: %v", err)
	}
	if stored.CategoryID != certID {
		t.Errorf("expected category updated to %d, got %d", certID, stored.CategoryID)
	}
	if stored.Filename != "resume.pdf" || !bytes.Equal(stored.Content, content) {
		t.Error("edit without a new file must keep the stored filename and content")
	}
}

func TestAdminCategoryCRUD(t *testing.T) {
	app := newTestApp(t, "admincategory")
	client := app.client(t)
	app.login(t, client)

	// Create.
	resp, err := client.PostForm(app.server.URL+"/admin/category/new", url.Values{"category": {"Resume"}})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after create, got %d", resp.StatusCode)
	}

	categories, err := app.categories.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Resume" {
		t.Fatalf("expected one category 'Resume', got %+v", categories)
	}
	id := categories[0].ID

	// The list view shows the row.
	listResp, listBody := app.get(t, client, "/admin/category")
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on list, got %d", listResp.StatusCode)
	}
	assertContains(t, listBody, "Resume")

	// Update.
	resp, err = client.PostForm(app.server.URL+"/admin/category/"+strconv.FormatInt(id, 10)+"/edit", url.Values{"category": {"CVs"}})
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	resp.Body.Close()
	updated, err := app.categories.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	if updated == nil || updated.Name != "CVs" {
		t.Errorf("expected renamed category 'CVs', got %+v", updated)
	}

	// Delete.
	resp, err = client.PostForm(app.server.URL+"/admin/category/"+strconv.FormatInt(id, 10)+"/delete", url.Values{})
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	resp.Body.Close()
	gone, err := app.categories.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	if gone != nil {
		t.Errorf("expected category to be deleted, got %+v", gone)
	}
}

func TestAdminUnknownResource(t *testing.T) {
	app := newTestApp(t, "adminunknown")
	client := app.client(t)
	app.login(t, client)

	resp, _ := app.get(t, client, "/admin/widget")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown resource, got %d", resp.StatusCode)
	}
}

func TestAdminWritesRequireLogin(t *testing.T) {
	app := newTestApp(t, "adminwritegate")
	client := app.client(t)

	categoryID := app.seedCategory(t, "Resume")
	body, contentType := multipartBody(t,
		map[string]string{"category_id": strconv.FormatInt(categoryID, 10)},
		"document", "sneak.pdf", []byte("nope"))
	resp, err := client.Post(app.server.URL+"/admin/document/new", contentType, body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected unauthenticated write to bounce to /login, got status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}

	_, total, err := app.documents.List(context.Background(), data.DocumentFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("failed to list documents: %v", err)
	}
	if total != 0 {
		t.Errorf("gated write must not create a row, got %d", total)
	}
}
