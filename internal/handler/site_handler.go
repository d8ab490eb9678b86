package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rameshkumar-V/Tamilmani/internal/data"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/service"
	"github.com/Rameshkumar-V/Tamilmani/internal/view"
)

// downloadPerPage is the fixed page size of the public download listing.
const downloadPerPage = 4

// SiteHandler holds the dependencies for the public page handlers.
type SiteHandler struct {
	site *service.SiteService
	docs *service.DocumentService
	view *view.View
	log  logger.Logger
}

// NewSiteHandler creates a new SiteHandler with the given dependencies.
func NewSiteHandler(site *service.SiteService, docs *service.DocumentService, v *view.View, log logger.Logger) *SiteHandler {
	return &SiteHandler{site: site, docs: docs, view: v, log: log}
}

// homeHandler renders the home page. A missing profile record is rendered as
// an empty profile, never a failure.
func (h *SiteHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	home, err := h.site.HomeData(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load home page", Code: http.StatusInternalServerError}
	}
	data := map[string]interface{}{
		"PageInfo":   home.PageInfo,
		"AboutHTML":  home.AboutHTML,
		"Links":      home.Links,
		"Categories": home.Categories,
	}
	if err := h.view.Render(w, "home.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render home page", Code: http.StatusInternalServerError}
	}
	return nil
}

// thankYouHandler acknowledges a contact form submission.
func (h *SiteHandler) thankYouHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "Thank you for your message! We'll get back to you soon.")
	return nil
}

// downloadPageHandler renders the paginated, optionally category-filtered
// document listing.
func (h *SiteHandler) downloadPageHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page := queryInt(r, "page", 1)

	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			categoryID = &id
		}
	}

	documents, err := h.docs.ListDocuments(r.Context(), page, downloadPerPage, categoryID, "")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list documents", Code: http.StatusInternalServerError}
	}
	// Pagination links must keep the active filter.
	if categoryID != nil {
		documents.BaseQuery = template.URL("&category_id=" + strconv.FormatInt(*categoryID, 10))
	}
	categories, err := h.site.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load categories", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Documents":       documents,
		"Categories":      categories,
		"CurrentCategory": categoryID,
	}
	if err := h.view.Render(w, "download_page.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render download page", Code: http.StatusInternalServerError}
	}
	return nil
}

// searchHandler performs a case-insensitive substring search over document
// filenames. A blank query renders the empty-result view without querying.
func (h *SiteHandler) searchHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		if err := h.view.Render(w, "document_list.html", map[string]interface{}{"Documents": nil}); err != nil {
			return &middleware.AppError{Error: err, Message: "Failed to render search results", Code: http.StatusInternalServerError}
		}
		return nil
	}

	page := queryInt(r, "page", 1)
	documents, err := h.docs.ListDocuments(r.Context(), page, service.DefaultPerPage, nil, query)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to search documents", Code: http.StatusInternalServerError}
	}
	// Pagination links must keep the search term; a bare ?page link would fall
	// into the blank-query branch above.
	documents.BaseQuery = template.URL("&q=" + url.QueryEscape(query))

	data := map[string]interface{}{
		"Documents": documents,
		"Query":     query,
	}
	if err := h.view.Render(w, "document_list.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render search results", Code: http.StatusInternalServerError}
	}
	return nil
}

// getDocumentHandler streams a stored document as a PDF attachment.
// A missing id parameter yields 400, an unknown id 404, both as JSON.
func (h *SiteHandler) getDocumentHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	raw := r.URL.Query().Get("document_id")
	if raw == "" {
		jsonError(w, http.StatusBadRequest, "No document ID provided")
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		jsonError(w, http.StatusNotFound, "Document not found")
		return nil
	}

	document, err := h.docs.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrDocumentNotFound) {
			jsonError(w, http.StatusNotFound, "Document not found")
			return nil
		}
		return &middleware.AppError{Error: err, Message: "Failed to load document", Code: http.StatusInternalServerError}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(document.Content)))
	w.Write(document.Content)
	return nil
}

// submitContactHandler persists a contact message when all fields are present,
// redirecting back to the contact form silently otherwise.
func (h *SiteHandler) submitContactHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/#contact", http.StatusFound)
		return nil
	}
	err := h.site.SubmitContact(r.Context(), r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("message"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidContact) {
			// No error message distinguishes which field was missing.
			http.Redirect(w, r, "/#contact", http.StatusFound)
			return nil
		}
		return &middleware.AppError{Error: err, Message: "Failed to save contact message", Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/thank_you", http.StatusFound)
	return nil
}

// profileHandler renders the profile sections with their details split into
// paragraphs.
func (h *SiteHandler) profileHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	sections, err := h.site.ProfileSections(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load profile", Code: http.StatusInternalServerError}
	}
	if err := h.view.Render(w, "profile.html", map[string]interface{}{"Sections": sections}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render profile", Code: http.StatusInternalServerError}
	}
	return nil
}

// queryInt parses an integer query parameter, falling back to a default.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// jsonError writes a JSON error body with the given status code.
func jsonError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
