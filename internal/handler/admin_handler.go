package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rameshkumar-V/Tamilmani/internal/admin"
	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/view"
	"github.com/go-chi/chi/v5"
)

// maxUploadMemory bounds the in-memory portion of a multipart parse.
const maxUploadMemory = 32 << 20

// AdminHandler drives the generated CRUD views over the registered resources.
type AdminHandler struct {
	resources []admin.Resource
	byName    map[string]admin.Resource
	view      *view.View
	log       logger.Logger
}

// NewAdminHandler creates a new AdminHandler over the given resources.
// Resource order determines the index page listing.
func NewAdminHandler(resources []admin.Resource, v *view.View, log logger.Logger) *AdminHandler {
	byName := make(map[string]admin.Resource, len(resources))
	for _, res := range resources {
		byName[res.Name()] = res
	}
	return &AdminHandler{resources: resources, byName: byName, view: v, log: log}
}

// indexHandler lists the manageable resources.
func (h *AdminHandler) indexHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	type entry struct{ Name, Title string }
	entries := make([]entry, 0, len(h.resources))
	for _, res := range h.resources {
		entries = append(entries, entry{Name: res.Name(), Title: res.Title()})
	}
	if err := h.view.Render(w, "admin_index.html", map[string]interface{}{"Resources": entries}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin index", Code: http.StatusInternalServerError}
	}
	return nil
}

// listHandler renders one page of a resource's rows.
func (h *AdminHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, appErr := h.resource(r)
	if appErr != nil {
		return appErr
	}
	page, err := res.List(r.Context(), queryInt(r, "page", 1))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to list " + res.Title(), Code: http.StatusInternalServerError}
	}
	data := map[string]interface{}{
		"Resource": res.Name(),
		"Title":    res.Title(),
		"List":     page,
	}
	if err := h.view.Render(w, "admin_list.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin list", Code: http.StatusInternalServerError}
	}
	return nil
}

// newFormHandler renders an empty create form. Form fields are computed fresh
// per render so select choices follow the current table contents.
func (h *AdminHandler) newFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, appErr := h.resource(r)
	if appErr != nil {
		return appErr
	}
	fields, err := res.FormFields(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to build form", Code: http.StatusInternalServerError}
	}
	data := map[string]interface{}{
		"Resource": res.Name(),
		"Title":    res.Title(),
		"Fields":   fields,
		"Values":   map[string]string{},
		"Action":   fmt.Sprintf("/admin/%s/new", res.Name()),
	}
	if err := h.view.Render(w, "admin_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin form", Code: http.StatusInternalServerError}
	}
	return nil
}

// createHandler persists a new row and returns to the list view.
func (h *AdminHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, appErr := h.resource(r)
	if appErr != nil {
		return appErr
	}
	form, err := parseAdminForm(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	if err := res.Create(r.Context(), form); err != nil {
		var verr *admin.ValidationError
		if errors.As(err, &verr) {
			return h.renderFormError(w, r, res, fmt.Sprintf("/admin/%s/new", res.Name()), form, verr.Message)
		}
		return &middleware.AppError{Error: err, Message: "Failed to create " + res.Title(), Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/admin/"+res.Name(), http.StatusFound)
	return nil
}

// editFormHandler renders the edit form pre-filled with the row's values.
func (h *AdminHandler) editFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, id, appErr := h.resourceAndID(r)
	if appErr != nil {
		return appErr
	}
	fields, err := res.FormFields(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to build form", Code: http.StatusInternalServerError}
	}
	values, err := res.Values(r.Context(), id)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Record not found", Code: http.StatusNotFound}
	}
	data := map[string]interface{}{
		"Resource": res.Name(),
		"Title":    res.Title(),
		"Fields":   fields,
		"Values":   values,
		"Action":   fmt.Sprintf("/admin/%s/%d/edit", res.Name(), id),
	}
	if err := h.view.Render(w, "admin_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin form", Code: http.StatusInternalServerError}
	}
	return nil
}

// updateHandler saves an edit and returns to the list view.
func (h *AdminHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, id, appErr := h.resourceAndID(r)
	if appErr != nil {
		return appErr
	}
	form, err := parseAdminForm(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid form submission", Code: http.StatusBadRequest}
	}
	if err := res.Update(r.Context(), id, form); err != nil {
		var verr *admin.ValidationError
		if errors.As(err, &verr) {
			return h.renderFormError(w, r, res, fmt.Sprintf("/admin/%s/%d/edit", res.Name(), id), form, verr.Message)
		}
		return &middleware.AppError{Error: err, Message: "Failed to update " + res.Title(), Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/admin/"+res.Name(), http.StatusFound)
	return nil
}

// deleteHandler removes a row and returns to the list view.
func (h *AdminHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	res, id, appErr := h.resourceAndID(r)
	if appErr != nil {
		return appErr
	}
	if err := res.Delete(r.Context(), id); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to delete " + res.Title(), Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/admin/"+res.Name(), http.StatusFound)
	return nil
}

// renderFormError re-renders a create/edit form with a validation message,
// keeping the submitted values so the user only fixes the flagged field.
func (h *AdminHandler) renderFormError(w http.ResponseWriter, r *http.Request, res admin.Resource, action string, form *admin.Form, message string) *middleware.AppError {
	fields, err := res.FormFields(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to build form", Code: http.StatusInternalServerError}
	}
	values := make(map[string]string, len(form.Values))
	for name := range form.Values {
		values[name] = form.Values.Get(name)
	}
	data := map[string]interface{}{
		"Resource": res.Name(),
		"Title":    res.Title(),
		"Fields":   fields,
		"Values":   values,
		"Action":   action,
		"Error":    message,
	}
	if err := h.view.Render(w, "admin_form.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render admin form", Code: http.StatusInternalServerError}
	}
	return nil
}

func (h *AdminHandler) resource(r *http.Request) (admin.Resource, *middleware.AppError) {
	name := chi.URLParam(r, "resource")
	res, ok := h.byName[name]
	if !ok {
		return nil, &middleware.AppError{
			Error:   fmt.Errorf("unknown admin resource %q", name),
			Message: "Unknown resource",
			Code:    http.StatusNotFound,
		}
	}
	return res, nil
}

func (h *AdminHandler) resourceAndID(r *http.Request) (admin.Resource, int64, *middleware.AppError) {
	res, appErr := h.resource(r)
	if appErr != nil {
		return nil, 0, appErr
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, 0, &middleware.AppError{Error: err, Message: "Invalid record id", Code: http.StatusNotFound}
	}
	return res, id, nil
}

// parseAdminForm wraps a create/edit submission, handling both urlencoded and
// multipart bodies. Only the first file per field is kept.
func parseAdminForm(r *http.Request) (*admin.Form, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
		files := make(map[string]*multipart.FileHeader)
		for name, headers := range r.MultipartForm.File {
			if len(headers) > 0 {
				files[name] = headers[0]
			}
		}
		return &admin.Form{Values: url.Values(r.MultipartForm.Value), Files: files}, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &admin.Form{Values: r.PostForm}, nil
}
