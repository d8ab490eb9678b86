package handler

import (
	"net/http"

	"github.com/Rameshkumar-V/Tamilmani/internal/logger"
	"github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/service"
	"github.com/Rameshkumar-V/Tamilmani/internal/session"
	"github.com/Rameshkumar-V/Tamilmani/internal/view"
	"github.com/go-playground/validator/v10"
)

// loginDeniedMessage is shown for every failed login attempt. It is identical
// for unknown usernames and wrong passwords so the form does not reveal
// whether an account exists.
const loginDeniedMessage = "Invalid username or password."

// loginForm is the validated shape of a login submission.
type loginForm struct {
	Username string `validate:"required,min=2,max=25"`
	Password string `validate:"required,min=4,max=25"`
}

// AuthHandler holds the dependencies for the login and logout handlers.
type AuthHandler struct {
	auth     *service.AuthService
	sessions session.Manager
	view     *view.View
	validate *validator.Validate
	log      logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions session.Manager, v *view.View, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		view:     v,
		validate: validator.New(),
		log:      log,
	}
}

// loginFormHandler renders the login form, surfacing any flash message left by
// a previous attempt.
func (h *AuthHandler) loginFormHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	flash := h.sessions.PopString(r.Context(), session.FlashKey)
	if err := h.view.Render(w, "login.html", map[string]interface{}{"Flash": flash}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render login page", Code: http.StatusInternalServerError}
	}
	return nil
}

// loginSubmitHandler validates and verifies a login attempt. On success the
// session becomes authenticated and the user lands on the admin index; every
// failure re-renders the form with the same generic message.
func (h *AuthHandler) loginSubmitHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return h.renderDenied(w)
	}
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		return h.renderDenied(w)
	}

	user, err := h.auth.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		// ErrInvalidCredentials and unexpected store errors both surface the
		// generic denial; the latter is additionally logged.
		if err != service.ErrInvalidCredentials {
			h.log.Error(err, "Login lookup failed")
		}
		return h.renderDenied(w)
	}

	// Renew the token on privilege change to avoid session fixation.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to establish session", Code: http.StatusInternalServerError}
	}
	h.sessions.Put(r.Context(), session.UserKey, user.Username)
	http.Redirect(w, r, "/admin", http.StatusFound)
	return nil
}

func (h *AuthHandler) renderDenied(w http.ResponseWriter) *middleware.AppError {
	if err := h.view.Render(w, "login.html", map[string]interface{}{"Flash": loginDeniedMessage}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render login page", Code: http.StatusInternalServerError}
	}
	return nil
}

// logoutHandler ends the session unconditionally and returns to the home page.
func (h *AuthHandler) logoutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to end session", Code: http.StatusInternalServerError}
	}
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}
