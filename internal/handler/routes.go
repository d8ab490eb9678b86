package handler

import (
	"io/fs"
	"net/http"

	appmw "github.com/Rameshkumar-V/Tamilmani/internal/middleware"
	"github.com/Rameshkumar-V/Tamilmani/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	siteHandler *SiteHandler,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	authzMiddleware func(http.Handler) http.Handler,
	errorMiddleware func(appmw.AppHandler) http.Handler,
	sessionManager session.Manager,
	staticFS fs.FS,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)

	// Public routes
	r.Method(http.MethodGet, "/", errorMiddleware(siteHandler.homeHandler))
	r.Method(http.MethodGet, "/thank_you", errorMiddleware(siteHandler.thankYouHandler))
	r.Method(http.MethodGet, "/download_page", errorMiddleware(siteHandler.downloadPageHandler))
	r.Method(http.MethodGet, "/search", errorMiddleware(siteHandler.searchHandler))
	r.Method(http.MethodGet, "/get_document", errorMiddleware(siteHandler.getDocumentHandler))
	r.Method(http.MethodPost, "/submit_contact_form", errorMiddleware(siteHandler.submitContactHandler))
	r.Method(http.MethodGet, "/profile", errorMiddleware(siteHandler.profileHandler))

	// Authentication routes
	r.Method(http.MethodGet, "/login", errorMiddleware(authHandler.loginFormHandler))
	r.Method(http.MethodPost, "/login", errorMiddleware(authHandler.loginSubmitHandler))
	r.Method(http.MethodGet, "/logout", errorMiddleware(authHandler.logoutHandler))

	// Static assets
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	// Admin back-office. The authorization gate runs before any admin
	// handler touches data; unauthenticated requests bounce to /login.
	r.Route("/admin", func(r chi.Router) {
		r.Use(authzMiddleware)

		r.Method(http.MethodGet, "/", errorMiddleware(adminHandler.indexHandler))
		r.Method(http.MethodGet, "/{resource}", errorMiddleware(adminHandler.listHandler))
		r.Method(http.MethodGet, "/{resource}/new", errorMiddleware(adminHandler.newFormHandler))
		r.Method(http.MethodPost, "/{resource}/new", errorMiddleware(adminHandler.createHandler))
		r.Method(http.MethodGet, "/{resource}/{id}/edit", errorMiddleware(adminHandler.editFormHandler))
		r.Method(http.MethodPost, "/{resource}/{id}/edit", errorMiddleware(adminHandler.updateHandler))
		r.Method(http.MethodPost, "/{resource}/{id}/delete", errorMiddleware(adminHandler.deleteHandler))
	})

	return r
}
