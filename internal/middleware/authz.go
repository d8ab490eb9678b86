package middleware

import (
	"net/http"

	"github.com/Rameshkumar-V/Tamilmani/internal/session"
	"github.com/casbin/casbin/v2"
)

// Authorizer creates a middleware that gates the admin back-office.
// It resolves the session user to a Casbin subject ("admin" for any logged-in
// credential, "anonymous" otherwise) and enforces the policy before any admin
// data is read or mutated. Unauthenticated requests are redirected to the
// login page rather than erred.
func Authorizer(e *casbin.Enforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sm.GetString(r.Context(), session.UserKey)

			subject := "anonymous"
			if username != "" {
				subject = "admin"
			}

			// Add user info to the request context for downstream handlers.
			ctx := SetUserInfo(r.Context(), &UserInfo{Username: username})
			r = r.WithContext(ctx)

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				if username == "" {
					http.Redirect(w, r, "/login", http.StatusFound)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
