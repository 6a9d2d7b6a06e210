package httpapi

import (
	"net/http"

	"subscription_notifier/internal/app"
)

// BasicAuth verifies HTTP basic credentials against the admin store on each
// request. The original product used server-side sessions; for a JSON API,
// stateless basic auth over TLS covers the same single-admin use.
func BasicAuth(adminSvc *app.AdminService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, err := adminSvc.VerifyCredentials(r.Context(), username, password); err != nil {
				if err == app.ErrInvalidCredentials {
					w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
					respondError(w, http.StatusUnauthorized, "invalid credentials")
					return
				}
				respondError(w, http.StatusInternalServerError, "authentication unavailable")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
