package httpapi

import (
	"net/http"

	"subscription_notifier/internal/app"
)

type SetupHandler struct {
	adminSvc *app.AdminService
}

func NewSetupHandler(adminSvc *app.AdminService) *SetupHandler {
	return &SetupHandler{adminSvc: adminSvc}
}

// CreateAdmin bootstraps the first admin user. Parameters arrive as query
// values so the endpoint can be hit from a browser right after deploy.
func (h *SetupHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	username := r.URL.Query().Get("username")
	if username == "" {
		username = "admin"
	}
	password := r.URL.Query().Get("password")

	created, err := h.adminSvc.CreateInitialAdmin(r.Context(), token, username, password)
	if err != nil {
		switch err {
		case app.ErrSetupDisabled, app.ErrSetupUnauthorized:
			respondError(w, http.StatusUnauthorized, "Unauthorized")
		case app.ErrAdminAlreadyExists:
			respondError(w, http.StatusBadRequest, "Admin already exists")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"message":  "Admin created",
		"username": created.Username,
	})
}
