package httpapi

import (
	"net/http"

	"subscription_notifier/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the HTTP router for the admin surface.
func NewRouter(
	adminSvc *app.AdminService,
	clientSvc *app.ClientService,
	accountSvc *app.AccountService,
	reportSvc *app.ReportService,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	setupHandler := NewSetupHandler(adminSvc)
	clientHandler := NewClientHandler(clientSvc)
	accountHandler := NewAccountHandler(accountSvc)
	reportHandler := NewReportHandler(reportSvc)

	// One-time bootstrap; guarded by the setup token, not by basic auth.
	r.Post("/setup/create-admin", setupHandler.CreateAdmin)

	// Everything else requires admin credentials.
	r.Group(func(r chi.Router) {
		r.Use(BasicAuth(adminSvc))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clientHandler.List)
			r.Post("/", clientHandler.Create)
			r.Post("/import", clientHandler.ImportCSV)
			r.Get("/{id}", clientHandler.Get)
			r.Put("/{id}", clientHandler.Update)
			r.Delete("/{id}", clientHandler.Delete)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.List)
			r.Post("/", accountHandler.Create)
			r.Get("/{id}", accountHandler.Get)
			r.Put("/{id}", accountHandler.Update)
			r.Delete("/{id}", accountHandler.Delete)
		})

		r.Get("/reports/daily", reportHandler.Daily)
		r.Get("/reports/weekly", reportHandler.Weekly)
	})

	return r
}
