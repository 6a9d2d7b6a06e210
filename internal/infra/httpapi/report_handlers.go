package httpapi

import (
	"net/http"
	"path/filepath"
	"time"

	"subscription_notifier/internal/app"
)

type ReportHandler struct {
	reportSvc *app.ReportService
}

func NewReportHandler(reportSvc *app.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, app.ReportKindDaily)
}

func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, app.ReportKindWeekly)
}

// serve regenerates today's report and streams it as a download. The write
// is idempotent per day, so hitting the endpoint repeatedly is safe.
func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, kind app.ReportKind) {
	path, err := h.reportSvc.Generate(r.Context(), kind, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	http.ServeFile(w, r, path)
}
