package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"subscription_notifier/internal/domain/client"

	"github.com/sirupsen/logrus"
)

// ReportKind selects which export artifact to produce. Both kinds currently
// share the same shape; they differ in file name and trigger (daily runs on
// the scheduler, weekly is download-only).
type ReportKind string

const (
	ReportKindDaily  ReportKind = "daily"
	ReportKindWeekly ReportKind = "weekly"
)

// ReportService snapshots the active client roster to a dated CSV file.
type ReportService struct {
	clients client.Repository
	dataDir string
	logger  *logrus.Logger
}

func NewReportService(clients client.Repository, dataDir string, logger *logrus.Logger) *ReportService {
	return &ReportService{clients: clients, dataDir: dataDir, logger: logger}
}

// Generate writes {kind}_report_{YYYY-MM-DD}.csv under the data directory
// and returns its path. The file for a given day is overwritten on every
// call, so re-running is idempotent. Filesystem and store errors are
// returned to the caller (the download endpoint needs to report them);
// prior days' artifacts are never touched.
func (s *ReportService) Generate(ctx context.Context, kind ReportKind, today time.Time) (string, error) {
	rows, err := s.clients.ListActive(ctx)
	if err != nil {
		return "", fmt.Errorf("listing active clients for %s report: %w", kind, err)
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", s.dataDir, err)
	}

	name := fmt.Sprintf("%s_report_%s.csv", kind, client.Date(today).Format("2006-01-02"))
	path := filepath.Join(s.dataDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "phone", "service", "expiration_date", "active"}); err != nil {
		return "", fmt.Errorf("writing report header: %w", err)
	}
	for _, c := range rows {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Phone,
			c.Service,
			c.ExpirationDate.Format("2006-01-02"),
			strconv.FormatBool(c.Active),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing report row for client %d: %w", c.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing report file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing report file %s: %w", path, err)
	}

	s.logger.Infof("%s report written: %s (%d client(s)).", kind, path, len(rows))
	return path, nil
}
