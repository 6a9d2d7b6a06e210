package app

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"subscription_notifier/internal/domain/client"

	"github.com/sirupsen/logrus"
)

// ClientService handles the admin-facing client roster operations: CRUD and
// bulk CSV import. The scheduled jobs never go through it.
type ClientService struct {
	clients client.Repository
	logger  *logrus.Logger
}

func NewClientService(clients client.Repository, logger *logrus.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

func (s *ClientService) Add(ctx context.Context, name, phone, service string, expirationDate time.Time) (*client.Client, error) {
	c := &client.Client{
		Name:           name,
		Phone:          phone,
		Service:        service,
		ExpirationDate: client.Date(expirationDate),
		Active:         true,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*client.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, c *client.Client) error {
	c.ExpirationDate = client.Date(c.ExpirationDate)
	if err := s.clients.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update client %d: %w", c.ID, err)
	}
	return nil
}

func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.clients.Delete(ctx, id)
}

// List returns the full roster ordered by expiration date handling in the
// repository (by id).
func (s *ClientService) List(ctx context.Context) ([]*client.Client, error) {
	return s.clients.ListAll(ctx)
}

// ImportCSV reads clients from a CSV stream with a header row of
// name,phone,service,expiration_date. Rows that fail to parse are logged
// and skipped; the count of imported clients is returned. Imported clients
// start active.
func (s *ClientService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, required := range []string{"name", "phone", "service", "expiration_date"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Errorf("Import error: skipping malformed CSV row: %v", err)
			continue
		}
		exp, err := time.Parse("2006-01-02", record[col["expiration_date"]])
		if err != nil {
			s.logger.Errorf("Import error: bad expiration_date %q: %v", record[col["expiration_date"]], err)
			continue
		}
		c := &client.Client{
			Name:           record[col["name"]],
			Phone:          record[col["phone"]],
			Service:        record[col["service"]],
			ExpirationDate: client.Date(exp),
			Active:         true,
		}
		if err := s.clients.Create(ctx, c); err != nil {
			s.logger.Errorf("Import error: could not store client %q: %v", c.Name, err)
			continue
		}
		count++
	}

	s.logger.Infof("CSV import finished: %d client(s) added.", count)
	return count, nil
}
