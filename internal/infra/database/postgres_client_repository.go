package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"subscription_notifier/internal/domain/client"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresClientRepository struct {
	db *sql.DB
}

func NewPostgresClientRepository(db *sql.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

func (r *PostgresClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `INSERT INTO clients (name, phone, service, expiration_date, active)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Service, c.ExpirationDate, c.Active).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating client: %w", err)
	}
	return nil
}

func (r *PostgresClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	query := `SELECT id, name, phone, service, expiration_date, active, created_at, updated_at
               FROM clients WHERE id = $1`
	c := &client.Client{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Service, &c.ExpirationDate, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("error getting client by ID: %w", err)
	}
	normalizeClientDate(c)
	return c, nil
}

func (r *PostgresClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `UPDATE clients
               SET name = $1, phone = $2, service = $3, expiration_date = $4, active = $5, updated_at = NOW()
               WHERE id = $6
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Phone, c.Service, c.ExpirationDate, c.Active, c.ID).
		Scan(&c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return client.ErrNotFound
		}
		return fmt.Errorf("error updating client: %w", err)
	}
	return nil
}

func (r *PostgresClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if n == 0 {
		return client.ErrNotFound
	}
	return nil
}

func (r *PostgresClientRepository) ListActive(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT id, name, phone, service, expiration_date, active, created_at, updated_at
               FROM clients WHERE active = TRUE ORDER BY id`
	return r.list(ctx, query)
}

func (r *PostgresClientRepository) ListActiveByExpiration(ctx context.Context, date time.Time) ([]*client.Client, error) {
	query := `SELECT id, name, phone, service, expiration_date, active, created_at, updated_at
               FROM clients WHERE active = TRUE AND expiration_date = $1 ORDER BY id`
	return r.list(ctx, query, client.Date(date))
}

func (r *PostgresClientRepository) ListAll(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT id, name, phone, service, expiration_date, active, created_at, updated_at
               FROM clients ORDER BY id`
	return r.list(ctx, query)
}

func (r *PostgresClientRepository) list(ctx context.Context, query string, args ...any) ([]*client.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*client.Client, 0)
	for rows.Next() {
		c := &client.Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Service, &c.ExpirationDate, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning client: %w", err)
		}
		normalizeClientDate(c)
		clients = append(clients, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}
	return clients, nil
}

// normalizeClientDate strips the driver's timezone from DATE columns so the
// rest of the code can compare expiration dates directly.
func normalizeClientDate(c *client.Client) {
	c.ExpirationDate = client.Date(c.ExpirationDate)
}
