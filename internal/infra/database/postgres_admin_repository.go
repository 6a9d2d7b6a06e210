package database

import (
	"context"
	"database/sql"
	"fmt"

	"subscription_notifier/internal/domain/admin"
)

type PostgresAdminRepository struct {
	db *sql.DB
}

func NewPostgresAdminRepository(db *sql.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	query := `INSERT INTO admins (username, password_hash)
               VALUES ($1, $2)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

func (r *PostgresAdminRepository) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	query := `SELECT id, username, password_hash, created_at
               FROM admins WHERE username = $1`
	a := &admin.Admin{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, admin.ErrNotFound
		}
		return nil, fmt.Errorf("error getting admin by username: %w", err)
	}
	return a, nil
}

func (r *PostgresAdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting admins: %w", err)
	}
	return n, nil
}
