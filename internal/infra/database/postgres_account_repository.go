package database

import (
	"context"
	"database/sql"
	"fmt"

	"subscription_notifier/internal/domain/account"
)

type PostgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `INSERT INTO accounts (service, account_type, status, expiration_date)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Service, a.AccountType, a.Status, a.ExpirationDate).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `SELECT id, service, account_type, status, expiration_date, created_at, updated_at
               FROM accounts WHERE id = $1`
	a := &account.Account{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.Service, &a.AccountType, &a.Status, &a.ExpirationDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("error getting account by ID: %w", err)
	}
	return a, nil
}

func (r *PostgresAccountRepository) Update(ctx context.Context, a *account.Account) error {
	query := `UPDATE accounts
               SET service = $1, account_type = $2, status = $3, expiration_date = $4, updated_at = NOW()
               WHERE id = $5
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Service, a.AccountType, a.Status, a.ExpirationDate, a.ID).
		Scan(&a.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.ErrNotFound
		}
		return fmt.Errorf("error updating account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking deleted rows: %w", err)
	}
	if n == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *PostgresAccountRepository) ListAll(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT id, service, account_type, status, expiration_date, created_at, updated_at
               FROM accounts ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		a := &account.Account{}
		if err := rows.Scan(&a.ID, &a.Service, &a.AccountType, &a.Status, &a.ExpirationDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}
