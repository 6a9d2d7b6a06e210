package account

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("account not found")

// Repository defines the operations for persisting and retrieving Account entities.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]*Account, error)
}
