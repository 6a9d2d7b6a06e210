package admin

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no admin matches the lookup.
var ErrNotFound = errors.New("admin not found")

// Repository defines the operations for persisting and retrieving Admin users.
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	// Count returns the number of admin users; the one-time setup endpoint
	// refuses to run once any admin exists.
	Count(ctx context.Context) (int, error)
}
