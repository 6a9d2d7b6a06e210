package client

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no client matches the lookup.
var ErrNotFound = errors.New("client not found")

// Repository defines the operations for persisting and retrieving Client entities.
// The notification and report jobs only ever use the two List* read shapes;
// the remaining methods serve the admin surface.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
	// ListActive returns every active client ordered by id.
	ListActive(ctx context.Context) ([]*Client, error)
	// ListActiveByExpiration returns active clients whose expiration date
	// equals the given calendar date, ordered by id.
	ListActiveByExpiration(ctx context.Context, date time.Time) ([]*Client, error)
	ListAll(ctx context.Context) ([]*Client, error)
}
