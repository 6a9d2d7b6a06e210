package messaging

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by a Provider whose delivery credentials are
// absent. Callers treat it as "skip the batch with a warning", never as a
// delivery failure.
var ErrNotConfigured = errors.New("messaging provider is not configured")

// Provider defines an interface for sending one outbound message to a phone
// identifier. This decouples the reminder logic from the concrete delivery
// service and its HTTP client.
type Provider interface {
	// Send submits body to the given phone identifier and returns the
	// provider's delivery id.
	Send(ctx context.Context, toPhone, body string) (string, error)
	// Configured reports whether delivery credentials are present. When
	// false, Send always returns ErrNotConfigured.
	Configured() bool
}

// Disabled returns a Provider without credentials; every Send is refused
// with ErrNotConfigured.
func Disabled() Provider {
	return disabledProvider{}
}

type disabledProvider struct{}

func (disabledProvider) Send(ctx context.Context, toPhone, body string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledProvider) Configured() bool { return false }
