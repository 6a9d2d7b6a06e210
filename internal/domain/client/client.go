package client

import (
	"time"
)

// Client represents a subscription client of the reseller.
// ExpirationDate carries a calendar date only; the time part is always
// midnight UTC and must be ignored.
type Client struct {
	ID             int64
	Name           string
	Phone          string
	Service        string
	ExpirationDate time.Time
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Date truncates t to a calendar date (midnight UTC), the canonical form
// for ExpirationDate comparisons.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
