package account

import (
	"database/sql"
	"time"
)

// Status values for a pooled account slot.
const (
	StatusAvailable = "available"
	StatusAssigned  = "assigned"
	StatusExpired   = "expired"
)

// Account represents a shared-service credential the reseller pools and
// hands out to clients. Accounts are managed purely through the admin
// surface; the scheduled jobs never read or write them.
type Account struct {
	ID             int64
	Service        string
	AccountType    sql.NullString
	Status         string
	ExpirationDate sql.NullTime // Optional; not every pooled account expires.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
