package admin

import (
	"time"
)

// Admin is a back-office user of the management API.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
