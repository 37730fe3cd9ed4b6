package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// service layer; responses carry the sanitized fields only.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
