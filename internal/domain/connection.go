package domain

import "time"

// Connection links a user account to an external platform account via OAuth.
type Connection struct {
	ID            int64
	UserID        int64
	PlatformID    int64
	AccountHandle string
	AccessToken   string
	CreatedAt     time.Time
}
