package domain

import "time"

// ResetToken is a single-use, time-limited capability authorizing a password
// change for exactly one user.
type ResetToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	Expired   bool      `json:"expired"`
	CreatedAt time.Time `json:"created"`
}
