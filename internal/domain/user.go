package domain

import (
	"strings"
	"time"
)

// User represents a registered account in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateJoined   time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"updated"`
}

// TokenPair holds an access and refresh token pair as returned on login.
type TokenPair struct {
	AuthToken    string `json:"auth_token"`
	RefreshToken string `json:"refresh_token"`
}

// NormalizeEmail lower-cases the domain part of an email address while
// preserving the local part verbatim. An address without an '@' is returned
// unchanged; the email validator rejects it downstream.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}
