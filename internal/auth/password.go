package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// PasswordHasher hashes and verifies passwords with bcrypt. Equal cleartexts
// produce different hashes (bcrypt salts internally) and verification is
// constant-time over the hash comparison.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the production cost factor.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// NewPasswordHasherWithCost creates a hasher with an explicit cost factor.
// Tests use bcrypt.MinCost to keep hashing fast.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of the raw password.
func (h *PasswordHasher) Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether raw is the password behind the stored hash.
func (h *PasswordHasher) Verify(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
