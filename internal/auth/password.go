// Package auth implements the credential primitives for Kindred: bcrypt
// password hashing and JWT bearer-token issuance/verification. It holds no
// storage and no HTTP concerns -- the users feature composes these into the
// registration and login flows.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies salted bcrypt hashes. The cost is
// fixed at construction and read-only afterwards.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the default (10), which is
// also the application default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted hash from the plaintext password. bcrypt generates
// a fresh random salt per call, so hashing the same password twice yields
// different encoded outputs -- both of which verify.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored encoded
// hash. The salt and cost are read from the stored value; the comparison is
// constant-time. Any failure -- wrong password, truncated or corrupt stored
// hash -- returns false rather than an error, so callers can't tell a bad
// credential apart from a bad record.
func (h *PasswordHasher) Verify(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
