// Package hasher provides the bcrypt implementation of password hashing.
package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/userauth-server/internal/model"
)

var _ model.Hasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with golang.org/x/crypto/bcrypt. bcrypt
// generates a random salt per call and compares in constant time.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt hasher with the default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt hash of password.
func (h *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Check reports whether password matches hash.
func (h *Bcrypt) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
