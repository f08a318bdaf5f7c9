package model

// Hasher defines one-way password hashing and verification.
type Hasher interface {
	// Hash produces a salted hash of password. The salt is random per
	// call, so equal inputs yield different hashes.
	Hash(password string) (string, error)
	// Check reports whether password matches hash using a constant-time
	// comparison.
	Check(password, hash string) bool
}
