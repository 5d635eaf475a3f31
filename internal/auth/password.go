// Package auth provides the credential primitives of the application:
// one-way password hashing and the issuance/verification of session tokens
// and password-reset secrets. The package is a leaf; it depends only on the
// configured secrets and the clock, never on storage or transport.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for all newly hashed passwords.
// Verification reads the cost from the stored hash, so raising this value
// only affects new hashes.
const bcryptCost = 12

// PasswordHasher performs one-way salted hashing and verification of user
// passwords. The zero value is ready to use and safe for concurrent use.
type PasswordHasher struct{}

// NewPasswordHasher constructs a [PasswordHasher].
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash returns the bcrypt hash of plaintext with a fresh random salt
// embedded in the output, so [PasswordHasher.Verify] is self-contained.
//
// Returns ErrEmptyPassword if plaintext is empty. Hashing is deliberately
// expensive (tens of milliseconds) to slow brute-force attacks.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
// It never returns an error: a malformed stored hash simply yields false.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
