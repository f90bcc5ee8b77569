package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes a password with bcrypt and returns the encoded hash string.
// The per-password random salt is generated by bcrypt and embedded in the
// output, so the result is self-contained for later verification.
func (c Config) Hash(password string) (string, error) {
	if err := c.Validate(password); err != nil {
		return "", err
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), c.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify checks whether password matches the given encoded hash.
// Returns (true, nil) for a match and (false, nil) for a mismatch, an empty
// candidate, or an empty stored hash. Only a malformed stored hash yields
// (false, ErrInvalidHash).
//
// The mismatch path runs the full bcrypt computation; cost is controlled by
// the stored hash, and the comparison inside bcrypt is constant-time. The
// empty-input short-circuits below reveal nothing an attacker does not
// already know (they supplied the empty password themselves).
func (c Config) Verify(encodedHash, password string) (bool, error) {
	if encodedHash == "" || password == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Truncated/garbled hash, unsupported version prefix, etc.
		return false, ErrInvalidHash
	}
}
