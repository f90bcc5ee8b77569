// Package identity password verification (bcrypt).
//
// This file preserves identity's small public API:
//
//   - HashPassword
//   - VerifyPassword
//
// while using cmd/security/password as the single source of truth for
// bcrypt cost and password policy (defaults + env overrides). identity MUST
// NOT silently drift from security/password configuration.
package identity

import "clearance/cmd/security/password"

// HashPassword returns a salted bcrypt hash of the password.
// Policy (min/max length) and cost come from env-backed configuration.
func HashPassword(passwordPlain string) (string, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		// Treat invalid env as an operational error, not a weak fallback.
		return "", err
	}
	return cfg.Hash(passwordPlain)
}

// VerifyPassword checks a candidate password against a stored bcrypt hash.
//
// Security contract:
//   - (false, nil) for a mismatch, an empty candidate, or an empty hash —
//     these are verification failures, not exceptional conditions.
//   - Constant-time comparison via the bcrypt primitive.
//   - The raw password is never logged or retained.
func VerifyPassword(passwordPlain string, encodedHash string) (bool, error) {
	cfg, err := password.FromEnv()
	if err != nil {
		return false, err
	}
	return cfg.Verify(encodedHash, passwordPlain)
}
