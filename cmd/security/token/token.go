package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

const (
	// SigningKeyEnvKey is the env var name for the session signing secret.
	// #nosec G101 -- not a credential; it's an environment variable name.
	SigningKeyEnvKey = "CLEARANCE_SESSION_SECRET_KEY"

	// MinSigningKeyBytes is the minimum secret size accepted outside dev mode.
	// 32 bytes matches the HMAC-SHA256 block recommendation.
	MinSigningKeyBytes = 32
)

// SigningKeyFromEnv returns the configured signing key bytes (trimmed),
// enforcing a minimum byte length.
// If the env var is missing/blank -> ErrSigningKeyMissing.
// If too short -> ErrSigningKeyTooShort.
//
// The length is measured in bytes (not runes) because the key is used as raw bytes.
func SigningKeyFromEnv(minBytes int) ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(SigningKeyEnvKey))
	if raw == "" {
		return nil, ErrSigningKeyMissing
	}
	b := []byte(raw)
	if minBytes > 0 && len(b) < minBytes {
		return nil, ErrSigningKeyTooShort
	}
	return b, nil
}

// SigningKeyConfigured reports whether the env key is present (non-empty after trim).
// Note: This does not enforce minimum length. Use SigningKeyFromEnv for policy checks.
func SigningKeyConfigured() bool {
	raw := strings.TrimSpace(os.Getenv(SigningKeyEnvKey))
	return raw != ""
}

// NewEphemeralSigningKey returns a fresh random key of MinSigningKeyBytes.
// Dev-mode only: tokens signed with it do not survive a restart.
func NewEphemeralSigningKey() ([]byte, error) {
	b := make([]byte, MinSigningKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// HashSHA256Hex returns a SHA-256 hex digest of s.
// Used for audit/throttle bucket keys derived from login identifiers.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
