package session

import (
	"errors"
	"os"
	"time"

	"clearance/cmd/security/token"
)

// Config defines all runtime configuration for the session subsystem.
//
// It controls the token TTL, clock skew tolerance, issuer claim, and the
// signing secret. The struct is intentionally explicit and environment-
// driven so deployments can tune security parameters without code changes.
type Config struct {
	// Issuer is the value set in the "iss" claim of session tokens.
	Issuer string

	// TokenTTL is the session token lifetime (expiry = issuance + TTL).
	TokenTTL time.Duration

	// ClockSkew is the allowed time skew during token validation.
	ClockSkew time.Duration

	// SigningKey is the server-held HMAC secret. Loaded once at startup,
	// shared read-only by all verifications, and never logged.
	SigningKey []byte
}

// DefaultConfig returns defaults suitable for development.
// The 300-second TTL is the service's documented default session lifetime.
func DefaultConfig() Config {
	return Config{
		Issuer:    "clearance",
		TokenTTL:  300 * time.Second,
		ClockSkew: 30 * time.Second,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Env surface (durations must be valid Go duration strings):
//   - CLEARANCE_SESSION_SECRET_KEY (>= 32 bytes when set; startup policy in
//     cmd/internal/app decides whether it may be absent)
//   - CLEARANCE_AUTH_ISSUER
//   - CLEARANCE_SESSION_TTL
//   - CLEARANCE_AUTH_CLOCK_SKEW
//
// Returns ErrConfig if a present value is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("CLEARANCE_AUTH_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("CLEARANCE_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("CLEARANCE_AUTH_CLOCK_SKEW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, ErrConfig
		}
		cfg.ClockSkew = d
	}

	key, err := token.SigningKeyFromEnv(token.MinSigningKeyBytes)
	switch {
	case err == nil:
		cfg.SigningKey = key
	case errors.Is(err, token.ErrSigningKeyMissing):
		// Leave SigningKey nil; the app layer enforces presence (or fills
		// an ephemeral dev key) before the token manager is built.
	default:
		return Config{}, ErrConfig
	}

	return cfg, nil
}
