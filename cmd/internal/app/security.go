package app

import (
	"errors"

	"clearance/cmd/security/token"
)

// ValidateSecurityConfig enforces the startup security policy.
//
// Fail-fast is intentional: silently falling back to a weak or absent signing
// secret in production is unacceptable. Dev mode is the only escape hatch,
// and it gets an ephemeral key rather than a hardcoded one.
func ValidateSecurityConfig(cfg Config) error {
	if cfg.DevMode {
		return nil
	}

	if _, err := token.SigningKeyFromEnv(token.MinSigningKeyBytes); err != nil {
		switch {
		case errors.Is(err, token.ErrSigningKeyMissing):
			return errors.New("security policy: CLEARANCE_SESSION_SECRET_KEY is missing (set it or enable CLEARANCE_DEV_MODE)")
		case errors.Is(err, token.ErrSigningKeyTooShort):
			return errors.New("security policy: CLEARANCE_SESSION_SECRET_KEY is too short (min 32 bytes)")
		default:
			return err
		}
	}
	return nil
}

// resolveSigningKey returns the session signing key: the configured one when
// present, an ephemeral one in dev mode.
func resolveSigningKey(cfg Config, log Logger) ([]byte, error) {
	if token.SigningKeyConfigured() {
		return token.SigningKeyFromEnv(token.MinSigningKeyBytes)
	}
	if cfg.DevMode {
		log.Warn("security.signing_key.ephemeral", "note", "sessions will not survive a restart")
		return token.NewEphemeralSigningKey()
	}
	return nil, errors.New("no session signing key configured")
}
