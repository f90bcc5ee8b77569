package token

import "errors"

// Public, stable errors for callers.
var (
	ErrSigningKeyMissing  = errors.New("session signing key missing")
	ErrSigningKeyTooShort = errors.New("session signing key too short")
)
