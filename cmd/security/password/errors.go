package password

import "errors"

// Public, stable errors for callers (errors.Is friendly).
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrInvalidHash      = errors.New("invalid bcrypt hash")
)
