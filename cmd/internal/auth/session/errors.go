package session

import "errors"

var (
	// ErrInvalidToken is returned when a token fails signature verification:
	// truncated, corrupted, forged, or signed under a different secret.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the signature verified but the
	// token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrNoSession is returned by Resolve for every outcome that does not
	// yield an authenticated user. Callers treat it as "anonymous"; the
	// wrapped cause stays available for internal logging via errors.Is.
	ErrNoSession = errors.New("no active session")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)

// Login failure kinds. All of them are collapsed into one uniform outward
// response by the HTTP layer; only internal logs may tell them apart.
var (
	ErrUnknownUser     = errors.New("unknown user")
	ErrMissingPassword = errors.New("missing password")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInactiveUser    = errors.New("inactive user")
)
