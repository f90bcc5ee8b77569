package identity

import (
	"errors"
	"fmt"
)

// Sentinel error kinds (stable for errors.Is and for caller decisions).
//
// ErrNotFound is a normal, expected outcome for directory lookups: the
// authenticator distinguishes "no such user" from "wrong password" only
// internally, never in anything surfaced to a client.
var (
	ErrInvalidInput  = errors.New("invalid_input")
	ErrNotFound      = errors.New("not_found")
	ErrDuplicateName = errors.New("duplicate_name")
)

// OpError is a typed operation error with a stable Op + Kind contract for
// callers and tests.
//
// Kind MUST be one of the sentinel kinds when applicable. Msg may include
// human-readable context; do not include secrets.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// IsNotFound reports whether err represents ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err represents ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
