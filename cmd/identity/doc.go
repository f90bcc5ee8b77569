// Package identity implements the Clearance credential directory.
//
// It owns the User model, case-insensitive name lookup, and the password
// verification wrappers used by the auth layers. The directory is loaded
// once at startup and is immutable afterwards: there is no registration or
// password-reset flow in this service, so the store is the sole writer and
// concurrent readers need no locking.
//
// This package is intentionally dependency-light and security-first.
package identity
