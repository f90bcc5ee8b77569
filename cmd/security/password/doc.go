// Package password is the single source of truth for password hashing in Clearance.
//
// It wraps the bcrypt construction (salt embedded in the stored hash,
// constant-time comparison inside the primitive) behind a small config
// surface:
//   - bcrypt cost (defaults + env overrides)
//   - password policy applied when hashing (min/max length)
//
// Verification is deliberately quiet: a mismatch, an empty candidate, or an
// empty stored hash all return (false, nil). Only a malformed stored hash
// surfaces ErrInvalidHash. Callers decide how to log; this package never
// sees more than it needs and never logs the password itself.
package password
