// Package token provides the signing-key surface for Clearance session tokens.
//
// It is the single source of truth for how the server-held secret is loaded.
//
// Design goals:
// - The secret comes from the deployment environment, never from code.
// - Production enforces a minimum key size (>= 32 bytes for HMAC-SHA256).
// - Callers receive raw key bytes; the key is never logged or echoed.
//
// Environment:
// - CLEARANCE_SESSION_SECRET_KEY: the session signing secret.
//
// The package also exposes a SHA-256 hex digest helper used to derive
// non-reversible bucket keys for audit counters, so raw login identifiers
// are not retained outside the credential store.
package token
