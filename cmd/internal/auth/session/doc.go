// Package session implements Clearance's stateless session core.
//
// It provides the signed, expiring session token (HS256 JWT over a
// server-held secret) and the authenticator that orchestrates directory
// lookup, password verification, token issuance, and token resolution.
//
// Sessions are stateless: validity is fully determined by the token's own
// signature and expiry, with no server-side session table. The flip side is
// that tokens cannot be revoked server-side; logout is a client-side
// discard. That is a documented property of this design, not a bug.
//
// Transport (HTTP) integration is intentionally out of scope here.
package session
