// Package authapi wires the session core to its HTTP boundary.
//
// The boundary is deliberately dull: a landing page, a login form, one
// protected page, and logout. What it must get right is uniformity — every
// login failure kind and every unresolvable session produces the same
// outward redirect, with no detail that would let a caller enumerate users
// or probe token state. Internal logs and the audit trail keep the detail.
package authapi
