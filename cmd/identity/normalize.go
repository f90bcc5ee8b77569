package identity

import "strings"

// NormalizeName performs case-insensitive canonicalization of a login name.
// Note: for now we only trim + lower-case. Additional rules (unicode
// confusables) can be added later behind a versioned policy.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
