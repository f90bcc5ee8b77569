package identity

// User is Clearance's canonical security principal.
//
// ID is an opaque stable identifier (ULID for generated users). Name is the
// case-insensitive login key. PasswordHash is the salted bcrypt hash exactly
// as stored; it is opaque to everything but cmd/security/password.
type User struct {
	ID           string
	Name         string
	Active       bool
	PasswordHash string
}

// IsZero reports whether u is the absent-user value.
func (u User) IsZero() bool {
	return u.ID == "" && u.Name == ""
}
