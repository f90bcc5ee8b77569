package identity

import "context"

// Store is the credential-directory read boundary.
//
// Both lookups return ErrNotFound (wrapped in OpError) for absence. Name
// lookup is case-insensitive: implementations must normalize with
// NormalizeName before comparing, and must resolve a normalized name to at
// most one user.
type Store interface {
	FindByName(ctx context.Context, name string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
}
