package identity

import (
	"context"
	"time"

	"clearance/cmd/identity/ids"
)

// MemoryStore is the in-process credential directory.
//
// It is built once at startup and never mutated afterwards, so the lookup
// maps are safe for concurrent readers without locking. This is the only
// user storage in Clearance; persistence is deliberately out of scope.
type MemoryStore struct {
	byName map[string]User // normalized name -> user
	byID   map[string]User
}

// NewMemoryStore builds a directory from the given users.
//
// Every user must carry a non-empty Name and PasswordHash may be empty (such
// a user can never authenticate, by the verifier's contract). Users without
// an ID are assigned a ULID. Two users whose names normalize to the same key
// are rejected: name lookup must resolve to at most one user.
func NewMemoryStore(users []User) (*MemoryStore, error) {
	s := &MemoryStore{
		byName: make(map[string]User, len(users)),
		byID:   make(map[string]User, len(users)),
	}

	now := time.Now().UTC()
	for _, u := range users {
		if NormalizeName(u.Name) == "" {
			return nil, OpError{Op: "identity.NewMemoryStore", Kind: ErrInvalidInput, Msg: "user with empty name"}
		}
		if u.ID == "" {
			id, err := ids.NewULID(now)
			if err != nil {
				return nil, OpError{Op: "identity.NewMemoryStore", Kind: ErrInvalidInput, Msg: "ulid generation failed"}
			}
			u.ID = id
		}

		key := NormalizeName(u.Name)
		if _, dup := s.byName[key]; dup {
			return nil, OpError{Op: "identity.NewMemoryStore", Kind: ErrDuplicateName, Msg: key}
		}
		if _, dup := s.byID[u.ID]; dup {
			return nil, OpError{Op: "identity.NewMemoryStore", Kind: ErrInvalidInput, Msg: "duplicate id " + u.ID}
		}

		s.byName[key] = u
		s.byID[u.ID] = u
	}

	return s, nil
}

// Len returns the number of users in the directory.
func (s *MemoryStore) Len() int { return len(s.byID) }

// FindByName looks up a user by case-insensitive name.
func (s *MemoryStore) FindByName(ctx context.Context, name string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	u, ok := s.byName[NormalizeName(name)]
	if !ok {
		return User{}, OpError{Op: "identity.FindByName", Kind: ErrNotFound}
	}
	return u, nil
}

// FindByID looks up a user by its opaque identifier.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	u, ok := s.byID[id]
	if !ok {
		return User{}, OpError{Op: "identity.FindByID", Kind: ErrNotFound}
	}
	return u, nil
}
