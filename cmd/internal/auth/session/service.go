package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clearance/cmd/identity"
)

// Service implements the two session flows: login (credentials in, token
// out) and resolution (token in, user out).
//
// It holds only read-only state (directory, token manager, dummy hash) and
// is safe for concurrent use. Password verification is CPU-bound; callers on
// request paths get per-request goroutines from net/http, so a slow hash
// never stalls sibling requests.
type Service struct {
	store  identity.Store
	tokens TokenManager

	// dummyHash is verified when the user does not exist, keeping login
	// timing independent of user existence. It is a throwaway hash that can
	// never match a real password.
	dummyHash string
}

// Issued is the result of a successful login. TokenID is the issued token's
// unique id, carried separately so callers can log it without re-parsing.
type Issued struct {
	User      identity.User
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// NewService constructs a Service over an immutable directory and a token manager.
func NewService(store identity.Store, tokens TokenManager) *Service {
	s := &Service{store: store, tokens: tokens}

	if hash, err := identity.HashPassword("dummy-password-for-timing-only"); err == nil {
		s.dummyHash = hash
	}
	return s
}

// Login authenticates name/password and issues a session token.
//
// Failure kinds (ErrUnknownUser, ErrMissingPassword, ErrInvalidPassword,
// ErrInactiveUser) are for internal decision-making and logging only; every
// one of them must produce the identical outward response.
func (s *Service) Login(ctx context.Context, name, password string) (Issued, error) {
	user, lookupErr := s.store.FindByName(ctx, name)
	if lookupErr != nil {
		if identity.IsNotFound(lookupErr) {
			// Timing resistance: burn a verification for missing users too.
			if s.dummyHash != "" {
				_, _ = identity.VerifyPassword(password, s.dummyHash)
			}
			return Issued{}, ErrUnknownUser
		}
		return Issued{}, fmt.Errorf("login lookup: %w", lookupErr)
	}

	if password == "" {
		return Issued{}, ErrMissingPassword
	}

	ok, err := identity.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash is an operator problem; to the caller it
		// is still just a failed login.
		return Issued{}, fmt.Errorf("%w: %w", ErrInvalidPassword, err)
	}
	if !ok {
		return Issued{}, ErrInvalidPassword
	}

	if !user.Active {
		return Issued{}, ErrInactiveUser
	}

	token, claims, err := s.tokens.Issue(user.Name, time.Now().UTC())
	if err != nil {
		return Issued{}, fmt.Errorf("issue token: %w", err)
	}

	return Issued{User: user, Token: token, TokenID: claims.TokenID, ExpiresAt: claims.ExpiresAt}, nil
}

// Resolve turns a presented token into the authenticated user.
//
// Every failure — missing token, bad signature, expiry, a user that has left
// the directory, an inactive user — comes back as ErrNoSession with the
// cause wrapped for internal logging. Callers must treat it as "anonymous",
// never as something to surface.
func (s *Service) Resolve(ctx context.Context, token string) (identity.User, error) {
	if strings.TrimSpace(token) == "" {
		return identity.User{}, ErrNoSession
	}

	claims, err := s.tokens.Verify(token, time.Now().UTC())
	if err != nil {
		return identity.User{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	user, err := s.store.FindByName(ctx, claims.Name)
	if err != nil {
		return identity.User{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	if !user.Active {
		return identity.User{}, fmt.Errorf("%w: %w", ErrNoSession, ErrInactiveUser)
	}

	return user, nil
}
