package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clearance/cmd/identity/ids"
)

// Claims is the minimal identity envelope carried by a session token.
//
// Name is the user's login name; carrying the name (not the id) as the
// subject preserves the original contract where resolution re-reads the
// directory by name. TokenID is a ULID used for log correlation only.
type Claims struct {
	Name      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
}

// TokenManager issues and verifies signed, expiring session tokens.
type TokenManager interface {
	Issue(name string, now time.Time) (token string, claims Claims, err error)
	Verify(token string, now time.Time) (Claims, error)
}

type hs256Manager struct {
	issuer    string
	ttl       time.Duration
	clockSkew time.Duration

	secret []byte
}

// NewHS256Manager builds a TokenManager signing with HMAC-SHA256.
//
// A keyed MAC fits a single-process verifier: there is no third party that
// needs to check tokens without the signing capability. Any bit-level change
// to payload or signature makes verification fail.
func NewHS256Manager(cfg Config) (TokenManager, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrConfig
	}
	// TTL zero is allowed: it produces a token that is already expired,
	// which callers use to force re-authentication.
	if cfg.TokenTTL < 0 || cfg.ClockSkew < 0 {
		return nil, ErrConfig
	}

	return &hs256Manager{
		issuer:    cfg.Issuer,
		ttl:       cfg.TokenTTL,
		clockSkew: cfg.ClockSkew,
		secret:    cfg.SigningKey,
	}, nil
}

func (m *hs256Manager) Issue(name string, now time.Time) (string, Claims, error) {
	exp := now.Add(m.ttl)

	jti, err := ids.NewULID(now)
	if err != nil {
		return "", Claims{}, err
	}

	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   name,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Claims{}, err
	}

	return signed, Claims{
		Name:      name,
		TokenID:   jti,
		IssuedAt:  now,
		ExpiresAt: exp,
		Issuer:    m.issuer,
	}, nil
}

func (m *hs256Manager) Verify(tokenStr string, now time.Time) (Claims, error) {
	// Build a fresh parser per call; parsers are cheap and this keeps the
	// validation rules explicit at the call site.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithLeeway(m.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	var rc jwt.RegisteredClaims
	tok, err := parser.ParseWithClaims(tokenStr, &rc, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		// The signature is verified before claims are validated, so
		// ErrTokenExpired here always means "authentic but stale".
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !tok.Valid || rc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		Name:    rc.Subject,
		TokenID: rc.ID,
		Issuer:  rc.Issuer,
	}
	if rc.IssuedAt != nil {
		out.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		out.ExpiresAt = rc.ExpiresAt.Time
	}
	return out, nil
}
