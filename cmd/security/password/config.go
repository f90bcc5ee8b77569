package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Policy controls password validation applied when hashing new passwords.
// Verification intentionally ignores policy: already-stored hashes must keep
// verifying even if the policy is later tightened.
type Policy struct {
	MinLength int
	MaxLength int
}

// Config is the single configuration surface for this package.
type Config struct {
	// Cost is the bcrypt cost factor (log2 of the work).
	Cost int

	Policy Policy
}

// DefaultConfig returns the baseline used when no env overrides are present.
//
// Cost 12 matches the credential fixtures the original directory ships with
// and is a reasonable interactive-login setting. MaxLength is bcrypt's hard
// 72-byte input limit; silently truncating longer passwords is worse than
// rejecting them.
func DefaultConfig() Config {
	return Config{
		Cost: 12,
		Policy: Policy{
			MinLength: 8,
			MaxLength: 72,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - CLEARANCE_BCRYPT_COST
// - CLEARANCE_PASSWORD_MIN_LEN
// - CLEARANCE_PASSWORD_MAX_LEN
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("CLEARANCE_BCRYPT_COST"); ok {
		n, err := atoiBounded(v, bcrypt.MinCost, bcrypt.MaxCost)
		if err != nil {
			return Config{}, fmt.Errorf("CLEARANCE_BCRYPT_COST: %w", err)
		}
		cfg.Cost = n
	}

	if v, ok := os.LookupEnv("CLEARANCE_PASSWORD_MIN_LEN"); ok {
		n, err := atoiBounded(v, 1, 72)
		if err != nil {
			return Config{}, fmt.Errorf("CLEARANCE_PASSWORD_MIN_LEN: %w", err)
		}
		cfg.Policy.MinLength = n
	}

	if v, ok := os.LookupEnv("CLEARANCE_PASSWORD_MAX_LEN"); ok {
		n, err := atoiBounded(v, 1, 72)
		if err != nil {
			return Config{}, fmt.Errorf("CLEARANCE_PASSWORD_MAX_LEN: %w", err)
		}
		cfg.Policy.MaxLength = n
	}

	// Final sanity.
	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min_len(%d) > max_len(%d)",
			cfg.Policy.MinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

// Validate applies the hashing policy to a candidate password.
// Length is measured in bytes: that is what bcrypt consumes.
func (c Config) Validate(password string) error {
	if len(password) < c.Policy.MinLength {
		return ErrPasswordTooShort
	}
	if len(password) > c.Policy.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

func atoiBounded(s string, minVal, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	i64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}

	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return i, nil
}
