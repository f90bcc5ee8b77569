package identity

import (
	"encoding/json"
	"fmt"
	"os"
)

// userRecord is the on-disk shape of a directory entry.
// Active defaults to true when omitted.
type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Active       *bool  `json:"active"`
	PasswordHash string `json:"password_hash"`
}

// LoadDirectory reads a JSON user file and returns the users it defines.
// The file is read once at startup; Clearance never writes it back.
func LoadDirectory(path string) ([]User, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path from config.
	if err != nil {
		return nil, fmt.Errorf("users file: %w", err)
	}

	var records []userRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("users file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, OpError{Op: "identity.LoadDirectory", Kind: ErrInvalidInput, Msg: "users file defines no users"}
	}

	users := make([]User, 0, len(records))
	for _, r := range records {
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		users = append(users, User{
			ID:           r.ID,
			Name:         r.Name,
			Active:       active,
			PasswordHash: r.PasswordHash,
		})
	}
	return users, nil
}

// DevDirectory returns the built-in development fixtures.
//
// These are the two accounts the original deployment shipped with; the
// hashes are bcrypt (cost 12) and the passwords are documented in the repo's
// test suite, so this directory must never be used outside dev mode.
func DevDirectory() []User {
	return []User{
		{
			Name:         "Alice",
			Active:       true,
			PasswordHash: "$2b$12$6UcECs.N2rNgOJGMgK3L8O5woOSOEAyuxdCvblrVatJNRVPHTnsx6", // diffie_rulz
		},
		{
			Name:         "Bob",
			Active:       true,
			PasswordHash: "$2b$12$UmgXcHWoxlIsrEoT54LMHeb82OVkkLzPzxVni5.GyaN17JmabRSXO", // prng_nonce
		},
	}
}
