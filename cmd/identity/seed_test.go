package identity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")

	data := `[
		{"id": "u-1", "name": "Alice", "password_hash": "$2b$fake"},
		{"id": "u-2", "name": "Bob", "active": false, "password_hash": "$2b$fake2"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	users, err := LoadDirectory(path)
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if !users[0].Active {
		t.Fatalf("active must default to true when omitted")
	}
	if users[1].Active {
		t.Fatalf("explicit active=false must be honored")
	}
}

func TestLoadDirectory_Errors(t *testing.T) {
	if _, err := LoadDirectory(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadDirectory(empty); !IsInvalidInput(err) {
		t.Fatalf("expected ErrInvalidInput for empty directory, got %v", err)
	}
}

func TestDevDirectory_FixturesVerify(t *testing.T) {
	users := DevDirectory()
	if len(users) != 2 {
		t.Fatalf("expected 2 dev users, got %d", len(users))
	}

	ok, err := VerifyPassword("diffie_rulz", users[0].PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatalf("Alice fixture must verify with its documented password")
	}

	ok, err = VerifyPassword("prng_nonce", users[1].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("Bob fixture must verify, got ok=%v err=%v", ok, err)
	}
}

func TestNormalizeName(t *testing.T) {
	if NormalizeName("  AlIcE ") != "alice" {
		t.Fatalf("unexpected normalization")
	}
	if NormalizeName("") != "" {
		t.Fatalf("empty stays empty")
	}
}
