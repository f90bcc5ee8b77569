package identity

import (
	"context"
	"errors"
	"testing"
)

func testUsers() []User {
	return []User{
		{ID: "u-alice", Name: "Alice", Active: true, PasswordHash: "hash-a"},
		{ID: "u-bob", Name: "Bob", Active: true, PasswordHash: "hash-b"},
	}
}

func TestMemoryStore_FindByName_CaseInsensitive(t *testing.T) {
	s, err := NewMemoryStore(testUsers())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	ctx := context.Background()
	for _, name := range []string{"alice", "ALICE", "Alice", "  aLiCe  "} {
		u, err := s.FindByName(ctx, name)
		if err != nil {
			t.Fatalf("FindByName(%q): %v", name, err)
		}
		if u.ID != "u-alice" {
			t.Fatalf("FindByName(%q): got %q", name, u.ID)
		}
	}
}

func TestMemoryStore_FindByName_Absent(t *testing.T) {
	s, err := NewMemoryStore(testUsers())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	_, err = s.FindByName(context.Background(), "mallory")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var oe OpError
	if !errors.As(err, &oe) || oe.Op != "identity.FindByName" {
		t.Fatalf("expected OpError with op, got %v", err)
	}
}

func TestMemoryStore_FindByID(t *testing.T) {
	s, err := NewMemoryStore(testUsers())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	u, err := s.FindByID(context.Background(), "u-bob")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if u.Name != "Bob" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := s.FindByID(context.Background(), "u-nobody"); !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewMemoryStore_RejectsDuplicateNormalizedNames(t *testing.T) {
	_, err := NewMemoryStore([]User{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "ALICE"},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestNewMemoryStore_RejectsEmptyName(t *testing.T) {
	_, err := NewMemoryStore([]User{{ID: "a", Name: "   "}})
	if !IsInvalidInput(err) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewMemoryStore_AssignsULIDs(t *testing.T) {
	s, err := NewMemoryStore([]User{{Name: "Alice"}, {Name: "Bob"}})
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	a, err := s.FindByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if len(a.ID) != 26 {
		t.Fatalf("expected assigned ULID, got %q", a.ID)
	}

	b, _ := s.FindByName(context.Background(), "bob")
	if a.ID == b.ID {
		t.Fatalf("assigned IDs must be unique")
	}
}

func TestMemoryStore_ContextCancellation(t *testing.T) {
	s, err := NewMemoryStore(testUsers())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.FindByName(ctx, "alice"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
