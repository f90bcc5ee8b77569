package ids

import (
	"testing"
	"time"
)

func TestNewULID(t *testing.T) {
	now := time.Now().UTC()

	a, err := NewULID(now)
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	if len(a) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", a)
	}

	b, err := NewULID(now)
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	if a == b {
		t.Fatalf("two ULIDs at the same timestamp must still differ")
	}
}

func TestNewULID_ZeroTime(t *testing.T) {
	id, err := NewULID(time.Time{})
	if err != nil {
		t.Fatalf("NewULID: %v", err)
	}
	if len(id) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", id)
	}
}
