package authapi

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestMemoryRecorder_CountsOnlyRecentFailures(t *testing.T) {
	r := NewMemoryRecorder(testLogger())
	ctx := context.Background()

	ip := net.ParseIP("203.0.113.7")
	now := time.Now().UTC()

	r.Record(ctx, auditEvent{Action: actionLoginFailed, IP: ip, IdentifierHash: "aaa", At: now.Add(-10 * time.Minute)})
	r.Record(ctx, auditEvent{Action: actionLoginFailed, IP: ip, IdentifierHash: "aaa", At: now.Add(-1 * time.Minute)})
	r.Record(ctx, auditEvent{Action: actionLoginFailed, IP: ip, IdentifierHash: "bbb", At: now})

	// Non-failure actions never feed the throttle.
	r.Record(ctx, auditEvent{Action: "auth.login.success", IP: ip, IdentifierHash: "aaa", At: now})
	r.Record(ctx, auditEvent{Action: "auth.logout", IP: ip, IdentifierHash: "aaa", At: now})

	n, err := r.CountLoginFailuresByIP(ctx, ip, now.Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("CountLoginFailuresByIP: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 recent failures by ip, got %d", n)
	}

	n, err = r.CountLoginFailuresByIdentifier(ctx, "aaa", now.Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("CountLoginFailuresByIdentifier: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recent failure for aaa, got %d", n)
	}
}

func TestMemoryRecorder_ZeroValueKeys(t *testing.T) {
	r := NewMemoryRecorder(testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	// Events without an IP or identifier are logged but never counted.
	r.Record(ctx, auditEvent{Action: actionLoginFailed, At: now})

	if n, _ := r.CountLoginFailuresByIP(ctx, nil, now.Add(-time.Minute)); n != 0 {
		t.Fatalf("nil ip: expected 0, got %d", n)
	}
	if n, _ := r.CountLoginFailuresByIdentifier(ctx, "", now.Add(-time.Minute)); n != 0 {
		t.Fatalf("empty identifier: expected 0, got %d", n)
	}
}

func TestMemoryRecorder_BucketsAreBounded(t *testing.T) {
	r := NewMemoryRecorder(testLogger())
	ctx := context.Background()
	now := time.Now().UTC()

	ip := net.ParseIP("198.51.100.9")
	for i := 0; i < memoryBucketCap+50; i++ {
		r.Record(ctx, auditEvent{Action: actionLoginFailed, IP: ip, At: now})
	}
	if got := len(r.byIP[ip.String()]); got != memoryBucketCap {
		t.Fatalf("expected bucket capped at %d, got %d", memoryBucketCap, got)
	}
}
