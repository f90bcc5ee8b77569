package authapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// auditEvent is one entry of the auth audit trail.
//
// IdentifierHash is a SHA-256 digest of the normalized login name, never the
// raw name: the trail must not become a second user directory.
type auditEvent struct {
	Action         string
	IdentifierHash string
	UserID         string
	TokenID        string
	IP             net.IP
	UserAgent      string
	At             time.Time
	Meta           map[string]any
}

const actionLoginFailed = "auth.login.failed"

// Recorder persists the audit trail and serves the failure counts the login
// throttle runs on. Record is best-effort: auditing must never fail a login.
type Recorder interface {
	Record(ctx context.Context, ev auditEvent)
	CountLoginFailuresByIP(ctx context.Context, ip net.IP, since time.Time) (int, error)
	CountLoginFailuresByIdentifier(ctx context.Context, identifierHash string, since time.Time) (int, error)
}

// ---- in-memory recorder (default) ----

// memoryBucketCap bounds per-bucket failure history in dev deployments.
const memoryBucketCap = 1024

// MemoryRecorder keeps failure timestamps in process and mirrors every event
// to the structured log. It is the default when no database is configured.
type MemoryRecorder struct {
	log *slog.Logger

	mu           sync.Mutex
	byIP         map[string][]time.Time
	byIdentifier map[string][]time.Time
}

// NewMemoryRecorder constructs the in-process recorder.
func NewMemoryRecorder(log *slog.Logger) *MemoryRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &MemoryRecorder{
		log:          log,
		byIP:         make(map[string][]time.Time),
		byIdentifier: make(map[string][]time.Time),
	}
}

func (r *MemoryRecorder) Record(_ context.Context, ev auditEvent) {
	logAuditEvent(r.log, ev)

	if ev.Action != actionLoginFailed {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.IP != nil {
		r.byIP[ev.IP.String()] = appendBounded(r.byIP[ev.IP.String()], ev.At)
	}
	if ev.IdentifierHash != "" {
		r.byIdentifier[ev.IdentifierHash] = appendBounded(r.byIdentifier[ev.IdentifierHash], ev.At)
	}
}

func (r *MemoryRecorder) CountLoginFailuresByIP(_ context.Context, ip net.IP, since time.Time) (int, error) {
	if ip == nil {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return countSince(r.byIP[ip.String()], since), nil
}

func (r *MemoryRecorder) CountLoginFailuresByIdentifier(_ context.Context, identifierHash string, since time.Time) (int, error) {
	if identifierHash == "" {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return countSince(r.byIdentifier[identifierHash], since), nil
}

func appendBounded(ts []time.Time, t time.Time) []time.Time {
	ts = append(ts, t)
	if len(ts) > memoryBucketCap {
		ts = ts[len(ts)-memoryBucketCap:]
	}
	return ts
}

func countSince(ts []time.Time, since time.Time) int {
	n := 0
	for _, t := range ts {
		if !t.Before(since) {
			n++
		}
	}
	return n
}

// ---- postgres recorder (optional) ----

// PostgresRecorder persists audit events in clearance.audit_log.
//
// Expected table (schema managed outside this repo):
//
//	CREATE TABLE clearance.audit_log (
//	    id bigserial PRIMARY KEY,
//	    action text NOT NULL,
//	    identifier_hash text,
//	    user_id text,
//	    token_id text,
//	    created_at timestamptz NOT NULL,
//	    ip inet,
//	    user_agent text,
//	    meta jsonb
//	);
type PostgresRecorder struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

// NewPostgresRecorder constructs a recorder over an existing pool.
// The pool's lifecycle is owned by the caller.
func NewPostgresRecorder(log *slog.Logger, pool *pgxpool.Pool) *PostgresRecorder {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresRecorder{log: log, pool: pool}
}

func (r *PostgresRecorder) Record(ctx context.Context, ev auditEvent) {
	logAuditEvent(r.log, ev)

	var ipVal any
	if ev.IP != nil {
		ipVal = ev.IP.String()
	}

	var metaVal *string
	if len(ev.Meta) > 0 {
		if b, err := json.Marshal(ev.Meta); err == nil {
			s := string(b)
			metaVal = &s
		}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO clearance.audit_log (
			action, identifier_hash, user_id, token_id, created_at, ip, user_agent, meta
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb)
	`, ev.Action, trimOrNil(ev.IdentifierHash), trimOrNil(ev.UserID), trimOrNil(ev.TokenID),
		ev.At, ipVal, trimOrNil(ev.UserAgent), metaVal)
	if err != nil {
		r.log.Error("auth.audit.insert.fail", "err", err, "action", ev.Action)
	}
}

func (r *PostgresRecorder) CountLoginFailuresByIP(ctx context.Context, ip net.IP, since time.Time) (int, error) {
	if ip == nil {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM clearance.audit_log
		WHERE action = $1
		  AND ip = $2
		  AND created_at >= $3
	`, actionLoginFailed, ip.String(), since).Scan(&n)
	return n, err
}

func (r *PostgresRecorder) CountLoginFailuresByIdentifier(ctx context.Context, identifierHash string, since time.Time) (int, error) {
	if strings.TrimSpace(identifierHash) == "" {
		return 0, nil
	}
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM clearance.audit_log
		WHERE action = $1
		  AND identifier_hash = $2
		  AND created_at >= $3
	`, actionLoginFailed, identifierHash, since).Scan(&n)
	return n, err
}

// ---- shared ----

func logAuditEvent(log *slog.Logger, ev auditEvent) {
	attrs := []any{
		"identifier", ev.IdentifierHash,
		"ip", ipString(ev.IP),
	}
	if ev.UserID != "" {
		attrs = append(attrs, "user_id", ev.UserID)
	}
	if ev.TokenID != "" {
		attrs = append(attrs, "token_id", ev.TokenID)
	}
	for k, v := range ev.Meta {
		attrs = append(attrs, k, v)
	}
	log.Info(ev.Action, attrs...)
}

func ipString(ip net.IP) string {
	if ip == nil {
		return ""
	}
	return ip.String()
}

func trimOrNil(s string) any {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return v
}
