package authapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP_TrustProxy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.2")

	if ip := clientIP(req, false); ip == nil || ip.String() != "10.0.0.1" {
		t.Fatalf("untrusted proxy: expected remote addr, got %v", ip)
	}
	if ip := clientIP(req, true); ip == nil || ip.String() != "203.0.113.5" {
		t.Fatalf("trusted proxy: expected forwarded ip, got %v", ip)
	}
}

func TestClientIP_FallsBackThroughHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "not-an-ip")
	req.Header.Set("X-Real-IP", "198.51.100.3")

	if ip := clientIP(req, true); ip == nil || ip.String() != "198.51.100.3" {
		t.Fatalf("expected X-Real-IP fallback, got %v", ip)
	}
}

func TestLoginIdentifier_NormalizesBeforeHashing(t *testing.T) {
	a := loginIdentifier("Alice")
	b := loginIdentifier("  aLiCe ")
	if a == "" || a != b {
		t.Fatalf("expected identical identifier hashes, got %q vs %q", a, b)
	}
	if a == "alice" {
		t.Fatalf("identifier must not be the raw name")
	}
	if loginIdentifier("   ") != "" {
		t.Fatalf("blank names have no identifier")
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg := LoadConfigFromEnv()
	if cfg.SessionCookieName != "clearance_session" {
		t.Fatalf("unexpected cookie name: %q", cfg.SessionCookieName)
	}
	if !cfg.CookieSecure || cfg.CookieSameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie defaults: %+v", cfg)
	}
	if cfg.LoginIPMax <= 0 || cfg.LoginIdentifierMax <= 0 {
		t.Fatalf("throttle defaults must be positive: %+v", cfg)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("CLEARANCE_SESSION_COOKIE_NAME", "sess")
	t.Setenv("CLEARANCE_COOKIE_SECURE", "false")
	t.Setenv("CLEARANCE_COOKIE_SAMESITE", "strict")
	t.Setenv("CLEARANCE_AUTH_LOGIN_IDENTIFIER_MAX", "3")

	cfg := LoadConfigFromEnv()
	if cfg.SessionCookieName != "sess" || cfg.CookieSecure || cfg.CookieSameSite != http.SameSiteStrictMode {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LoginIdentifierMax != 3 {
		t.Fatalf("expected identifier max 3, got %d", cfg.LoginIdentifierMax)
	}
}
