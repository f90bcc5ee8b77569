package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func discardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadUsers_DevModeUsesFixtures(t *testing.T) {
	users, err := loadUsers(Config{DevMode: true}, discardLogger())
	if err != nil {
		t.Fatalf("loadUsers: %v", err)
	}
	if len(users) == 0 {
		t.Fatalf("expected fixture users")
	}
}

func TestLoadUsers_ProductionRequiresFile(t *testing.T) {
	if _, err := loadUsers(Config{}, discardLogger()); err == nil {
		t.Fatalf("expected an error without a users file outside dev mode")
	}
}

func TestValidateSecurityConfig(t *testing.T) {
	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", "")

	if err := ValidateSecurityConfig(Config{DevMode: true}); err != nil {
		t.Fatalf("dev mode must not require a key: %v", err)
	}
	if err := ValidateSecurityConfig(Config{}); err == nil {
		t.Fatalf("expected a policy error without a key")
	}

	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", "short")
	if err := ValidateSecurityConfig(Config{}); err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("expected a too-short policy error, got %v", err)
	}

	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", strings.Repeat("k", 32))
	if err := ValidateSecurityConfig(Config{}); err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
}

func TestResolveSigningKey(t *testing.T) {
	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", "")

	if _, err := resolveSigningKey(Config{}, discardLogger()); err == nil {
		t.Fatalf("expected an error without a key outside dev mode")
	}

	key, err := resolveSigningKey(Config{DevMode: true}, discardLogger())
	if err != nil {
		t.Fatalf("resolveSigningKey dev: %v", err)
	}
	if len(key) < 32 {
		t.Fatalf("ephemeral key too short: %d bytes", len(key))
	}

	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", strings.Repeat("k", 32))
	key, err = resolveSigningKey(Config{}, discardLogger())
	if err != nil {
		t.Fatalf("resolveSigningKey env: %v", err)
	}
	if string(key) != strings.Repeat("k", 32) {
		t.Fatalf("expected the configured key to win")
	}
}

func TestRegisterHTTP_HealthAndReadiness(t *testing.T) {
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, nil, false, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/healthz: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/readyz without db requirement: %d", rr.Code)
	}

	mux = http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{ReadinessRequireDB: true}, nil, false, nil, nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("/readyz must fail when the required db is absent: %d", rr.Code)
	}
}

func TestNew_WiresDevApp(t *testing.T) {
	t.Setenv("CLEARANCE_SESSION_SECRET_KEY", "")
	t.Setenv("CLEARANCE_DATABASE_URL", "")
	t.Setenv("CLEARANCE_BCRYPT_COST", "4")

	cfg := LoadConfig()
	cfg.DevMode = true

	a, err := New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.dbEnabled {
		t.Fatalf("db must stay disabled without a database url")
	}
	if a.auth == nil || a.registry == nil {
		t.Fatalf("auth handler and metrics registry must be wired")
	}
}

func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"CLEARANCE_HTTP_ADDR", "CLEARANCE_LOG_LEVEL", "CLEARANCE_HTTP_READ_TIMEOUT",
		"CLEARANCE_USERS_FILE", "CLEARANCE_DEV_MODE", "CLEARANCE_DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.HTTPAddr != "0.0.0.0:8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("unexpected timeout defaults: %+v", cfg)
	}
	if cfg.DevMode || cfg.DatabaseURL != "" {
		t.Fatalf("dev/db must default off: %+v", cfg)
	}
}
