package authapi

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls auth HTTP behavior and security defaults.
type Config struct {
	SessionCookieName string
	CookiePath        string
	CookieDomain      string
	CookieSecure      bool
	CookieSameSite    http.SameSite

	TrustProxy   bool
	MaxBodyBytes int64

	LoginIPMax    int
	LoginIPWindow time.Duration

	LoginIdentifierMax    int
	LoginIdentifierWindow time.Duration
}

// LoadConfigFromEnv loads auth config from environment variables with safe defaults.
func LoadConfigFromEnv() Config {
	cfg := Config{
		SessionCookieName: envString("CLEARANCE_SESSION_COOKIE_NAME", "clearance_session"),
		CookiePath:        envString("CLEARANCE_COOKIE_PATH", "/"),
		CookieDomain:      envString("CLEARANCE_COOKIE_DOMAIN", ""),
		CookieSecure:      envBool("CLEARANCE_COOKIE_SECURE", true),
		CookieSameSite:    envSameSite("CLEARANCE_COOKIE_SAMESITE", http.SameSiteLaxMode),

		TrustProxy:   envBool("CLEARANCE_AUTH_TRUST_PROXY", false),
		MaxBodyBytes: envInt64("CLEARANCE_AUTH_MAX_BODY_BYTES", 1<<16), // form posts are tiny

		LoginIPMax:    envInt("CLEARANCE_AUTH_LOGIN_IP_MAX", 20),
		LoginIPWindow: envDuration("CLEARANCE_AUTH_LOGIN_IP_WINDOW", 5*time.Minute),

		LoginIdentifierMax:    envInt("CLEARANCE_AUTH_LOGIN_IDENTIFIER_MAX", 5),
		LoginIdentifierWindow: envDuration("CLEARANCE_AUTH_LOGIN_IDENTIFIER_WINDOW", 15*time.Minute),
	}

	// Clamp to keep values sensible.
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 16
	}
	if cfg.LoginIPMax <= 0 {
		cfg.LoginIPMax = 20
	}
	if cfg.LoginIdentifierMax <= 0 {
		cfg.LoginIdentifierMax = 5
	}

	return cfg
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envSameSite(key string, def http.SameSite) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return def
	}
}
