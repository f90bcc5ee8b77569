package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogPretty bool

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// Path to the JSON user directory loaded at startup.
	UsersFile string

	// Dev mode relaxes the security policy: a missing signing key becomes an
	// ephemeral one and the fixture directory is available. Never in prod.
	DevMode bool

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// If true, /readyz returns 503 unless the DB is configured and reachable.
	ReadinessRequireDB bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("CLEARANCE_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("CLEARANCE_LOG_LEVEL", "info"),
		LogPretty: EnvBool("CLEARANCE_LOG_PRETTY", false),

		ReadHeaderTimeout: EnvDuration("CLEARANCE_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("CLEARANCE_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("CLEARANCE_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("CLEARANCE_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("CLEARANCE_HTTP_MAX_HEADER_BYTES", 1<<20),

		UsersFile: EnvString("CLEARANCE_USERS_FILE", ""),
		DevMode:   EnvBool("CLEARANCE_DEV_MODE", false),

		DatabaseURL: EnvString("CLEARANCE_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("CLEARANCE_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("CLEARANCE_DB_MIN_CONNS", 0),

		ReadinessRequireDB: EnvBool("CLEARANCE_READINESS_REQUIRE_DB", false),
	}
}
