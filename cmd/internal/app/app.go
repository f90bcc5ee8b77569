// Package app wires the Clearance server runtime: config, logging, the user
// directory, session auth, and the HTTP surface.
//
// It is intentionally small and deterministic to keep behavior predictable.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clearance/cmd/identity"
	authapi "clearance/cmd/internal/auth/api"
	"clearance/cmd/internal/auth/session"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Store is a small app-level lifecycle abstraction.
// It exists to allow DB-backed resources to be closed gracefully.
type Store interface {
	Close(ctx context.Context) error
}

// nopStore is used when no database is configured.
type nopStore struct{}

func (nopStore) Close(_ context.Context) error { return nil }

// App is the Clearance server runtime.
type App struct {
	cfg Config
	log Logger

	store Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	auth     *authapi.Handler
	registry *prometheus.Registry
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg)
	}

	key, err := resolveSigningKey(cfg, log)
	if err != nil {
		return nil, err
	}

	users, err := loadUsers(cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := identity.NewMemoryStore(users)
	if err != nil {
		return nil, fmt.Errorf("user directory: %w", err)
	}
	log.Info("identity.directory.loaded", "users", store.Len())

	sessCfg, err := session.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	sessCfg.SigningKey = key
	tokens, err := session.NewHS256Manager(sessCfg)
	if err != nil {
		return nil, err
	}
	sessions := session.NewService(store, tokens)

	st, dbPool, dbEnabled, err := newAuditBackend(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	var recorder authapi.Recorder
	if dbEnabled {
		recorder = authapi.NewPostgresRecorder(log, dbPool)
	} else {
		recorder = authapi.NewMemoryRecorder(log)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authHandler, err := authapi.NewHandler(log, authapi.LoadConfigFromEnv(), sessions, recorder, authapi.NewMetrics(registry))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		store:     st,
		dbPool:    dbPool,
		dbEnabled: dbEnabled,
		auth:      authHandler,
		registry:  registry,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.auth, a.registry)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           WithRequestLogging(mux, a.log),
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled, "dev_mode", a.cfg.DevMode)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// loadUsers picks the user directory source: an explicit JSON file, or the
// built-in fixtures when dev mode is on. Production requires a file.
func loadUsers(cfg Config, log Logger) ([]identity.User, error) {
	if cfg.UsersFile != "" {
		users, err := identity.LoadDirectory(cfg.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("users file %q: %w", cfg.UsersFile, err)
		}
		return users, nil
	}
	if cfg.DevMode {
		log.Warn("identity.directory.dev_fixtures")
		return identity.DevDirectory(), nil
	}
	return nil, errors.New("no user directory: set CLEARANCE_USERS_FILE or enable CLEARANCE_DEV_MODE")
}

// newAuditBackend decides between a Postgres-backed audit trail and the
// in-memory recorder. The pool is owned here; recorders never close it.
func newAuditBackend(ctx context.Context, cfg Config, log Logger) (Store, *pgxpool.Pool, bool, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_audit")
		return nopStore{}, nil, false, nil
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, err
	}

	log.Info("db.enabled.postgres_audit")
	return dbStore{pool: pool}, pool, true, nil
}

type dbStore struct {
	pool *pgxpool.Pool
}

func (s dbStore) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
