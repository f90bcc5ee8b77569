package authapi

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clearance/cmd/identity"
	"clearance/cmd/internal/auth/session"
	"clearance/cmd/security/token"
)

// Handler serves the browser-facing auth flow: landing page, login form,
// protected page, logout. All login failures produce the same outward
// redirect; the kinds only show up in logs, audit events and metrics.
type Handler struct {
	log *slog.Logger
	cfg Config

	sessions *session.Service
	audit    Recorder
	metrics  *Metrics
}

// NewHandler constructs the auth Handler. A nil recorder falls back to the
// in-memory one, a nil metrics set stays unregistered.
func NewHandler(log *slog.Logger, cfg Config, sessions *session.Service, audit Recorder, metrics *Metrics) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if sessions == nil {
		return nil, errors.New("auth: nil session service")
	}
	if audit == nil {
		audit = NewMemoryRecorder(log)
	}

	return &Handler{
		log:      log,
		cfg:      cfg,
		sessions: sessions,
		audit:    audit,
		metrics:  metrics,
	}, nil
}

// Register wires the auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/secrets", h.handleSecrets)
	mux.HandleFunc("/logout", h.handleLogout)
}

// ---- handlers ----

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; everything but the root is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderPage(w, h.log, landingPage, nil)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderPage(w, h.log, loginPage, nil)
	case http.MethodPost:
		h.processLogin(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) processLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()
	ip := clientIP(r, h.cfg.TrustProxy)
	ua := strings.TrimSpace(r.UserAgent())

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		// An unparseable body gets the exact same outward treatment as bad
		// credentials.
		h.auditLoginFailed(ctx, "", "", ip, ua, now, "bad_form")
		h.metrics.recordLogin(resultError)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := r.PostFormValue("name")
	pw := r.PostFormValue("pw")
	identifier := loginIdentifier(name)

	if blocked, err := h.checkLoginIPThrottle(ctx, ip, now); err != nil {
		h.log.Error("auth.login.throttle_ip.fail", "err", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	} else if blocked {
		h.auditLoginThrottled(ctx, identifier, ip, ua, now)
		h.metrics.recordLogin(resultThrottled)
		writeRateLimited(w, h.cfg.LoginIPWindow)
		return
	}
	if blocked, err := h.checkLoginIdentifierThrottle(ctx, identifier, now); err != nil {
		h.log.Error("auth.login.throttle_identifier.fail", "err", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	} else if blocked {
		h.auditLoginThrottled(ctx, identifier, ip, ua, now)
		h.metrics.recordLogin(resultThrottled)
		writeRateLimited(w, h.cfg.LoginIdentifierWindow)
		return
	}

	issued, err := h.sessions.Login(ctx, name, pw)
	if err != nil {
		reason, result := classifyLoginFailure(err)
		if result == resultError {
			h.log.Error("auth.login.fail", "err", err)
		}
		h.auditLoginFailed(ctx, identifier, "", ip, ua, now, reason)
		h.metrics.recordLogin(result)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.auditLoginSuccess(ctx, identifier, issued, ip, ua, now)
	h.metrics.recordLogin(resultSuccess)
	h.setSessionCookie(w, issued.Token, issued.ExpiresAt)
	http.Redirect(w, r, "/secrets", http.StatusSeeOther)
}

func (h *Handler) handleSecrets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	renderPage(w, h.log, secretsPage, secretsPageData{Name: user.Name})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	h.audit.Record(ctx, auditEvent{
		Action:         "auth.logout",
		IdentifierHash: loginIdentifier(user.Name),
		UserID:         user.ID,
		IP:             clientIP(r, h.cfg.TrustProxy),
		UserAgent:      strings.TrimSpace(r.UserAgent()),
		At:             now,
	})

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// currentUser resolves the session cookie to a user. On any failure the stale
// cookie is cleared so browsers do not keep replaying it.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (identity.User, bool) {
	tok, ok := h.sessionTokenFromRequest(r)
	if !ok {
		h.metrics.recordResolution(resultNoSession)
		return identity.User{}, false
	}

	user, err := h.sessions.Resolve(r.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrTokenExpired):
			h.metrics.recordResolution(resultTokenExpired)
		case errors.Is(err, session.ErrInvalidToken):
			h.metrics.recordResolution(resultTokenInvalid)
		default:
			h.metrics.recordResolution(resultNoSession)
		}
		h.log.Debug("auth.session.resolve.fail", "err", err)
		h.clearSessionCookie(w)
		return identity.User{}, false
	}

	h.metrics.recordResolution(resultSuccess)
	return user, true
}

// ---- helpers ----

// loginIdentifier is the audit/throttle key for a submitted name: a SHA-256
// digest of its normalized form, so counters never retain raw identifiers.
func loginIdentifier(name string) string {
	normalized := identity.NormalizeName(name)
	if normalized == "" {
		return ""
	}
	return token.HashSHA256Hex(normalized)
}

func classifyLoginFailure(err error) (reason, result string) {
	switch {
	case errors.Is(err, session.ErrUnknownUser):
		return "unknown_user", resultUnknownUser
	case errors.Is(err, session.ErrMissingPassword):
		return "missing_password", resultMissingPassword
	case errors.Is(err, session.ErrInvalidPassword):
		return "invalid_password", resultInvalidPassword
	case errors.Is(err, session.ErrInactiveUser):
		return "inactive_user", resultInactiveUser
	default:
		return "error", resultError
	}
}

func (h *Handler) auditLoginFailed(ctx context.Context, identifier, userID string, ip net.IP, ua string, at time.Time, reason string) {
	h.audit.Record(ctx, auditEvent{
		Action:         actionLoginFailed,
		IdentifierHash: identifier,
		UserID:         userID,
		IP:             ip,
		UserAgent:      ua,
		At:             at,
		Meta:           map[string]any{"reason": reason},
	})
}

func (h *Handler) auditLoginSuccess(ctx context.Context, identifier string, issued session.Issued, ip net.IP, ua string, at time.Time) {
	h.audit.Record(ctx, auditEvent{
		Action:         "auth.login.success",
		IdentifierHash: identifier,
		UserID:         issued.User.ID,
		TokenID:        issued.TokenID,
		IP:             ip,
		UserAgent:      ua,
		At:             at,
	})
}

func (h *Handler) auditLoginThrottled(ctx context.Context, identifier string, ip net.IP, ua string, at time.Time) {
	h.audit.Record(ctx, auditEvent{
		Action:         "auth.login.rate_limited",
		IdentifierHash: identifier,
		IP:             ip,
		UserAgent:      ua,
		At:             at,
	})
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
	}
	http.Error(w, "too many attempts", http.StatusTooManyRequests)
}

func renderPage(w http.ResponseWriter, log *slog.Logger, tpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		log.Error("auth.render.fail", "err", err)
	}
}
