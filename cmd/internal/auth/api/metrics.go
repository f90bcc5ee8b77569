package authapi

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts auth outcomes for the /metrics endpoint. Result labels are a
// closed set so cardinality stays bounded.
type Metrics struct {
	loginAttempts      *prometheus.CounterVec
	sessionResolutions *prometheus.CounterVec
}

const (
	resultSuccess         = "success"
	resultUnknownUser     = "unknown_user"
	resultMissingPassword = "missing_password"
	resultInvalidPassword = "invalid_password"
	resultInactiveUser    = "inactive_user"
	resultThrottled       = "throttled"
	resultError           = "error"
	resultNoSession       = "no_session"
	resultTokenExpired    = "token_expired"
	resultTokenInvalid    = "token_invalid"
)

// NewMetrics builds the auth counters and registers them on reg.
// Passing nil leaves the counters unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clearance_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"result"}),
		sessionResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clearance_session_resolutions_total",
			Help: "Session cookie resolutions by outcome.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.loginAttempts, m.sessionResolutions)
	}
	return m
}

func (m *Metrics) recordLogin(result string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) recordResolution(result string) {
	if m == nil {
		return
	}
	m.sessionResolutions.WithLabelValues(result).Inc()
}
