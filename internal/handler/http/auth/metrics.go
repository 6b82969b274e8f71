package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total login attempts by result",
		},
		[]string{"result"}, // success | failure | invalid_request
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Login duration, dominated by bcrypt",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// authzDenied counts rejected requests to protected routes.
	authzDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denied_total",
			Help: "Requests to protected routes rejected by reason",
		},
		[]string{"reason"}, // unauthenticated | forbidden
	)
)

// RecordAuthRequest records a login attempt.
func RecordAuthRequest(result string, durationSeconds float64) {
	authRequestsTotal.WithLabelValues(result).Inc()
	authDuration.Observe(durationSeconds)
}

// RecordDenied records a rejected request to a protected route.
func RecordDenied(reason string) {
	authzDenied.WithLabelValues(reason).Inc()
}
