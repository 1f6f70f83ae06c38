// Package metrics defines the custom Prometheus metrics for the quiz API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quiz"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "failure", or "rate_limited"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RateLimitTripsTotal counts requests rejected by the login rate limiter.
// Label:
//   - key: which window tripped, "ip" or "username"
var RateLimitTripsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_trips_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
	[]string{"key"},
)

// SessionsInvalidatedTotal counts explicit invalidate-all-sessions calls.
var SessionsInvalidatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_invalidated_total",
		Help:      "Total number of invalidate-all-sessions operations.",
	},
)

// AttemptsStartedTotal counts quiz attempts opened.
var AttemptsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_started_total",
		Help:      "Total number of quiz attempts started.",
	},
)

// AttemptsCompletedTotal counts scored attempts by feedback band.
// Label:
//   - band: "excellent", "good", "average", or "needs_improvement"
var AttemptsCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attempts_completed_total",
		Help:      "Total number of quiz attempts completed, by feedback band.",
	},
	[]string{"band"},
)

// AIRequestsTotal counts proxied LLM calls.
// Label:
//   - kind: "recommendation" or "enhance_explanation"
var AIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Total number of AI proxy requests, by kind.",
	},
	[]string{"kind"},
)

// AIRequestDuration measures end-to-end latency of AI proxy requests.
// Label:
//   - kind: "recommendation" or "enhance_explanation"
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of AI proxy requests, including the upstream call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
