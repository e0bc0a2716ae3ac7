// Package metrics defines and registers all custom Prometheus metrics for
// the canteen console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are exposed by the /metrics endpoint alongside the per-route HTTP
// metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "canteen_console"

// UpstreamRequestsTotal counts calls the gateway issued to the canteen
// backend.
// Labels:
//   - method: HTTP verb (GET, POST, ...)
//   - status: response status code, or "error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the canteen backend.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures end-to-end latency of backend calls.
// Label:
//   - method: HTTP verb
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of canteen backend calls from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// AuthAttemptsTotal counts login and registration outcomes.
// Labels:
//   - operation: "login" or "register"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login/registration attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// GuardDecisionsTotal counts route guard outcomes per navigation.
// Label:
//   - decision: "allow", "pending", "redirect_login", or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by decision.",
	},
	[]string{"decision"},
)
