// Package metrics defines and registers all custom Prometheus metrics for
// the admin backend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors are registered with the default registry at init time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_active" or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RefreshTotal counts refresh-token redemptions.
// Label:
//   - result: "success", "invalid", "expired", "revoked" or "lost_race"
var RefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token redemptions, by result.",
	},
	[]string{"result"},
)

// ── Access-guard metrics ──────────────────────────────────────────────────────

// AuthDeniedTotal counts requests rejected by the access guard.
// Label:
//   - reason: "missing_token", "invalid_token", "inactive_user" or "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// ── Activity-log metrics ──────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of audit entries waiting in each
// recorder worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts audit entries dropped because a worker channel
// was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit entries dropped due to a full worker channel.",
	},
)
