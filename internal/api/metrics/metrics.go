// Package metrics defines all custom Prometheus metrics for the moderation
// gateway. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moderation"

// CommandsTotal counts command dispatches to the backing store.
// Labels:
//   - command: the executor command name (e.g. "mod_ban_user")
//   - outcome: "ok", "domain_error", or "transport_error"
var CommandsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Total number of commands dispatched to the moderation engine.",
	},
	[]string{"command", "outcome"},
)

// CommandDuration measures one command dispatch end-to-end.
var CommandDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "command_duration_seconds",
		Help:      "Duration of command dispatch to the moderation engine.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"command"},
)

// RateLimitRejectionsTotal counts requests rejected by the admission limiter.
// Label:
//   - route: the route identifier the limit is declared on
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by per-route rate limits.",
	},
	[]string{"route"},
)

// NotificationsTotal counts best-effort notification attempts.
// Labels:
//   - template: notification template name
//   - outcome: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification delivery attempts, by outcome.",
	},
	[]string{"template", "outcome"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "invalid_token", "unverified", or "inactive"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)
