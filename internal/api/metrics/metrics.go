// Package metrics defines and registers all custom Prometheus metrics for the
// back office API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts session operations.
// Labels:
//   - operation: "login", "register", "logout" or "password"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of session operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// AccessDeniedTotal counts requests rejected by the role gate.
// Label:
//   - role: the caller's role
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected for insufficient role.",
	},
	[]string{"role"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreMutationsTotal counts successful writes to the domain store.
// Labels:
//   - entity: "user", "product" or "order"
//   - action: "created", "updated", "deleted" or "status_changed"
var StoreMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_mutations_total",
		Help:      "Total number of successful domain store mutations.",
	},
	[]string{"entity", "action"},
)

// OrderStatusChangesTotal counts order status updates by target status.
var OrderStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_changes_total",
		Help:      "Total number of order status updates, by new status.",
	},
	[]string{"status"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityRecordedTotal counts activity events persisted by the dispatcher.
var ActivityRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_recorded_total",
		Help:      "Total number of activity events recorded.",
	},
	[]string{"entity"},
)

// ActivityErrorsTotal counts activity events that were dropped.
// Label:
//   - reason: "queue_full" or "append_failed"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that could not be recorded.",
	},
	[]string{"reason"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long appending a single event takes.
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity persistence from dequeue to append.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"entity"},
)
