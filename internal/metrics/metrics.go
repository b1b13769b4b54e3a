// Package metrics defines and registers all custom Prometheus metrics for the
// blog platform. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Directory metrics ─────────────────────────────────────────────────────────

// DirectoryRequestsTotal counts calls to the identity directory.
// Labels:
//   - op: directory operation (e.g. "find_by_email", "update_account")
//   - result: "ok" or "error"
var DirectoryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_requests_total",
		Help:      "Total number of identity directory calls, by operation and result.",
	},
	[]string{"op", "result"},
)

// DirectoryRequestDuration measures identity directory round-trips.
var DirectoryRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "directory_request_duration_seconds",
		Help:      "Duration of identity directory calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ── Profile synchronization metrics ───────────────────────────────────────────

// ProfileSyncTotal counts profile workflow outcomes.
// Labels:
//   - op: "update_personal_info", "change_password" or "reconcile"
//   - result: "ok" or "failed"
var ProfileSyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_sync_total",
		Help:      "Total number of profile synchronization runs, by operation and result.",
	},
	[]string{"op", "result"},
)

// AuthorRewritesTotal counts author snapshots rewritten by cascades.
// Labels:
//   - store: "posts" or "comments"
//   - field: "email" or "name"
var AuthorRewritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "author_rewrites_total",
		Help:      "Total number of denormalized author fields rewritten.",
	},
	[]string{"store", "field"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// MessagesSubmittedTotal counts contact form submissions.
// Label:
//   - result: "accepted", "duplicate" or "invalid"
var MessagesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_submitted_total",
		Help:      "Total number of contact form submissions, by result.",
	},
	[]string{"result"},
)

// ── Worker pool metrics ───────────────────────────────────────────────────────

// PoolQueueDepth tracks the number of tasks waiting for a worker.
var PoolQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_queue_depth",
		Help:      "Current number of tasks pending in the worker pool queue.",
	},
)

// PoolWorkers tracks the number of live worker goroutines.
var PoolWorkers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pool_workers",
		Help:      "Current number of worker goroutines, resident and elastic.",
	},
)

// PoolCallerRunsTotal counts tasks executed by the submitter because the
// pool was saturated.
var PoolCallerRunsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pool_caller_runs_total",
		Help:      "Total number of tasks run on the submitting goroutine due to saturation.",
	},
)
