// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "invalid_token" or "inactive_user"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected at the guard.",
	},
	[]string{"reason"},
)

// ── Ingestion metrics ─────────────────────────────────────────────────────────

// RegistrationsCreatedTotal counts newly stored registrations.
// Label:
//   - source: normalized source reported by the sender
var RegistrationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_created_total",
		Help:      "Total number of registrations created, by source.",
	},
	[]string{"source"},
)

// IngestDedupTotal counts deduplication decisions on the batch path.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new record, processed)
var IngestDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingest_dedup_total",
		Help:      "Total number of ingest deduplication checks, by result.",
	},
	[]string{"result"},
)

// IngestQueueDepth tracks the number of records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var IngestQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ingest_queue_depth",
		Help:      "Current number of records pending in each ingest worker channel.",
	},
	[]string{"worker_id"},
)

// ── Model metrics ─────────────────────────────────────────────────────────────

// ModelTrainingsTotal counts training runs.
// Label:
//   - result: "success" or "failure"
var ModelTrainingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_trainings_total",
		Help:      "Total number of price model training runs, by result.",
	},
	[]string{"result"},
)

// ModelTrainingDuration measures how long one training run takes end-to-end.
var ModelTrainingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_training_duration_seconds",
		Help:      "Duration of price model training from fetch to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
