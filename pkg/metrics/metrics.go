package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP metrics (shared by every service)
// =============================================================================

// HttpRequestsTotal counts HTTP requests.
// Labels: service, method, path, status
// PromQL example: rate(http_requests_total{service="pricing"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration is the response latency histogram.
// Example: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight tracks requests currently being processed.
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database metrics
// =============================================================================

// DbQueryDuration measures SQL query latency.
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors counts database errors.
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis metrics
// =============================================================================

// RedisCacheHits counts cache hits.
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses counts cache misses.
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors counts Redis errors.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka metrics
// =============================================================================

// KafkaMessagesProduced counts produced messages.
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed counts consumed messages.
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration measures produce latency.
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors counts Kafka errors.
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business metrics (pantry specific)
// =============================================================================

// --- Auth Service ---

// AuthRegistrations counts user registrations.
var AuthRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of user registrations",
	},
)

// AuthLogins counts login attempts.
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, failed
)

// --- Pricing Service ---

// InstancesPriced counts product instances priced (created or re-priced on update).
var InstancesPriced = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "pricing_instances_priced_total",
		Help: "Total number of product instances priced",
	},
)

// RecipesRecalculated counts recipe total cost recalculations.
var RecipesRecalculated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pricing_recipes_recalculated_total",
		Help: "Total number of recipe cost recalculations",
	},
	[]string{"trigger"}, // item_added, item_deleted, explicit, reconcile
)

// ImportRows counts processed bulk import rows.
var ImportRows = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pricing_import_rows_total",
		Help: "Total number of bulk import rows processed",
	},
	[]string{"kind"}, // category, product, skipped
)

// --- Background Worker ---

// WorkerEventsProcessed counts pricing events handled by the worker.
var WorkerEventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_pricing_events_processed_total",
		Help: "Total number of pricing events processed by worker",
	},
	[]string{"status"}, // success, failed
)

// WorkerReconcileRuns counts recipe cost reconciliation runs.
var WorkerReconcileRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_reconcile_runs_total",
		Help: "Total number of recipe cost reconciliation runs",
	},
	[]string{"status"}, // success, failed
)

// WorkerReconcileDuration measures how long a full reconciliation pass takes.
var WorkerReconcileDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "worker_reconcile_duration_seconds",
		Help:    "Duration of recipe cost reconciliation passes",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	},
)
