// Package metrics defines the Prometheus metrics of the ordering API.
// Metrics register with the default registry on import and are exposed by
// GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bread_orders"

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (the registered path, e.g. "/api/orders/:i"), code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Domain ────────────────────────────────────────────────────────────────────

// OrderMutationsTotal counts successful order changes.
// Label op: "create", "replace" or "delete".
var OrderMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_mutations_total",
		Help:      "Total number of successful order mutations, by operation.",
	},
	[]string{"op"},
)

// ItemMutationsTotal counts successful catalog changes.
// Label op: "create" or "rename".
var ItemMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_mutations_total",
		Help:      "Total number of successful catalog mutations, by operation.",
	},
	[]string{"op"},
)

// LoginsTotal counts login attempts. Label result: "success" or "failure".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks the size of the session table.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions currently held in memory.",
	},
)

// ── Storage ───────────────────────────────────────────────────────────────────

// StorageShadowWritesTotal counts writes kept in memory because the data
// directory was not writable. Label file: the JSON document name.
var StorageShadowWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_shadow_writes_total",
		Help:      "Total number of writes kept in memory because the filesystem was read-only.",
	},
	[]string{"file"},
)
