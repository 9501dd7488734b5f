// Package metrics defines and registers all custom Prometheus metrics for
// the open-flag admin gateway. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "openflag"

// UpstreamRequestsTotal counts calls to the remote flags server.
// Labels:
//   - operation: the client operation (e.g. "list_flags", "toggle_flag")
//   - code: HTTP status code, or "transport_error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the flags server.",
	},
	[]string{"operation", "code"},
)

// UpstreamRequestDuration measures round-trip latency to the flags server.
// Label:
//   - operation: the client operation
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the flags server.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionEvictionsTotal counts sessions cleared because the flags server
// answered 401 to a request carrying their token.
var SessionEvictionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_evictions_total",
		Help:      "Total number of sessions evicted after an upstream 401.",
	},
)

// FlagMutationsTotal counts accepted flag mutations by action.
// Label:
//   - action: "create", "update", "delete", or "toggle"
var FlagMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flag_mutations_total",
		Help:      "Total number of accepted flag mutations, by action.",
	},
	[]string{"action"},
)
