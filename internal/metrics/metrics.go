// Package metrics registers the Prometheus instruments the service exposes
// at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls to the events API, labeled by request
	// kind (events/attractions) and the HTTP status or "error".
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventscout_upstream_requests_total",
		Help: "Upstream API requests by kind and status.",
	}, []string{"kind", "status"})

	// CascadeStage counts resolver runs by the stage that produced the
	// final result ("none" when every stage came back empty).
	CascadeStage = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventscout_cascade_stage_total",
		Help: "Resolver runs by winning cascade stage.",
	}, []string{"stage"})

	// InterpreterFallbacks counts AI interpreter calls that fell back to
	// the heuristic parser.
	InterpreterFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventscout_interpreter_fallbacks_total",
		Help: "AI interpreter failures handled by the heuristic parser.",
	})
)
