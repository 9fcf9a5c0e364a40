// Package observability holds Prometheus self-monitoring metrics for the
// kubepulse server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for server self-monitoring.
// It uses a custom registry to avoid polluting the global default.
type Metrics struct {
	Registry *prometheus.Registry

	// Tool metrics
	ToolCallsTotal   *prometheus.CounterVec
	ToolErrorsTotal  *prometheus.CounterVec
	ToolCallDuration *prometheus.HistogramVec

	// Snapshot metrics
	SnapshotFetchDuration prometheus.Histogram
	SnapshotFetchTotal    *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all Prometheus metrics
// registered on a custom registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		ToolCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kubepulse_tool_calls_total",
			Help: "Total number of MCP tool invocations.",
		}, []string{"tool"}),
		ToolErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kubepulse_tool_errors_total",
			Help: "Total number of failed MCP tool invocations.",
		}, []string{"tool"}),
		ToolCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kubepulse_tool_call_duration_seconds",
			Help:    "Duration of MCP tool invocations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),

		SnapshotFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kubepulse_snapshot_fetch_duration_seconds",
			Help:    "Duration of cluster snapshot fetches in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kubepulse_snapshot_fetch_total",
			Help: "Total number of snapshot fetch attempts.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.ToolCallsTotal,
		m.ToolErrorsTotal,
		m.ToolCallDuration,
		m.SnapshotFetchDuration,
		m.SnapshotFetchTotal,
	)

	return m
}
