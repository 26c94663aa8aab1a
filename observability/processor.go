package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	processorMetricsOnce sync.Once
	processorRegistry    *TxProcessorMetrics
)

// TxProcessorMetrics tracks requests handled by the command dispatcher.
type TxProcessorMetrics struct {
	requests   *prometheus.CounterVec
	rejections *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// ProcessorMetrics returns the lazily-initialised dispatcher metrics
// registered with the default Prometheus registry.
func ProcessorMetrics() *TxProcessorMetrics {
	processorMetricsOnce.Do(func() {
		processorRegistry = NewTxProcessorMetrics(prometheus.DefaultRegisterer)
	})
	return processorRegistry
}

// NewTxProcessorMetrics builds dispatcher metrics on the supplied registerer.
// Tests pass a fresh prometheus.NewRegistry to observe values in isolation.
func NewTxProcessorMetrics(reg prometheus.Registerer) *TxProcessorMetrics {
	m := &TxProcessorMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sawtk",
			Subsystem: "processor",
			Name:      "requests_total",
			Help:      "Transaction processor requests segmented by family, command and outcome.",
		}, []string{"family", "command", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sawtk",
			Subsystem: "processor",
			Name:      "rejections_total",
			Help:      "Rejected transaction processor requests segmented by family and failure kind.",
		}, []string{"family", "kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sawtk",
			Subsystem: "processor",
			Name:      "apply_duration_seconds",
			Help:      "Latency distribution for applying a single transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.rejections, m.latency)
	}
	return m
}

// Observe records one dispatched request. kind is empty for accepted
// requests and otherwise names the failure kind.
func (m *TxProcessorMetrics) Observe(family, command, kind string, duration time.Duration) {
	if m == nil {
		return
	}
	if family == "" {
		family = "unknown"
	}
	if command == "" {
		command = "unknown"
	}
	outcome := "accepted"
	if kind != "" {
		outcome = "rejected"
		m.rejections.WithLabelValues(family, kind).Inc()
	}
	m.requests.WithLabelValues(family, command, outcome).Inc()
	m.latency.WithLabelValues(family).Observe(duration.Seconds())
}
