package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTxProcessorMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewTxProcessorMetrics(reg)

	m.Observe("intkey", "1", "", 2*time.Millisecond)
	m.Observe("intkey", "1", "validation_failed", time.Millisecond)
	m.Observe("intkey", "", "malformed_input", 0)
	m.Observe("", "", "malformed_input", 0)

	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("intkey", "1", "accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("intkey", "1", "rejected")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("intkey", "unknown", "rejected")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("unknown", "malformed_input")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("intkey", "validation_failed")))
	require.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestTxProcessorMetricsNilSafe(t *testing.T) {
	var m *TxProcessorMetrics
	require.NotPanics(t, func() { m.Observe("intkey", "1", "", time.Second) })
}

func TestProcessorMetricsSingleton(t *testing.T) {
	require.Same(t, ProcessorMetrics(), ProcessorMetrics())
}
