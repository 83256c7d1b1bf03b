//go:build unit

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streamworks/kinesis-runtime/metrics"
	"github.com/stretchr/testify/require"
)

func TestNewOTelLifecycleRecorder_NilProviderIsNoop(t *testing.T) {
	t.Parallel()

	rec, err := metrics.NewOTelLifecycleRecorder(nil)
	require.NoError(t, err)

	require.NotPanics(t, func() { rec.IncrLifecycleEvent("orders", "worker_initialized") })
}

func TestNewPrometheusLifecycleRecorder_RegistersAndCounts(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	collectors := metrics.NewPrometheusCollectors(registry)
	require.NoError(t, collectors.Register())

	rec := metrics.NewPrometheusLifecycleRecorder(collectors)

	require.NotPanics(t, func() { rec.IncrLifecycleEvent("orders", "worker_initialized") })
}
