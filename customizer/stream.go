package customizer

import (
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/streamworks/kinesis-runtime/logger"
	"github.com/streamworks/kinesis-runtime/metrics"
)

// StreamCustomizer is the per-stream customizer produced by a Factory.
// It is constructed once per stream and reused across shard
// reassignments (spec §3's lifecycle note).
type StreamCustomizer struct {
	factory    *Factory
	streamName string
	cfg        StreamConfig

	// workerID is computed once in ForStream and never changes (P8).
	workerID     string
	applicationN string

	log logger.Logger
}

// ApplicationName returns "<consumerGroup>_<streamName>" (P9).
func (c *StreamCustomizer) ApplicationName() string {
	return c.applicationN
}

// WorkerIdentifier returns this customizer's stable worker identity
// (P8): the same value on every call, distinct from any other
// customizer's.
func (c *StreamCustomizer) WorkerIdentifier() string {
	return c.workerID
}

// metricsAvailable reports whether any metrics backend is wired at the
// factory level — gates the "wrap the executor so it's observable"
// behaviour on lease management and coordinator customization.
func (c *StreamCustomizer) metricsAvailable() bool {
	return c.factory.settings.MeterProvider != nil || c.factory.settings.PrometheusRegisterer != nil
}

// CustomizeRetrieval sets the initial position and retrieval strategy,
// forcing HTTP/1.1 for POLLING retrieval.
func (c *StreamCustomizer) CustomizeRetrieval(rc *RetrievalConfig) {
	rc.InitialPosition = c.cfg.InitialPosition
	rc.Strategy = c.cfg.RetrievalStrategy
	rc.ForceHTTP1 = c.cfg.RetrievalStrategy == Polling
}

// CustomizeLeaseManagement applies initial lease-table capacities and
// marks the executor for instrumentation when a metrics backend is
// available.
func (c *StreamCustomizer) CustomizeLeaseManagement(lc *LeaseManagementConfig) {
	lc.InitialLeaseTableReadCapacity = c.cfg.LeaseTableReadCapacity
	lc.InitialLeaseTableWriteCapacity = c.cfg.LeaseTableWriteCapacity
	lc.InstrumentedExecutor = c.metricsAvailable()
}

// CustomizeMetrics selects the metrics level and, by driver, the sink:
// DEFAULT defers to the factory's upstream OTel provider, NONE and
// LOGGING resolve to a noop OTel provider (LOGGING is recorded via
// metrics.LoggingObserver instead), MICROMETER binds to the factory's
// Prometheus registerer or falls back to a null sink with a warning if
// none is configured.
func (c *StreamCustomizer) CustomizeMetrics(mc *MetricsRuntimeConfig) {
	mc.Level = c.cfg.MetricsLevel

	switch c.cfg.MetricsDriver {
	case metrics.DriverMicrometer:
		if c.factory.settings.PrometheusRegisterer == nil {
			c.log.Warn("no unique metrics registry available for MICROMETER driver, falling back to null sink")
			mc.MeterProvider = noop.NewMeterProvider()
			return
		}
		mc.PrometheusCollectors = metrics.NewPrometheusCollectors(c.factory.settings.PrometheusRegisterer)
	default:
		mc.MeterProvider = metrics.ResolveMeterProvider(c.cfg.MetricsDriver, c.factory.settings.MeterProvider, c.log)
	}
}

// CustomizeCoordinator marks the coordinator's executor for
// instrumentation when a metrics backend is available, the same rule
// CustomizeLeaseManagement applies.
func (c *StreamCustomizer) CustomizeCoordinator(cc *CoordinatorConfig) {
	cc.InstrumentedExecutor = c.metricsAvailable()
}
