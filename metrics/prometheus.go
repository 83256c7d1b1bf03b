package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollectors is the Prometheus analogue of Instruments, used
// when a stream's MetricsDriver is MICROMETER (spec §4.5's micrometer
// driver, translated to the pack's own metrics-registry dependency).
type PrometheusCollectors struct {
	mu sync.Mutex

	RecordsHandled        *prometheus.CounterVec
	DeserializationErrors *prometheus.CounterVec
	HandlerErrors         *prometheus.CounterVec
	ProcessDuration       *prometheus.HistogramVec
	CheckpointAttempts    *prometheus.CounterVec
	CheckpointFailures    *prometheus.CounterVec

	registerer prometheus.Registerer
	registered bool
}

func counterVec(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "kinesis_runtime", Name: name, Help: help}, []string{"stream"},
	)
}

func histogramVec(name, help string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "kinesis_runtime", Name: name, Help: help, Buckets: buckets},
		[]string{"stream"},
	)
}

// NewPrometheusCollectors builds the runtime's Prometheus collectors,
// unregistered. registerer may be nil, in which case Register does
// nothing and the collectors are never exported; callers detect the
// missing-unique-registry case themselves before calling this (see
// customizer.StreamCustomizer.CustomizeMetrics, which falls back to a
// null sink rather than using the process-wide default registry).
func NewPrometheusCollectors(registerer prometheus.Registerer) *PrometheusCollectors {
	return &PrometheusCollectors{
		registerer:            registerer,
		RecordsHandled:        counterVec("records_handled_total", "Records successfully handled"),
		DeserializationErrors: counterVec("records_deserialization_errors_total", "Records that failed to decode"),
		HandlerErrors:         counterVec("records_handler_errors_total", "Handler invocations that returned an error"),
		ProcessDuration: histogramVec(
			"batch_process_duration_seconds", "Time spent in ProcessRecords per batch", prometheus.DefBuckets,
		),
		CheckpointAttempts: counterVec("checkpoint_attempts_total", "Checkpoint attempts, including retries"),
		CheckpointFailures: counterVec("checkpoint_failures_total", "Checkpoint attempts that returned an error"),
	}
}

// Register registers every collector with the configured registerer.
// Safe to call more than once.
func (c *PrometheusCollectors) Register() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registered || c.registerer == nil {
		return nil
	}

	collectors := []prometheus.Collector{
		c.RecordsHandled, c.DeserializationErrors, c.HandlerErrors,
		c.ProcessDuration, c.CheckpointAttempts, c.CheckpointFailures,
	}

	for _, collector := range collectors {
		if err := c.registerer.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	c.registered = true
	return nil
}

func (c *PrometheusCollectors) IncrRecordsHandled(streamName string) {
	c.RecordsHandled.WithLabelValues(streamName).Inc()
}

func (c *PrometheusCollectors) IncrDeserializationErrors(streamName string) {
	c.DeserializationErrors.WithLabelValues(streamName).Inc()
}

func (c *PrometheusCollectors) IncrHandlerErrors(streamName string) {
	c.HandlerErrors.WithLabelValues(streamName).Inc()
}

func (c *PrometheusCollectors) ObserveProcessDuration(streamName string, seconds float64) {
	c.ProcessDuration.WithLabelValues(streamName).Observe(seconds)
}

func (c *PrometheusCollectors) IncrCheckpointAttempts(streamName string) {
	c.CheckpointAttempts.WithLabelValues(streamName).Inc()
}

func (c *PrometheusCollectors) IncrCheckpointFailures(streamName string) {
	c.CheckpointFailures.WithLabelValues(streamName).Inc()
}
