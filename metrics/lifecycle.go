package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// LifecycleRecorder implements events.Recorder, counting lifecycle
// events (WorkerInitialized/WorkerShutdown/ShardEnded/LeaseLost) by
// stream and event type. Exactly one of its two backends is populated,
// matching the DEFAULT/MICROMETER driver split the rest of this package
// follows.
type LifecycleRecorder struct {
	otelCounter metric.Int64Counter
	promCounter *prometheus.CounterVec
}

// NewOTelLifecycleRecorder builds a LifecycleRecorder backed by mp. A
// nil provider yields a no-op counter, matching Driver NONE/LOGGING.
func NewOTelLifecycleRecorder(mp metric.MeterProvider) (*LifecycleRecorder, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}

	counter, err := mp.Meter(scopeName).Int64Counter(
		"kinesis.lifecycle.events", metric.WithDescription("Lifecycle events published per stream"),
	)
	if err != nil {
		return nil, err
	}

	return &LifecycleRecorder{otelCounter: counter}, nil
}

// NewPrometheusLifecycleRecorder builds a LifecycleRecorder registered
// against the same registerer as collectors — the MICROMETER driver's
// analogue.
func NewPrometheusLifecycleRecorder(collectors *PrometheusCollectors) *LifecycleRecorder {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kinesis_runtime", Name: "lifecycle_events_total", Help: "Lifecycle events published per stream",
		},
		[]string{"stream", "event"},
	)

	if collectors != nil && collectors.registerer != nil {
		if err := collectors.registerer.Register(vec); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				vec = already.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}

	return &LifecycleRecorder{promCounter: vec}
}

// IncrLifecycleEvent satisfies events.Recorder.
func (r *LifecycleRecorder) IncrLifecycleEvent(streamName, eventType string) {
	if r.otelCounter != nil {
		r.otelCounter.Add(
			context.Background(), 1,
			metric.WithAttributes(attribute.String("stream", streamName), attribute.String("event", eventType)),
		)
	}
	if r.promCounter != nil {
		r.promCounter.WithLabelValues(streamName, eventType).Inc()
	}
}
