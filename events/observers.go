package events

import "github.com/streamworks/kinesis-runtime/logger"

// Name returns the short event-type label used by the built-in
// observers below, matching the upstream KCL vocabulary
// (WorkerInitialized/WorkerShutdown/ShardEnded/LeaseLost).
func Name(ev Event) string {
	switch ev.(type) {
	case WorkerInitialized:
		return "worker_initialized"
	case WorkerShutdown:
		return "worker_shutdown"
	case ShardEnded:
		return "shard_ended"
	case LeaseLost:
		return "lease_lost"
	default:
		return "unknown"
	}
}

// Recorder is the minimal metrics surface a lifecycle event counter
// needs — implemented by metrics.LifecycleRecorder (OTel/Prometheus
// backed) so that this package does not import a concrete metrics
// backend.
type Recorder interface {
	IncrLifecycleEvent(streamName, eventType string)
}

// NewMetricsObserver returns a Subscriber that increments r once per
// event, tagged with the stream name and event type. Subscribers run
// synchronously on the publisher's goroutine (spec §4.7), so this must
// not block: callers should pass a Recorder backed by in-memory
// counters, never one that performs I/O.
func NewMetricsObserver(r Recorder) Subscriber {
	return func(ev Event) {
		r.IncrLifecycleEvent(ev.StreamName(), Name(ev))
	}
}

// NewLoggingObserver returns a Subscriber that logs every lifecycle
// event at Info level through log.
func NewLoggingObserver(log logger.Logger) Subscriber {
	log = log.With("component", "lifecycle-observer")

	return func(ev Event) {
		log.Info("lifecycle event", "stream", ev.StreamName(), "event", Name(ev))
	}
}
