package metrics

import "github.com/streamworks/kinesis-runtime/logger"

// LoggingObserver records the same events Instruments would, directly to
// a structured logger — the Driver LOGGING case, where no metrics
// backend is wired at all and values are simply logged.
type LoggingObserver struct {
	log logger.Logger
}

// NewLoggingObserver returns a LoggingObserver writing through log.
func NewLoggingObserver(log logger.Logger) *LoggingObserver {
	return &LoggingObserver{log: log.With("component", "metrics-logging-observer")}
}

func (o *LoggingObserver) IncrCounter(name string, value int64, tags ...any) {
	o.log.Info("metric counter", append([]any{"name", name, "value", value}, tags...)...)
}

func (o *LoggingObserver) ObserveDuration(name string, seconds float64, tags ...any) {
	o.log.Info("metric duration", append([]any{"name", name, "seconds", seconds}, tags...)...)
}

func (o *LoggingObserver) IncrRecordsHandled(streamName string) {
	o.IncrCounter("kinesis.records.handled", 1, "stream", streamName)
}

func (o *LoggingObserver) IncrDeserializationErrors(streamName string) {
	o.IncrCounter("kinesis.records.deserialization_errors", 1, "stream", streamName)
}

func (o *LoggingObserver) IncrHandlerErrors(streamName string) {
	o.IncrCounter("kinesis.records.handler_errors", 1, "stream", streamName)
}

func (o *LoggingObserver) ObserveProcessDuration(streamName string, seconds float64) {
	o.ObserveDuration("kinesis.batch.process_duration", seconds, "stream", streamName)
}

func (o *LoggingObserver) IncrCheckpointAttempts(streamName string) {
	o.IncrCounter("kinesis.checkpoint.attempts", 1, "stream", streamName)
}

func (o *LoggingObserver) IncrCheckpointFailures(streamName string) {
	o.IncrCounter("kinesis.checkpoint.failures", 1, "stream", streamName)
}
