// Package metrics implements the metrics surface a stream's client
// config customizer wires (spec §4.5): a Level gating how much detail is
// recorded and a Driver selecting the sink backend — OpenTelemetry (the
// default), a structured-log sink, a null sink, or Prometheus (the
// spec's Micrometer analogue).
package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/streamworks/kinesis-runtime/logger"
)

// Level gates how much detail the processor and customizer record.
type Level int

const (
	LevelNone Level = iota
	LevelSummary
	LevelDetailed
)

func (l Level) String() string {
	switch l {
	case LevelSummary:
		return "SUMMARY"
	case LevelDetailed:
		return "DETAILED"
	default:
		return "NONE"
	}
}

// Driver selects which backend a stream's metrics are recorded to.
type Driver int

const (
	DriverDefault Driver = iota
	DriverNone
	DriverLogging
	DriverMicrometer
)

func (d Driver) String() string {
	switch d {
	case DriverNone:
		return "NONE"
	case DriverLogging:
		return "LOGGING"
	case DriverMicrometer:
		return "MICROMETER"
	default:
		return "DEFAULT"
	}
}

const scopeName = "github.com/streamworks/kinesis-runtime"

// Recorder is the metrics surface processor.RecordProcessor and
// checkpoint.RetryPolicy record through, per spec §7's per-record
// metrics requirement, without either package depending on which
// backend is actually wired. Instruments, PrometheusCollectors and
// LoggingObserver all implement it.
type Recorder interface {
	IncrRecordsHandled(streamName string)
	IncrDeserializationErrors(streamName string)
	IncrHandlerErrors(streamName string)
	ObserveProcessDuration(streamName string, seconds float64)
	IncrCheckpointAttempts(streamName string)
	IncrCheckpointFailures(streamName string)
}

// Instruments holds every metric the runtime records, built once per
// stream from whichever meter.MeterProvider the driver resolves to.
// Mirrors the teacher's otel.Telemetry shape, narrowed to this
// processor's own surface instead of a Kafka runner's.
type Instruments struct {
	RecordsHandled        metric.Int64Counter
	DeserializationErrors metric.Int64Counter
	HandlerErrors         metric.Int64Counter
	ProcessDuration       metric.Float64Histogram
	CheckpointAttempts    metric.Int64Counter
	CheckpointFailures    metric.Int64Counter
}

// NewInstruments builds Instruments from mp. A nil provider yields
// all-noop instruments, matching Driver NONE.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}

	meter := mp.Meter(scopeName)

	recordsHandled, err := meter.Int64Counter(
		"kinesis.records.handled", metric.WithDescription("Records successfully handled"),
	)
	if err != nil {
		return nil, err
	}

	deserializationErrors, err := meter.Int64Counter(
		"kinesis.records.deserialization_errors", metric.WithDescription("Records that failed to decode"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter(
		"kinesis.records.handler_errors", metric.WithDescription("Handler invocations that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	processDuration, err := meter.Float64Histogram(
		"kinesis.batch.process_duration",
		metric.WithDescription("Time spent in ProcessRecords per batch"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	checkpointAttempts, err := meter.Int64Counter(
		"kinesis.checkpoint.attempts", metric.WithDescription("Checkpoint attempts, including retries"),
	)
	if err != nil {
		return nil, err
	}

	checkpointFailures, err := meter.Int64Counter(
		"kinesis.checkpoint.failures", metric.WithDescription("Checkpoint attempts that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		RecordsHandled:        recordsHandled,
		DeserializationErrors: deserializationErrors,
		HandlerErrors:         handlerErrors,
		ProcessDuration:       processDuration,
		CheckpointAttempts:    checkpointAttempts,
		CheckpointFailures:    checkpointFailures,
	}, nil
}

// Noop returns Instruments backed entirely by no-op OTel instruments.
func Noop() *Instruments {
	inst, _ := NewInstruments(nil)
	return inst
}

func (i *Instruments) IncrRecordsHandled(streamName string) {
	i.RecordsHandled.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stream", streamName)))
}

func (i *Instruments) IncrDeserializationErrors(streamName string) {
	i.DeserializationErrors.Add(
		context.Background(), 1, metric.WithAttributes(attribute.String("stream", streamName)),
	)
}

func (i *Instruments) IncrHandlerErrors(streamName string) {
	i.HandlerErrors.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stream", streamName)))
}

func (i *Instruments) ObserveProcessDuration(streamName string, seconds float64) {
	i.ProcessDuration.Record(
		context.Background(), seconds, metric.WithAttributes(attribute.String("stream", streamName)),
	)
}

func (i *Instruments) IncrCheckpointAttempts(streamName string) {
	i.CheckpointAttempts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stream", streamName)))
}

func (i *Instruments) IncrCheckpointFailures(streamName string) {
	i.CheckpointFailures.Add(context.Background(), 1, metric.WithAttributes(attribute.String("stream", streamName)))
}

// ResolveMeterProvider selects the meter.MeterProvider a stream's
// Instruments should be built from, given its configured Driver.
// DEFAULT defers to whatever provider the caller already has configured
// (e.g. wired to an OTel SDK exporter upstream); NONE and LOGGING both
// resolve to a noop OTel provider because neither drives per-instrument
// OTel export — LOGGING metrics are instead recorded straight to log
// (see LoggingObserver); MICROMETER's Go analogue is the Prometheus
// registry resolved separately via NewPrometheusCollectors, since the
// pack carries no OTel-Prometheus bridge dependency.
func ResolveMeterProvider(driver Driver, upstream metric.MeterProvider, log logger.Logger) metric.MeterProvider {
	switch driver {
	case DriverNone, DriverLogging:
		return noop.NewMeterProvider()
	case DriverMicrometer:
		if upstream == nil {
			log.Warn("no OTel meter provider configured for MICROMETER driver, falling back to null sink")
			return noop.NewMeterProvider()
		}
		return upstream
	default:
		if upstream == nil {
			return noop.NewMeterProvider()
		}
		return upstream
	}
}
