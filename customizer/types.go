package customizer

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/streamworks/kinesis-runtime/metrics"
)

// RetrievalStrategy selects how records are pulled from a shard (spec
// §3).
type RetrievalStrategy int

const (
	FanOut RetrievalStrategy = iota
	Polling
)

func (s RetrievalStrategy) String() string {
	if s == Polling {
		return "POLLING"
	}
	return "FANOUT"
}

// InitialPositionKind selects where a new shard lease starts reading.
type InitialPositionKind int

const (
	Latest InitialPositionKind = iota
	TrimHorizon
	AtTimestamp
)

func (k InitialPositionKind) String() string {
	switch k {
	case TrimHorizon:
		return "TRIM_HORIZON"
	case AtTimestamp:
		return "AT_TIMESTAMP"
	default:
		return "LATEST"
	}
}

// InitialPosition is the stream's starting read position; Timestamp is
// only meaningful when Kind is AtTimestamp.
type InitialPosition struct {
	Kind      InitialPositionKind
	Timestamp time.Time
}

// StreamConfig is the per-stream configuration a StreamCustomizer
// applies (spec §3's "Retrieval configuration" plus checkpointing
// strategy, which lives in package checkpoint and is passed to
// processor.New separately).
type StreamConfig struct {
	RetrievalStrategy       RetrievalStrategy
	InitialPosition         InitialPosition
	MetricsLevel            metrics.Level
	MetricsDriver           metrics.Driver
	RoleArn                 string
	LeaseTableReadCapacity  int64
	LeaseTableWriteCapacity int64
}

// RetrievalConfig is the "builder" CustomizeRetrieval mutates.
type RetrievalConfig struct {
	Strategy        RetrievalStrategy
	InitialPosition InitialPosition
	ForceHTTP1      bool
}

// LeaseManagementConfig is the "builder" CustomizeLeaseManagement
// mutates.
type LeaseManagementConfig struct {
	InitialLeaseTableReadCapacity  int64
	InitialLeaseTableWriteCapacity int64
	InstrumentedExecutor           bool
}

// MetricsRuntimeConfig is the "builder" CustomizeMetrics mutates.
// Exactly one of MeterProvider or PrometheusCollectors is populated,
// depending on the stream's MetricsDriver.
type MetricsRuntimeConfig struct {
	Level                metrics.Level
	MeterProvider        metric.MeterProvider
	PrometheusCollectors *metrics.PrometheusCollectors
}

// CoordinatorConfig is the "builder" CustomizeCoordinator mutates.
type CoordinatorConfig struct {
	InstrumentedExecutor bool
}
