package processor

import (
	"github.com/streamworks/kinesis-runtime/checkpoint"
	"github.com/streamworks/kinesis-runtime/codec"
	"github.com/streamworks/kinesis-runtime/events"
	"github.com/streamworks/kinesis-runtime/handler"
	"github.com/streamworks/kinesis-runtime/logger"
	"github.com/streamworks/kinesis-runtime/metrics"
)

// Factory mirrors the upstream library's IRecordProcessorFactory: the
// upstream client calls NewProcessor once per shard assignment and
// discards the result when the shard's lease ends (spec §3's lifecycle
// note). It closes over a handler.Factory rather than a single handler
// instance so every shard gets its own handler, matching the upstream
// contract's "one handler instance per shard" rule.
type Factory[D, M any] struct {
	handlers handler.Factory[D, M]
	cfg      checkpoint.Config
	bus      *events.Bus
	log      logger.Logger
	metrics  metrics.Recorder
}

// NewFactory builds a Factory that produces a fresh RecordProcessor,
// bound to a fresh handler instance, for every shard assignment. rec
// receives every processor's per-record and per-checkpoint metrics
// (spec §7); a nil rec records nothing.
func NewFactory[D, M any](
	handlers handler.Factory[D, M],
	cfg checkpoint.Config,
	bus *events.Bus,
	log logger.Logger,
	rec metrics.Recorder,
) *Factory[D, M] {
	return &Factory[D, M]{handlers: handlers, cfg: cfg, bus: bus, log: log, metrics: rec}
}

// NewProcessor constructs a new handler via the factory and returns a
// RecordProcessor bound to it, ready for Initialize.
func (f *Factory[D, M]) NewProcessor() *RecordProcessor[D, M] {
	h := f.handlers.NewHandler()
	dec := codec.NewJSONDecoder[D, M]()
	return New[D, M](h, dec, f.cfg, f.bus, f.log, f.metrics)
}
