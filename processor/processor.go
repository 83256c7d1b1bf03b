// Package processor implements the record processor (spec §4.2): the
// per-shard state machine that decodes a batch of raw records, dispatches
// them to a handler in order, and checkpoints according to the
// configured strategy, routing upstream checkpoint faults through a
// checkpoint.RetryPolicy.
package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/streamworks/kinesis-runtime/checkpoint"
	"github.com/streamworks/kinesis-runtime/codec"
	"github.com/streamworks/kinesis-runtime/events"
	"github.com/streamworks/kinesis-runtime/handler"
	"github.com/streamworks/kinesis-runtime/logger"
	"github.com/streamworks/kinesis-runtime/metrics"
	"github.com/streamworks/kinesis-runtime/record"
)

// State is a RecordProcessor's position in the lifecycle table of spec
// §4.2. A processor is single-threaded per instance; no shard's state is
// ever read or written by another shard's goroutine.
type State int

const (
	Init State = iota
	Ready
	Processing
	Draining
	Ended
	Released
)

func (s State) String() string {
	switch s {
	case Init:
		return "INIT"
	case Ready:
		return "READY"
	case Processing:
		return "PROCESSING"
	case Draining:
		return "DRAINING"
	case Ended:
		return "ENDED"
	case Released:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// Checkpointer is the upstream checkpoint handle passed into a
// processor's callbacks. It is opaque beyond the two operations spec
// §6 defines.
type Checkpointer interface {
	// Checkpoint advances the lease to the last record of the current
	// batch.
	Checkpoint(ctx context.Context) error
	// CheckpointAt advances the lease to a specific sequence number.
	CheckpointAt(ctx context.Context, sequenceNumber string) error
}

// HandlerError wraps an error returned by a handler's HandleRecord,
// carrying the record and execution context that produced it.
type HandlerError struct {
	Cause            error
	Record           record.Raw
	ExecutionContext record.ExecutionContext
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf(
		"handle record %s (stream %s): %v",
		e.ExecutionContext.SequenceNumber, e.ExecutionContext.StreamName, e.Cause,
	)
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// RecordProcessor drives one shard's records through decode, dispatch,
// and checkpoint. One instance is created per shard assignment (via a
// handler.Factory) and discarded when the shard's lease ends.
type RecordProcessor[D, M any] struct {
	streamName string
	shardID    string
	state      State

	h       handler.RecordHandler[D, M]
	decoder codec.Decoder[D, M]
	cfg     checkpoint.Config
	retry   *checkpoint.RetryPolicy
	bus     *events.Bus
	log     logger.Logger
	metrics metrics.Recorder
}

// New builds a RecordProcessor bound to h and dec, checkpointing
// according to cfg, publishing lifecycle events onto bus, and recording
// per-record/per-checkpoint metrics (spec §7) through rec. A nil rec
// records nothing.
func New[D, M any](
	h handler.RecordHandler[D, M],
	dec codec.Decoder[D, M],
	cfg checkpoint.Config,
	bus *events.Bus,
	log logger.Logger,
	rec metrics.Recorder,
) *RecordProcessor[D, M] {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	if rec == nil {
		rec = metrics.Noop()
	}

	streamName := h.StreamName()

	return &RecordProcessor[D, M]{
		streamName: streamName,
		state:      Init,
		h:          h,
		decoder:    dec,
		cfg:        cfg,
		retry:      checkpoint.NewRetryPolicy(cfg, log).WithRecorder(streamName, rec),
		bus:        bus,
		log:        log.With("component", "record-processor", "stream", streamName),
		metrics:    rec,
	}
}

// State returns the processor's current lifecycle state.
func (p *RecordProcessor[D, M]) State() State { return p.state }

// ShardID returns the shard this processor was initialized for, or the
// empty string before Initialize has been called.
func (p *RecordProcessor[D, M]) ShardID() string { return p.shardID }

// Initialize binds the processor to shardID and publishes
// WorkerInitialized. No checkpoint is issued.
func (p *RecordProcessor[D, M]) Initialize(shardID string) {
	p.shardID = shardID
	p.state = Ready

	p.log.Info("shard initialized", "shard_id", shardID)
	p.bus.Publish(events.NewWorkerInitialized(p.streamName, shardID))
}

// ProcessRecords decodes and dispatches batch in order, implementing the
// per-record algorithm of spec §4.2. It returns the first handler or
// checkpoint error encountered, aborting the rest of the batch; a
// deserialization error whose HandleDeserializationError callback
// itself errors aborts the batch the same way.
func (p *RecordProcessor[D, M]) ProcessRecords(ctx context.Context, batch []record.Raw, cp Checkpointer) error {
	p.state = Processing
	defer func() { p.state = Ready }()

	start := time.Now()
	defer func() { p.metrics.ObserveProcessDuration(p.streamName, time.Since(start).Seconds()) }()

	for _, raw := range batch {
		ec := record.ExecutionContext{
			SequenceNumber: raw.SequenceNumber,
			PartitionKey:   raw.PartitionKey,
			StreamName:     p.streamName,
		}

		rec, err := p.decoder.Decode(raw.Payload)
		if err != nil {
			p.metrics.IncrDeserializationErrors(p.streamName)
			if cbErr := p.h.HandleDeserializationError(ctx, raw.Payload, err, ec); cbErr != nil {
				p.log.Error("deserialization error callback failed, aborting batch", "error", cbErr)
				return cbErr
			}
			continue
		}

		handlerRec := record.Record[D, M]{Data: rec.Data, Metadata: rec.Metadata}
		if err := p.h.HandleRecord(ctx, handlerRec, ec); err != nil {
			p.metrics.IncrHandlerErrors(p.streamName)
			p.log.Error("handler failed, aborting batch", "error", err, "sequence_number", raw.SequenceNumber)
			return &HandlerError{Cause: err, Record: raw, ExecutionContext: ec}
		}
		p.metrics.IncrRecordsHandled(p.streamName)

		if p.cfg.Strategy == checkpoint.Record {
			seq := raw.SequenceNumber
			if err := p.retry.Do(ctx, func() error { return cp.CheckpointAt(ctx, seq) }); err != nil {
				// Per the RECORD-strategy exhaustion decision: abort rather
				// than continue to the next record on uncertainty.
				return err
			}
		}
	}

	if p.cfg.Strategy == checkpoint.Batch {
		if err := p.retry.Do(ctx, func() error { return cp.Checkpoint(ctx) }); err != nil {
			return err
		}
	}

	return nil
}

// ShutdownRequested issues a batch checkpoint and transitions through
// Draining back to Ready.
func (p *RecordProcessor[D, M]) ShutdownRequested(ctx context.Context, cp Checkpointer) error {
	p.state = Draining
	defer func() { p.state = Ready }()

	err := p.retry.Do(ctx, func() error { return cp.Checkpoint(ctx) })
	p.bus.Publish(events.NewWorkerShutdown(p.streamName, p.shardID, "REQUESTED"))
	return err
}

// ShardEnded issues a batch checkpoint, required by the upstream
// contract to move the lease forward past a permanently closed shard,
// and publishes ShardEnded.
func (p *RecordProcessor[D, M]) ShardEnded(ctx context.Context, cp Checkpointer) error {
	p.state = Ended

	err := p.retry.Do(ctx, func() error { return cp.Checkpoint(ctx) })
	p.bus.Publish(events.NewShardEnded(p.streamName, p.shardID))
	return err
}

// LeaseLost transitions to Released without checkpointing — the lease
// already belongs to another worker by the time this is called.
func (p *RecordProcessor[D, M]) LeaseLost() {
	p.state = Released
	p.bus.Publish(events.NewLeaseLost(p.streamName, p.shardID))
}
