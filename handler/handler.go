// Package handler declares the contract a caller implements to consume
// typed records from a stream (spec §4.4). D and M are the handler's
// data and metadata types; binding them as type parameters at
// construction replaces the dynamic type tokens the original design
// carries at runtime (spec §9 design note).
package handler

import (
	"context"

	"github.com/streamworks/kinesis-runtime/record"
)

// RecordHandler is implemented by callers to receive decoded records
// for one stream. HandleRecord is invoked for every successfully
// decoded record, in delivery order; HandleDeserializationError is
// invoked when a record's bytes could not be decoded into (D, M).
type RecordHandler[D, M any] interface {
	// StreamName is the stream this handler binds to.
	StreamName() string

	// HandleRecord processes one successfully decoded record. An error
	// aborts the batch per the processor's checkpoint strategy (spec
	// §4.2).
	HandleRecord(ctx context.Context, rec record.Record[D, M], ec record.ExecutionContext) error

	// HandleDeserializationError is invoked with the raw bytes of a
	// record that failed to decode. Any error it returns propagates
	// unchanged and aborts the batch — it is already on an error path.
	HandleDeserializationError(ctx context.Context, raw []byte, cause error, ec record.ExecutionContext) error
}

// Factory produces a new RecordHandler for each shard assignment,
// mirroring the upstream library's IRecordProcessorFactory: one handler
// instance per shard, discarded on shard loss or shard end.
type Factory[D, M any] interface {
	NewHandler() RecordHandler[D, M]
}

// FactoryFunc adapts a plain function to a Factory.
type FactoryFunc[D, M any] func() RecordHandler[D, M]

func (f FactoryFunc[D, M]) NewHandler() RecordHandler[D, M] {
	return f()
}
