// Package record defines the data model shared by the deserializer,
// processor and outbound gateway: the raw bytes delivered by the
// upstream retrieval library, and the typed (data, metadata) pair
// produced by decoding them.
package record

import "time"

// Raw is a single record as delivered by the upstream stream client,
// before deserialization. Ordering within a shard is given by
// SequenceNumber.
type Raw struct {
	SequenceNumber              string
	Payload                     []byte
	PartitionKey                string
	ApproximateArrivalTimestamp time.Time
}

// ExecutionContext is the per-record side-channel passed into handler
// callbacks alongside the decoded data. It carries what a handler needs
// to correlate and log a record: the raw sequence number, the
// partition key, and the owning stream name.
type ExecutionContext struct {
	SequenceNumber string
	PartitionKey   string
	StreamName     string
}

// Record is the typed (data, metadata) pair produced by decoding a Raw
// record's payload. D and M are dictated entirely by the handler bound
// to a given stream.
type Record[D, M any] struct {
	Data     D
	Metadata M
}
