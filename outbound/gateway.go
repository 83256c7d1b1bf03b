// Package outbound implements the publish path (spec §4.6): typed
// emission of (payload, metadata) into a named stream using the same
// JSON wire contract the codec package decodes, via the upstream
// producer client.
package outbound

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Producer is the minimal upstream surface a Gateway emits through —
// the Kinesis PutRecord vocabulary, generalized from the teacher's own
// kafka.Producer.Send so any record-oriented stream client can back it.
type Producer interface {
	PutRecord(ctx context.Context, streamName string, partitionKey string, data []byte) error
}

// envelope mirrors codec's wire shape: a JSON object with exactly two
// top-level keys, "data" and "metadata".
type envelope struct {
	Data     any `json:"data"`
	Metadata any `json:"metadata"`
}

// Gateway serializes and emits records into named streams through a
// Producer.
type Gateway struct {
	producer Producer
}

// Option customizes a Gateway at construction.
type Option func(*Gateway)

// NewGateway builds a Gateway backed by producer.
func NewGateway(producer Producer, opts ...Option) *Gateway {
	g := &Gateway{producer: producer}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Send serializes {data: payload, metadata: metadata} and emits it into
// streamName. The partition key is derived deterministically from the
// serialized metadata (spec §9's decided outbound-partition-key policy):
// callers that need control over shard placement should use
// SendWithKey instead.
func (g *Gateway) Send(ctx context.Context, streamName string, payload, metadata any) error {
	body, metaBytes, err := marshal(payload, metadata)
	if err != nil {
		return err
	}

	return g.producer.PutRecord(ctx, streamName, derivePartitionKey(metaBytes), body)
}

// SendWithKey is identical to Send but uses the caller-supplied
// partitionKey instead of deriving one from the metadata.
func (g *Gateway) SendWithKey(ctx context.Context, streamName, partitionKey string, payload, metadata any) error {
	body, _, err := marshal(payload, metadata)
	if err != nil {
		return err
	}

	return g.producer.PutRecord(ctx, streamName, partitionKey, body)
}

func marshal(payload, metadata any) (body, metaBytes []byte, err error) {
	metaBytes, err = json.Marshal(metadata)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal metadata: %w", err)
	}

	body, err = json.Marshal(envelope{Data: payload, Metadata: json.RawMessage(metaBytes)})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return body, metaBytes, nil
}

// derivePartitionKey hashes the serialized metadata with xxhash to
// produce a deterministic partition key when the caller supplies none —
// records with identical metadata land on the same shard, which is as
// reasonable a default as any in the absence of caller-supplied
// affinity (spec §4.6, §9).
func derivePartitionKey(metaBytes []byte) string {
	sum := xxhash.Sum64(metaBytes)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], sum)
	return fmt.Sprintf("%x", buf)
}
