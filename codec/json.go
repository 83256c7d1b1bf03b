// Package codec implements the record deserializer factory (spec §4.1):
// a strict structural decode of the two-field {data, metadata} JSON
// wire contract into a handler's declared (D, M) types.
package codec

import (
	"encoding/json"
	"fmt"
)

// Decoder decodes a raw payload into a typed record. One Decoder is
// bound to a single handler's (D, M) type pair at construction —
// the type tokens the original design describes as runtime values
// become compile-time generics here, per the redesign note in spec §9.
type Decoder[D, M any] interface {
	Decode(raw []byte) (Record[D, M], error)
}

// Record has the same shape as record.Record[D, M]; codec does not
// import the record package. Callers typically copy this into a
// record.Record[D, M].
type Record[D, M any] struct {
	Data     D
	Metadata M
}

// DeserializationError is returned when raw bytes are not a JSON
// object, are missing either top-level field, or a field's type does
// not match the handler's declared D or M. It carries the offending
// bytes (for the handler's error callback) and the underlying cause.
type DeserializationError struct {
	Raw   []byte
	Cause error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialize record: %v", e.Cause)
}

func (e *DeserializationError) Unwrap() error {
	return e.Cause
}

type envelope struct {
	Data     json.RawMessage `json:"data"`
	Metadata json.RawMessage `json:"metadata"`
}

type jsonDecoder[D, M any] struct{}

// NewJSONDecoder returns a Decoder that parses raw as a JSON object with
// top-level "data" and "metadata" fields, decoding each into D and M
// respectively. No schema evolution, no defaulting: any shape or type
// mismatch is a DeserializationError.
func NewJSONDecoder[D, M any]() Decoder[D, M] {
	return jsonDecoder[D, M]{}
}

func (jsonDecoder[D, M]) Decode(raw []byte) (Record[D, M], error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Record[D, M]{}, &DeserializationError{Raw: raw, Cause: err}
	}

	if env.Data == nil {
		return Record[D, M]{}, &DeserializationError{
			Raw: raw, Cause: fmt.Errorf("missing required top-level field %q", "data"),
		}
	}
	if env.Metadata == nil {
		return Record[D, M]{}, &DeserializationError{
			Raw: raw, Cause: fmt.Errorf("missing required top-level field %q", "metadata"),
		}
	}

	var rec Record[D, M]
	if err := json.Unmarshal(env.Data, &rec.Data); err != nil {
		return Record[D, M]{}, &DeserializationError{Raw: raw, Cause: fmt.Errorf("decode data: %w", err)}
	}
	if err := json.Unmarshal(env.Metadata, &rec.Metadata); err != nil {
		return Record[D, M]{}, &DeserializationError{Raw: raw, Cause: fmt.Errorf("decode metadata: %w", err)}
	}

	return rec, nil
}
