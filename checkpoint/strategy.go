package checkpoint

import "time"

// Strategy selects how the record processor issues checkpoints for a
// batch: once per batch, or once per successfully handled record.
type Strategy int

const (
	// Batch issues a single checkpoint after the whole batch has been
	// handled successfully. The default.
	Batch Strategy = iota
	// Record issues a checkpoint after each successfully handled
	// record, at the cost of one checkpoint call per record.
	Record
)

func (s Strategy) String() string {
	switch s {
	case Batch:
		return "BATCH"
	case Record:
		return "RECORD"
	default:
		return "UNKNOWN"
	}
}

// Config is the checkpointing configuration for a stream (spec §3).
type Config struct {
	Strategy   Strategy
	MaxRetries int
	Backoff    time.Duration
}

// DefaultConfig returns BATCH strategy with no retries, matching the
// spec's stated default for Strategy.
func DefaultConfig() Config {
	return Config{Strategy: Batch}
}
