package checkpoint

import (
	"context"
	"fmt"
	"time"

	"github.com/hugolhafner/dskit/backoff"
	"github.com/streamworks/kinesis-runtime/logger"
	"github.com/streamworks/kinesis-runtime/metrics"
)

// Op is a single checkpoint attempt: either checkpoint() or
// checkpoint(sequenceNumber), already bound by the caller.
type Op func() error

// RetryPolicy implements the bounded retry loop of spec §4.3: at most
// 1 + MaxRetries attempts, a fixed delay between attempts, and fault-kind
// dependent behaviour on exhaustion.
type RetryPolicy struct {
	maxRetries int
	backoff    backoff.Backoff
	classify   Classifier
	logger     logger.Logger
	streamName string
	recorder   metrics.Recorder
}

// NewRetryPolicy builds a RetryPolicy from a checkpointing Config. A nil
// logger defaults to a no-op logger.
func NewRetryPolicy(cfg Config, log logger.Logger) *RetryPolicy {
	if log == nil {
		log = logger.NewNoopLogger()
	}

	return &RetryPolicy{
		maxRetries: cfg.MaxRetries,
		backoff:    backoff.NewFixed(cfg.Backoff),
		classify:   DefaultClassifier,
		logger:     log.With("component", "checkpoint-retry-policy"),
		recorder:   metrics.Noop(),
	}
}

// WithClassifier overrides the default sentinel-type fault classifier,
// e.g. to recognize a specific upstream SDK's error types directly.
func (p *RetryPolicy) WithClassifier(c Classifier) *RetryPolicy {
	p.classify = c
	return p
}

// WithRecorder records every checkpoint attempt and failure (spec §7's
// per-record metrics requirement) against r, tagged with streamName. A
// nil r leaves the existing (default no-op) recorder in place.
func (p *RetryPolicy) WithRecorder(streamName string, r metrics.Recorder) *RetryPolicy {
	p.streamName = streamName
	if r != nil {
		p.recorder = r
	}
	return p
}

// Do runs op, retrying according to the fault kind of any error it
// returns. It blocks for the backoff duration between attempts unless
// ctx is cancelled first, in which case it returns ctx.Err() without
// waiting out the remainder of the delay — bounding shutdown latency to
// at most one in-flight checkpoint attempt (spec §5, §9 design note).
func (p *RetryPolicy) Do(ctx context.Context, op Op) error {
	var lastErr error
	var lastKind FaultKind

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		p.recorder.IncrCheckpointAttempts(p.streamName)

		err := op()
		if err == nil {
			return nil
		}

		p.recorder.IncrCheckpointFailures(p.streamName)

		lastErr = err
		lastKind = p.classify(err)

		switch lastKind {
		case NonRetryable, Unknown:
			p.logger.Error("checkpoint failed, not retrying", "error", err, "fault_kind", lastKind.String())
			return err
		case Retryable, Throttling:
			if attempt == p.maxRetries {
				break // exhausted, fall through to the post-loop handling below
			}

			p.logger.Warn(
				"checkpoint failed, retrying", "error", err, "fault_kind", lastKind.String(),
				"attempt", attempt+1, "max_retries", p.maxRetries,
			)

			if waitErr := p.sleep(ctx, p.backoff.Next(uint(attempt))); waitErr != nil {
				return waitErr
			}
		}
	}

	switch lastKind {
	case Throttling:
		p.logger.Warn(
			"checkpoint retries exhausted under throttling, swallowing", "error", lastErr,
			"max_retries", p.maxRetries,
		)
		return nil
	default:
		p.logger.Error("checkpoint retries exhausted, propagating", "error", lastErr, "max_retries", p.maxRetries)
		return fmt.Errorf("checkpoint: retries exhausted: %w", lastErr)
	}
}

// sleep waits for d, returning ctx.Err() if ctx is cancelled first.
func (p *RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
