// Package events implements the in-process lifecycle event bus (spec
// §4.7): notifications a caller can subscribe to without holding a
// reference to the processor instance that raised them, mirroring the
// way the teacher's kafka.RebalanceCallback decouples a consumer from
// whichever runner drives it.
package events

import "sync"

// Event is implemented by every lifecycle notification the runtime
// raises. StreamName identifies which stream's processing raised it.
type Event interface {
	StreamName() string
}

type base struct {
	stream string
}

func (b base) StreamName() string { return b.stream }

// WorkerInitialized is raised once a shard's processor has completed
// Initialize and is ready to process records.
type WorkerInitialized struct {
	base
	ShardID string
}

// WorkerShutdown is raised when a shard's processor handles a requested
// shutdown, after its checkpoint attempt; Reason is "REQUESTED". A shard
// end raises ShardEnded and a lost lease raises LeaseLost instead.
type WorkerShutdown struct {
	base
	ShardID string
	Reason  string
}

// ShardEnded is raised when a shard closes permanently (it was split or
// merged) and its processor has finished draining.
type ShardEnded struct {
	base
	ShardID string
}

// LeaseLost is raised when a shard's lease is taken over by another
// worker before the processor reached a natural shutdown.
type LeaseLost struct {
	base
	ShardID string
}

// NewWorkerInitialized, NewWorkerShutdown, NewShardEnded and NewLeaseLost
// construct the corresponding event, filling in the embedded StreamName.
func NewWorkerInitialized(stream, shardID string) WorkerInitialized {
	return WorkerInitialized{base: base{stream}, ShardID: shardID}
}

func NewWorkerShutdown(stream, shardID, reason string) WorkerShutdown {
	return WorkerShutdown{base: base{stream}, ShardID: shardID, Reason: reason}
}

func NewShardEnded(stream, shardID string) ShardEnded {
	return ShardEnded{base: base{stream}, ShardID: shardID}
}

func NewLeaseLost(stream, shardID string) LeaseLost {
	return LeaseLost{base: base{stream}, ShardID: shardID}
}

// Subscriber receives events published for the stream it subscribed to.
type Subscriber func(Event)

// Bus fans lifecycle events out to subscribers bound by stream name.
// Binding by name rather than by processor instance is deliberate: a
// processor is created per-shard and discarded on shutdown, so a
// by-instance subscription would have to be re-registered for every
// shard lease and would retain a reference to a processor the caller
// has no other reason to keep alive (spec §9 design note).
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Subscriber)}
}

// Subscribe registers fn to receive every event published for
// streamName, in registration order.
func (b *Bus) Subscribe(streamName string, fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[streamName] = append(b.subscribers[streamName], fn)
}

// Publish synchronously invokes every subscriber registered for
// ev.StreamName() with ev, in registration order. A panicking subscriber
// does not prevent later subscribers from being invoked.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subscribers[ev.StreamName()]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		b.invoke(sub, ev)
	}
}

func (b *Bus) invoke(sub Subscriber, ev Event) {
	defer func() { _ = recover() }()
	sub(ev)
}
