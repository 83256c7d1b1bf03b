//go:build unit

package events_test

import (
	"sync"
	"testing"

	"github.com/streamworks/kinesis-runtime/events"
	"github.com/stretchr/testify/require"
)

// Publishing one WorkerInitialized event delivers it exactly once to the
// stream's subscriber. P11 itself (Initialize publishes one event) is
// covered in the processor package tests.
func TestBus_PublishesExactlyOnce(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()

	var mu sync.Mutex
	var received []events.Event

	bus.Subscribe(
		"orders", func(ev events.Event) {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, ev)
		},
	)

	bus.Publish(events.NewWorkerInitialized("orders", "shard-0001"))

	require.Len(t, received, 1)
	init, ok := received[0].(events.WorkerInitialized)
	require.True(t, ok)
	require.Equal(t, "orders", init.StreamName())
	require.Equal(t, "shard-0001", init.ShardID)
}

func TestBus_StreamNameScoping(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()

	var ordersCount, paymentsCount int
	bus.Subscribe("orders", func(events.Event) { ordersCount++ })
	bus.Subscribe("payments", func(events.Event) { paymentsCount++ })

	bus.Publish(events.NewShardEnded("orders", "shard-0001"))

	require.Equal(t, 1, ordersCount)
	require.Equal(t, 0, paymentsCount)
}

func TestBus_MultipleSubscribersInOrder(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()

	var order []string
	bus.Subscribe("orders", func(events.Event) { order = append(order, "first") })
	bus.Subscribe("orders", func(events.Event) { order = append(order, "second") })

	bus.Publish(events.NewLeaseLost("orders", "shard-0001"))

	require.Equal(t, []string{"first", "second"}, order)
}

// A panicking subscriber must not prevent subsequent subscribers from
// running.
func TestBus_PanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()

	var secondCalled bool
	bus.Subscribe("orders", func(events.Event) { panic("boom") })
	bus.Subscribe("orders", func(events.Event) { secondCalled = true })

	require.NotPanics(
		t, func() {
			bus.Publish(events.NewWorkerShutdown("orders", "shard-0001", "REQUESTED"))
		},
	)

	require.True(t, secondCalled)
}
