//go:build unit

package processor_test

import (
	"context"
	"testing"

	"github.com/streamworks/kinesis-runtime/checkpoint"
	"github.com/streamworks/kinesis-runtime/handler"
	"github.com/streamworks/kinesis-runtime/processor"
	"github.com/streamworks/kinesis-runtime/record"
	"github.com/stretchr/testify/require"
)

func TestFactory_NewProcessor_OneHandlerPerShard(t *testing.T) {
	t.Parallel()

	var built int
	factoryFn := handler.FactoryFunc[payload, meta](
		func() handler.RecordHandler[payload, meta] {
			built++
			return &fakeHandler{stream: "orders"}
		},
	)

	f := processor.NewFactory[payload, meta](factoryFn, checkpoint.DefaultConfig(), nil, nil, nil)

	p1 := f.NewProcessor()
	p2 := f.NewProcessor()

	require.Equal(t, 2, built)
	require.NotSame(t, p1, p2)

	p1.Initialize("shard-0001")
	require.Equal(t, processor.Ready, p1.State())
	require.Equal(t, processor.Init, p2.State())
}

func TestFactory_NewProcessor_ProcessesRecords(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{stream: "orders"}
	factoryFn := handler.FactoryFunc[payload, meta](func() handler.RecordHandler[payload, meta] { return h })

	f := processor.NewFactory[payload, meta](factoryFn, checkpoint.DefaultConfig(), nil, nil, nil)
	p := f.NewProcessor()
	p.Initialize("shard-0001")

	cp := &fakeCheckpointer{}
	batch := []record.Raw{rawRecord("1", "first", "8b04")}

	require.NoError(t, p.ProcessRecords(context.Background(), batch, cp))
	require.Len(t, h.handled, 1)
}
