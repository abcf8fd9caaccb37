package fluxcost_test

import (
	"bytes"
	"context"
	"embed"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/afs/file"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/viant/fluxcost"
	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/runtime/billing"
	"github.com/viant/fluxcost/service/accounting"
	"github.com/viant/fluxcost/service/event"
	"github.com/viant/fluxcost/service/messaging/memory"
)

//go:embed testdata/*
var embedFS embed.FS

func TestLoadConfig(t *testing.T) {
	t.Setenv("FLUXCOST_BATCH_SIZE", "5")
	ctx := context.Background()
	config, err := fluxcost.LoadConfig(ctx, "embed:///testdata/config.yaml", &embedFS)
	require.NoError(t, err)

	assert.Equal(t, 4, config.Pool.WorkerCount)
	assert.Equal(t, 16, config.Pool.QueueSize)
	assert.Equal(t, 8, config.Repository.Shards)
	assert.Equal(t, 5, config.Aggregation.BatchSize)
	assert.Equal(t, []string{"cpu", "Memory"}, config.Resources.Kinds)
	assert.Equal(t, "fluxcost", config.Tracing.ServiceName)
	assert.False(t, config.Tracing.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	testCases := []struct {
		name     string
		document string
	}{
		{name: "zero workers", document: "pool:\n  workers: 0\n"},
		{name: "negative batch", document: "aggregation:\n  batchSize: -1\n"},
		{name: "empty kind", document: "resources:\n  kinds: [\"\"]\n"},
		{name: "malformed", document: "pool: [1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			URL := "mem://localhost/fluxcost/" + strings.ReplaceAll(tc.name, " ", "_") + ".yaml"
			require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(tc.document))))
			_, err := fluxcost.LoadConfig(ctx, URL)
			assert.Error(t, err)
		})
	}

	_, err := fluxcost.LoadConfig(ctx, "mem://localhost/fluxcost/missing.yaml")
	assert.Error(t, err)
}

func TestService_Scenarios(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	ctx := context.Background()
	srv, err := fluxcost.New(
		fluxcost.WithWorkers(3),
		fluxcost.WithBatchSize(1),
		fluxcost.WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	require.NoError(t, srv.Start(ctx))

	require.NoError(t, srv.AddProcess(ctx, 0))
	require.NoError(t, srv.AddProcess(ctx, 1))
	assert.ErrorIs(t, srv.AddProcess(ctx, 1), fluxcost.ErrDuplicateProcess)

	require.NoError(t, srv.AddAllocation(ctx, 0, 3, resource.CPU, 4))
	require.NoError(t, srv.AddAllocation(ctx, 0, 2, resource.Memory, 2048))
	require.NoError(t, srv.AddAllocation(ctx, 0, 14, resource.Storage, 100))
	require.NoError(t, srv.AddAllocation(ctx, 1, 3, resource.CPU, 4))
	require.NoError(t, srv.AddAllocation(ctx, 1, 2, resource.Memory, 2048))

	assert.ErrorIs(t, srv.AddAllocation(ctx, 2, 3, resource.CPU, 4), fluxcost.ErrProcessNotFound)
	assert.ErrorIs(t, srv.AddAllocation(ctx, 1, 1, "gpu", 1), fluxcost.ErrUnknownResourceKind)

	summary, ok := srv.ComputeProcess(ctx, 0)
	assert.True(t, ok)
	assert.Equal(t, billing.Summary{PID: 0, Cost: 5856, Penalty: 1}, summary)
	_, ok = srv.ComputeProcess(ctx, 2)
	assert.False(t, ok)

	expected := []billing.Summary{
		{PID: 0, Cost: 5856, Penalty: 1},
		{PID: 1, Cost: 4186, Penalty: 0},
	}
	assert.Equal(t, expected, srv.ComputeAll(ctx))
	assert.ElementsMatch(t, expected, srv.ComputeAllConcurrent(ctx))
	assert.Equal(t, billing.Totals{Processes: 2, Cost: 10042, Penalty: 1}, billing.Total(srv.ComputeAll(ctx)))

	require.NoError(t, srv.Shutdown(ctx))
	// after shutdown the batches run inline
	assert.ElementsMatch(t, expected, srv.ComputeAllConcurrent(ctx))
}

func TestService_ResourceKinds(t *testing.T) {
	ctx := context.Background()
	config := fluxcost.DefaultConfig()
	config.Resources.Kinds = []string{"cpu", "memory"}
	srv, err := fluxcost.NewFromConfig(config)
	require.NoError(t, err)
	assert.Equal(t, []resource.Kind{resource.CPU, resource.Memory}, srv.Registry().Kinds())

	require.NoError(t, srv.AddProcess(ctx, 7))
	assert.ErrorIs(t, srv.AddAllocation(ctx, 7, 14, resource.Storage, 100), fluxcost.ErrUnknownResourceKind)

	config.Resources.Kinds = []string{"gpu"}
	_, err = fluxcost.NewFromConfig(config)
	assert.ErrorIs(t, err, policy.ErrUnknownKind)
}

func TestService_RegisterPolicy(t *testing.T) {
	ctx := context.Background()
	srv, err := fluxcost.New()
	require.NoError(t, err)

	gpu := resource.Kind("gpu")
	require.NoError(t, srv.RegisterPolicy(gpu, func(capacity uint32) policy.Policy {
		return policy.Func(func(usageTime uint32) int64 { return int64(usageTime) * int64(capacity) })
	}))
	assert.ErrorIs(t, srv.RegisterPolicy("", nil), policy.ErrInvalidKind)

	require.NoError(t, srv.AddProcess(ctx, 1))
	require.NoError(t, srv.AddAllocation(ctx, 1, 10, gpu, 8))
	summary, ok := srv.ComputeProcess(ctx, 1)
	assert.True(t, ok)
	assert.Equal(t, billing.Summary{PID: 1, Cost: 80}, summary)
}

func TestService_Events(t *testing.T) {
	ctx := context.Background()
	publisher := event.NewMemoryPublisher[accounting.Record](memory.DefaultConfig())
	srv, err := fluxcost.New(fluxcost.WithPublisher(publisher))
	require.NoError(t, err)

	require.NoError(t, srv.AddProcess(ctx, 3))
	e, err := publisher.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.TypeProcessAdded, e.Context.EventType)
	assert.EqualValues(t, 3, e.Context.PID)
}

func TestService_Tracing(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	srv, err := fluxcost.New(fluxcost.WithTracingExporter("fluxcost-test", "test", exporter))
	require.NoError(t, err)

	require.NoError(t, srv.AddProcess(ctx, 1))
	_ = srv.ComputeAll(ctx)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "accounting.AddProcess")
	assert.Contains(t, names, "accounting.ComputeAll")
}

func TestNewFromConfig_Invalid(t *testing.T) {
	config := fluxcost.DefaultConfig()
	config.Repository.Shards = 0
	_, err := fluxcost.NewFromConfig(config)
	assert.Error(t, err)

	_, err = fluxcost.New(fluxcost.WithBatchSize(0))
	assert.Error(t, err)
}

func TestWithConfig_DoesNotMutateCaller(t *testing.T) {
	config := fluxcost.DefaultConfig()
	config.Resources.Kinds = []string{"cpu"}
	workers, batchSize := config.Pool.WorkerCount, config.Aggregation.BatchSize

	srv, err := fluxcost.New(
		fluxcost.WithConfig(config),
		fluxcost.WithWorkers(workers+3),
		fluxcost.WithBatchSize(batchSize+1),
	)
	require.NoError(t, err)
	assert.Equal(t, workers+3, srv.Config().Pool.WorkerCount)
	assert.Equal(t, batchSize+1, srv.Config().Aggregation.BatchSize)

	assert.Equal(t, workers, config.Pool.WorkerCount)
	assert.Equal(t, batchSize, config.Aggregation.BatchSize)
	srv.Config().Resources.Kinds[0] = "memory"
	assert.Equal(t, []string{"cpu"}, config.Resources.Kinds)
}
