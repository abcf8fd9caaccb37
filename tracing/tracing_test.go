package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("fluxcost", "0.0.1", fname))

	ctx, span := StartSpan(context.Background(), "accounting.ComputeAll")
	span.WithAttributes(attribute.Int64("processes", 2))
	_, child := StartSpan(ctx, "accounting.ComputeProcess")
	EndSpan(child, errors.New("pid 3: not found"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "accounting.ComputeAll")
	assert.Contains(t, string(data), "accounting.ComputeProcess")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(attribute.String("k", "v")))
	EndSpan(nil, nil)
	assert.NoError(t, InitWithExporter("fluxcost", "0.0.1", nil))
}

func TestInit_OnlyFirstWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	_ = Init("fluxcost", "0.0.1", first)
	require.NoError(t, Init("fluxcost", "0.0.2", second))

	_, err := os.Stat(second)
	assert.True(t, os.IsNotExist(err))
}

func TestShutdown(t *testing.T) {
	require.NoError(t, Init("fluxcost", "0.0.1", filepath.Join(t.TempDir(), "spans.txt")))
	assert.NoError(t, Shutdown(context.Background()))
	assert.NoError(t, Shutdown(context.Background()))
}
