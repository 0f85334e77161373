package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitWithExporterRecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	ctx := context.Background()

	shutdown, err := InitWithExporter(ctx, "voxel-test", exp)
	require.NoError(t, err)

	_, span := Tracer().Start(ctx, "sim.step")
	span.End()

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "sim.step", spans[0].Name)

	require.NoError(t, shutdown(ctx))
}
