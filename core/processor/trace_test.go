package processor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/kigichang/sawtk/core/state"
)

func TestApplyRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	p := newCounterProcessor(t, WithTracer(provider.Tracer(tracerName)))
	store := state.NewMemoryContext()
	require.NoError(t, p.Apply(context.Background(), processRequest(t, cmdSet, wrapperspb.String("a")), store))
	require.Error(t, p.Apply(context.Background(), processRequest(t, 77, nil), store))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		require.Equal(t, "processor.apply", span.Name())
	}
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "unknown_command", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)

	attrs := map[string]any{}
	for _, kv := range spans[1].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	require.Equal(t, "counter", attrs["family"])
	require.Equal(t, int64(77), attrs["command"])
}
