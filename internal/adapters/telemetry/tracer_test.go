package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/uccmake/internal/adapters/telemetry"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
)

func newRecordingTracer(t *testing.T) (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return telemetry.NewOTelTracer(tp, "test"), sr
}

func attributeMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "stage.backup",
		ports.WithAttribute(ports.AttrStage, domain.StageBackup.String()),
		ports.WithAttribute("attempt", 1),
	)
	require.NotNil(t, ctx)
	span.SetAttribute("bytes", int64(42))
	span.SetAttribute("performed", true)
	span.SetAttribute("errors", uint(3))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("files", []string{"a.uc", "b.uc"})
	span.SetAttribute("kind", domain.OutcomeSucceeded)
	span.SetAttribute("other", struct{ N int }{N: 7})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "stage.backup", ended[0].Name())

	attrs := attributeMap(ended[0].Attributes())
	assert.Equal(t, "backup", attrs[ports.AttrStage].AsString())
	assert.Equal(t, int64(1), attrs["attempt"].AsInt64())
	assert.Equal(t, int64(42), attrs["bytes"].AsInt64())
	assert.True(t, attrs["performed"].AsBool())
	assert.Equal(t, int64(3), attrs["errors"].AsInt64())
	assert.InDelta(t, 0.5, attrs["ratio"].AsFloat64(), 0.0001)
	assert.Equal(t, []string{"a.uc", "b.uc"}, attrs["files"].AsStringSlice())
	assert.Equal(t, "succeeded", attrs["kind"].AsString())
	assert.Equal(t, "{7}", attrs["other"].AsString())
}

func TestOTelTracer_NestedSpans(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	ctx, parent := tracer.Start(context.Background(), "build")
	_, child := tracer.Start(ctx, "stage.compiling")
	child.End()
	parent.End()

	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "stage.compiling", ended[0].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestOTelSpan_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "stage.compiling")
	span.RecordError(nil)
	span.RecordError(errors.New("compile failed"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "compile failed", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "anything", ports.WithAttribute("k", "v"))
	assert.Equal(t, ctx, got)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
