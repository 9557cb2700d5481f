package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/uccmake/internal/core/domain"
	"go.trai.ch/uccmake/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*MetricsBridge)(nil)

// MetricsBridge implements sdktrace.SpanProcessor and feeds the duration of
// every ended stage span into a ports.MetricsRecorder.
type MetricsBridge struct {
	metrics ports.MetricsRecorder
}

// NewMetricsBridge returns a new MetricsBridge.
func NewMetricsBridge(metrics ports.MetricsRecorder) *MetricsBridge {
	return &MetricsBridge{metrics: metrics}
}

// OnStart does nothing.
func (b *MetricsBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records spans carrying a stage attribute.
func (b *MetricsBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil {
		return
	}

	for _, attr := range s.Attributes() {
		if string(attr.Key) != ports.AttrStage {
			continue
		}
		if stage, ok := domain.ParseStage(attr.Value.AsString()); ok {
			b.metrics.ObserveStage(stage, s.EndTime().Sub(s.StartTime()))
		}
		return
	}
}

// ForceFlush does nothing.
func (b *MetricsBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *MetricsBridge) Shutdown(_ context.Context) error {
	return nil
}
