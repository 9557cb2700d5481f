package ports

import (
	"context"
	"time"

	"go.trai.ch/uccmake/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Span attribute keys shared by the pipeline and the telemetry adapters.
const (
	AttrRunID  = "uccmake.run_id"
	AttrStage  = "uccmake.stage"
	AttrModule = "uccmake.module"
)

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute when the span starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

// MetricsRecorder collects build metrics.
type MetricsRecorder interface {
	// ObserveStage records how long a pipeline stage took.
	ObserveStage(stage domain.Stage, duration time.Duration)
	// ObserveEvent counts a classified output event.
	ObserveEvent(ev domain.Event)
	// ObserveFlatten records the result of a flatten run.
	ObserveFlatten(result domain.FlattenResult)
	// RecordOutcome records the final build outcome for the run identified by runID.
	RecordOutcome(runID string, outcome domain.BuildOutcome)
	// Export writes the collected metrics in Prometheus text format to path.
	Export(path string) error
}
