package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uccmake/internal/adapters/metrics"
	"go.trai.ch/uccmake/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{metrics.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			recorder, err := graft.Dep[ports.MetricsRecorder](ctx)
			if err != nil {
				return nil, err
			}
			tp := NewProvider(NewMetricsBridge(recorder))
			return NewOTelTracer(tp, InstrumentationName), nil
		},
	})
}
