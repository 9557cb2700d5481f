package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uccmake/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/adapters/workspace" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/uccmake/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			workspace.NodeID,
			fs.BackupNodeID,
			shell.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.WorkspaceResolver](ctx)
			if err != nil {
				return nil, err
			}

			backup, err := graft.Dep[ports.ArtifactBackup](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.MetricsRecorder](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, resolver, backup, runner, tracer, recorder), nil
		},
	})
}
