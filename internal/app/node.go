package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uccmake/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/uccmake/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/uccmake/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/uccmake/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/uccmake/internal/core/ports"
	"go.trai.ch/uccmake/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			fs.FlattenerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	flattener, err := graft.Dep[ports.Flattener](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.MetricsRecorder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, p, flattener, recorder, log), nil
}
