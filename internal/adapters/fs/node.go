package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uccmake/internal/adapters/logger"
	"go.trai.ch/uccmake/internal/core/ports"
)

const (
	WalkerNodeID    graft.ID = "adapter.fs.walker"
	HasherNodeID    graft.ID = "adapter.fs.hasher"
	FlattenerNodeID graft.ID = "adapter.fs.flattener"
	BackupNodeID    graft.ID = "adapter.fs.backup"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	// Flattener Node
	graft.Register(graft.Node[ports.Flattener]{
		ID:        FlattenerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Flattener, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFlattener(walker, hasher, log), nil
		},
	})

	// Backup Node
	graft.Register(graft.Node[ports.ArtifactBackup]{
		ID:        BackupNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactBackup, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackup(hasher, log), nil
		},
	})
}
