package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/uccmake/internal/core/ports"
)

// NodeID is the unique identifier for the workspace resolver Graft node.
const NodeID graft.ID = "adapter.workspace"

func init() {
	graft.Register(graft.Node[ports.WorkspaceResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WorkspaceResolver, error) {
			return NewResolver(), nil
		},
	})
}
