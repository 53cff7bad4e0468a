package pip

import (
	"context"

	"github.com/emdiet/popl/internal/adapters/shell"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Installer, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstaller(executor), nil
		},
	})
}
