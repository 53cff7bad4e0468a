package venv

import (
	"context"

	"github.com/emdiet/popl/internal/adapters/shell"
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the environment provider Graft node.
const NodeID graft.ID = "adapter.environment_provider"

func init() {
	graft.Register(graft.Node[ports.EnvironmentProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentProvider, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(executor), nil
		},
	})
}
