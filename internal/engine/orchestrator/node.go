package orchestrator

import (
	"context"

	"github.com/emdiet/popl/internal/adapters/lockfile"            //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/logger"              //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/manifest"            //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/pip"                 //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pip.NodeID,
			manifest.NodeID,
			lockfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestStore](ctx)
			if err != nil {
				return nil, err
			}

			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewOrchestrator(installer, manifests, locks, telemetry, log), nil
		},
	})
}
