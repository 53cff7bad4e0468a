package provisioner

import (
	"context"

	"github.com/emdiet/popl/internal/adapters/lockfile"            //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/logger"              //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/manifest"            //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/adapters/venv"                //nolint:depguard // Wired in engine wiring
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the provisioner Graft node.
const NodeID graft.ID = "engine.provisioner"

func init() {
	graft.Register(graft.Node[*Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			venv.NodeID,
			manifest.NodeID,
			lockfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Provisioner, error) {
			envs, err := graft.Dep[ports.EnvironmentProvider](ctx)
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

			return NewProvisioner(envs, manifests, locks, telemetry, log), nil
		},
	})
}
