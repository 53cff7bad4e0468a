package app

import (
	"context"

	"github.com/emdiet/popl/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"github.com/emdiet/popl/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"github.com/emdiet/popl/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"github.com/emdiet/popl/internal/core/ports"
	"github.com/emdiet/popl/internal/engine/orchestrator"
	"github.com/emdiet/popl/internal/engine/provisioner"
	"github.com/emdiet/popl/internal/engine/runner"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.LocatorNodeID,
			config.SettingsNodeID,
			orchestrator.NodeID,
			provisioner.NodeID,
			runner.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	locator, err := graft.Dep[ports.ProjectLocator](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	prov, err := graft.Dep[*provisioner.Provisioner](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(locator, settings, orch, prov, run, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
