package config

import (
	"context"

	"github.com/emdiet/popl/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// LocatorNodeID is the unique identifier for the project locator Graft node.
	LocatorNodeID graft.ID = "adapter.project_locator"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.settings_loader"
)

func init() {
	graft.Register(graft.Node[ports.ProjectLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectLocator, error) {
			return NewLocator(), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})
}
