package ports

import "github.com/emdiet/popl/internal/core/domain"

// ProjectLocator finds the project root governing a directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ProjectLocator interface {
	// FindRoot returns the nearest ancestor of start, including start itself, that contains
	// a manifest. The boolean is false when no such directory exists.
	FindRoot(start string) (string, bool)
}

// SettingsLoader loads the user settings.
type SettingsLoader interface {
	// Load resolves the settings effective for the working directory cwd.
	Load(cwd string) (domain.Settings, error)
}
