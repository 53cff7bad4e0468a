// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/emdiet/popl/internal/adapters/config"
	_ "github.com/emdiet/popl/internal/adapters/lockfile"
	_ "github.com/emdiet/popl/internal/adapters/logger"
	_ "github.com/emdiet/popl/internal/adapters/manifest"
	_ "github.com/emdiet/popl/internal/adapters/pip"
	_ "github.com/emdiet/popl/internal/adapters/shell"
	_ "github.com/emdiet/popl/internal/adapters/telemetry/progrock"
	_ "github.com/emdiet/popl/internal/adapters/venv"
	// Register app and engine nodes.
	_ "github.com/emdiet/popl/internal/app"
	_ "github.com/emdiet/popl/internal/engine/orchestrator"
	_ "github.com/emdiet/popl/internal/engine/provisioner"
	_ "github.com/emdiet/popl/internal/engine/runner"
)
