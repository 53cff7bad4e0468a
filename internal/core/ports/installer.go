package ports

import (
	"context"

	"github.com/emdiet/popl/internal/core/domain"
)

// Installer is the external package installer.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install installs the specifiers into target, forwarding extraArgs to the installer verbatim.
	Install(ctx context.Context, target domain.InstallTarget, specifiers, extraArgs []string) error

	// Freeze reports the fully resolved, currently installed specifiers of target.
	Freeze(ctx context.Context, target domain.InstallTarget) ([]string, error)
}
