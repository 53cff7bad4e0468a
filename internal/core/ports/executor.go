// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/emdiet/popl/internal/core/domain"
)

// Executor runs child processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion. A non-zero exit is reported as an error
	// wrapping *domain.ExitError.
	Execute(ctx context.Context, cmd domain.Command) error

	// Output runs the command and returns its standard output. Standard error is forwarded
	// to cmd.Stderr when set, otherwise to the logger.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)
}
