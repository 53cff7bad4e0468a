// Package main is the entry point for popl.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/emdiet/popl/cmd/popl/commands"
	"github.com/emdiet/popl/internal/app"
	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	_ "github.com/emdiet/popl/internal/wiring"
	"github.com/grindlemire/graft"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Telemetry.Close() }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		return exitCode(err, components.Logger)
	}
	return 0
}

// exitCode maps a command error to the process status. Only a bare child
// exit from run or exec is passed through silently; the child reported it.
func exitCode(err error, logger ports.Logger) int {
	//nolint:errorlint // Wrapped exit statuses come from popl's own helpers and must be logged
	if exitErr, ok := err.(*domain.ExitError); ok {
		return exitErr.Code
	}
	if errors.Is(err, domain.ErrInstallerFailed) {
		return 1
	}
	logger.Error(err)
	return 1
}
