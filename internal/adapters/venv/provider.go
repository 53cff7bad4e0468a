// Package venv creates isolated environments with the runtime's venv module.
package venv

import (
	"context"
	"io"
	"os"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvironmentProvider = (*Provider)(nil)

// Provider implements ports.EnvironmentProvider with `<runtime> -m venv <dir>`.
type Provider struct {
	executor ports.Executor
	stdout   io.Writer
	stderr   io.Writer
}

// NewProvider creates a new Provider running the runtime through executor.
func NewProvider(executor ports.Executor) *Provider {
	return &Provider{
		executor: executor,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// Create creates the environment at dir. Output goes to the terminal and to
// the vertex carried by ctx.
func (p *Provider) Create(ctx context.Context, runtime, dir string) error {
	cmd := domain.Command{
		Argv:   []string{runtime, "-m", "venv", dir},
		Stdout: p.stdout,
		Stderr: p.stderr,
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(p.stdout, v.Stdout())
		cmd.Stderr = io.MultiWriter(p.stderr, v.Stderr())
	}

	if err := p.executor.Execute(ctx, cmd); err != nil {
		createErr := zerr.Wrap(err, domain.ErrEnvironmentCreateFailed.Error())
		createErr = zerr.With(createErr, "runtime", runtime)
		return zerr.With(createErr, "dir", dir)
	}
	return nil
}
