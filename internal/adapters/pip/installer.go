// Package pip drives the pip installer through the process executor.
package pip

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer by invoking pip.
type Installer struct {
	executor ports.Executor
	stdout   io.Writer
	stderr   io.Writer
}

// NewInstaller creates a new Installer running pip through executor.
func NewInstaller(executor ports.Executor) *Installer {
	return &Installer{
		executor: executor,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// Install runs `<target> install <specifiers...> <extraArgs...>`, streaming
// pip's output to the terminal and to the vertex carried by ctx.
func (i *Installer) Install(ctx context.Context, target domain.InstallTarget, specifiers, extraArgs []string) error {
	argv := slices.Concat(target.Argv, []string{"install"}, specifiers, extraArgs)

	stdout, stderr := i.stdout, i.stderr
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdout, v.Stdout())
		stderr = io.MultiWriter(stderr, v.Stderr())
	}

	err := i.executor.Execute(ctx, domain.Command{
		Argv:   argv,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		installErr := zerr.Wrap(err, domain.ErrInstallerFailed.Error())
		installErr = zerr.With(installErr, "installer", argv[0])
		return zerr.With(installErr, "exit_code", domain.ExitCode(err))
	}
	return nil
}

// Freeze runs `<target> freeze` and returns the reported requirement lines.
func (i *Installer) Freeze(ctx context.Context, target domain.InstallTarget) ([]string, error) {
	argv := slices.Concat(target.Argv, []string{"freeze"})

	cmd := domain.Command{Argv: argv}
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stderr = io.MultiWriter(i.stderr, v.Stderr())
	}

	out, err := i.executor.Output(ctx, cmd)
	if err != nil {
		freezeErr := zerr.Wrap(err, domain.ErrFreezeFailed.Error())
		return nil, zerr.With(freezeErr, "installer", argv[0])
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		_, _ = v.Stdout().Write(out)
	}
	return domain.ParseLockEntries(out), nil
}
