// Package runner starts scripts, modules and commands inside a project's
// isolated environment.
package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExecOptions configures RunCommand.
type ExecOptions struct {
	// Shell passes the joined tokens to the shell prefix instead of running them directly.
	Shell bool
	// ShellPrefix is the argv prefix used when Shell is set, e.g. ["sh", "-c"].
	ShellPrefix []string
}

// Runner runs children with the standard streams of the current process.
// A child that exits non-zero is reported as a bare *domain.ExitError.
type Runner struct {
	executor ports.Executor
	environ  func() []string
}

// NewRunner creates a new Runner.
func NewRunner(executor ports.Executor) *Runner {
	return &Runner{
		executor: executor,
		environ:  os.Environ,
	}
}

// RunScript runs `<env runtime> <absolute script> args...`. The script is
// resolved against dir, the invocation's working directory.
func (r *Runner) RunScript(ctx context.Context, project domain.Project, dir, script string, args []string) error {
	if err := requireRuntime(project.Env); err != nil {
		return err
	}

	scriptPath := script
	if !filepath.IsAbs(scriptPath) {
		scriptPath = filepath.Join(dir, script)
	}
	if info, err := os.Stat(scriptPath); err != nil || info.IsDir() {
		return zerr.With(domain.ErrScriptNotFound, "script", script)
	}

	return childExit(r.executor.Execute(ctx, domain.Command{
		Argv: slices.Concat([]string{project.Env.Runtime, scriptPath}, args),
	}))
}

// RunModule runs `<env runtime> -m module args...`.
func (r *Runner) RunModule(ctx context.Context, project domain.Project, module string, args []string) error {
	if err := requireRuntime(project.Env); err != nil {
		return err
	}

	return childExit(r.executor.Execute(ctx, domain.Command{
		Argv: slices.Concat([]string{project.Env.Runtime, "-m", module}, args),
	}))
}

// RunCommand runs tokens with the environment activated: its bin directory
// leads PATH and VIRTUAL_ENV points at it.
func (r *Runner) RunCommand(ctx context.Context, project domain.Project, tokens []string, opts ExecOptions) error {
	if len(tokens) == 0 {
		return domain.ErrEmptyCommand
	}
	if err := requireRuntime(project.Env); err != nil {
		return err
	}

	argv := tokens
	if opts.Shell {
		argv = append(slices.Clone(opts.ShellPrefix), strings.Join(tokens, " "))
	}

	return childExit(r.executor.Execute(ctx, domain.Command{
		Argv: argv,
		Env:  project.Env.Activate(r.environ()),
	}))
}

// childExit unwraps the exit status of a child that ran and failed. The child
// has already written its own diagnostics to the inherited streams.
func childExit(err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return err
}

func requireRuntime(env domain.Environment) error {
	if _, err := os.Stat(env.Runtime); err != nil {
		return zerr.With(domain.ErrEnvironmentMissing, "path", env.Runtime)
	}
	return nil
}
