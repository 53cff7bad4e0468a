// Package shell provides the child process executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/emdiet/popl/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command to completion with the standard streams defaulting
// to those of the current process.
func (e *Executor) Execute(ctx context.Context, c domain.Command) error {
	cmd, err := e.prepare(ctx, c)
	if err != nil {
		return err
	}

	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)

	return e.wrapRunError(ctx, c, cmd.Run())
}

// Output runs the command and returns what it wrote to stdout. Stderr goes to
// c.Stderr when set and is logged line by line otherwise.
func (e *Executor) Output(ctx context.Context, c domain.Command) ([]byte, error) {
	cmd, err := e.prepare(ctx, c)
	if err != nil {
		return nil, err
	}
	cmd.Stdin = c.Stdin

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", c.Argv[0])
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", c.Argv[0])
	}

	if err := cmd.Start(); err != nil {
		return nil, e.wrapRunError(ctx, c, err)
	}

	var out bytes.Buffer
	errSink := c.Stderr
	if errSink == nil {
		lw := &logWriter{logger: e.logger}
		defer lw.Flush()
		errSink = lw
	}

	// Both pipes must be drained before Wait closes them.
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(&out, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(errSink, stderr)
		return err
	})
	drainErr := g.Wait()

	if err := e.wrapRunError(ctx, c, cmd.Wait()); err != nil {
		return out.Bytes(), err
	}
	if drainErr != nil {
		return out.Bytes(), zerr.With(zerr.Wrap(drainErr, "failed to read command output"), "command", c.Argv[0])
	}
	return out.Bytes(), nil
}

// prepare builds the exec.Cmd, resolving argv[0] against the child's PATH.
func (e *Executor) prepare(ctx context.Context, c domain.Command) (*exec.Cmd, error) {
	if len(c.Argv) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	name := c.Argv[0]
	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	executable := name
	if !hasPathSeparator(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, c.Argv[1:]...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the resolved path; keep the name as invoked.
	cmd.Args[0] = name
	cmd.Env = c.Env
	cmd.Dir = c.Dir

	return cmd, nil
}

func (e *Executor) wrapRunError(ctx context.Context, c domain.Command, err error) error {
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "command", c.Argv[0])
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1
		}
		return zerr.With(zerr.Wrap(&domain.ExitError{Code: code}, "command failed"), "exit_code", code)
	}

	return zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", c.Argv[0])
}

func orReader(r, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
