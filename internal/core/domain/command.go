package domain

import (
	"errors"
	"io"
	"strconv"
)

// Command describes a child process invocation.
type Command struct {
	// Argv is the program followed by its arguments.
	Argv []string
	// Env is the complete child environment; nil inherits the current process environment.
	Env []string
	// Dir is the working directory; empty uses the current one.
	Dir string
	// Stdin, Stdout and Stderr default to the process's standard streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports a child process that exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status " + strconv.Itoa(e.Code)
}

// ExitCode extracts the process exit status carried by err.
// It returns 0 for nil, the child's status for an ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
