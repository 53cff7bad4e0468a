package progrock

import (
	"context"
	"errors"
	"io"

	"github.com/vito/progrock"
)

// Vertex is one recorded step. Child output written to it lands in the
// vertex's log.
type Vertex struct {
	recorder *progrock.VertexRecorder
}

// Stdout returns the step's standard output log.
func (v *Vertex) Stdout() io.Writer {
	return v.recorder.Stdout()
}

// Stderr returns the step's error output log.
func (v *Vertex) Stderr() io.Writer {
	return v.recorder.Stderr()
}

// Complete finishes the step. An interrupted step is flagged canceled
// instead of failed.
func (v *Vertex) Complete(err error) {
	if errors.Is(err, context.Canceled) {
		v.recorder.Vertex.Canceled = true
		v.recorder.Complete()
		return
	}
	v.recorder.Done(err)
}
