// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync"

	"github.com/emdiet/popl/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

var _ ports.Telemetry = (*Recorder)(nil)

// vertexLister is implemented by writers that retain the vertices they were sent,
// such as *progrock.Tape.
type vertexLister interface {
	Vertices() []*progrock.Vertex
}

// Recorder implements ports.Telemetry using the vito/progrock library. On Close
// it reports every recorded step through the logger.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	logger ports.Logger

	mu  sync.Mutex
	seq int
}

// New creates a new Recorder recording to a tape.
func New(logger ports.Logger) *Recorder {
	return NewRecorder(progrock.NewTape(), logger)
}

// NewRecorder creates a new Recorder with the given writer. Steps are only
// reported when w retains its vertices.
func NewRecorder(w progrock.Writer, logger ports.Logger) *Recorder {
	return &Recorder{
		w:      w,
		rec:    progrock.NewRecorder(w),
		logger: logger,
	}
}

// Record starts a new step. Steps sharing a name get distinct vertices.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	r.seq++
	id := digest.FromString(strconv.Itoa(r.seq) + "/" + name)
	r.mu.Unlock()

	vertex := &Vertex{recorder: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close completes the session, reports the recorded steps and closes the writer.
func (r *Recorder) Close() error {
	r.rec.Complete()
	if lister, ok := r.w.(vertexLister); ok {
		r.report(lister.Vertices())
	}
	return r.w.Close()
}

func (r *Recorder) report(vertices []*progrock.Vertex) {
	for _, v := range vertices {
		line, ok := summarize(v)
		if ok {
			r.logger.Info(line)
		} else {
			r.logger.Warn(line)
		}
	}
}
