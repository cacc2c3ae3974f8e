// Package glprint is a sink module that prints every transmission as the GL
// call a renderer would make, one line each:
//
//	glUniform1f(3, 7)
//	glUniform3fv(2, 1, [1 2 3])
//	glUniformMatrix4fv(0, 1, false, [1 0 0 0 ...])
package glprint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// Kind is the sink kind this module registers.
const Kind = "glprint"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the sink with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink(Kind, Open)
}

// Surface implements uniform.Surface by writing GL calls to a writer.
type Surface struct {
	mu sync.Mutex
	w  io.Writer
}

var _ uniform.Surface = (*Surface)(nil)

// NewSurface returns a Surface printing to w.
func NewSurface(w io.Writer) *Surface {
	return &Surface{w: w}
}

func (s *Surface) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format+"\n", args...)
}

func (s *Surface) Uniform1f(location int32, v float32) {
	s.printf("glUniform1f(%d, %v)", location, v)
}

func (s *Surface) Uniform1i(location int32, v int32) {
	s.printf("glUniform1i(%d, %d)", location, v)
}

func (s *Surface) Uniform2fv(location int32, v []float32) {
	s.printf("glUniform2fv(%d, 1, %v)", location, v)
}

func (s *Surface) Uniform3fv(location int32, v []float32) {
	s.printf("glUniform3fv(%d, 1, %v)", location, v)
}

func (s *Surface) Uniform4fv(location int32, v []float32) {
	s.printf("glUniform4fv(%d, 1, %v)", location, v)
}

func (s *Surface) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	s.printf("glUniformMatrix3fv(%d, 1, %t, %v)", location, transpose, v)
}

func (s *Surface) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	s.printf("glUniformMatrix4fv(%d, 1, %t, %v)", location, transpose, v)
}

type session struct {
	surface *Surface
}

// Open opens a printing session on opts.Out.
func Open(ctx context.Context, opts registry.Options) (registry.Session, error) {
	if opts.Out == nil {
		return nil, errors.New("glprint needs an output writer")
	}
	ctxlog.FromContext(ctx).Debug("glprint sink ready.")
	return &session{surface: NewSurface(opts.Out)}, nil
}

func (s *session) SinkFor(t registry.Target) uniform.Sink {
	return &uniform.SurfaceSink{Location: t.Location, Surface: s.surface}
}

func (s *session) Close() error { return nil }
