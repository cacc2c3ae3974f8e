package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// NoSink is the built-in kind that attaches no sinks at all.
const NoSink = "none"

// Module is the interface that all sink modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Target describes the uniform a sink is requested for.
type Target struct {
	Name     string
	Type     uniform.Types
	Location int32
}

// Options are handed to an Opener. Settings holds the kind-specific
// options, such as the socket.io url.
type Options struct {
	Out      io.Writer
	Settings map[string]string
}

// Session is an open sink backend for one run.
type Session interface {
	// SinkFor returns the sink for a transmitted uniform.
	SinkFor(t Target) uniform.Sink
	Close() error
}

// Opener opens a session of one sink kind.
type Opener func(ctx context.Context, opts Options) (Session, error)

// Registry holds the registered sink kinds for a single application instance.
type Registry struct {
	sinks map[string]Opener
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{sinks: make(map[string]Opener)}
}

// RegisterSink registers the opener for a sink kind.
func (r *Registry) RegisterSink(kind string, open Opener) {
	if kind == "" || kind == NoSink {
		panic(fmt.Sprintf("sink kind '%s' is reserved", kind))
	}
	if _, exists := r.sinks[kind]; exists {
		panic(fmt.Sprintf("sink with kind '%s' already registered", kind))
	}
	slog.Debug("Registering sink.", "kind", kind)
	r.sinks[kind] = open
}

// Kinds returns every accepted sink kind, sorted, including NoSink.
func (r *Registry) Kinds() []string {
	kinds := []string{NoSink}
	for k := range r.sinks {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Open opens a session of the given kind.
func (r *Registry) Open(ctx context.Context, kind string, opts Options) (Session, error) {
	if err := r.ValidateKind(kind); err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	if kind == NoSink {
		logger.Debug("Sinks disabled.")
		return noSession{}, nil
	}

	logger.Debug("Opening sink session.", "kind", kind)
	s, err := r.sinks[kind](ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s sink: %w", kind, err)
	}
	return s, nil
}

type noSession struct{}

func (noSession) SinkFor(Target) uniform.Sink { return nil }
func (noSession) Close() error                { return nil }

// Payload is the wire form of one transmission for sinks that serialize
// values, such as the socketio and http sinks.
type Payload struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Location int32     `json:"location"`
	Data     []float32 `json:"data"`
}

// NewPayload builds the payload of a transmission to t.
func NewPayload(t Target, name string, v uniform.Value) Payload {
	return Payload{Name: name, Type: v.Type.String(), Location: t.Location, Data: v.Floats()}
}
