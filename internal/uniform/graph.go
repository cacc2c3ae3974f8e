package uniform

import (
	"fmt"
	"log/slog"
	"slices"
)

// ID addresses a node within the Graph that created it. IDs are stable for
// the lifetime of the graph.
type ID int

// ComputeFunc derives a node's value from the current values of its inputs,
// supplied in the order they were declared. It must be pure: it must not
// call back into the graph.
type ComputeFunc func(inputs []Value) (Value, error)

// Computation is a node's computation slot: which nodes it reads and how it
// combines them.
type Computation struct {
	Inputs []ID
	Fn     ComputeFunc
}

type node struct {
	name      string
	value     Value
	compute   *Computation
	observers []ID
	sink      Sink
}

// Graph is an arena of uniform nodes connected by observer edges.
//
// A Graph is not safe for concurrent use. All calls, including the ones made
// from sinks, must happen on a single goroutine; structural changes while a
// Set, Notify or Send is in flight fail with ErrBusy.
type Graph struct {
	nodes []*node
	names map[string]ID

	logger *slog.Logger
	mode   Mode

	mutations uint64

	// traversal state, valid only while busy is set
	busy    bool
	onStack []bool
	stack   []ID
	journal []journalEntry
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for propagation and flush tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMode sets the propagation mode. The default is ModePerPath.
func WithMode(mode Mode) Option {
	return func(g *Graph) { g.mode = mode }
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		names:  make(map[string]ID),
		logger: slog.New(slog.DiscardHandler),
		mode:   ModePerPath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add creates a root node holding initial. The node's type is fixed to
// initial.Type for its whole life.
func (g *Graph) Add(name string, initial Value) (ID, error) {
	if name == "" {
		return 0, fmt.Errorf("uniform name must not be empty")
	}
	if initial.Type == UndefinedType {
		return 0, graphErrorf(ErrTypeMismatch, "uniform %q has an undefined initial value", name)
	}
	if _, ok := g.names[name]; ok {
		return 0, graphErrorf(ErrDuplicateName, "%q", name)
	}
	if g.busy {
		return 0, graphErrorf(ErrBusy, "cannot add %q", name)
	}
	id := ID(len(g.nodes))
	g.nodes = append(g.nodes, &node{name: name, value: initial})
	g.names[name] = id
	return id, nil
}

// MustAdd is like Add but panics on error. It is meant for fixtures built
// from known-good literals.
func (g *Graph) MustAdd(name string, initial Value) ID {
	id, err := g.Add(name, initial)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the ID of the named node.
func (g *Graph) Lookup(name string) (ID, bool) {
	id, ok := g.names[name]
	return id, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// IDs returns every node ID in creation order.
func (g *Graph) IDs() []ID {
	ids := make([]ID, len(g.nodes))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Roots returns the nodes without a computation, in creation order.
func (g *Graph) Roots() []ID {
	var ids []ID
	for i, n := range g.nodes {
		if n.compute == nil {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Mode returns the propagation mode.
func (g *Graph) Mode() Mode { return g.mode }

// Mutations returns how many node values have been written since the graph
// was created. Writes undone by a failed Set are not counted.
func (g *Graph) Mutations() uint64 { return g.mutations }

func (g *Graph) node(id ID) (*node, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, graphErrorf(ErrUnknownNode, "id %d", id)
	}
	return g.nodes[id], nil
}

// Name returns the node's name. It panics if id does not belong to g.
func (g *Graph) Name(id ID) string { return g.nodes[id].name }

// Type returns the node's value type. It panics if id does not belong to g.
func (g *Graph) Type(id ID) Types { return g.nodes[id].value.Type }

// Get returns the node's current value. It has no side effects and panics
// if id does not belong to g.
func (g *Graph) Get(id ID) Value { return g.nodes[id].value }

// SetComputation replaces the node's computation slot. It does not
// recompute; the new function is used on the next notification.
func (g *Graph) SetComputation(id ID, inputs []ID, fn ComputeFunc) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("computation for %q must not be nil", n.name)
	}
	for _, in := range inputs {
		if _, err := g.node(in); err != nil {
			return fmt.Errorf("input of %q: %w", n.name, err)
		}
	}
	if g.busy {
		return graphErrorf(ErrBusy, "cannot change the computation of %q", n.name)
	}
	n.compute = &Computation{Inputs: slices.Clone(inputs), Fn: fn}
	return nil
}

// ClearComputation turns the node back into a root.
func (g *Graph) ClearComputation(id ID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if g.busy {
		return graphErrorf(ErrBusy, "cannot change the computation of %q", n.name)
	}
	n.compute = nil
	return nil
}

// HasComputation reports whether the node is derived.
func (g *Graph) HasComputation(id ID) bool { return g.nodes[id].compute != nil }

// Inputs returns a copy of the node's computation inputs, nil for roots.
func (g *Graph) Inputs(id ID) []ID {
	if c := g.nodes[id].compute; c != nil {
		return slices.Clone(c.Inputs)
	}
	return nil
}

// SetObservers replaces the node's observer list wholesale. The order of
// observers is the order in which they are notified and flushed.
func (g *Graph) SetObservers(id ID, observers []ID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	for _, o := range observers {
		if _, err := g.node(o); err != nil {
			return fmt.Errorf("observer of %q: %w", n.name, err)
		}
	}
	if g.busy {
		return graphErrorf(ErrBusy, "cannot change the observers of %q", n.name)
	}
	n.observers = slices.Clone(observers)
	return nil
}

// Observers returns a copy of the node's observer list.
func (g *Graph) Observers(id ID) []ID {
	return slices.Clone(g.nodes[id].observers)
}

// Derive sets the node's computation and appends the node to the observer
// list of every input that does not already carry it.
func (g *Graph) Derive(id ID, inputs []ID, fn ComputeFunc) error {
	if err := g.SetComputation(id, inputs, fn); err != nil {
		return err
	}
	for _, in := range inputs {
		obs := g.nodes[in].observers
		if slices.Contains(obs, id) {
			continue
		}
		if err := g.SetObservers(in, append(slices.Clone(obs), id)); err != nil {
			return err
		}
	}
	return nil
}

// SetSink attaches or replaces the node's sink. A nil sink makes the node
// partial.
func (g *Graph) SetSink(id ID, sink Sink) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if g.busy {
		return graphErrorf(ErrBusy, "cannot change the sink of %q", n.name)
	}
	n.sink = sink
	return nil
}

// ClearSink removes the node's sink, making it partial.
func (g *Graph) ClearSink(id ID) error {
	return g.SetSink(id, nil)
}

// HasSink reports whether the node transmits to the rendering surface.
func (g *Graph) HasSink(id ID) bool { return g.nodes[id].sink != nil }
