package builder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/uniformgrid/internal/config"
	"github.com/specialistvlad/uniformgrid/internal/ugexpr"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// Grid is a built uniform graph together with its declarations.
type Grid struct {
	graph *uniform.Graph
	order []uniform.ID
	decls map[uniform.ID]*config.Uniform
}

// Graph returns the underlying graph.
func (g *Grid) Graph() *uniform.Graph { return g.graph }

// Order returns the node IDs in declaration order.
func (g *Grid) Order() []uniform.ID { return append([]uniform.ID(nil), g.order...) }

// Roots returns the root node IDs in declaration order.
func (g *Grid) Roots() []uniform.ID { return g.graph.Roots() }

// Declaration returns the declaration the node was built from.
func (g *Grid) Declaration(id uniform.ID) *config.Uniform { return g.decls[id] }

// Apply parses an assignment of the form `name=value`, where value is a
// constant expression of the uniform's type, and sets the named uniform.
func (g *Grid) Apply(assignment string) error {
	name, src, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("invalid assignment %q: expected name=value", assignment)
	}
	id, ok := g.graph.Lookup(name)
	if !ok {
		return fmt.Errorf("cannot set %q: %w", name, uniform.ErrUnknownNode)
	}
	v, err := ugexpr.ParseConst(src, "-set "+name, g.graph.Type(id))
	if err != nil {
		return fmt.Errorf("cannot set %q: %w", name, err)
	}
	if err := g.graph.Set(id, v); err != nil {
		return fmt.Errorf("cannot set %q: %w", name, err)
	}
	return nil
}

// Settle recomputes every derived uniform by setting each root to its
// current value, in declaration order.
func (g *Grid) Settle() error {
	for _, id := range g.graph.Roots() {
		if err := g.graph.Set(id, g.graph.Get(id)); err != nil {
			return fmt.Errorf("failed to settle from %q: %w", g.graph.Name(id), err)
		}
	}
	return nil
}

// FlushRoots sends every root in declaration order, transmitting the whole
// graph to the sinks.
func (g *Grid) FlushRoots() error {
	for _, id := range g.graph.Roots() {
		if err := g.graph.Send(id); err != nil {
			return fmt.Errorf("failed to flush %q: %w", g.graph.Name(id), err)
		}
	}
	return nil
}

// Detach removes every sink so nothing reaches a session after it closes.
// The values stay readable and every node becomes partial.
func (g *Grid) Detach() error {
	for _, id := range g.order {
		if err := g.graph.ClearSink(id); err != nil {
			return fmt.Errorf("failed to detach %q: %w", g.graph.Name(id), err)
		}
	}
	return nil
}

// Row is one line of the value table.
type Row struct {
	Name     string
	Type     uniform.Types
	Value    uniform.Value
	Location int32
	Derived  bool
	Partial  bool
}

// Table returns the current value of every uniform in declaration order.
func (g *Grid) Table() []Row {
	rows := make([]Row, 0, len(g.order))
	for _, id := range g.order {
		d := g.decls[id]
		rows = append(rows, Row{
			Name:     d.Name,
			Type:     g.graph.Type(id),
			Value:    g.graph.Get(id),
			Location: d.Location,
			Derived:  g.graph.HasComputation(id),
			Partial:  !g.graph.HasSink(id),
		})
	}
	return rows
}
