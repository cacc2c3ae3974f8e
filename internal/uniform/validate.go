package uniform

import (
	"errors"
	"slices"
)

// Validate checks the graph once setup is complete and returns every problem
// found, joined. It reports:
//   - cycles over observer edges, which would never terminate a Send,
//   - observers without a computation, which a notification cannot update,
//   - computation inputs that do not list the node among their observers,
//     so the node would go stale when the input changes,
//   - observers listed more than once.
func (g *Graph) Validate() error {
	var errs []error

	for i, n := range g.nodes {
		id := ID(i)
		for j, o := range n.observers {
			if slices.Index(n.observers, o) != j {
				errs = append(errs, graphErrorf(ErrDuplicateObserver, "%q observes %q more than once", g.nodes[o].name, n.name))
				continue
			}
			if g.nodes[o].compute == nil {
				errs = append(errs, graphErrorf(ErrNoComputation, "%q observes %q", g.nodes[o].name, n.name))
			}
		}
		if n.compute == nil {
			continue
		}
		for _, in := range n.compute.Inputs {
			if in == id {
				errs = append(errs, cycleError([]string{n.name, n.name}))
				continue
			}
			if !slices.Contains(g.nodes[in].observers, id) {
				errs = append(errs, graphErrorf(ErrMissingEdge, "%q reads %q but is not among its observers", n.name, g.nodes[in].name))
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DetectCycles checks the whole observer graph for cycles and returns the
// first one found.
func (g *Graph) DetectCycles() error {
	// permanent: fully visited, not part of a cycle.
	// temporary: on the current recursion stack.
	permanent := make([]bool, len(g.nodes))
	temporary := make([]bool, len(g.nodes))
	var path []ID

	var visit func(id ID) error
	visit = func(id ID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return cycleError(g.namePath(path, id))
		}
		temporary[id] = true
		path = append(path, id)
		for _, o := range g.nodes[id].observers {
			if err := visit(o); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		temporary[id] = false
		permanent[id] = true
		return nil
	}

	for i := range g.nodes {
		if err := visit(ID(i)); err != nil {
			return err
		}
	}
	return nil
}
