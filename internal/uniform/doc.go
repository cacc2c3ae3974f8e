// Package uniform maintains a dependency graph of named shader uniform
// values and pushes changes through it.
//
// # Model
//
// A Graph is an arena of nodes addressed by ID. Each node holds:
//   - a Value, tagged with one of the Types (float, int, vec2..4, mat3, mat4),
//   - an optional Computation: the IDs it reads and a pure ComputeFunc that
//     receives their values; nodes without one are roots,
//   - an ordered observer list: the nodes to notify when it changes,
//   - an optional Sink; nodes without one are partial and never transmitted.
//
// # Propagation
//
// Set writes a node and notifies its observers depth-first in list order;
// each notified node re-evaluates its computation and is Set in turn. With
// ModePerPath (the default) a node reachable along two paths recomputes once
// per path. ModeTopological recomputes each affected node once.
//
// Send transmits a node through its sink and then sends each observer. It
// never changes a value.
//
// Both traversals refuse to start on a cycle and return an error wrapping
// ErrCycle instead of recursing forever. A failing computation rolls back
// every value written by the Set that triggered it.
//
// # Setup
//
//	g := uniform.New()
//	u3 := g.MustAdd("u3", uniform.Float(1))
//	u2 := g.MustAdd("u2", uniform.Float(1))
//	g.Derive(u2, []uniform.ID{u3}, func(in []uniform.Value) (uniform.Value, error) {
//		return uniform.Float(in[0].Float() * 3), nil
//	})
//	g.SetSink(u2, &uniform.SurfaceSink{Location: 2, Surface: surface})
//	g.SetAndSend(u3, uniform.Float(7))
package uniform
