package uniform

import "slices"

type journalEntry struct {
	id  ID
	old Value
}

// Set overwrites the node's value and propagates the change to every node
// reachable through observer edges.
//
// Set checks the reachable subgraph for cycles before writing anything. If a
// computation fails mid-way, every value written by this call is restored
// and the error is returned as a *ComputeError.
func (g *Graph) Set(id ID, v Value) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if g.busy {
		return graphErrorf(ErrBusy, "set %q while a traversal is in flight", n.name)
	}
	if v.Type != n.value.Type {
		return graphErrorf(ErrTypeMismatch, "cannot set %s uniform %q to a %s", n.value.Type, n.name, v.Type)
	}
	if err := g.checkAcyclic(id, false); err != nil {
		return err
	}

	g.logger.Debug("Setting uniform.", "uniform", n.name, "value", v, "mode", g.mode)
	g.begin()
	defer g.end()

	if err := g.propagate(id, v); err != nil {
		g.rollback()
		return err
	}
	return nil
}

// Notify re-evaluates the node's computation and sets the result, which
// propagates like Set. A node without a computation is left untouched and
// its current value is returned.
func (g *Graph) Notify(id ID) (Value, error) {
	n, err := g.node(id)
	if err != nil {
		return Value{}, err
	}
	if g.busy {
		return Value{}, graphErrorf(ErrBusy, "notify %q while a traversal is in flight", n.name)
	}
	if n.compute == nil {
		return n.value, nil
	}
	if err := g.checkAcyclic(id, false); err != nil {
		return Value{}, err
	}

	g.begin()
	defer g.end()

	v, err := g.evaluate(id)
	if err == nil {
		err = g.propagate(id, v)
	}
	if err != nil {
		g.rollback()
		return Value{}, err
	}
	return n.value, nil
}

func (g *Graph) propagate(id ID, v Value) error {
	if g.mode == ModeTopological {
		return g.setTopological(id, v)
	}
	return g.set(id, v)
}

func (g *Graph) begin() {
	g.busy = true
	g.journal = g.journal[:0]
	g.stack = g.stack[:0]
	if cap(g.onStack) < len(g.nodes) {
		g.onStack = make([]bool, len(g.nodes))
	}
	g.onStack = g.onStack[:len(g.nodes)]
	clear(g.onStack)
}

func (g *Graph) end() {
	g.busy = false
}

func (g *Graph) write(id ID, v Value) {
	n := g.nodes[id]
	g.journal = append(g.journal, journalEntry{id: id, old: n.value})
	n.value = v
	g.mutations++
}

// rollback restores every value written since begin, newest first, and takes
// those writes back out of the mutation count.
func (g *Graph) rollback() {
	for i := len(g.journal) - 1; i >= 0; i-- {
		e := g.journal[i]
		g.nodes[e.id].value = e.old
	}
	g.logger.Debug("Rolled back propagation.", "writes", len(g.journal))
	g.mutations -= uint64(len(g.journal))
	g.journal = g.journal[:0]
}

// set is the depth-first push: write, then notify each observer in order.
func (g *Graph) set(id ID, v Value) error {
	if g.onStack[id] {
		return cycleError(g.stackPath(id))
	}
	g.onStack[id] = true
	g.stack = append(g.stack, id)
	defer func() {
		g.onStack[id] = false
		g.stack = g.stack[:len(g.stack)-1]
	}()

	g.write(id, v)
	for _, o := range g.nodes[id].observers {
		if err := g.notify(o); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) notify(id ID) error {
	if g.nodes[id].compute == nil {
		return nil
	}
	v, err := g.evaluate(id)
	if err != nil {
		return err
	}
	g.logger.Debug("Recomputed uniform.", "uniform", g.nodes[id].name, "value", v)
	return g.set(id, v)
}

// evaluate runs the node's computation against the current input values.
func (g *Graph) evaluate(id ID) (Value, error) {
	n := g.nodes[id]
	inputs := make([]Value, len(n.compute.Inputs))
	for i, in := range n.compute.Inputs {
		inputs[i] = g.nodes[in].value
	}
	v, err := n.compute.Fn(inputs)
	if err != nil {
		return Value{}, &ComputeError{Node: n.name, Err: err}
	}
	if v.Type != n.value.Type {
		return Value{}, &ComputeError{
			Node: n.name,
			Err:  graphErrorf(ErrTypeMismatch, "computation returned %s, uniform is %s", v.Type, n.value.Type),
		}
	}
	return v, nil
}

// setTopological writes the root, then recomputes each affected dependent
// once in topological order.
func (g *Graph) setTopological(root ID, v Value) error {
	g.write(root, v)
	for _, id := range g.affected(root) {
		nv, err := g.evaluate(id)
		if err != nil {
			return err
		}
		g.logger.Debug("Recomputed uniform.", "uniform", g.nodes[id].name, "value", nv)
		g.write(id, nv)
	}
	return nil
}

// affected returns the derived nodes a change to root reaches, ordered so
// that every node comes after all affected nodes it observes. Among
// independent nodes, observer list order wins. Nodes without a computation
// stop the walk, matching per-path notification.
func (g *Graph) affected(root ID) []ID {
	visited := make([]bool, len(g.nodes))
	var post []ID

	var visit func(id ID)
	visit = func(id ID) {
		visited[id] = true
		obs := g.nodes[id].observers
		for i := len(obs) - 1; i >= 0; i-- {
			o := obs[i]
			if visited[o] || g.nodes[o].compute == nil {
				continue
			}
			visit(o)
		}
		post = append(post, id)
	}
	visit(root)

	// post ends with root; the reverse of the rest is a topological order.
	order := post[:len(post)-1]
	slices.Reverse(order)
	return order
}

// checkAcyclic walks the observer subgraph reachable from root and reports
// the first cycle the traversal would loop on. With all set, every edge is
// followed (flush); otherwise edges into nodes without a computation are
// skipped because notifying them is a no-op.
func (g *Graph) checkAcyclic(root ID, all bool) error {
	const (
		unvisited = iota
		temporary
		permanent
	)
	marks := make([]uint8, len(g.nodes))
	var path []ID

	var visit func(id ID) error
	visit = func(id ID) error {
		marks[id] = temporary
		path = append(path, id)
		for _, o := range g.nodes[id].observers {
			if !all && g.nodes[o].compute == nil {
				continue
			}
			switch marks[o] {
			case permanent:
				continue
			case temporary:
				return cycleError(g.namePath(path, o))
			}
			if err := visit(o); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		marks[id] = permanent
		return nil
	}
	return visit(root)
}

// stackPath renders the in-flight traversal stack from the first occurrence
// of id back to id.
func (g *Graph) stackPath(id ID) []string {
	return g.namePath(g.stack, id)
}

func (g *Graph) namePath(path []ID, back ID) []string {
	start := slices.Index(path, back)
	if start < 0 {
		start = 0
	}
	names := make([]string, 0, len(path)-start+1)
	for _, id := range path[start:] {
		names = append(names, g.nodes[id].name)
	}
	return append(names, g.nodes[back].name)
}
