package uniform

// Send transmits the node's value through its sink, if it has one, and then
// sends every observer, recursively and in list order. Partial nodes are not
// transmitted but their observers are. Send never changes a value.
func (g *Graph) Send(id ID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if g.busy {
		return graphErrorf(ErrBusy, "send %q while a traversal is in flight", n.name)
	}
	if err := g.checkAcyclic(id, true); err != nil {
		return err
	}

	g.busy = true
	defer g.end()

	g.send(id)
	return nil
}

func (g *Graph) send(id ID) {
	n := g.nodes[id]
	if n.sink != nil {
		g.logger.Debug("Transmitting uniform.", "uniform", n.name, "type", n.value.Type, "value", n.value)
		n.sink.Transmit(n.name, n.value)
	}
	for _, o := range n.observers {
		g.send(o)
	}
}

// SetAndSend sets the node's value and then flushes it and its dependents.
func (g *Graph) SetAndSend(id ID, v Value) error {
	if err := g.Set(id, v); err != nil {
		return err
	}
	return g.Send(id)
}
