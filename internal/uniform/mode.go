package uniform

import (
	"fmt"
	"strings"
)

// Mode selects how a Set reaches the dependents of the changed node.
type Mode int

const (
	// ModePerPath notifies observers depth-first in list order. A node that
	// is reachable along several paths recomputes once per path.
	ModePerPath Mode = iota

	// ModeTopological recomputes every reachable dependent exactly once, in
	// an order where all of a node's changed inputs are final before it runs.
	ModeTopological
)

func (m Mode) String() string {
	switch m {
	case ModePerPath:
		return "per-path"
	case ModeTopological:
		return "topological"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts "per-path" or "topological" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per-path", "perpath":
		return ModePerPath, nil
	case "topological", "topo":
		return ModeTopological, nil
	}
	return ModePerPath, fmt.Errorf("invalid propagation mode %q: must be 'per-path' or 'topological'", s)
}
