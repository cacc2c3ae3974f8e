package registry

import (
	"fmt"
	"strings"
)

// ValidateKind checks that a sink kind is registered.
func (r *Registry) ValidateKind(kind string) error {
	if kind == NoSink {
		return nil
	}
	if _, ok := r.sinks[kind]; ok {
		return nil
	}
	return fmt.Errorf("unknown sink %q: must be one of '%s'", kind, strings.Join(r.Kinds(), "', '"))
}
