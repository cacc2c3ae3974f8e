package uniform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownNode       = errors.New("unknown uniform")
	ErrDuplicateName     = errors.New("duplicate uniform name")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrCycle             = errors.New("cyclic dependency")
	ErrBusy              = errors.New("graph is propagating")
	ErrNoComputation     = errors.New("observer has no computation")
	ErrMissingEdge       = errors.New("input does not notify its dependent")
	ErrDuplicateObserver = errors.New("duplicate observer")
)

// GraphError wraps a graph failure kind with a human readable message.
// Use errors.Is against the Err* kinds to classify it.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func graphErrorf(kind error, format string, args ...any) error {
	return &GraphError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	return &GraphError{Kind: ErrCycle, Msg: strings.Join(path, " -> ")}
}

// ComputeError reports a computation that failed while propagating.
type ComputeError struct {
	Node string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("computing uniform %q: %v", e.Node, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }
