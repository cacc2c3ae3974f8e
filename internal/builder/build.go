package builder

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/uniformgrid/internal/config"
	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/ugexpr"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// Build constructs a complete, validated uniform graph from a config model.
// A nil session leaves every node without a sink.
func Build(ctx context.Context, model *config.Model, session registry.Session, opts ...uniform.Option) (*Grid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "uniforms", len(model.Uniforms))

	grid := &Grid{
		graph: uniform.New(append([]uniform.Option{uniform.WithLogger(logger)}, opts...)...),
		decls: make(map[uniform.ID]*config.Uniform, len(model.Uniforms)),
	}

	// First pass: create all nodes.
	if err := createNodes(grid, model); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", grid.graph.Len())

	// Second pass: bind computations and observer edges.
	if err := linkNodes(grid); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Third pass: attach sinks.
	attached := attachSinks(grid, session)
	logger.Debug("Build: Sinks attached.", "count", attached)

	// Final validation.
	if err := grid.graph.Validate(); err != nil {
		return nil, fmt.Errorf("error validating uniform graph: %w", err)
	}
	logger.Debug("Build: Validation passed.")

	logger.Info("Build: Graph construction successful.", "uniforms", grid.graph.Len(), "roots", len(grid.graph.Roots()))
	return grid, nil
}

func createNodes(grid *Grid, model *config.Model) error {
	var diags hcl.Diagnostics
	for _, u := range model.Uniforms {
		tp, err := uniform.ParseTypes(u.Type)
		if err != nil {
			diags = append(diags, declError(u, "Invalid uniform type", err.Error()))
			continue
		}

		initial := uniform.Zero(tp)
		if u.Value != nil {
			v, valueDiags := ugexpr.Const(u.Value, tp)
			if valueDiags.HasErrors() {
				diags = append(diags, valueDiags...)
				continue
			}
			initial = v
		}

		id, err := grid.graph.Add(u.Name, initial)
		if err != nil {
			diags = append(diags, declError(u, "Invalid uniform", err.Error()))
			continue
		}
		grid.order = append(grid.order, id)
		grid.decls[id] = u
	}
	if diags.HasErrors() {
		return diags
	}
	return nil
}

func linkNodes(grid *Grid) error {
	var diags hcl.Diagnostics
	for _, id := range grid.order {
		u := grid.decls[id]
		if u.Compute == nil {
			continue
		}
		if fnDiags := ugexpr.CheckFunctions(u.Compute); fnDiags.HasErrors() {
			diags = append(diags, fnDiags...)
			continue
		}
		compiled, compileDiags := ugexpr.Compile(u.Compute, grid.graph.Type(id), grid.graph.Lookup)
		if compileDiags.HasErrors() {
			diags = append(diags, compileDiags...)
			continue
		}
		if err := grid.graph.Derive(id, compiled.Inputs, compiled.Fn); err != nil {
			return fmt.Errorf("failed to link uniform %q: %w", u.Name, err)
		}
	}
	if diags.HasErrors() {
		return diags
	}
	return nil
}

func attachSinks(grid *Grid, session registry.Session) int {
	if session == nil {
		return 0
	}
	n := 0
	for _, id := range grid.order {
		u := grid.decls[id]
		if u.Partial {
			continue
		}
		sink := session.SinkFor(registry.Target{Name: u.Name, Type: grid.graph.Type(id), Location: u.Location})
		if sink == nil {
			continue
		}
		// The graph is idle during build, so SetSink cannot fail.
		_ = grid.graph.SetSink(id, sink)
		n++
	}
	return n
}

func declError(u *config.Uniform, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf("uniform %q: %s", u.Name, detail),
		Subject:  u.DeclRange.Ptr(),
	}
}
