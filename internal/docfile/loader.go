// Package docfile implements config.Loader for YAML and TOML definition
// files. Both formats share one document shape:
//
//	uniforms:
//	  - name: u3
//	    type: float
//	    value: 1
//	    location: 3
//	  - name: u2
//	    type: float
//	    compute: uniform.u3 * 3
//
// `compute` is written in HCL expression syntax. `value` is a number, a
// list of numbers or an HCL constant expression string.
package docfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/uniformgrid/internal/config"
	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/fsutil"
	"github.com/specialistvlad/uniformgrid/internal/ugexpr"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/zclconf/go-cty/cty"
)

// entry is one element of the `uniforms` list.
type entry struct {
	Name     string `yaml:"name" toml:"name"`
	Type     string `yaml:"type" toml:"type"`
	Value    any    `yaml:"value" toml:"value"`
	Compute  string `yaml:"compute" toml:"compute"`
	Location *int32 `yaml:"location" toml:"location"`
	Partial  bool   `yaml:"partial" toml:"partial"`

	pos hcl.Pos
}

// decodeFunc decodes a whole file into its entries.
type decodeFunc func(filename string, data []byte) ([]entry, error)

// Loader reads definition files of one document format.
type Loader struct {
	format string
	exts   []string
	decode decodeFunc
}

// NewYAMLLoader returns a loader for .yaml and .yml files.
func NewYAMLLoader() *Loader {
	return &Loader{format: "YAML", exts: []string{".yaml", ".yml"}, decode: decodeYAML}
}

// NewTOMLLoader returns a loader for .toml files.
func NewTOMLLoader() *Loader {
	return &Loader{format: "TOML", exts: []string{".toml"}, decode: decodeTOML}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return l.exts }

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Document loader started.", "format", l.format, "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, l.exts...)
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		entries, err := l.decode(file, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s file %s: %w", l.format, file, err)
		}
		for i, e := range entries {
			u, err := translate(file, e)
			if err != nil {
				return nil, fmt.Errorf("%s: uniform #%d: %w", file, i+1, err)
			}
			if err := model.Merge(&config.Model{Uniforms: []*config.Uniform{u}}); err != nil {
				return nil, err
			}
		}
		logger.Debug("Loaded document file.", "file", file, "uniforms", len(entries))
	}

	logger.Debug("Document loading complete.", "format", l.format, "uniforms", len(model.Uniforms))
	return model, nil
}

func translate(file string, e entry) (*config.Uniform, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if e.Type == "" {
		return nil, fmt.Errorf("uniform %q: type is required", e.Name)
	}
	if _, err := uniform.ParseTypes(e.Type); err != nil {
		return nil, fmt.Errorf("uniform %q: %w", e.Name, err)
	}

	rng := hcl.Range{Filename: file, Start: e.pos, End: e.pos}
	u := &config.Uniform{
		Name:      e.Name,
		Type:      e.Type,
		Location:  config.NoLocation,
		Partial:   e.Partial,
		DeclRange: rng,
	}
	if e.Location != nil {
		if *e.Location < config.NoLocation {
			return nil, fmt.Errorf("uniform %q: location must be %d or greater, got %d", e.Name, config.NoLocation, *e.Location)
		}
		u.Location = *e.Location
	}

	if e.Value != nil {
		expr, err := valueExpr(file, e.pos, e.Value)
		if err != nil {
			return nil, fmt.Errorf("uniform %q: value: %w", e.Name, err)
		}
		u.Value = expr
	}
	if e.Compute != "" {
		expr, diags := ugexpr.ParseExpression(e.Compute, file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("uniform %q: compute: %w", e.Name, diags)
		}
		u.Compute = expr
	}
	return u, nil
}

// valueExpr turns a decoded value into a constant expression. Strings are
// parsed as HCL, so `vec3(1, 2, 3)` works as well as `[1, 2, 3]`.
func valueExpr(file string, pos hcl.Pos, v any) (hcl.Expression, error) {
	if s, ok := v.(string); ok {
		expr, diags := ugexpr.ParseExpression(s, file)
		if diags.HasErrors() {
			return nil, diags
		}
		return expr, nil
	}
	val, err := toCty(v)
	if err != nil {
		return nil, err
	}
	return hcl.StaticExpr(val, hcl.Range{Filename: file, Start: pos, End: pos}), nil
}

func toCty(v any) (cty.Value, error) {
	switch n := v.(type) {
	case int:
		return cty.NumberIntVal(int64(n)), nil
	case int64:
		return cty.NumberIntVal(n), nil
	case uint64:
		return cty.NumberUIntVal(n), nil
	case float64:
		return cty.NumberFloatVal(n), nil
	case []any:
		if len(n) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, len(n))
		for i, el := range n {
			c, err := toCty(el)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			vals[i] = c
		}
		return cty.TupleVal(vals), nil
	}
	return cty.NilVal, fmt.Errorf("must be a number or a list of numbers, got %T", v)
}
