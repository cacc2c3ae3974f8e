package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/uniformgrid/internal/config"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/zclconf/go-cty/cty"
)

// uniformBlock is the body of a `uniform "<name>"` block.
type uniformBlock struct {
	Type     hcl.Expression `hcl:"type"`
	Value    hcl.Expression `hcl:"value,optional"`
	Compute  hcl.Expression `hcl:"compute,optional"`
	Location *int32         `hcl:"location,optional"`
	Partial  *bool          `hcl:"partial,optional"`
}

// translateUniform decodes a uniform block into the agnostic model.
func translateUniform(block *hcl.Block) (*config.Uniform, hcl.Diagnostics) {
	var b uniformBlock
	diags := gohcl.DecodeBody(block.Body, nil, &b)
	if diags.HasErrors() {
		return nil, diags
	}

	// gohcl leaves a missing expression attribute as a static null.
	if !config.IsSet(b.Type) {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing required argument",
			Detail:   fmt.Sprintf("The argument \"type\" is required in uniform %q.", block.Labels[0]),
			Subject:  block.Body.MissingItemRange().Ptr(),
		})
	}

	typeName, typeDiags := typeKeyword(b.Type)
	diags = append(diags, typeDiags...)
	if typeDiags.HasErrors() {
		return nil, diags
	}

	u := &config.Uniform{
		Name:      block.Labels[0],
		Type:      typeName,
		Location:  config.NoLocation,
		DeclRange: block.DefRange,
	}
	if config.IsSet(b.Value) {
		u.Value = b.Value
	}
	if config.IsSet(b.Compute) {
		u.Compute = b.Compute
	}
	if b.Partial != nil {
		u.Partial = *b.Partial
	}
	if b.Location != nil {
		if *b.Location < config.NoLocation {
			return nil, append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid uniform location",
				Detail:   fmt.Sprintf("Location must be %d or greater, got %d.", config.NoLocation, *b.Location),
				Subject:  block.DefRange.Ptr(),
			})
		}
		u.Location = *b.Location
	}
	return u, diags
}

// typeKeyword reads the `type` attribute, which may be a bare keyword such
// as `vec3` or a string such as "vec3".
func typeKeyword(expr hcl.Expression) (string, hcl.Diagnostics) {
	invalid := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		}}
	}

	name := hcl.ExprAsKeyword(expr)
	if name == "" {
		v, diags := expr.Value(nil)
		if diags.HasErrors() || v.IsNull() || !v.Type().Equals(cty.String) {
			return "", invalid("The 'type' attribute must be a type keyword like float, vec3 or mat4.")
		}
		name = v.AsString()
	}
	if _, err := uniform.ParseTypes(name); err != nil {
		return "", invalid(err.Error())
	}
	return name, nil
}
