package ugexpr

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/zclconf/go-cty/cty"
)

// Lookup resolves a uniform name to its node.
type Lookup func(name string) (uniform.ID, bool)

// Compiled is an expression bound to the nodes it reads.
type Compiled struct {
	// Names are the referenced uniforms, sorted; Inputs holds their IDs in
	// the same order.
	Names  []string
	Inputs []uniform.ID
	Fn     uniform.ComputeFunc
}

// ParseExpression parses src as a single HCL expression.
func ParseExpression(src, filename string) (hcl.Expression, hcl.Diagnostics) {
	return hclsyntax.ParseExpression([]byte(src), filename, hcl.InitialPos)
}

// Compile binds expr to the graph nodes it references and returns a
// computation producing values of type tp.
func Compile(expr hcl.Expression, tp uniform.Types, lookup Lookup) (*Compiled, hcl.Diagnostics) {
	names, diags := References(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	inputs := make([]uniform.ID, len(names))
	for i, name := range names {
		id, ok := lookup(name)
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown uniform",
				Detail:   fmt.Sprintf("No uniform named %q is declared.", name),
				Subject:  referenceRange(expr, name).Ptr(),
			})
			continue
		}
		inputs[i] = id
	}
	if diags.HasErrors() {
		return nil, diags
	}

	funcs := Functions()
	fn := func(in []uniform.Value) (uniform.Value, error) {
		vars := make(map[string]cty.Value, len(names))
		for i, name := range names {
			vars[name] = ToCty(in[i])
		}
		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{RootName: cty.ObjectVal(vars)},
			Functions: funcs,
		}
		val, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return uniform.Value{}, diags
		}
		return FromCty(tp, val)
	}
	return &Compiled{Names: names, Inputs: inputs, Fn: fn}, diags
}

// Const evaluates an expression that must not reference any uniform, such
// as an initial value or a value given on the command line.
func Const(expr hcl.Expression, tp uniform.Types) (uniform.Value, hcl.Diagnostics) {
	if vars := expr.Variables(); len(vars) > 0 {
		return uniform.Value{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Variables not allowed",
			Detail:   fmt.Sprintf("A constant value cannot reference %q; use compute instead.", TraversalKey(vars[0])),
			Subject:  vars[0].SourceRange().Ptr(),
		}}
	}
	val, diags := expr.Value(&hcl.EvalContext{Functions: Functions()})
	if diags.HasErrors() {
		return uniform.Value{}, diags
	}
	v, err := FromCty(tp, val)
	if err != nil {
		return uniform.Value{}, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid value",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
	}
	return v, diags
}

// ParseConst parses and evaluates src as a constant of type tp.
func ParseConst(src, filename string, tp uniform.Types) (uniform.Value, error) {
	expr, diags := ParseExpression(src, filename)
	if diags.HasErrors() {
		return uniform.Value{}, diags
	}
	v, diags := Const(expr, tp)
	if diags.HasErrors() {
		return uniform.Value{}, diags
	}
	return v, nil
}

// Names returns the sorted names of the available functions.
func Names() []string {
	var names []string
	for n := range Functions() {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CheckFunctions reports calls to functions that are not in the table.
func CheckFunctions(expr hcl.Expression) hcl.Diagnostics {
	var diags hcl.Diagnostics
	known := Functions()
	for _, name := range CalledFunctions(expr) {
		if _, ok := known[name]; ok {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q.", name),
			Subject:  expr.Range().Ptr(),
		})
	}
	return diags
}

func referenceRange(expr hcl.Expression, name string) hcl.Range {
	for _, t := range expr.Variables() {
		if n, err := uniformName(t); err == nil && n == name {
			return t.SourceRange()
		}
	}
	return expr.Range()
}
