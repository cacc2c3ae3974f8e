package ugexpr

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// RootName is the only variable root an expression may reference.
const RootName = "uniform"

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., uniform.view
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// References returns the names of every uniform the expressions read, sorted
// and unique. A traversal rooted anywhere other than `uniform`, or one that
// does not name a uniform as its first attribute, is reported as an error
// diagnostic pointing at the traversal.
func References(exprs ...hcl.Expression) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	names := make(map[string]struct{})

	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		for _, traversal := range expr.Variables() {
			name, err := uniformName(traversal)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid reference",
					Detail:   err.Error(),
					Subject:  traversal.SourceRange().Ptr(),
				})
				continue
			}
			names[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out) // Sort for deterministic input order
	return out, diags
}

func uniformName(t hcl.Traversal) (string, error) {
	if t.RootName() != RootName {
		return "", fmt.Errorf("%q is not a uniform reference; use uniform.<name>", TraversalKey(t))
	}
	if len(t) < 2 {
		return "", fmt.Errorf("%q must name a uniform, as in uniform.<name>", TraversalKey(t))
	}
	attr, ok := t[1].(hcl.TraverseAttr)
	if !ok {
		return "", fmt.Errorf("%q must name a uniform, as in uniform.<name>", TraversalKey(t))
	}
	return attr.Name, nil
}

// CalledFunctions returns all unique function names called in the
// expressions, sorted.
func CalledFunctions(exprs ...hcl.Expression) []string {
	functions := make(map[string]struct{})
	for _, expr := range exprs {
		if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
			walkForFunctions(syntaxExpr, functions)
		}
	}

	out := make([]string, 0, len(functions))
	for f := range functions {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// walkForFunctions recursively walks the AST, looking only for function calls.
func walkForFunctions(expr hclsyntax.Expression, functions map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		functions[e.Name] = struct{}{}
		for _, arg := range e.Args {
			walkForFunctions(arg, functions)
		}
	case *hclsyntax.BinaryOpExpr:
		walkForFunctions(e.LHS, functions)
		walkForFunctions(e.RHS, functions)
	case *hclsyntax.ConditionalExpr:
		walkForFunctions(e.Condition, functions)
		walkForFunctions(e.TrueResult, functions)
		walkForFunctions(e.FalseResult, functions)
	case *hclsyntax.UnaryOpExpr:
		walkForFunctions(e.Val, functions)
	case *hclsyntax.TupleConsExpr:
		for _, item := range e.Exprs {
			walkForFunctions(item, functions)
		}
	case *hclsyntax.IndexExpr:
		walkForFunctions(e.Collection, functions)
		walkForFunctions(e.Key, functions)
	case *hclsyntax.ParenthesesExpr:
		walkForFunctions(e.Expression, functions)
	}
}
