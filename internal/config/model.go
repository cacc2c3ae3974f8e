package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// NoLocation is the location of a uniform that did not declare one. GL
// silently ignores uniform calls at location -1.
const NoLocation int32 = -1

// Model is the unified, format-agnostic representation of a grid
// definition.
type Model struct {
	Uniforms []*Uniform
}

// Uniform is the format-agnostic representation of a `uniform` declaration.
type Uniform struct {
	Name string
	Type string

	// Value is the initial value as a constant expression, nil for the
	// type's zero value.
	Value hcl.Expression
	// Compute derives the uniform from others, nil for roots.
	Compute hcl.Expression

	Location int32
	Partial  bool

	// DeclRange points at the declaration for diagnostics.
	DeclRange hcl.Range
}

// Find returns the named uniform or nil.
func (m *Model) Find(name string) *Uniform {
	for _, u := range m.Uniforms {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// Merge appends the uniforms of other, rejecting names that are declared
// twice.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	for _, u := range other.Uniforms {
		if prev := m.Find(u.Name); prev != nil {
			return fmt.Errorf("uniform %q declared at %s is already declared at %s", u.Name, u.DeclRange, prev.DeclRange)
		}
		m.Uniforms = append(m.Uniforms, u)
	}
	return nil
}

// IsSet reports whether an optional expression was given. Absent optional
// attributes decode to a static null expression, which counts as unset, as
// does an explicit null.
func IsSet(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Variables()) > 0 {
		return true
	}
	v, diags := expr.Value(nil)
	return diags.HasErrors() || !v.IsNull()
}
