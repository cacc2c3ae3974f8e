package uniform

import (
	"fmt"
	"strings"
)

// Types is the closed set of value shapes a uniform can hold. The names follow
// the GPU data type naming used by shader bindings.
type Types int32

const (
	UndefinedType Types = iota
	Float32
	Int32
	Float32Vector2
	Float32Vector3
	Float32Vector4
	Float32Matrix3 // column-major, math32.Matrix3 works directly
	Float32Matrix4 // column-major, math32.Matrix4 works directly
)

var typeNames = map[Types]string{
	UndefinedType:  "undefined",
	Float32:        "float",
	Int32:          "int",
	Float32Vector2: "vec2",
	Float32Vector3: "vec3",
	Float32Vector4: "vec4",
	Float32Matrix3: "mat3",
	Float32Matrix4: "mat4",
}

// typeComponents gives the number of scalar components of each type.
var typeComponents = map[Types]int{
	Float32:        1,
	Int32:          1,
	Float32Vector2: 2,
	Float32Vector3: 3,
	Float32Vector4: 4,
	Float32Matrix3: 9,
	Float32Matrix4: 16,
}

// String returns the definition-file name of the type, e.g. "vec3".
func (tp Types) String() string {
	if name, ok := typeNames[tp]; ok {
		return name
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// Components returns the number of scalar components, 0 for UndefinedType.
func (tp Types) Components() int {
	return typeComponents[tp]
}

// Bytes returns the size of the type in bytes. Every component is 4 bytes wide.
func (tp Types) Bytes() int {
	return 4 * tp.Components()
}

// IsMatrix reports whether the type is a square matrix.
func (tp Types) IsMatrix() bool {
	return tp == Float32Matrix3 || tp == Float32Matrix4
}

// ParseTypes converts a definition-file type name into a Types value.
// Matching is case-insensitive.
func ParseTypes(name string) (Types, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for tp, n := range typeNames {
		if tp != UndefinedType && n == name {
			return tp, nil
		}
	}
	return UndefinedType, fmt.Errorf("unsupported uniform type %q: supported types are float, int, vec2, vec3, vec4, mat3, mat4", name)
}
