package uniform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
)

// Value is an immutable uniform value tagged with its Types. The zero Value
// has UndefinedType. Values are comparable with ==.
type Value struct {
	Type Types

	// f holds float components; matrices are stored column-major.
	f [16]float32
	i int32
}

// Float returns a Float32 value.
func Float(f float32) Value {
	v := Value{Type: Float32}
	v.f[0] = f
	return v
}

// Int returns an Int32 value.
func Int(i int32) Value {
	return Value{Type: Int32, i: i}
}

// Vec2 returns a Float32Vector2 value.
func Vec2(vec math32.Vector2) Value {
	v := Value{Type: Float32Vector2}
	v.f[0], v.f[1] = vec.X, vec.Y
	return v
}

// Vec3 returns a Float32Vector3 value.
func Vec3(vec math32.Vector3) Value {
	v := Value{Type: Float32Vector3}
	v.f[0], v.f[1], v.f[2] = vec.X, vec.Y, vec.Z
	return v
}

// Vec4 returns a Float32Vector4 value.
func Vec4(vec math32.Vector4) Value {
	v := Value{Type: Float32Vector4}
	v.f[0], v.f[1], v.f[2], v.f[3] = vec.X, vec.Y, vec.Z, vec.W
	return v
}

// Mat3 returns a Float32Matrix3 value.
func Mat3(m math32.Matrix3) Value {
	v := Value{Type: Float32Matrix3}
	copy(v.f[:9], m[:])
	return v
}

// Mat4 returns a Float32Matrix4 value.
func Mat4(m math32.Matrix4) Value {
	v := Value{Type: Float32Matrix4}
	copy(v.f[:], m[:])
	return v
}

// Zero returns the zero value of the given type: 0 for scalars and vectors,
// the identity for matrices.
func Zero(tp Types) Value {
	switch tp {
	case Float32Matrix3:
		return Mat3(math32.Identity3())
	case Float32Matrix4:
		return Mat4(*math32.Identity4())
	}
	return Value{Type: tp}
}

// FromFloats builds a value of the given type from its flat components.
// Int32 requires a whole number.
func FromFloats(tp Types, components []float32) (Value, error) {
	n := tp.Components()
	if n == 0 {
		return Value{}, fmt.Errorf("cannot build a value of type %s", tp)
	}
	if len(components) != n {
		return Value{}, fmt.Errorf("type %s needs %d components, got %d", tp, n, len(components))
	}
	if tp == Int32 {
		f := components[0]
		if f < math.MinInt32 || f >= math.MaxInt32 {
			return Value{}, fmt.Errorf("type int needs a value between %d and %d, got %g", math.MinInt32, math.MaxInt32, f)
		}
		i := int32(f)
		if float32(i) != f {
			return Value{}, fmt.Errorf("type int needs a whole number, got %g", components[0])
		}
		return Int(i), nil
	}
	v := Value{Type: tp}
	copy(v.f[:n], components)
	return v, nil
}

func (v Value) must(tp Types) {
	if v.Type != tp {
		panic(fmt.Sprintf("uniform: value of type %s read as %s", v.Type, tp))
	}
}

// Float returns the scalar of a Float32 value. It panics for any other type.
func (v Value) Float() float32 {
	v.must(Float32)
	return v.f[0]
}

// Int returns the scalar of an Int32 value. It panics for any other type.
func (v Value) Int() int32 {
	v.must(Int32)
	return v.i
}

// Vector2 returns the vector of a Float32Vector2 value.
func (v Value) Vector2() math32.Vector2 {
	v.must(Float32Vector2)
	return math32.Vec2(v.f[0], v.f[1])
}

// Vector3 returns the vector of a Float32Vector3 value.
func (v Value) Vector3() math32.Vector3 {
	v.must(Float32Vector3)
	return math32.Vec3(v.f[0], v.f[1], v.f[2])
}

// Vector4 returns the vector of a Float32Vector4 value.
func (v Value) Vector4() math32.Vector4 {
	v.must(Float32Vector4)
	return math32.Vec4(v.f[0], v.f[1], v.f[2], v.f[3])
}

// Matrix3 returns the matrix of a Float32Matrix3 value.
func (v Value) Matrix3() math32.Matrix3 {
	v.must(Float32Matrix3)
	var m math32.Matrix3
	copy(m[:], v.f[:9])
	return m
}

// Matrix4 returns the matrix of a Float32Matrix4 value.
func (v Value) Matrix4() math32.Matrix4 {
	v.must(Float32Matrix4)
	var m math32.Matrix4
	copy(m[:], v.f[:])
	return m
}

// Floats returns a fresh slice with the flat components of the value.
// Int32 values are converted to float32.
func (v Value) Floats() []float32 {
	if v.Type == Int32 {
		return []float32{float32(v.i)}
	}
	out := make([]float32, v.Type.Components())
	copy(out, v.f[:])
	return out
}

// Equal reports whether both values have the same type and components.
func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) String() string {
	switch v.Type {
	case UndefinedType:
		return "<undefined>"
	case Int32:
		return strconv.FormatInt(int64(v.i), 10)
	case Float32:
		return formatFloat(v.f[0])
	}
	parts := make([]string, v.Type.Components())
	for i := range parts {
		parts[i] = formatFloat(v.f[i])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
