package uniform

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypes(t *testing.T) {
	for name, want := range map[string]Types{
		"float": Float32,
		"int":   Int32,
		"vec2":  Float32Vector2,
		"VEC3":  Float32Vector3,
		" vec4": Float32Vector4,
		"mat3":  Float32Matrix3,
		"mat4":  Float32Matrix4,
	} {
		got, err := ParseTypes(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseTypes("double")
	assert.ErrorContains(t, err, "unsupported uniform type")
	_, err = ParseTypes("undefined")
	assert.Error(t, err)
}

func TestTypes_Shape(t *testing.T) {
	assert.Equal(t, 1, Float32.Components())
	assert.Equal(t, 16, Float32Matrix4.Components())
	assert.Equal(t, 36, Float32Matrix3.Bytes())
	assert.Equal(t, 0, UndefinedType.Components())
	assert.True(t, Float32Matrix3.IsMatrix())
	assert.False(t, Float32Vector4.IsMatrix())
	assert.Equal(t, "vec3", Float32Vector3.String())
}

func TestValue_Constructors(t *testing.T) {
	assert.Equal(t, float32(3.5), Float(3.5).Float())
	assert.Equal(t, int32(-2), Int(-2).Int())
	assert.Equal(t, math32.Vec2(1, 2), Vec2(math32.Vec2(1, 2)).Vector2())
	assert.Equal(t, math32.Vec3(1, 2, 3), Vec3(math32.Vec3(1, 2, 3)).Vector3())
	assert.Equal(t, math32.Vec4(1, 2, 3, 4), Vec4(math32.Vec4(1, 2, 3, 4)).Vector4())

	m4 := *math32.Identity4()
	m4[12] = 5
	assert.Equal(t, m4, Mat4(m4).Matrix4())

	m3 := math32.Identity3()
	assert.Equal(t, m3, Mat3(m3).Matrix3())

	if diff := cmp.Diff([]float32{1, 2, 3}, Vec3(math32.Vec3(1, 2, 3)).Floats()); diff != "" {
		t.Errorf("Floats() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float32{4}, Int(4).Floats()); diff != "" {
		t.Errorf("Floats() mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_AccessorTypeMismatchPanics(t *testing.T) {
	assert.PanicsWithValue(t, "uniform: value of type int read as float", func() {
		Int(1).Float()
	})
	assert.Panics(t, func() { Float(1).Matrix4() })
}

func TestZero(t *testing.T) {
	assert.Equal(t, Float(0), Zero(Float32))
	assert.Equal(t, Mat4(*math32.Identity4()), Zero(Float32Matrix4))
	assert.Equal(t, Mat3(math32.Identity3()), Zero(Float32Matrix3))
}

func TestFromFloats(t *testing.T) {
	v, err := FromFloats(Float32Vector2, []float32{1, 2})
	require.NoError(t, err)
	assert.True(t, v.Equal(Vec2(math32.Vec2(1, 2))))

	v, err = FromFloats(Int32, []float32{7})
	require.NoError(t, err)
	assert.Equal(t, Int(7), v)

	_, err = FromFloats(Int32, []float32{7.5})
	assert.ErrorContains(t, err, "whole number")

	_, err = FromFloats(Int32, []float32{3e9})
	assert.ErrorContains(t, err, "needs a value between")

	_, err = FromFloats(Float32Vector3, []float32{1, 2})
	assert.ErrorContains(t, err, "needs 3 components")

	_, err = FromFloats(UndefinedType, nil)
	assert.Error(t, err)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "[1 2.5]", Vec2(math32.Vec2(1, 2.5)).String())
	assert.Equal(t, "<undefined>", Value{}.String())
}
