package ugexpr

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctions_Vectors(t *testing.T) {
	assert.Equal(t, []float32{1, 2, 3, 4}, mustConst(t, `vec4(1, 2, 3, 4)`, uniform.Float32Vector4).Floats())
	assert.Equal(t, []float32{2, 4, 6}, mustConst(t, `scale(vec3(1, 2, 3), 2)`, uniform.Float32Vector3).Floats())
	assert.Equal(t, uniform.Float(3), mustConst(t, `max(1, 3, 2)`, uniform.Float32))
	assert.Equal(t, uniform.Float(8), mustConst(t, `pow(2, 3)`, uniform.Float32))
	assert.Equal(t, uniform.Int(2), mustConst(t, `floor(2.7)`, uniform.Int32))

	v, err := ParseConst(`floor(16777217.5)`, "t", uniform.Int32)
	require.NoError(t, err)
	assert.Equal(t, uniform.Int(16777217), v)
}

func TestFunctions_Trigonometry(t *testing.T) {
	approx(t, []float32{math32.Pi / 2}, mustConst(t, `radians(90)`, uniform.Float32).Floats())
	approx(t, []float32{1}, mustConst(t, `sin(radians(90))`, uniform.Float32).Floats())
	approx(t, []float32{0}, mustConst(t, `cos(radians(90))`, uniform.Float32).Floats())
}

func TestFunctions_Matrices(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, uniform.Mat4(*math32.Identity4()), mustConst(t, `identity4()`, uniform.Float32Matrix4))
		assert.Equal(t, uniform.Mat3(math32.Identity3()), mustConst(t, `identity3()`, uniform.Float32Matrix3))
	})

	t.Run("translate moves a point", func(t *testing.T) {
		got := mustConst(t, `matmul(translate(1, 2, 3), vec4(1, 1, 1, 1))`, uniform.Float32Vector4)
		approx(t, []float32{2, 3, 4, 1}, got.Floats())
	})

	t.Run("matmul composes", func(t *testing.T) {
		got := mustConst(t, `matmul(translate(1, 0, 0), translate(0, 2, 0))`, uniform.Float32Matrix4)
		m := got.Matrix4()
		approx(t, []float32{1, 2, 0}, m[12:15])
	})

	t.Run("mat3 takes the upper left block", func(t *testing.T) {
		got := mustConst(t, `mat3(translate(5, 6, 7))`, uniform.Float32Matrix3)
		assert.Equal(t, uniform.Mat3(math32.Identity3()), got)
	})

	t.Run("perspective matches math32", func(t *testing.T) {
		var want math32.Matrix4
		want.SetPerspective(45, 1.5, 0.1, 100)
		got := mustConst(t, `perspective(45, 1.5, 0.1, 100)`, uniform.Float32Matrix4)
		approx(t, want[:], got.Floats())
	})

	t.Run("argument errors", func(t *testing.T) {
		_, err := ParseConst(`matmul(vec3(1, 2, 3), identity4())`, "t", uniform.Float32Matrix4)
		assert.ErrorContains(t, err, "must be a mat4")
		_, err = ParseConst(`matmul(identity4(), vec3(1, 2, 3))`, "t", uniform.Float32Vector4)
		assert.ErrorContains(t, err, "mat4 or a vec4")
		_, err = ParseConst(`perspective(45, 1, 10, 1)`, "t", uniform.Float32Matrix4)
		assert.ErrorContains(t, err, "near < far")
	})
}
