package ugexpr

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var numberListType = cty.List(cty.Number)

// Functions returns the function table available to uniform expressions.
// Each call returns a fresh map, so callers may extend it.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"vec2":        vectorFunc("x", "y"),
		"vec3":        vectorFunc("x", "y", "z"),
		"vec4":        vectorFunc("x", "y", "z", "w"),
		"identity3":   identity3Func,
		"identity4":   identity4Func,
		"translate":   translateFunc,
		"perspective": perspectiveFunc,
		"matmul":      matmulFunc,
		"mat3":        mat3Func,
		"scale":       scaleFunc,
		"sin":         unaryFunc(math32.Sin),
		"cos":         unaryFunc(math32.Cos),
		"radians":     unaryFunc(math32.DegToRad),
		"abs":         stdlib.AbsoluteFunc,
		"min":         stdlib.MinFunc,
		"max":         stdlib.MaxFunc,
		"floor":       stdlib.FloorFunc,
		"ceil":        stdlib.CeilFunc,
		"pow":         stdlib.PowFunc,
	}
}

func numberParams(names ...string) []function.Parameter {
	params := make([]function.Parameter, len(names))
	for i, n := range names {
		params[i] = function.Parameter{Name: n, Type: cty.Number}
	}
	return params
}

func floatArgs(args []cty.Value) ([]float32, error) {
	fs := make([]float32, len(args))
	for i, a := range args {
		f, err := toFloat32(a)
		if err != nil {
			return nil, function.NewArgError(i, err)
		}
		fs[i] = f
	}
	return fs, nil
}

func floatList(v cty.Value) ([]float32, error) {
	var fs []float32
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		f, err := toFloat32(el)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, nil
}

func vectorFunc(names ...string) function.Function {
	return function.New(&function.Spec{
		Description: fmt.Sprintf("Builds a %d component vector.", len(names)),
		Params:      numberParams(names...),
		Type:        function.StaticReturnType(numberListType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			fs, err := floatArgs(args)
			if err != nil {
				return cty.NilVal, err
			}
			return numberList(fs), nil
		},
	})
}

func unaryFunc(fn func(float32) float32) function.Function {
	return function.New(&function.Spec{
		Params: numberParams("num"),
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			fs, err := floatArgs(args)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.NumberFloatVal(float64(fn(fs[0]))), nil
		},
	})
}

var identity3Func = function.New(&function.Spec{
	Description: "Returns the 3x3 identity matrix.",
	Type:        function.StaticReturnType(numberListType),
	Impl: func([]cty.Value, cty.Type) (cty.Value, error) {
		m := math32.Identity3()
		return numberList(m[:]), nil
	},
})

var identity4Func = function.New(&function.Spec{
	Description: "Returns the 4x4 identity matrix.",
	Type:        function.StaticReturnType(numberListType),
	Impl: func([]cty.Value, cty.Type) (cty.Value, error) {
		return numberList(math32.Identity4()[:]), nil
	},
})

var translateFunc = function.New(&function.Spec{
	Description: "Returns a 4x4 translation matrix.",
	Params:      numberParams("x", "y", "z"),
	Type:        function.StaticReturnType(numberListType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		fs, err := floatArgs(args)
		if err != nil {
			return cty.NilVal, err
		}
		m := math32.Identity4()
		// column-major: the translation lives in the last column
		m[12], m[13], m[14] = fs[0], fs[1], fs[2]
		return numberList(m[:]), nil
	},
})

var perspectiveFunc = function.New(&function.Spec{
	Description: "Returns a perspective projection matrix; fov is the vertical field of view in degrees.",
	Params:      numberParams("fov", "aspect", "near", "far"),
	Type:        function.StaticReturnType(numberListType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		fs, err := floatArgs(args)
		if err != nil {
			return cty.NilVal, err
		}
		if fs[2] <= 0 || fs[3] <= fs[2] {
			return cty.NilVal, fmt.Errorf("perspective needs 0 < near < far, got near=%g far=%g", fs[2], fs[3])
		}
		var m math32.Matrix4
		m.SetPerspective(fs[0], fs[1], fs[2], fs[3])
		return numberList(m[:]), nil
	},
})

var matmulFunc = function.New(&function.Spec{
	Description: "Multiplies a 4x4 matrix by another 4x4 matrix or by a vec4.",
	Params: []function.Parameter{
		{Name: "a", Type: numberListType},
		{Name: "b", Type: numberListType},
	},
	Type: function.StaticReturnType(numberListType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		a, err := floatList(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		b, err := floatList(args[1])
		if err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		if len(a) != 16 {
			return cty.NilVal, function.NewArgErrorf(0, "must be a mat4 (16 numbers), got %d numbers", len(a))
		}
		var ma math32.Matrix4
		copy(ma[:], a)

		switch len(b) {
		case 16:
			var mb, out math32.Matrix4
			copy(mb[:], b)
			out.MulMatrices(&ma, &mb)
			return numberList(out[:]), nil
		case 4:
			v := math32.Vec4(b[0], b[1], b[2], b[3]).MulMatrix4(&ma)
			return numberList([]float32{v.X, v.Y, v.Z, v.W}), nil
		}
		return cty.NilVal, function.NewArgErrorf(1, "must be a mat4 or a vec4, got %d numbers", len(b))
	},
})

var mat3Func = function.New(&function.Spec{
	Description: "Returns the upper-left 3x3 part of a 4x4 matrix.",
	Params:      []function.Parameter{{Name: "m", Type: numberListType}},
	Type:        function.StaticReturnType(numberListType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		fs, err := floatList(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		if len(fs) != 16 {
			return cty.NilVal, function.NewArgErrorf(0, "must be a mat4 (16 numbers), got %d numbers", len(fs))
		}
		var m4 math32.Matrix4
		copy(m4[:], fs)
		m3 := math32.Matrix3FromMatrix4(&m4)
		return numberList(m3[:]), nil
	},
})

var scaleFunc = function.New(&function.Spec{
	Description: "Multiplies every component of a vector or matrix by a scalar.",
	Params: []function.Parameter{
		{Name: "v", Type: numberListType},
		{Name: "s", Type: cty.Number},
	},
	Type: function.StaticReturnType(numberListType),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		fs, err := floatList(args[0])
		if err != nil {
			return cty.NilVal, function.NewArgError(0, err)
		}
		s, err := toFloat32(args[1])
		if err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		for i := range fs {
			fs[i] *= s
		}
		return numberList(fs), nil
	},
})
