package ugexpr

import (
	"fmt"
	"math"
	"math/big"

	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToCty converts a uniform value into its expression form: a number for
// scalars and a list of numbers for vectors and matrices (column-major).
func ToCty(v uniform.Value) cty.Value {
	switch v.Type {
	case uniform.UndefinedType:
		return cty.NullVal(cty.DynamicPseudoType)
	case uniform.Int32:
		return cty.NumberIntVal(int64(v.Int()))
	case uniform.Float32:
		return cty.NumberFloatVal(float64(v.Float()))
	}
	return numberList(v.Floats())
}

func numberList(fs []float32) cty.Value {
	if len(fs) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(fs))
	for i, f := range fs {
		vals[i] = cty.NumberFloatVal(float64(f))
	}
	return cty.ListVal(vals)
}

// FromCty converts an evaluated expression result into a uniform value of
// type tp. Scalars must evaluate to a number; vectors and matrices to a list
// or tuple of exactly tp.Components() numbers.
func FromCty(tp uniform.Types, v cty.Value) (uniform.Value, error) {
	if v.IsNull() {
		return uniform.Value{}, fmt.Errorf("%s value must not be null", tp)
	}
	if !v.IsWhollyKnown() {
		return uniform.Value{}, fmt.Errorf("%s value is not known", tp)
	}

	var fs []float32
	switch tp {
	case uniform.Int32:
		i, err := toInt32(v)
		if err != nil {
			return uniform.Value{}, fmt.Errorf("%s value: %w", tp, err)
		}
		return uniform.Int(i), nil
	case uniform.Float32:
		f, err := toFloat32(v)
		if err != nil {
			return uniform.Value{}, fmt.Errorf("%s value: %w", tp, err)
		}
		fs = []float32{f}
	default:
		if !v.CanIterateElements() || v.Type().IsMapType() || v.Type().IsObjectType() {
			return uniform.Value{}, fmt.Errorf("%s value must be a list of numbers, got %s", tp, v.Type().FriendlyName())
		}
		for it := v.ElementIterator(); it.Next(); {
			_, el := it.Element()
			f, err := toFloat32(el)
			if err != nil {
				return uniform.Value{}, fmt.Errorf("%s element %d: %w", tp, len(fs), err)
			}
			fs = append(fs, f)
		}
	}
	return uniform.FromFloats(tp, fs)
}

func toFloat32(v cty.Value) (float32, error) {
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, err
	}
	if n.IsNull() {
		return 0, fmt.Errorf("number must not be null")
	}
	var f float32
	if err := gocty.FromCtyValue(n, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// toInt32 reads an int without passing through float32, which cannot hold
// every int32 exactly.
func toInt32(v cty.Value) (int32, error) {
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, err
	}
	if n.IsNull() {
		return 0, fmt.Errorf("number must not be null")
	}
	bf := n.AsBigFloat()
	if !bf.IsInt() {
		return 0, fmt.Errorf("type int needs a whole number, got %s", bf.Text('g', -1))
	}
	i, acc := bf.Int64()
	if acc != big.Exact || i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("type int needs a value between %d and %d, got %s", math.MinInt32, math.MaxInt32, bf.Text('g', -1))
	}
	return int32(i), nil
}
