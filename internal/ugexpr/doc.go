// Package ugexpr evaluates HCL expressions over uniform values.
//
// Expressions read other uniforms as `uniform.<name>`. Scalars appear as
// numbers; vectors and matrices as lists of numbers in column-major order.
// Compile extracts the references of an expression, resolves them to graph
// nodes and returns a uniform.ComputeFunc that evaluates the expression
// against the input values the engine supplies.
//
// The function table extends a few cty stdlib numeric functions with vector
// and matrix helpers backed by cogentcore's math32:
//
//	vec2 vec3 vec4 identity3 identity4 translate perspective matmul mat3
//	scale sin cos radians abs min max floor ceil pow
package ugexpr
