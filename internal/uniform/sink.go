package uniform

//go:generate mockgen -destination=mock_surface_test.go -package=uniform . Surface

// Sink transmits a node's value to the external rendering surface. A Sink
// must not fail: transmission errors belong to the binding that implements it.
type Sink interface {
	Transmit(name string, v Value)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(name string, v Value)

// Transmit calls f(name, v).
func (f SinkFunc) Transmit(name string, v Value) { f(name, v) }

// Surface is the narrow set of typed uniform calls a rendering surface
// exposes. It mirrors the GL uniform entry points.
type Surface interface {
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)
}

// SurfaceSink transmits values to a shader location on a Surface, choosing
// the call from the value's type.
type SurfaceSink struct {
	Location int32
	Surface  Surface
}

// Transmit dispatches v to the Surface call matching its type. Undefined
// values are dropped.
func (s *SurfaceSink) Transmit(_ string, v Value) {
	switch v.Type {
	case Float32:
		s.Surface.Uniform1f(s.Location, v.Float())
	case Int32:
		s.Surface.Uniform1i(s.Location, v.Int())
	case Float32Vector2:
		s.Surface.Uniform2fv(s.Location, v.Floats())
	case Float32Vector3:
		s.Surface.Uniform3fv(s.Location, v.Floats())
	case Float32Vector4:
		s.Surface.Uniform4fv(s.Location, v.Floats())
	case Float32Matrix3:
		s.Surface.UniformMatrix3fv(s.Location, false, v.Floats())
	case Float32Matrix4:
		s.Surface.UniformMatrix4fv(s.Location, false, v.Floats())
	}
}

// CallName returns the name of the Surface call used for a type, e.g.
// "Uniform1f" for Float32.
func CallName(tp Types) string {
	switch tp {
	case Float32:
		return "Uniform1f"
	case Int32:
		return "Uniform1i"
	case Float32Vector2:
		return "Uniform2fv"
	case Float32Vector3:
		return "Uniform3fv"
	case Float32Vector4:
		return "Uniform4fv"
	case Float32Matrix3:
		return "UniformMatrix3fv"
	case Float32Matrix4:
		return "UniformMatrix4fv"
	}
	return ""
}
