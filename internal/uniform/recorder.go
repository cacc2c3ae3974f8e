package uniform

// Transmission is one value handed to a Recorder.
type Transmission struct {
	Name  string
	Value Value
}

// Recorder is a Sink that keeps every transmission in memory. It replaces
// process-wide fixtures when checking what reached the rendering surface.
type Recorder struct {
	calls []Transmission
}

// Transmit records the transmission.
func (r *Recorder) Transmit(name string, v Value) {
	r.calls = append(r.calls, Transmission{Name: name, Value: v})
}

// Calls returns a copy of every transmission, oldest first.
func (r *Recorder) Calls() []Transmission {
	return append([]Transmission(nil), r.calls...)
}

// Count returns how many times the named uniform was transmitted.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent value transmitted for the named uniform.
func (r *Recorder) Last(name string) (Value, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i].Value, true
		}
	}
	return Value{}, false
}

// Reset forgets every recorded transmission.
func (r *Recorder) Reset() { r.calls = nil }
