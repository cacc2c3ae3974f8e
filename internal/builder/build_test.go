package builder

import (
	"testing"

	"github.com/specialistvlad/uniformgrid/internal/config"
	hclloader "github.com/specialistvlad/uniformgrid/internal/hcl"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/testutil"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSession hands the same recorder to every uniform.
type recordSession struct{ rec *uniform.Recorder }

func (s recordSession) SinkFor(registry.Target) uniform.Sink { return s.rec }
func (s recordSession) Close() error                       { return nil }

func load(t *testing.T, src string) *config.Model {
	t.Helper()
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": src})
	model, err := hclloader.NewLoader().Load(ctx, dir)
	require.NoError(t, err)
	return model
}

func build(t *testing.T, src string, session registry.Session, opts ...uniform.Option) (*Grid, error) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	return Build(ctx, load(t, src), session, opts...)
}

func names(calls []uniform.Transmission) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name
	}
	return out
}

func TestBuild_ThreeUniforms(t *testing.T) {
	rec := &uniform.Recorder{}
	grid, err := build(t, testutil.ThreeUniformsHCL, recordSession{rec})
	require.NoError(t, err)
	g := grid.Graph()

	u3, _ := g.Lookup("u3")
	u2, _ := g.Lookup("u2")
	u1, _ := g.Lookup("u1")
	assert.Equal(t, []uniform.ID{u3, u2, u1}, grid.Order())
	assert.Equal(t, []uniform.ID{u3}, grid.Roots())
	assert.Equal(t, []uniform.ID{u2, u1}, g.Observers(u3))
	assert.Equal(t, []uniform.ID{u1}, g.Observers(u2))
	assert.Equal(t, []uniform.ID{u2, u3}, g.Inputs(u1))
	assert.Equal(t, int32(2), grid.Declaration(u2).Location)

	require.NoError(t, grid.Apply("u3=7"))
	assert.Equal(t, float32(21), g.Get(u2).Float())
	assert.Equal(t, float32(14), g.Get(u1).Float())

	require.NoError(t, grid.Apply("u2 = 80"))
	assert.Equal(t, float32(43.5), g.Get(u1).Float())
	assert.Empty(t, rec.Calls(), "propagation never transmits")

	require.NoError(t, grid.FlushRoots())
	assert.Equal(t, []string{"u3", "u2", "u1", "u1"}, names(rec.Calls()))
	last, ok := rec.Last("u1")
	require.True(t, ok)
	assert.Equal(t, uniform.Float(43.5), last)

	require.NoError(t, grid.Detach())
	require.NoError(t, grid.Apply("u3 = 1"))
	require.NoError(t, grid.FlushRoots())
	assert.Len(t, rec.Calls(), 4, "detached grid transmits nothing")
	for _, row := range grid.Table() {
		assert.True(t, row.Partial)
	}
}

func TestBuild_PartialAndDefaults(t *testing.T) {
	rec := &uniform.Recorder{}
	grid, err := build(t, `
uniform "p" {
  type    = float
  value   = 10
  partial = true
}
uniform "a" {
  type    = float
  compute = uniform.p / 5
}
uniform "b" {
  type    = float
  compute = uniform.p * 3
}
uniform "model" {
  type = mat4
}
`, recordSession{rec})
	require.NoError(t, err)

	rows := grid.Table()
	require.Len(t, rows, 4)
	assert.Equal(t, Row{Name: "p", Type: uniform.Float32, Value: uniform.Float(10), Location: config.NoLocation, Partial: true}, rows[0])
	assert.True(t, rows[1].Derived)
	assert.Equal(t, uniform.Float(0), rows[1].Value, "derived values wait for a notification")
	assert.Equal(t, uniform.Zero(uniform.Float32Matrix4), rows[3].Value)

	require.NoError(t, grid.Settle())
	rows = grid.Table()
	assert.Equal(t, uniform.Float(2), rows[1].Value)
	assert.Equal(t, uniform.Float(30), rows[2].Value)

	require.NoError(t, grid.FlushRoots())
	assert.Equal(t, []string{"a", "b", "model"}, names(rec.Calls()))
	assert.Zero(t, rec.Count("p"))
}

func TestBuild_WithoutSession(t *testing.T) {
	grid, err := build(t, testutil.ThreeUniformsHCL, nil, uniform.WithMode(uniform.ModeTopological))
	require.NoError(t, err)
	assert.Equal(t, uniform.ModeTopological, grid.Graph().Mode())
	for _, row := range grid.Table() {
		assert.True(t, row.Partial)
	}
	assert.NoError(t, grid.FlushRoots())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
		wantIs  error
	}{
		{
			name:    "missing type",
			src:     `uniform "a" { compute = uniform.ghost }` + "\n" + `uniform "b" { type = float }`,
			wantErr: "Missing required argument",
		},
		{
			name: "reference to undeclared uniform",
			src: `
uniform "a" {
  type    = float
  compute = uniform.ghost * 2
}`,
			wantErr: `No uniform named "ghost"`,
		},
		{
			name: "foreign reference root",
			src: `
uniform "a" {
  type    = float
  compute = var.speed
}`,
			wantErr: "is not a uniform reference",
		},
		{
			name: "unknown function",
			src: `
uniform "a" {
  type    = float
  compute = lerp(1, 2)
}`,
			wantErr: `There is no function named "lerp"`,
		},
		{
			name: "initial value of the wrong shape",
			src: `
uniform "a" {
  type  = float
  value = [1, 2]
}`,
			wantErr: "Invalid value",
		},
		{
			name: "initial value reads another uniform",
			src: `
uniform "a" {
  type  = float
  value = 1
}
uniform "b" {
  type  = float
  value = uniform.a
}`,
			wantErr: "Variables not allowed",
		},
		{
			name: "cycle",
			src: `
uniform "a" {
  type    = float
  compute = uniform.b
}
uniform "b" {
  type    = float
  compute = uniform.a + 1
}`,
			wantErr: "a -> b -> a",
			wantIs:  uniform.ErrCycle,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			dir := testutil.WriteFiles(t, map[string]string{"main.hcl": tc.src})
			model, err := hclloader.NewLoader().Load(ctx, dir)
			if err == nil {
				_, err = Build(ctx, model, nil)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
		})
	}
}

func TestGrid_Apply(t *testing.T) {
	grid, err := build(t, `
uniform "n" {
  type  = int
  value = 1
}
uniform "v" {
  type = vec3
}
uniform "twice" {
  type    = int
  compute = uniform.n * 2
}
`, nil)
	require.NoError(t, err)
	g := grid.Graph()

	require.NoError(t, grid.Apply("v=vec3(1, 2, 3)"))
	v, _ := g.Lookup("v")
	assert.Equal(t, []float32{1, 2, 3}, g.Get(v).Floats())

	require.NoError(t, grid.Apply("n=4"))
	twice, _ := g.Lookup("twice")
	assert.Equal(t, int32(8), g.Get(twice).Int())

	assert.ErrorContains(t, grid.Apply("n"), "expected name=value")
	assert.ErrorContains(t, grid.Apply("=3"), "expected name=value")
	assert.ErrorIs(t, grid.Apply("ghost=1"), uniform.ErrUnknownNode)
	assert.ErrorContains(t, grid.Apply("n=1.5"), "whole number")
	assert.ErrorContains(t, grid.Apply("v=[1, 2]"), "needs 3 components")
	assert.Equal(t, int32(4), g.Get(g.Roots()[0]).Int(), "failed sets leave values untouched")
}
