package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Zero(t, g.Len())
	assert.Equal(t, ModePerPath, g.Mode())
	assert.Equal(t, ModeTopological, New(WithMode(ModeTopological)).Mode())
}

func TestAdd(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		a, err := g.Add("a", Float(1))
		require.NoError(t, err)
		b, err := g.Add("b", Int(2))
		require.NoError(t, err)

		assert.Equal(t, 2, g.Len())
		assert.Equal(t, []ID{a, b}, g.IDs())
		assert.Equal(t, "b", g.Name(b))
		assert.Equal(t, Int32, g.Type(b))

		got, ok := g.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, a, got)
		_, ok = g.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.MustAdd("a", Float(1))

		_, err := g.Add("a", Float(2))
		assert.ErrorIs(t, err, ErrDuplicateName)

		_, err = g.Add("", Float(2))
		assert.ErrorContains(t, err, "must not be empty")

		_, err = g.Add("u", Value{})
		assert.ErrorIs(t, err, ErrTypeMismatch)

		assert.Panics(t, func() { g.MustAdd("a", Float(1)) })
	})
}

func TestSetObservers_ReplacesWholesale(t *testing.T) {
	g := New()
	a := g.MustAdd("a", Float(1))
	b := g.MustAdd("b", Float(1))
	c := g.MustAdd("c", Float(1))

	require.NoError(t, g.SetObservers(a, []ID{b, c}))
	assert.Equal(t, []ID{b, c}, g.Observers(a))

	require.NoError(t, g.SetObservers(a, []ID{c}))
	assert.Equal(t, []ID{c}, g.Observers(a))

	list := []ID{b}
	require.NoError(t, g.SetObservers(a, list))
	list[0] = c
	assert.Equal(t, []ID{b}, g.Observers(a), "the graph keeps its own copy")

	assert.ErrorIs(t, g.SetObservers(a, []ID{42}), ErrUnknownNode)
	assert.ErrorIs(t, g.SetObservers(42, nil), ErrUnknownNode)
}

func TestDerive_WiresObserversOnce(t *testing.T) {
	g := New()
	a := g.MustAdd("a", Float(1))
	b := g.MustAdd("b", Float(1))
	d := g.MustAdd("d", Float(0))
	sum := func(in []Value) (Value, error) { return Float(in[0].Float() + in[1].Float()), nil }

	require.NoError(t, g.Derive(d, []ID{a, b}, sum))
	require.NoError(t, g.Derive(d, []ID{a, b}, sum))

	assert.Equal(t, []ID{d}, g.Observers(a))
	assert.Equal(t, []ID{d}, g.Observers(b))
	assert.Equal(t, []ID{a, b}, g.Inputs(d))
	assert.True(t, g.HasComputation(d))
	assert.False(t, g.HasComputation(a))
	assert.Equal(t, []ID{a, b}, g.Roots())
}

func TestSetComputation_Errors(t *testing.T) {
	g := New()
	a := g.MustAdd("a", Float(1))
	assert.ErrorContains(t, g.SetComputation(a, nil, nil), "must not be nil")
	assert.ErrorIs(t, g.SetComputation(a, []ID{7}, half), ErrUnknownNode)

	require.NoError(t, g.SetComputation(a, nil, func([]Value) (Value, error) { return Float(2), nil }))
	require.NoError(t, g.ClearComputation(a))
	assert.False(t, g.HasComputation(a))
	assert.Nil(t, g.Inputs(a))
}

func TestSinkSlot(t *testing.T) {
	g := New()
	a := g.MustAdd("a", Float(1))
	assert.False(t, g.HasSink(a))

	require.NoError(t, g.SetSink(a, &Recorder{}))
	assert.True(t, g.HasSink(a))

	require.NoError(t, g.ClearSink(a))
	assert.False(t, g.HasSink(a))
}

func TestStructuralChangesDuringTraversal(t *testing.T) {
	g := New()
	src := g.MustAdd("src", Float(1))
	d := g.MustAdd("d", Float(0))
	var errs []error
	require.NoError(t, g.Derive(d, []ID{src}, func(in []Value) (Value, error) {
		errs = append(errs,
			g.SetObservers(src, nil),
			g.SetComputation(src, nil, half),
			g.ClearComputation(d),
			g.SetSink(d, nil),
		)
		_, err := g.Add("late", Float(0))
		errs = append(errs, err)
		return in[0], nil
	}))

	require.NoError(t, g.Set(src, Float(3)))
	require.Len(t, errs, 5)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrBusy)
	}
	assert.Equal(t, []ID{d}, g.Observers(src))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("topological")
	require.NoError(t, err)
	assert.Equal(t, ModeTopological, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModePerPath, m)

	_, err = ParseMode("breadth-first")
	assert.ErrorContains(t, err, "invalid propagation mode")
	assert.Equal(t, "per-path", ModePerPath.String())
}
