package fn_test

import (
	"testing"

	"github.com/on-the-ground/functools/fn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(tag string, arity int) *fn.Func {
	return fn.Lambda(tag).Annotate(fn.WithArity(arity))
}

func TestOverloadOf(t *testing.T) {
	dispatch := fn.OverloadOf(fn.OverloadTable{
		0: tagged("f0", 0),
		1: tagged("f1", 1),
		2: tagged("f2", 2),
	})

	tests := []struct {
		args []any
		want any
	}{
		{nil, "f0"},
		{[]any{1}, "f1"},
		{[]any{1, 2}, "f2"},
		{[]any{1, 2, 3}, nil},
	}
	for _, tt := range tests {
		v, err := dispatch.Apply(nil, tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "%d arguments", len(tt.args))
	}
}

func TestOverload_ByArity(t *testing.T) {
	none := fn.MustLift(func() string { return "none" })
	one := fn.MustLift(func(a int) string { return "one" })
	two := fn.MustLift(func(a, b int) string { return "two" })

	dispatch := fn.Overload(none, one, two)
	for n, want := range []string{"none", "one", "two"} {
		v, err := dispatch.Apply(nil, make([]any, n))
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestOverload_PassesReceiver(t *testing.T) {
	dispatch := fn.Overload(fn.Receiver())

	v, err := dispatch.Call("ctx")
	require.NoError(t, err)
	assert.Equal(t, "ctx", v)
}

func TestOverload_LaterReplacesEarlier(t *testing.T) {
	dispatch := tagged("self", 1).Overload(tagged("other", 1), tagged("zero", 0))

	v, err := dispatch.Invoke(1)
	require.NoError(t, err)
	assert.Equal(t, "self", v)

	v, err = dispatch.Invoke()
	require.NoError(t, err)
	assert.Equal(t, "zero", v)
}

func TestOverloadTable_Snapshot(t *testing.T) {
	table := fn.OverloadTable{0: tagged("f0", 0)}
	dispatch := tagged("f1", 1).OverloadTable(table)
	table[2] = tagged("late", 2)

	assert.Len(t, table, 2)
	v, err := dispatch.Invoke(1, 2)
	require.NoError(t, err)
	assert.Nil(t, v, "entries added after the dispatcher was built are not seen")

	v, err = dispatch.Invoke(1)
	require.NoError(t, err)
	assert.Equal(t, "f1", v)

	_, found := table[1]
	assert.False(t, found)
}

func TestOverload_Empty(t *testing.T) {
	v, err := fn.Overload().Invoke("x")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = tagged("f", 0).OverloadTable(nil).Invoke()
	require.NoError(t, err)
	assert.Equal(t, "f", v)
}
