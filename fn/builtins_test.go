package fn_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/on-the-ground/functools/fn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	Name  string
	email string
}

func (u user) Greet(greeting string) string { return greeting + ", " + u.Name }

func TestBuiltins(t *testing.T) {
	v, err := fn.Empty().Invoke(1, 2)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, _ = fn.Identity().Invoke("x")
	assert.Equal(t, "x", v)
	v, _ = fn.Identity().Invoke("x", "y")
	assert.Equal(t, []any{"x", "y"}, v)
	v, _ = fn.Identity().Invoke()
	assert.Nil(t, v)

	v, _ = fn.Receiver().Call("ctx", 1)
	assert.Equal(t, "ctx", v)

	v, _ = fn.Lambda(42).Invoke("ignored")
	assert.Equal(t, 42, v)
}

func TestPluck(t *testing.T) {
	u := user{Name: "ada", email: "ada@example.com"}
	tests := []struct {
		name     string
		obj      any
		property any
		want     any
	}{
		{"struct field", u, "Name", "ada"},
		{"through pointer", &u, "Name", "ada"},
		{"unexported field", u, "email", nil},
		{"missing field", u, "Age", nil},
		{"map key", map[string]int{"a": 1}, "a", 1},
		{"missing map key", map[string]int{"a": 1}, "b", nil},
		{"numeric map key", map[int]string{1: "one"}, 1.0, "one"},
		{"fractional map key", map[int]string{1: "one"}, 1.5, nil},
		{"slice index", []string{"x", "y"}, 1, "y"},
		{"out of range", []string{"x"}, 3, nil},
		{"nil", nil, "Name", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fn.Pluck(tt.property).Invoke(tt.obj)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestInvokeMethod(t *testing.T) {
	u := user{Name: "ada"}

	v, err := fn.InvokeMethod("Greet", "hello").Invoke(u)
	require.NoError(t, err)
	assert.Equal(t, "hello, ada", v)

	v, err = fn.InvokeMethod("Greet", "hello").Invoke(u, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi, ada", v)

	_, err = fn.InvokeMethod("Missing").Invoke(u)
	assert.ErrorIs(t, err, fn.ErrNoMethod)

	_, err = fn.InvokeMethod("Greet").Invoke()
	assert.ErrorIs(t, err, fn.ErrNoMethod)
}

func letter(s string) *fn.Func {
	return fn.MustLift(func(acc string) string { return acc + s })
}

func TestCompose(t *testing.T) {
	f := fn.Compose(letter("F"), letter("E"), letter("D"))

	v, err := f.Invoke("ABC")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF", v)

	v, err = fn.Compose().Invoke("same")
	require.NoError(t, err)
	assert.Equal(t, "same", v)
}

func TestCompose_RightmostTakesAllArguments(t *testing.T) {
	upper := fn.MustLift(strings.ToUpper)
	f := fn.Compose(upper, fn.MustLift(join))

	v, err := f.Invoke("-", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "A-B", v)
}

func TestConcat(t *testing.T) {
	var seen []string
	step := func(tag string) *fn.Func {
		return fn.New(func(recv any, args []any) (any, error) {
			seen = append(seen, tag)
			return tag, nil
		})
	}

	v, err := fn.Concat(step("a"), step("b"), step("c")).Invoke()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
	assert.Equal(t, []string{"a", "b", "c"}, seen)

	boom := errors.New("boom")
	failing := fn.New(func(any, []any) (any, error) { return nil, boom })
	_, err = fn.Concat(step("d"), failing, step("e")).Invoke()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "c", "d"}, seen)
}

func TestSequence(t *testing.T) {
	f := fn.Sequence(fn.Lambda(1), fn.Lambda(2), fn.Lambda(3))

	var got []any
	for i := 0; i < 5; i++ {
		v, err := f.Invoke()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []any{1, 2, 3, 1, 2}, got)

	single := fn.Lambda("only")
	assert.Same(t, single, fn.Sequence(single))
}
