package helper

import (
	"errors"
	"fmt"
)

var ErrUnexpectedType = errors.New("unexpected type")

// TypedResultOf asserts the result of a dynamic call to the expected type T.
// Errors from the call are returned unchanged; a nil result yields T's zero value.
func TypedResultOf[T any](call func() (any, error)) (T, error) {
	var zero T

	res, err := call()
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrUnexpectedType, zero, res)
	}
	return val, nil
}

// MustTypedResultOf is the panic-on-failure variant of TypedResultOf.
func MustTypedResultOf[T any](call func() (any, error)) T {
	res, err := TypedResultOf[T](call)
	if err != nil {
		panic(err)
	}
	return res
}

// BindingOf reads key from a binding map as T.
// found is false when the key is absent; a present key of another type is an error.
func BindingOf[T any](bindings map[string]any, key string) (val T, found bool, err error) {
	raw, found := bindings[key]
	if !found {
		return
	}
	val, ok := raw.(T)
	if !ok {
		err = fmt.Errorf("%w: binding %q holds %T", ErrUnexpectedType, key, raw)
	}
	return
}
