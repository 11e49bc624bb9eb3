package fn

import (
	"fmt"
	"reflect"

	"github.com/on-the-ground/functools/lookup"
)

func elements(xs any) ([]any, error) {
	if elems, ok := xs.([]any); ok {
		return elems, nil
	}
	rv := reflect.ValueOf(xs)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotASequence, xs)
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}

// FromSlice returns a Func looking up its first argument as an index into a
// snapshot of xs. A missing, non-integer or out-of-range index yields nil.
func FromSlice(xs any) (*Func, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	at := lookup.Slice(elems)
	return New(func(_ any, args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		idx, ok := toIndex(args[0])
		if !ok {
			return nil, nil
		}
		v, _ := at(idx)
		return v, nil
	}, WithArity(1)), nil
}

func toIndex(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	}
	return 0, false
}

// FromMap returns a Func looking up its first argument as a key of a
// snapshot of m. With no argument the zero key is looked up. Extra
// arguments are ignored; absent keys yield nil.
func FromMap(m any) (*Func, error) {
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: %T is not a map", ErrArgumentType, m)
	}
	keyType := rv.Type().Key()
	snapshot := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		snapshot[iter.Key().Interface()] = iter.Value().Interface()
	}
	get := lookup.Map(snapshot)
	return New(func(_ any, args []any) (any, error) {
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		key, err := convertArg(arg, keyType, 0)
		if err != nil {
			return nil, nil
		}
		v, _ := get(key.Interface())
		return v, nil
	}, WithArity(1)), nil
}
