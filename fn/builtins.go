package fn

import (
	"fmt"
	"reflect"
	"slices"
	"sync/atomic"
)

// Empty returns a Func that does nothing and yields nil.
func Empty() *Func {
	return New(func(any, []any) (any, error) { return nil, nil }, WithArity(0))
}

// Identity returns a Func yielding its argument, or all of them as a []any
// when called with more than one.
func Identity() *Func {
	return New(func(_ any, args []any) (any, error) {
		switch len(args) {
		case 0:
			return nil, nil
		case 1:
			return args[0], nil
		}
		return slices.Clone(args), nil
	}, WithArity(1))
}

// Receiver returns a Func yielding the receiver it was called under.
func Receiver() *Func {
	return New(func(recv any, _ []any) (any, error) { return recv, nil }, WithArity(0))
}

// Lambda returns a Func that always yields v.
func Lambda(v any) *Func {
	return New(func(any, []any) (any, error) { return v, nil }, WithArity(0))
}

// Pluck returns a Func reading property from its first argument: a map key,
// an exported struct field (through pointers too) or a slice, array or
// string index. Anything unreadable yields nil.
func Pluck(property any) *Func {
	return New(func(_ any, args []any) (any, error) {
		if len(args) == 0 {
			return nil, nil
		}
		return pluck(args[0], property), nil
	}, WithArity(1))
}

func pluck(obj, property any) any {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		key, err := convertArg(property, rv.Type().Key(), 0)
		if err != nil {
			return nil
		}
		if v := rv.MapIndex(key); v.IsValid() {
			return v.Interface()
		}
	case reflect.Struct:
		name, ok := property.(string)
		if !ok {
			return nil
		}
		field, ok := rv.Type().FieldByName(name)
		if !ok || !field.IsExported() {
			return nil
		}
		return rv.FieldByIndex(field.Index).Interface()
	case reflect.Slice, reflect.Array, reflect.String:
		i, ok := property.(int)
		if !ok || i < 0 || i >= rv.Len() {
			return nil
		}
		return rv.Index(i).Interface()
	}
	return nil
}

// InvokeMethod returns a Func calling the named method on its first
// argument with the remaining arguments, or with defaultArgs when there are
// none.
func InvokeMethod(method string, defaultArgs ...any) *Func {
	defaultArgs = slices.Clone(defaultArgs)
	return New(func(_ any, args []any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s on nothing", ErrNoMethod, method)
		}
		m := reflect.ValueOf(args[0]).MethodByName(method)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: %T.%s", ErrNoMethod, args[0], method)
		}
		callArgs := args[1:]
		if len(callArgs) == 0 {
			callArgs = defaultArgs
		}
		return reflectBody(m)(nil, callArgs)
	}, WithArity(1))
}

// Sequence returns a Func that calls fns in turn, one per call, wrapping
// around after the last.
func Sequence(fns ...*Func) *Func {
	switch len(fns) {
	case 0:
		return Empty()
	case 1:
		return fns[0]
	}
	fns = slices.Clone(fns)
	var next atomic.Uint64
	return New(func(recv any, args []any) (any, error) {
		idx := (next.Add(1) - 1) % uint64(len(fns))
		return fns[idx].Apply(recv, args)
	})
}

// Concat returns a Func calling every fn in order and yielding the last result.
func Concat(fns ...*Func) *Func {
	fns = slices.Clone(fns)
	return New(func(recv any, args []any) (result any, err error) {
		for _, f := range fns {
			if result, err = f.Apply(recv, args); err != nil {
				return nil, err
			}
		}
		return result, nil
	})
}

// Compose returns the right-to-left composition of fns. The rightmost Func
// receives every argument; each one before it receives the previous result.
func Compose(fns ...*Func) *Func {
	if len(fns) == 0 {
		return Identity()
	}
	fns = slices.Clone(fns)
	return New(func(recv any, args []any) (any, error) {
		last := len(fns) - 1
		result, err := fns[last].Apply(recv, args)
		for i := last - 1; i >= 0 && err == nil; i-- {
			result, err = fns[i].Call(recv, result)
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
