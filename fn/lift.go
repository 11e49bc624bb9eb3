package fn

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"runtime"
)

var (
	ErrNotAFunc       = errors.New("not a func")
	ErrArgumentType   = errors.New("argument type mismatch")
	ErrNoMethod       = errors.New("no such method")
	ErrNotASequence   = errors.New("not a slice or array")
	ErrReduceOfEmpty  = errors.New("reduce of empty sequence with no initial value")
	ErrNotAComparison = errors.New("comparator did not return a number")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Lift adapts a Go function value into a Func.
//
// The receiver of each call is ignored. Arguments are matched positionally:
// missing ones become zero values, surplus ones are dropped unless the
// function is variadic, and numeric arguments are converted to the declared
// numeric type when the value survives unchanged. A lossy conversion, such
// as 1.5 to int or -1 to uint, fails with ErrArgumentType. A trailing error result becomes the call's error; the
// remaining results are returned as nil, a single value or a []any.
//
// A *Func is returned as is.
func Lift(goFunc any, opts ...Option) (*Func, error) {
	if f, ok := goFunc.(*Func); ok {
		return f, nil
	}
	rv := reflect.ValueOf(goFunc)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotAFunc, goFunc)
	}
	f := New(reflectBody(rv), opts...)
	f.impl = goFunc
	return f, nil
}

// MustLift is the panic-on-failure variant of Lift.
func MustLift(goFunc any, opts ...Option) *Func {
	f, err := Lift(goFunc, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func reflectBody(rv reflect.Value) Body {
	rt := rv.Type()
	return func(_ any, args []any) (any, error) {
		in, err := buildIn(rt, args)
		if err != nil {
			return nil, err
		}
		return collectOut(rt, rv.Call(in))
	}
}

// fixedArity is the number of non-variadic parameters of a func type.
func fixedArity(rt reflect.Type) int {
	if rt.IsVariadic() {
		return rt.NumIn() - 1
	}
	return rt.NumIn()
}

func buildIn(rt reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := fixedArity(rt)
	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		var arg any
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, rt.In(i), i)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	if rt.IsVariadic() {
		elem := rt.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem, i)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func convertArg(arg any, want reflect.Type, pos int) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		if out, ok := convertExact(v, want); ok {
			return out, nil
		}
		return reflect.Value{}, fmt.Errorf("%w: argument %d is %v, not representable as %s", ErrArgumentType, pos, arg, want)
	}
	return reflect.Value{}, fmt.Errorf("%w: argument %d is %T, want %s", ErrArgumentType, pos, arg, want)
}

// convertExact converts a number to want only when no value is lost: the
// result converts back to the same number and keeps its sign.
func convertExact(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if isFloat(v.Kind()) && math.IsNaN(v.Float()) {
		return reflect.Value{}, false
	}
	out := v.Convert(want)
	if !out.Convert(v.Type()).Equal(v) || isNegative(out) != isNegative(v) {
		return reflect.Value{}, false
	}
	return out, true
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNegative(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() < 0
	case reflect.Float32, reflect.Float64:
		return v.Float() < 0
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func collectOut(rt reflect.Type, out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && rt.Out(n-1) == errorType {
		if e, ok := out[n-1].Interface().(error); ok {
			err = e
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return vals, err
}

func runtimeName(goFunc any) string {
	rv := reflect.ValueOf(goFunc)
	if rv.Kind() != reflect.Func {
		return ""
	}
	if rf := runtime.FuncForPC(rv.Pointer()); rf != nil {
		return rf.Name()
	}
	return ""
}
