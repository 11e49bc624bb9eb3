package fn

import (
	"math"
	"reflect"
	"slices"
)

// Truthy reports whether v counts as true.
//
// nil, false, numeric zero, NaN, the empty string and nil pointers, maps,
// slices, funcs and channels are false. Everything else is true, including
// empty but non-nil slices and zero-valued structs.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return !rv.IsNil()
	}
	return true
}

type boolOp uint8

const (
	opAnd boolOp = iota
	opOr
	opXor
)

// And combines predicates left to right, stopping at the first false one.
func And(preds ...*Func) *Func { return combine(opAnd, preds) }

// Or combines predicates left to right, stopping at the first true one.
func Or(preds ...*Func) *Func { return combine(opOr, preds) }

// Xor evaluates every predicate and is true when an odd number of them are.
func Xor(preds ...*Func) *Func { return combine(opXor, preds) }

// combine yields Empty for no predicates and the truthiness of a lone one.
func combine(op boolOp, preds []*Func) *Func {
	switch len(preds) {
	case 0:
		return Empty()
	case 1:
		pred := preds[0]
		return New(func(recv any, args []any) (any, error) {
			v, err := pred.Apply(recv, args)
			if err != nil {
				return nil, err
			}
			return Truthy(v), nil
		})
	}
	preds = slices.Clone(preds)
	return New(func(recv any, args []any) (any, error) {
		odd := false
		for _, pred := range preds {
			v, err := pred.Apply(recv, args)
			if err != nil {
				return nil, err
			}
			t := Truthy(v)
			switch {
			case op == opAnd && !t:
				return false, nil
			case op == opOr && t:
				return true, nil
			case op == opXor && t:
				odd = !odd
			}
		}
		switch op {
		case opAnd:
			return true, nil
		case opOr:
			return false, nil
		}
		return odd, nil
	})
}
