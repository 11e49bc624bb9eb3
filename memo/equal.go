package memo

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
)

// Valuer lets a boxed value present the primitive it stands for.
// Equal and the key hash unwrap a Valuer before comparing.
type Valuer interface {
	ValueOf() any
}

// Sequence is an ordered, indexable collection compared element-wise.
type Sequence interface {
	Len() int
	At(i int) any
}

type kind uint8

const (
	kindNil kind = iota
	kindPlain
	kindRegexp
	kindSequence
	kindPrimitive
)

func kindOf(v any) kind {
	switch v.(type) {
	case nil:
		return kindNil
	case *regexp.Regexp:
		return kindRegexp
	case Sequence:
		return kindSequence
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return kindSequence
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return kindPlain
	}
	return kindPrimitive
}

// Equal reports whether two invocation values are the same for caching.
//
// Plain data (pointers, maps, channels, funcs) compares by identity, never
// deeply. Regular expressions compare by source text. Slices, arrays and
// Sequence values compare element-wise with Equal. Everything else compares
// as a primitive: 0 and -0 differ, NaN equals NaN. Comparable structs are
// compared field by field under the same float rules; other structs fall
// back to fmt.Stringer.
func Equal(a, b any) bool {
	a, b = unwrap(a), unwrap(b)
	ka := kindOf(a)
	if ka != kindOf(b) {
		return false
	}
	switch ka {
	case kindNil:
		return true
	case kindPlain:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
	case kindRegexp:
		ra, rb := a.(*regexp.Regexp), b.(*regexp.Regexp)
		if ra == nil || rb == nil {
			return ra == rb
		}
		return ra.String() == rb.String()
	case kindSequence:
		sa, sb := seqOf(a), seqOf(b)
		if sa.Len() != sb.Len() {
			return false
		}
		for i := 0; i < sa.Len(); i++ {
			if !Equal(sa.At(i), sb.At(i)) {
				return false
			}
		}
		return true
	}
	return primitiveEqual(a, b)
}

// maxUnwrap bounds Valuer chains that never bottom out.
const maxUnwrap = 8

func unwrap(v any) any {
	for i := 0; i < maxUnwrap; i++ {
		valuer, ok := v.(Valuer)
		if !ok {
			return v
		}
		v = valuer.ValueOf()
	}
	return v
}

func primitiveEqual(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Type().Comparable() && comparableValue(va) && comparableValue(vb) {
		return valueEqual(va, vb)
	}
	// non-comparable values fall back to their string form
	sa, okA := a.(fmt.Stringer)
	sb, okB := b.(fmt.Stringer)
	return okA && okB && sa.String() == sb.String()
}

// valueEqual compares two values of the same comparable type, applying
// floatEqual to every float reached through struct fields, array elements
// and interfaces.
func valueEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return floatEqual(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return floatEqual(real(ca), real(cb)) && floatEqual(imag(ca), imag(cb))
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !valueEqual(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !valueEqual(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		return ea.Type() == eb.Type() && valueEqual(ea, eb)
	}
	return a.Equal(b)
}

// comparableValue rejects interface-typed fields and elements holding
// unhashable values, which would make == panic even though the static type
// is comparable.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		e := v.Elem()
		return e.Type().Comparable() && comparableValue(e)
	}
	return true
}

func floatEqual(a, b float64) bool {
	if a == b {
		return a != 0 || math.Signbit(a) == math.Signbit(b)
	}
	return math.IsNaN(a) && math.IsNaN(b)
}

type reflectSeq struct{ v reflect.Value }

func (s reflectSeq) Len() int     { return s.v.Len() }
func (s reflectSeq) At(i int) any { return s.v.Index(i).Interface() }

func seqOf(v any) Sequence {
	if s, ok := v.(Sequence); ok {
		return s
	}
	return reflectSeq{reflect.ValueOf(v)}
}
