package fn

import (
	"fmt"
	"reflect"
	"sort"
)

// The methods below use f as the callback of a slice operation. xs may be
// any slice or array; elements are passed as (element, index) under a nil
// receiver.

// Each calls f for every element, stopping at the first error.
func (f *Func) Each(xs any) error {
	elems, err := elements(xs)
	if err != nil {
		return err
	}
	for i, x := range elems {
		if _, err := f.Call(nil, x, i); err != nil {
			return err
		}
	}
	return nil
}

// Every reports whether f is truthy for all elements.
func (f *Func) Every(xs any) (bool, error) {
	elems, err := elements(xs)
	if err != nil {
		return false, err
	}
	for i, x := range elems {
		v, err := f.Call(nil, x, i)
		if err != nil {
			return false, err
		}
		if !Truthy(v) {
			return false, nil
		}
	}
	return true, nil
}

// Some reports whether f is truthy for any element.
func (f *Func) Some(xs any) (bool, error) {
	elems, err := elements(xs)
	if err != nil {
		return false, err
	}
	for i, x := range elems {
		v, err := f.Call(nil, x, i)
		if err != nil {
			return false, err
		}
		if Truthy(v) {
			return true, nil
		}
	}
	return false, nil
}

// Filter keeps the elements f is truthy for.
func (f *Func) Filter(xs any) ([]any, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	kept := make([]any, 0, len(elems))
	for i, x := range elems {
		v, err := f.Call(nil, x, i)
		if err != nil {
			return nil, err
		}
		if Truthy(v) {
			kept = append(kept, x)
		}
	}
	return kept, nil
}

// Map collects f's result for every element.
func (f *Func) Map(xs any) ([]any, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(elems))
	for i, x := range elems {
		if out[i], err = f.Call(nil, x, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Reduce folds xs from the left, calling f with (accumulator, element,
// index). Without initial the first element seeds the accumulator.
func (f *Func) Reduce(xs any, initial ...any) (any, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(elems))
	for i := range order {
		order[i] = i
	}
	return f.fold(elems, order, initial)
}

// ReduceRight folds xs from the right.
func (f *Func) ReduceRight(xs any, initial ...any) (any, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(elems))
	for i := range order {
		order[i] = len(elems) - 1 - i
	}
	return f.fold(elems, order, initial)
}

// Foldl is Reduce.
func (f *Func) Foldl(xs any, initial ...any) (any, error) { return f.Reduce(xs, initial...) }

// Foldr is ReduceRight.
func (f *Func) Foldr(xs any, initial ...any) (any, error) { return f.ReduceRight(xs, initial...) }

func (f *Func) fold(elems []any, order []int, initial []any) (any, error) {
	var acc any
	if len(initial) > 0 {
		acc = initial[0]
	} else {
		if len(order) == 0 {
			return nil, ErrReduceOfEmpty
		}
		acc, order = elems[order[0]], order[1:]
	}
	for _, i := range order {
		var err error
		if acc, err = f.Call(nil, acc, elems[i], i); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Sort returns a stably sorted copy of xs using f as comparator: f(a, b)
// must yield a number, negative when a sorts before b.
func (f *Func) Sort(xs any) ([]any, error) {
	elems, err := elements(xs)
	if err != nil {
		return nil, err
	}
	sorted := append([]any{}, elems...)
	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		v, err := f.Call(nil, sorted[i], sorted[j])
		if err != nil {
			sortErr = err
			return false
		}
		n, ok := toFloat(v)
		if !ok {
			sortErr = fmt.Errorf("%w: %T", ErrNotAComparison, v)
			return false
		}
		return n < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
