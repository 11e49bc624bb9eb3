package memo

func MemoizeI1O1[I1, O1 any](
	fn func(I1) O1,
) func(I1) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(as[I1](args[0]))
		},
	)
	return func(i1 I1) O1 {
		return memoized(i1)
	}
}

func MemoizeI2O1[I1, I2, O1 any](
	fn func(I1, I2) O1,
) func(I1, I2) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(as[I1](args[0]), as[I2](args[1]))
		},
	)
	return func(i1 I1, i2 I2) O1 {
		return memoized(i1, i2)
	}
}

func MemoizeI3O1[I1, I2, I3, O1 any](
	fn func(I1, I2, I3) O1,
) func(I1, I2, I3) O1 {
	memoized := memoize(
		func(args ...any) O1 {
			return fn(as[I1](args[0]), as[I2](args[1]), as[I3](args[2]))
		},
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return memoized(i1, i2, i3)
	}
}

func MemoizeI1O2[I1, O1, O2 any](
	fn func(I1) (O1, O2),
) func(I1) (O1, O2) {
	memoized := memoizeDual(
		func(args ...any) (O1, O2) {
			return fn(as[I1](args[0]))
		},
	)
	return func(i1 I1) (O1, O2) {
		return memoized(i1)
	}
}

func MemoizeI2O2[I1, I2, O1, O2 any](
	fn func(I1, I2) (O1, O2),
) func(I1, I2) (O1, O2) {
	memoized := memoizeDual(
		func(args ...any) (O1, O2) {
			return fn(as[I1](args[0]), as[I2](args[1]))
		},
	)
	return func(i1 I1, i2 I2) (O1, O2) {
		return memoized(i1, i2)
	}
}

// as asserts v to T, mapping a nil interface to T's zero value.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

func memoize[O any](
	fn func(...any) O,
) func(...any) O {
	table := NewTable()
	return func(args ...any) O {
		v, _ := table.LoadOrStore(nil, args, func() (any, error) {
			return fn(args...), nil
		})
		return as[O](v)
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func memoizeDual[O1, O2 any](
	fn func(...any) (O1, O2),
) func(...any) (O1, O2) {
	table := NewTable()
	return func(args ...any) (O1, O2) {
		v, _ := table.LoadOrStore(nil, args, func() (any, error) {
			v1, v2 := fn(args...)
			return result[O1, O2]{O1: v1, O2: v2}, nil
		})
		res := as[result[O1, O2]](v)
		return res.O1, res.O2
	}
}
