package fn

import (
	"github.com/on-the-ground/functools/memo"
	"github.com/on-the-ground/functools/shared/helper"
)

// Memoize returns a Func caching f's results by (receiver, arguments) in a
// fresh table seeded with seeds. Failed calls are not cached.
func (f *Func) Memoize(seeds ...memo.Entry) *Func {
	return f.MemoizeWith(memo.NewTable(seeds...))
}

// MemoizeWith is Memoize over a caller-owned table, which may be shared.
func (f *Func) MemoizeWith(table *memo.Table) *Func {
	return f.Wrap(func(recv any, base *Func, args []any) (any, error) {
		return table.LoadOrStore(recv, args, func() (any, error) {
			return base.Apply(recv, args)
		})
	})
}

// CallAs calls f and asserts its result to T. A nil result is T's zero value.
func CallAs[T any](f *Func, recv any, args ...any) (T, error) {
	return helper.TypedResultOf[T](func() (any, error) {
		return f.Apply(recv, args)
	})
}
