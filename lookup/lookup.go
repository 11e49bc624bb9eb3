// Package lookup turns collections into lookup functions.
//
// Every lookup is total: an absent key, an out-of-range index or a missing
// record is reported through the boolean, never as an error or a panic.
package lookup

import (
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
	memdb "github.com/hashicorp/go-memdb"

	"github.com/on-the-ground/functools/shared/helper"
)

// Slice returns a lookup by position over xs.
//
//	at := lookup.Slice([]int{10, 20, 30})
//	v, ok := at(1) // 20, true
//	_, ok = at(5) // false
func Slice[T any](xs []T) func(int) (T, bool) {
	return func(i int) (T, bool) {
		if i < 0 || i >= len(xs) {
			var zero T
			return zero, false
		}
		return xs[i], true
	}
}

// Map returns a lookup by key over m.
func Map[K comparable, V any](m map[K]V) func(K) (V, bool) {
	return func(k K) (V, bool) {
		v, ok := m[k]
		return v, ok
	}
}

// Ristretto returns a lookup over cache. Writes to a ristretto cache are
// buffered, so a value may be missed until cache.Wait returns.
func Ristretto[K ristretto.Key, V any](cache *ristretto.Cache[K, V]) func(K) (V, bool) {
	return func(k K) (V, bool) {
		return cache.Get(k)
	}
}

// MemDB returns a lookup of the first record in table matching index args.
// Records stored as a different type than T are reported as an error.
func MemDB[T any](db *memdb.MemDB, table, index string) func(args ...any) (T, bool, error) {
	return func(args ...any) (T, bool, error) {
		var zero T

		txn := db.Txn(false)
		defer txn.Abort()

		raw, err := txn.First(table, index, args...)
		if err != nil {
			return zero, false, fmt.Errorf("lookup %s.%s: %w", table, index, err)
		}
		if raw == nil {
			return zero, false, nil
		}
		v, err := helper.TypedResultOf[T](func() (any, error) { return raw, nil })
		if err != nil {
			return zero, false, err
		}
		return v, true, nil
	}
}
