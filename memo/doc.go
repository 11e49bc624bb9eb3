// Package memo provides the memoization cache behind fn.Func.Memoize.
//
// A Table answers an invocation key, the (receiver, arguments) pair of a call,
// with the result stored by the first matching entry. Tables are append-only:
// once an entry is inserted it is never altered or evicted.
//
// Matching uses Equal, which is deliberately not deep equality:
//
//	→ pointers, maps, channels and funcs compare by identity
//	→ slices, arrays and Sequence values compare element by element
//	→ *regexp.Regexp compares by source text
//	→ primitives compare by value, with 0 ≠ -0 and NaN = NaN
//
// Entries can be seeded up front. A seed whose receiver or argument Pattern is
// left as the zero value matches any receiver or any argument list.
//
// The MemoizeI{n}O{m} family wraps plain typed Go functions in a private Table.
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc).
package memo
