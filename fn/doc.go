// Package fn provides combinators over callables.
//
// A *Func wraps a callable behind one dynamic calling convention, a receiver
// plus a positional argument list, and derives new callables from it:
//
//	add := fn.MustLift(func(a, b int) int { return a + b })
//	inc := add.Curry(1)          // inc(x)    = add(1, x)
//	twice := add.Partial(fn.Placeholder, fn.Placeholder)
//	cached := add.Memoize()      // cached by (receiver, arguments)
//
// Every derived Func keeps a pointer to the Func it came from. Origin walks
// that chain to the root, and Arity and Params answer for the root, so a
// curried, memoized or traced callable still reports the parameters of the
// function it started as.
//
// # Results and errors
//
// Calls return (any, error). Combinators never fail on their own account:
// an error from the base callable or from a side effect is returned to the
// caller unchanged. A nil result with a nil error is the "no result" outcome,
// e.g. an overload dispatcher with nothing registered for the call's arity.
//
// # Memoization
//
// Memoize consults a memo.Table before calling through. See package memo for
// how invocation keys are compared.
//
// # Tracing
//
// Traced logs calls through zap. TraceConfig can be built in code or loaded
// from a binding map keyed by the constants in package configkeys.
package fn
