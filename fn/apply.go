package fn

import "slices"

// Arg is one slot of a partial application: either a fixed value or a
// placeholder taking the next argument passed at call time.
type Arg struct {
	value       any
	placeholder bool
}

// Placeholder marks a slot filled from the call-time arguments.
var Placeholder = Arg{placeholder: true}

// Value fixes a slot to v. Value(nil) is a literal nil, not a placeholder.
func Value(v any) Arg { return Arg{value: v} }

// Values fixes one slot per value.
func Values(vs ...any) []Arg {
	out := make([]Arg, len(vs))
	for i, v := range vs {
		out[i] = Value(v)
	}
	return out
}

// IsPlaceholder reports whether a is filled from the call-time arguments.
func (a Arg) IsPlaceholder() bool { return a.placeholder }

// Partial fixes some arguments of f. Placeholders are filled left to right
// from the call-time arguments, the unconsumed rest is appended, and a
// placeholder with nothing left to take receives nil.
func (f *Func) Partial(fixed ...Arg) *Func {
	fixed = slices.Clone(fixed)
	return f.Wrap(func(recv any, base *Func, passed []any) (any, error) {
		collected := make([]any, 0, len(fixed)+len(passed))
		next := 0
		for _, arg := range fixed {
			switch {
			case !arg.placeholder:
				collected = append(collected, arg.value)
			case next < len(passed):
				collected = append(collected, passed[next])
				next++
			default:
				collected = append(collected, nil)
			}
		}
		return base.Apply(recv, append(collected, passed[next:]...))
	})
}

// Curry prepends fixed to every call's arguments.
func (f *Func) Curry(fixed ...any) *Func {
	fixed = slices.Clone(fixed)
	return f.Wrap(func(recv any, base *Func, passed []any) (any, error) {
		return base.Apply(recv, concat(fixed, passed))
	})
}

// RCurry appends fixed to every call's arguments.
func (f *Func) RCurry(fixed ...any) *Func {
	fixed = slices.Clone(fixed)
	return f.Wrap(func(recv any, base *Func, passed []any) (any, error) {
		return base.Apply(recv, concat(passed, fixed))
	})
}

// Saturate calls f with exactly fixed, ignoring the call's arguments.
func (f *Func) Saturate(fixed ...any) *Func {
	fixed = slices.Clone(fixed)
	return f.Wrap(func(recv any, base *Func, _ []any) (any, error) {
		return base.Apply(recv, slices.Clone(fixed))
	})
}

// Aritize passes only the first n arguments through. A negative n drops the
// last |n| arguments instead.
func (f *Func) Aritize(n int) *Func {
	return f.Wrap(func(recv any, base *Func, passed []any) (any, error) {
		end := n
		if end < 0 {
			end = max(len(passed)+n, 0)
		}
		end = min(end, len(passed))
		return base.Apply(recv, passed[:end:end])
	})
}

// Not returns a Func yielding the negated truthiness of f's result.
func (f *Func) Not() *Func {
	return f.Wrap(func(recv any, base *Func, args []any) (any, error) {
		v, err := base.Apply(recv, args)
		if err != nil {
			return nil, err
		}
		return !Truthy(v), nil
	})
}

// NotApply negates f and calls it in one step.
func (f *Func) NotApply(recv any, args ...any) (any, error) {
	return f.Not().Apply(recv, args)
}

// Prepend runs each side effect, in order, before f. Their results are
// discarded; the first error stops the call.
func (f *Func) Prepend(effects ...*Func) *Func {
	effects = slices.Clone(effects)
	return f.Wrap(func(recv any, base *Func, args []any) (any, error) {
		if err := runEffects(effects, recv, args); err != nil {
			return nil, err
		}
		return base.Apply(recv, args)
	})
}

// Append runs each side effect, in order, after f and returns f's result.
func (f *Func) Append(effects ...*Func) *Func {
	effects = slices.Clone(effects)
	return f.Wrap(func(recv any, base *Func, args []any) (any, error) {
		ret, err := base.Apply(recv, args)
		if err != nil {
			return ret, err
		}
		if err := runEffects(effects, recv, args); err != nil {
			return nil, err
		}
		return ret, nil
	})
}

func runEffects(effects []*Func, recv any, args []any) error {
	for _, effect := range effects {
		if _, err := effect.Apply(recv, args); err != nil {
			return err
		}
	}
	return nil
}
