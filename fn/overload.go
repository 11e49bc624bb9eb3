package fn

import (
	"maps"
	"slices"
)

// OverloadTable maps an arity to the Func handling calls with that many
// arguments.
type OverloadTable map[int]*Func

// Add registers each Func under its Arity; later ones replace earlier ones.
func (t OverloadTable) Add(fns ...*Func) OverloadTable {
	for _, f := range fns {
		t[f.Arity()] = f
	}
	return t
}

// Overload builds a dispatcher over fns keyed by their Arity.
func Overload(fns ...*Func) *Func {
	return OverloadOf(make(OverloadTable, len(fns)).Add(fns...))
}

// OverloadOf builds a dispatcher over a snapshot of table. A call with n
// arguments runs table[n] under the same receiver; with no entry for n the
// call yields nil and no error.
func OverloadOf(table OverloadTable) *Func {
	snapshot := maps.Clone(table)
	return New(func(recv any, args []any) (any, error) {
		f := snapshot[len(args)]
		if f == nil {
			return nil, nil
		}
		return f.Apply(recv, args)
	})
}

// Overload builds a dispatcher over others and f, with f registered last.
func (f *Func) Overload(others ...*Func) *Func {
	return Overload(append(slices.Clone(others), f)...)
}

// OverloadTable builds a dispatcher over table with f registered at its own
// arity. table itself is left untouched.
func (f *Func) OverloadTable(table OverloadTable) *Func {
	t := maps.Clone(table)
	if t == nil {
		t = OverloadTable{}
	}
	return OverloadOf(t.Add(f))
}
