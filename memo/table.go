package memo

import "sync"

// Pattern matches one half of an invocation key.
// The zero Pattern is a wildcard that matches anything.
type Pattern struct {
	value  any
	pinned bool
}

// Any returns the wildcard Pattern.
func Any() Pattern { return Pattern{} }

// Is returns a Pattern matching values Equal to v.
func Is(v any) Pattern { return Pattern{value: v, pinned: true} }

// Value returns the pinned value, or false for a wildcard.
func (p Pattern) Value() (any, bool) { return p.value, p.pinned }

// Matches reports whether v is Equal to the pinned value; a wildcard matches anything.
func (p Pattern) Matches(v any) bool {
	return !p.pinned || Equal(p.value, v)
}

// Key is the (receiver, arguments) pair a memoized call is looked up by.
type Key struct {
	Recv any
	Args []any
}

// Entry seeds a Table with a fixed answer.
type Entry struct {
	Recv   Pattern
	Args   Pattern
	Result any
}

// Seed returns an Entry answering result for args under any receiver.
func Seed(result any, args ...any) Entry {
	if args == nil {
		args = []any{}
	}
	return Entry{Args: Is(args), Result: result}
}

type slot struct {
	recv Pattern
	args Pattern
}

func (s slot) matches(recv any, args []any) bool {
	return s.recv.Matches(recv) && s.args.Matches(args)
}

// Table is an append-only memo of invocation results. The zero value is an
// empty table ready to use.
//
// Entries are scanned in insertion order and the first match wins. Fully
// pinned entries are bucketed by key hash; entries with a wildcard are kept
// on a side list and merged into every scan by index.
type Table struct {
	mu      sync.Mutex
	slots   []slot
	results []any
	index   map[uint64][]int
	wild    []int
}

// NewTable creates a Table holding seeds, in order, ahead of any computed entry.
func NewTable(seeds ...Entry) *Table {
	t := &Table{}
	for _, seed := range seeds {
		s := slot{recv: seed.Recv, args: seed.Args}
		h, _ := slotHash(s)
		t.insert(s, h, seed.Result)
	}
	return t
}

// Len reports how many entries the table holds, seeds included.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

// Lookup returns the result of the first entry matching (recv, args).
func (t *Table) Lookup(recv any, args []any) (any, bool) {
	v := t.view(keyHash(recv, args))
	idx := v.find(recv, args, 0)
	if idx < 0 {
		return nil, false
	}
	return v.results[idx], true
}

// Store records result for (recv, args) unless a matching entry already
// exists; it returns whichever result the table now answers with.
//
// Keys are hashed and matched with the lock released, so Valuer and
// Stringer methods may re-enter the table. Entries added while matching are
// matched before inserting.
func (t *Table) Store(recv any, args []any, result any) any {
	h := keyHash(recv, args)
	s := slot{recv: Is(recv), args: Is(clone(args))}
	v := t.view(h)
	from := 0
	for {
		if idx := v.find(recv, args, from); idx >= 0 {
			return v.results[idx]
		}
		from = len(v.slots)

		t.mu.Lock()
		if len(t.slots) == from {
			t.insert(s, h, result)
			t.mu.Unlock()
			return result
		}
		v = t.viewLocked(h)
		t.mu.Unlock()
	}
}

// LoadOrStore answers (recv, args) from the table, calling compute on a miss.
// compute runs without the lock held so it may re-enter the table; a failed
// compute is returned as is and leaves the table untouched.
func (t *Table) LoadOrStore(recv any, args []any, compute func() (any, error)) (any, error) {
	if v, ok := t.Lookup(recv, args); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	return t.Store(recv, args, v), nil
}

// slotHash is the bucket of a fully pinned slot; ok is false for wildcards.
func slotHash(s slot) (h uint64, ok bool) {
	recv, recvPinned := s.recv.Value()
	args, argsPinned := s.args.Value()
	if !recvPinned || !argsPinned {
		return 0, false
	}
	return keyHash(recv, args), true
}

// insert appends s under t.mu. A pinned slot goes to bucket h.
func (t *Table) insert(s slot, h uint64, result any) {
	idx := len(t.slots)
	t.slots = append(t.slots, s)
	t.results = append(t.results, result)
	_, recvPinned := s.recv.Value()
	_, argsPinned := s.args.Value()
	if !recvPinned || !argsPinned {
		t.wild = append(t.wild, idx)
		return
	}
	if t.index == nil {
		t.index = make(map[uint64][]int)
	}
	t.index[h] = append(t.index[h], idx)
}

// view is what a scan for one hash needs. The table only ever appends, so
// the captured slices stay valid once the lock is released.
type view struct {
	slots   []slot
	results []any
	bucket  []int
	wild    []int
}

func (t *Table) view(h uint64) view {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked(h)
}

func (t *Table) viewLocked(h uint64) view {
	return view{slots: t.slots, results: t.results, bucket: t.index[h], wild: t.wild}
}

// find merges the wildcard list with the hash bucket, both ascending, and
// returns the lowest matching index not below from, or -1.
func (v view) find(recv any, args []any, from int) int {
	i, j := 0, 0
	for i < len(v.wild) || j < len(v.bucket) {
		var idx int
		if j >= len(v.bucket) || (i < len(v.wild) && v.wild[i] < v.bucket[j]) {
			idx = v.wild[i]
			i++
		} else {
			idx = v.bucket[j]
			j++
		}
		if idx >= from && v.slots[idx].matches(recv, args) {
			return idx
		}
	}
	return -1
}

func clone(args []any) []any {
	out := make([]any, len(args))
	copy(out, args)
	return out
}
