package memo_test

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/functools/memo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_LoadOrStoreComputesOnce(t *testing.T) {
	table := memo.NewTable()
	count := 0
	compute := func() (any, error) {
		count++
		return count, nil
	}

	v, err := table.LoadOrStore(nil, []any{1, 2}, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = table.LoadOrStore(nil, []any{1, 2}, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v) // cached
	assert.Equal(t, 1, count)

	v, _ = table.LoadOrStore(nil, []any{1, 2, 3}, compute)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, table.Len())
}

func TestTable_ReceiverIsPartOfTheKey(t *testing.T) {
	table := memo.NewTable()
	table.Store("a", []any{1}, "under a")
	table.Store("b", []any{1}, "under b")

	v, ok := table.Lookup("a", []any{1})
	require.True(t, ok)
	assert.Equal(t, "under a", v)
	v, ok = table.Lookup("b", []any{1})
	require.True(t, ok)
	assert.Equal(t, "under b", v)
	_, ok = table.Lookup(nil, []any{1})
	assert.False(t, ok)
}

func TestTable_FailedComputeIsNotStored(t *testing.T) {
	table := memo.NewTable()
	boom := errors.New("boom")

	_, err := table.LoadOrStore(nil, []any{1}, func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, table.Len())

	v, err := table.LoadOrStore(nil, []any{1}, func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestTable_NaNHitsAndSignedZeroMisses(t *testing.T) {
	table := memo.NewTable()
	count := 0
	compute := func() (any, error) {
		count++
		return count, nil
	}

	_, _ = table.LoadOrStore(nil, []any{math.NaN()}, compute)
	_, _ = table.LoadOrStore(nil, []any{math.NaN()}, compute)
	assert.Equal(t, 1, count)

	_, _ = table.LoadOrStore(nil, []any{0.0}, compute)
	_, _ = table.LoadOrStore(nil, []any{math.Copysign(0, -1)}, compute)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, table.Len())
}

func TestTable_SeedsAnswerFirst(t *testing.T) {
	table := memo.NewTable(
		memo.Seed([]any{0, nil, "str"}, 1, 2),
		memo.Seed(false, 2),
	)

	v, ok := table.Lookup(nil, []any{1, 2})
	require.True(t, ok)
	assert.Equal(t, []any{0, nil, "str"}, v)

	v, ok = table.Lookup("any receiver", []any{2})
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = table.Lookup(nil, []any{1})
	assert.False(t, ok)
}

func TestTable_WildcardSeedsKeepInsertionOrder(t *testing.T) {
	table := memo.NewTable(
		memo.Entry{Recv: memo.Is("admin"), Result: "admin answer"},
		memo.Seed("pinned answer", 7),
		memo.Entry{Result: "fallback"},
	)

	v, _ := table.Lookup("admin", []any{7})
	assert.Equal(t, "admin answer", v, "earlier wildcard entry wins over later pinned entry")

	v, _ = table.Lookup("guest", []any{7})
	assert.Equal(t, "pinned answer", v)

	v, _ = table.Lookup("guest", []any{"anything"})
	assert.Equal(t, "fallback", v)

	table.Store("guest", []any{8}, "never reached")
	v, _ = table.Lookup("guest", []any{8})
	assert.Equal(t, "fallback", v)
}

func TestTable_StoreKeepsFirstResult(t *testing.T) {
	var table memo.Table
	assert.Equal(t, "first", table.Store(nil, []any{1}, "first"))
	assert.Equal(t, "first", table.Store(nil, []any{1}, "second"))
	assert.Equal(t, 1, table.Len())
}

func TestTable_StoredArgsAreCopied(t *testing.T) {
	table := memo.NewTable()
	args := []any{1}
	table.Store(nil, args, "one")
	args[0] = 2

	_, ok := table.Lookup(nil, []any{2})
	assert.False(t, ok)
	v, ok := table.Lookup(nil, []any{1})
	require.True(t, ok)
	assert.Equal(t, "one", v)
}

func TestTable_ConcurrentStoresInsertOnce(t *testing.T) {
	table := memo.NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = table.LoadOrStore(nil, []any{"key"}, func() (any, error) {
				return i, nil
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, table.Len())
}

// reentrant unwraps to whatever the table answers for "inner".
type reentrant struct {
	table *memo.Table
}

func (r reentrant) ValueOf() any {
	v, _ := r.table.Lookup(nil, []any{"inner"})
	return v
}

func TestTable_ValuerMayReenterTheTable(t *testing.T) {
	table := memo.NewTable(memo.Seed("unwrapped", "inner"))
	key := []any{reentrant{table: table}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Equal(t, "outer", table.Store(nil, key, "outer"))

		v, err := table.LoadOrStore(nil, key, func() (any, error) {
			return "recomputed", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "outer", v)

		v, ok := table.Lookup(nil, []any{"unwrapped"})
		assert.True(t, ok)
		assert.Equal(t, "outer", v)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("table lookup deadlocked")
	}
	assert.Equal(t, 2, table.Len())
}

func TestTable_StoreSeesEntriesAddedDuringMatch(t *testing.T) {
	table := memo.NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table.Store(nil, []any{i % 4}, i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, table.Len())
	for k := 0; k < 4; k++ {
		v, ok := table.Lookup(nil, []any{k})
		require.True(t, ok)
		assert.Equal(t, k, v.(int)%4)
	}
}

func TestPattern_Matches(t *testing.T) {
	assert.True(t, memo.Any().Matches("anything"))
	assert.True(t, memo.Is([]any{1.0}).Matches([]any{1.0}))
	assert.False(t, memo.Is(1).Matches(int64(1)))

	v, pinned := memo.Is("x").Value()
	assert.True(t, pinned)
	assert.Equal(t, "x", v)
	_, pinned = memo.Any().Value()
	assert.False(t, pinned)
}
