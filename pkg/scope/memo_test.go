package scope

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemo_ReusesChildPerParent(t *testing.T) {
	root := New(defaults()).Root()
	calls := 0
	memo := NewMemo(Transform(func(cur Map[int]) Map[int] {
		calls++
		return Map[int]{"a": cur["a"] + 1}
	}), false)

	first := memo.Apply(root)
	second := memo.Apply(root)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), memo.Hits())
	assert.Equal(t, Map[int]{"a": 2, "b": 2}, first.Read())
}

func TestMemo_RecomputesForNewParent(t *testing.T) {
	root := New(defaults()).Root()
	memo := NewMemo(Transform(func(cur Map[int]) Map[int] {
		return Map[int]{"a": cur["a"] + 1}
	}), false)

	underRoot := memo.Apply(root)
	other := root.Provide(Set("a", 100))
	underOther := memo.Apply(other)

	assert.NotSame(t, underRoot, underOther)
	assert.Equal(t, 2, underRoot.Read()["a"])
	assert.Equal(t, 101, underOther.Read()["a"])
	assert.Equal(t, 2, memo.Len())
}

func TestMemo_Isolated(t *testing.T) {
	root := New(defaults()).Root()
	outer := root.Provide(Set("b", 40))
	memo := NewMemo(Set("c", 3), true)

	assert.Equal(t, Map[int]{"a": 1, "b": 2, "c": 3}, memo.Apply(outer).Read())
}

func TestMemo_Concurrent(t *testing.T) {
	root := New(defaults()).Root()
	memo := NewMemo(Set("a", 9), false)

	var wg sync.WaitGroup
	got := make([]*Scope[int], 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = memo.Apply(root)
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, uint64(len(got)-1), memo.Hits())
}

func TestMemo_EvictsOldestParent(t *testing.T) {
	root := New(defaults()).Root()
	memo := NewMemo(Set("a", 9), false)

	first := root.Provide(Set("b", 0))
	memo.Apply(first)
	for i := 0; i < 1000; i++ {
		memo.Apply(root.Provide(Set("b", i)))
	}
	assert.Equal(t, DefaultMemoLimit, memo.Len())

	hits := memo.Hits()
	got := memo.Apply(first)
	assert.Equal(t, hits, memo.Hits(), "evicted parent should be recomputed")
	assert.Equal(t, 9, got.Read()["a"])
	assert.Equal(t, DefaultMemoLimit, memo.Len())
}
