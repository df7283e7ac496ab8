package cache_test

import (
	"bytes"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lrukit/pkg/cache"
	"github.com/dmitrymomot/lrukit/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("valid capacity", func(t *testing.T) {
		c, err := cache.New[string, int](3)
		require.NoError(t, err)
		assert.Equal(t, 3, c.Cap())
		assert.Equal(t, 0, c.Len())
	})

	for _, capacity := range []int{0, -1} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			c, err := cache.New[string, int](capacity)
			assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
			assert.Nil(t, c)
		})
	}

	for _, capacity := range []int{math.MaxInt32 + 1, math.MaxInt} {
		t.Run(fmt.Sprintf("large capacity %d", capacity), func(t *testing.T) {
			c, err := cache.New[int, string](capacity)
			require.NoError(t, err)
			assert.Equal(t, capacity, c.Cap())
			assert.Equal(t, 0, c.Len())

			_, evicted := c.Put(1, "One")
			assert.False(t, evicted)
			val, ok := c.Get(1)
			assert.True(t, ok)
			assert.Equal(t, "One", val)
			assert.Equal(t, 1, c.Len())
			require.NoError(t, c.Verify())
		})
	}

	t.Run("empty cache does not reserve capacity", func(t *testing.T) {
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)

		c, err := cache.New[int, [64]byte](1 << 22)

		runtime.ReadMemStats(&after)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
	})

	t.Run("must new panics", func(t *testing.T) {
		assert.Panics(t, func() { cache.MustNew[string, int](0) })
		assert.NotPanics(t, func() { cache.MustNew[string, int](1) })
	})
}

func TestLRU_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.MustNew[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
			val, ok := c.Get(key)
			assert.True(t, ok)
			assert.Equal(t, want, val)
		}
		assert.Equal(t, 3, c.Len())
	})

	t.Run("miss has no effect", func(t *testing.T) {
		c := cache.MustNew[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)
		before := c.Keys()

		for range 3 {
			val, ok := c.Get("missing")
			assert.False(t, ok)
			assert.Equal(t, 0, val)
		}

		assert.Equal(t, before, c.Keys())
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, uint64(3), c.Stats().Misses)
	})

	t.Run("update is not an insert", func(t *testing.T) {
		c := cache.MustNew[string, int](3)

		c.Put("a", 1)
		_, evicted := c.Put("a", 2)
		assert.False(t, evicted)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("touch without value change moves to front", func(t *testing.T) {
		c := cache.MustNew[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		c.Put("a", 1)
		assert.Equal(t, []string{"a", "b"}, c.Keys())
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Run("evicts least recently inserted", func(t *testing.T) {
		c := cache.MustNew[string, int](3)

		for i, key := range []string{"a", "b", "c"} {
			_, evicted := c.Put(key, i)
			assert.False(t, evicted)
		}

		key, evicted := c.Put("d", 4)
		assert.True(t, evicted)
		assert.Equal(t, "a", key)

		assert.False(t, c.Contains("a"))
		assert.Equal(t, []string{"d", "c", "b"}, c.Keys())
		assert.Equal(t, 3, c.Len())
	})

	t.Run("get updates recency", func(t *testing.T) {
		c := cache.MustNew[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		c.Get("a")
		key, evicted := c.Put("d", 4)
		assert.True(t, evicted)
		assert.Equal(t, "b", key)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
	})

	t.Run("put updates recency", func(t *testing.T) {
		c := cache.MustNew[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		c.Put("a", 10)
		key, _ := c.Put("d", 4)
		assert.Equal(t, "b", key)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 10, val)
	})

	t.Run("capacity of 1", func(t *testing.T) {
		c := cache.MustNew[string, int](1)

		c.Put("a", 1)
		key, evicted := c.Put("b", 2)
		assert.True(t, evicted)
		assert.Equal(t, "a", key)

		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRU_Scenario(t *testing.T) {
	c := cache.MustNew[int, string](3)
	c.Put(1, "One")
	c.Put(2, "Two")
	c.Put(3, "Three")
	assert.Equal(t, "{1=One, 2=Two, 3=Three}", c.String())

	val, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "One", val)
	assert.Equal(t, "{2=Two, 3=Three, 1=One}", c.String())

	key, evicted := c.Put(4, "Four")
	assert.True(t, evicted)
	assert.Equal(t, 2, key)
	assert.Equal(t, "{3=Three, 1=One, 4=Four}", c.String())

	val, ok = c.Get(4)
	require.True(t, ok)
	assert.Equal(t, "Four", val)
	assert.Equal(t, 3, c.Len())

	_, evicted = c.Put(3, "THREE")
	assert.False(t, evicted)
	key, evicted = c.Put(5, "Five")
	assert.True(t, evicted)
	assert.Equal(t, 1, key)
	assert.Equal(t, "{4=Four, 3=THREE, 5=Five}", c.String())
}

func TestLRU_Remove(t *testing.T) {
	c := cache.MustNew[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	val, ok := c.Remove("b")
	assert.True(t, ok)
	assert.Equal(t, 2, val)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"c", "a"}, c.Keys())

	_, ok = c.Get("b")
	assert.False(t, ok)

	val, ok = c.Remove("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, val)

	_, evicted := c.Put("d", 4)
	assert.False(t, evicted, "removal frees capacity")
	require.NoError(t, c.Verify())
}

func TestLRU_PeekContainsOldest(t *testing.T) {
	c := cache.MustNew[string, int](3)

	_, _, ok := c.Oldest()
	assert.False(t, ok)

	c.Put("a", 1)
	c.Put("b", 2)

	val, ok := c.Peek("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("z"))
	assert.Equal(t, []string{"b", "a"}, c.Keys(), "peek and contains do not touch recency")

	key, val, ok := c.Oldest()
	assert.True(t, ok)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, val)

	_, ok = c.Peek("z")
	assert.False(t, ok)
}

func TestLRU_EntriesAndClear(t *testing.T) {
	c := cache.MustNew[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, []cache.Entry[string, int]{
		{Key: "b", Value: 2},
		{Key: "a", Value: 1},
	}, c.Entries())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
	assert.Equal(t, uint64(2), c.Stats().Cleared)
	assert.Zero(t, c.Stats().Removals)
	assert.Equal(t, "{}", c.String())
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("c", 3)
	assert.Equal(t, []string{"c"}, c.Keys())
	require.NoError(t, c.Verify())
}

func TestLRU_EvictCallback(t *testing.T) {
	type event struct {
		key    string
		value  int
		reason cache.EvictReason
	}
	var events []event

	c := cache.MustNew(2, cache.WithEvictCallback(func(key string, value int, reason cache.EvictReason) {
		events = append(events, event{key, value, reason})
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Remove("b")
	c.Put("d", 4)
	c.Clear()

	assert.Equal(t, []event{
		{"a", 1, cache.ReasonCapacity},
		{"b", 2, cache.ReasonRemoved},
		{"d", 4, cache.ReasonCleared},
		{"c", 3, cache.ReasonCleared},
	}, events)
}

func TestLRU_Stats(t *testing.T) {
	c := cache.MustNew[string, int](2)
	c.Put("a", 1)
	c.Put("a", 2)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("c")
	c.Get("a")
	c.Remove("c")

	assert.Equal(t, cache.Stats{
		Hits:       1,
		Misses:     1,
		Insertions: 3,
		Updates:    1,
		Evictions:  1,
		Removals:   1,
	}, c.Stats())
	assert.InDelta(t, 0.5, c.Stats().HitRatio(), 0.0001)
	assert.Zero(t, cache.Stats{}.HitRatio())
}

func TestLRU_Logger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevelName("debug"))

	c := cache.MustNew(1, cache.WithLogger[string, int](log))
	c.Put("a", 1)
	c.Put("b", 2)

	assert.Contains(t, buf.String(), "evicted least recently used entry")
	assert.Contains(t, buf.String(), `"key":"a"`)
}

func TestEvictReason_String(t *testing.T) {
	assert.Equal(t, "capacity", cache.ReasonCapacity.String())
	assert.Equal(t, "removed", cache.ReasonRemoved.String())
	assert.Equal(t, "cleared", cache.ReasonCleared.String())
	assert.Equal(t, "unknown", cache.EvictReason(0).String())
}

// TestLRU_Properties drives random operations and checks the capacity,
// bijection and recency laws after every step against a reference model.
func TestLRU_Properties(t *testing.T) {
	const capacity = 8
	rng := rand.New(rand.NewPCG(1, 2))
	c := cache.MustNew[int, int](capacity)

	var model []int // most recent first
	touch := func(k int) {
		for i, m := range model {
			if m == k {
				model = append(model[:i], model[i+1:]...)
				break
			}
		}
		model = append([]int{k}, model...)
	}
	drop := func(k int) {
		for i, m := range model {
			if m == k {
				model = append(model[:i], model[i+1:]...)
				return
			}
		}
	}

	for i := range 5000 {
		k := rng.IntN(capacity * 2)
		switch rng.IntN(3) {
		case 0:
			_, ok := c.Get(k)
			assert.Equal(t, containsKey(model, k), ok)
			if ok {
				touch(k)
				assert.Equal(t, k, c.Keys()[0])
			}
		case 1:
			wasFull := len(model) == capacity && !containsKey(model, k)
			victim, evicted := c.Put(k, i)
			assert.Equal(t, wasFull, evicted)
			if evicted {
				assert.Equal(t, model[len(model)-1], victim)
				drop(victim)
			}
			touch(k)
			assert.Equal(t, k, c.Keys()[0])
		case 2:
			_, ok := c.Remove(k)
			assert.Equal(t, containsKey(model, k), ok)
			drop(k)
		}

		require.LessOrEqual(t, c.Len(), c.Cap())
		require.Equal(t, orNil(model), orNil(c.Keys()))
		require.NoError(t, c.Verify())
	}
}

func containsKey(keys []int, k int) bool {
	for _, m := range keys {
		if m == k {
			return true
		}
	}
	return false
}

func orNil(keys []int) []int {
	if len(keys) == 0 {
		return nil
	}
	return keys
}

func TestLRU_Concurrent(t *testing.T) {
	c := cache.MustNew[int, int](50)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 1000 {
				k := (g*1000 + i) % 100
				switch i % 3 {
				case 0:
					c.Put(k, i)
				case 1:
					c.Get(k)
				default:
					c.Remove(k)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), c.Cap())
	require.NoError(t, c.Verify())
}

func BenchmarkLRU_Put(b *testing.B) {
	c := cache.MustNew[int, int](1000)

	b.ResetTimer()
	for i := range b.N {
		c.Put(i%2000, i)
	}
}

func BenchmarkLRU_Get(b *testing.B) {
	c := cache.MustNew[int, int](1000)
	for i := range 1000 {
		c.Put(i, i)
	}

	b.ResetTimer()
	for i := range b.N {
		c.Get(i % 1000)
	}
}

func BenchmarkLRU_Mixed(b *testing.B) {
	c := cache.MustNew[int, int](1000)

	b.ResetTimer()
	for i := range b.N {
		if i%2 == 0 {
			c.Put(i%2000, i)
		} else {
			c.Get(i % 2000)
		}
	}
}
