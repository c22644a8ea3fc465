package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_cacheShard(t *testing.T) {
	t.Run("it evicts only when the cost limit is reached", func(t *testing.T) {
		evicted := 0
		var evictedKeys []uint64

		onEvict := func(k uint64, cost uint64) {
			evicted++
			evictedKeys = append(evictedKeys, k)
		}

		shard := newCacheShard(4*20, onEvict)
		assert.False(t, shard.add(1, "a", 20))
		assert.False(t, shard.add(33, "b", 20))
		assert.False(t, shard.add(99, "c", 20))
		assert.False(t, shard.add(134, "d", 20))
		assert.Equal(t, 0, evicted)

		// touch every key except 99 so it becomes the eviction candidate
		for _, k := range []uint64{1, 33, 134} {
			v, ok := shard.get(k)
			require.True(t, ok)
			require.NotNil(t, v)
		}

		assert.True(t, shard.add(200, "e", 20))
		assert.Equal(t, 1, evicted)
		assert.Equal(t, []uint64{99}, evictedKeys)

		_, ok := shard.get(99)
		assert.False(t, ok)
	})

	t.Run("replacing a key adjusts the total cost", func(t *testing.T) {
		shard := newCacheShard(100, nil)
		assert.False(t, shard.add(7, "small", 10))
		assert.False(t, shard.add(7, "bigger", 60))
		assert.Equal(t, 1, shard.len())
		assert.Equal(t, uint64(60), shard.totalCost)

		v, ok := shard.get(7)
		require.True(t, ok)
		assert.Equal(t, "bigger", v)
	})

	t.Run("remove frees the slot", func(t *testing.T) {
		shard := newCacheShard(100, nil)
		shard.add(5, "x", 10)
		require.True(t, shard.remove(5))
		require.False(t, shard.remove(5))
		assert.Equal(t, 0, shard.len())
		assert.Equal(t, uint64(0), shard.totalCost)
	})
}

func Test_Cache(t *testing.T) {
	t.Run("rejects bad configuration", func(t *testing.T) {
		_, err := NewCache(0, 1000, nil)
		require.Error(t, err)
		assert.Equal(t, ErrInvalidSharding, err)

		_, err = NewCache(4, 1, nil)
		require.Error(t, err)
		assert.Equal(t, ErrIllegalCapacity, err)
	})

	t.Run("stores and retrieves across shards", func(t *testing.T) {
		c, err := NewCache(4, 1<<20, nil)
		require.NoError(t, err)

		for k := uint64(0); k < 100; k++ {
			c.Add(k, k*2, 8)
		}

		assert.Equal(t, 100, c.Len())

		for k := uint64(0); k < 100; k++ {
			v, ok := c.Get(k)
			require.True(t, ok)
			assert.Equal(t, k*2, v)
		}

		require.True(t, c.Remove(42))
		_, ok := c.Get(42)
		assert.False(t, ok)
	})
}

func Test_DefaultCapacity(t *testing.T) {
	assert.True(t, DefaultCapacity() > 0)
}
