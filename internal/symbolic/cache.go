// Package symbolic holds the cost-bounded LRU cache backing the reuse of
// symbolic sparse product results across repeated multiplications.
package symbolic

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pbnjay/memory"
	"github.com/pkg/errors"
)

var ErrIllegalCapacity = errors.New("illegal cache capacity")
var ErrInvalidSharding = errors.New("invalid sharding")

// OnEvict is notified with the key and cost of every evicted entry.
type OnEvict func(key uint64, cost uint64)

type Cache struct {
	maxCost  uint64
	capacity uint64
	shards   []*cacheShard
}

func NewCache(shards int, maxTotalCost uint64, onEvict OnEvict) (*Cache, error) {
	if maxTotalCost <= 2 {
		return nil, ErrIllegalCapacity
	}

	if shards < 1 {
		return nil, ErrInvalidSharding
	}

	c := Cache{
		maxCost:  maxTotalCost,
		capacity: uint64(shards),
		shards:   make([]*cacheShard, shards),
	}

	shardMaxCost := maxTotalCost / c.capacity
	for i := range c.shards {
		c.shards[i] = newCacheShard(shardMaxCost, onEvict)
	}

	return &c, nil
}

// DefaultCapacity derives a cache budget from the total system memory,
// falling back to 64 MiB when it cannot be determined.
func DefaultCapacity() uint64 {
	total := memory.TotalMemory()
	if total == 0 {
		return 64 << 20
	}

	return total / 256
}

// Add stores value under key with the given cost and returns true if
// eviction happened
func (c *Cache) Add(key uint64, value interface{}, cost uint64) bool {
	return c.getShard(key).add(key, value, cost)
}

func (c *Cache) Get(key uint64) (interface{}, bool) {
	return c.getShard(key).get(key)
}

func (c *Cache) Remove(key uint64) bool {
	return c.getShard(key).remove(key)
}

func (c *Cache) Len() int {
	var n int
	for _, shard := range c.shards {
		n += shard.len()
	}

	return n
}

func (c *Cache) getShard(key uint64) *cacheShard {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, key)
	hash := xxhash.Sum64(bs)
	return c.shards[hash%c.capacity]
}
