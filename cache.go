package sparse

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/go-logr/logr"

	"github.com/varphone/nalgebra-sparse/internal/symbolic"
)

const defaultCacheShards = 8

// PatternCache memoizes the symbolic phase of sparse products. Repeated
// multiplications over operands with identical sparsity structure (a common
// situation in iterative schemes) skip the pattern computation entirely.
//
// The cache is bounded by an approximate byte budget and evicts least
// recently used patterns first. It is safe for concurrent use.
type PatternCache struct {
	c   *symbolic.Cache
	log logr.Logger
}

type cacheConfig struct {
	shards   int
	capacity uint64
	log      logr.Logger
}

type CacheOption func(*cacheConfig)

// WithShards overrides the number of internal cache shards.
func WithShards(n int) CacheOption {
	return func(cfg *cacheConfig) {
		cfg.shards = n
	}
}

// WithCapacity overrides the approximate byte budget of the cache. The
// default is derived from the total system memory.
func WithCapacity(maxBytes uint64) CacheOption {
	return func(cfg *cacheConfig) {
		cfg.capacity = maxBytes
	}
}

// WithLogger routes cache diagnostics (hits, misses, evictions) to l at
// verbosity 1.
func WithLogger(l logr.Logger) CacheOption {
	return func(cfg *cacheConfig) {
		cfg.log = l
	}
}

func NewPatternCache(opts ...CacheOption) (*PatternCache, error) {
	cfg := cacheConfig{
		shards:   defaultCacheShards,
		capacity: symbolic.DefaultCapacity(),
		log:      logr.Discard(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	log := cfg.log
	onEvict := func(key uint64, cost uint64) {
		log.V(1).Info("pattern evicted", "key", key, "cost", cost)
	}

	c, err := symbolic.NewCache(cfg.shards, cfg.capacity, onEvict)
	if err != nil {
		return nil, err
	}

	return &PatternCache{c: c, log: log}, nil
}

// Len reports the number of cached patterns.
func (pc *PatternCache) Len() int {
	return pc.c.Len()
}

func (pc *PatternCache) lookup(key uint64) (*Pattern, bool) {
	v, ok := pc.c.Get(key)
	if !ok {
		pc.log.V(1).Info("pattern cache miss", "key", key)
		return nil, false
	}

	pc.log.V(1).Info("pattern cache hit", "key", key)
	return v.(*Pattern).clone(), true
}

func (pc *PatternCache) store(key uint64, p *Pattern) {
	pc.c.Add(key, p.clone(), patternCost(p))
}

// patternCost approximates the in-memory footprint of a pattern.
func patternCost(p *Pattern) uint64 {
	return uint64(8*(len(p.offsets)+len(p.indices)) + 32)
}

// productCacheKey derives a cache key from the fingerprints of both operand
// patterns. Order matters: A*B and B*A hash differently.
func productCacheKey(pa, pb *Pattern) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], pa.Fingerprint())
	binary.LittleEndian.PutUint64(buf[8:], pb.Fingerprint())
	return xxhash.Sum64(buf[:])
}
