package sparse_test

import (
	"testing"

	sparse "github.com/varphone/nalgebra-sparse"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewPatternCache(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cache, err := sparse.NewPatternCache()
		require.NoError(t, err)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("rejects bad options", func(t *testing.T) {
		_, err := sparse.NewPatternCache(sparse.WithShards(0))
		require.Error(t, err)

		_, err = sparse.NewPatternCache(sparse.WithCapacity(1))
		require.Error(t, err)
	})

	t.Run("cached pattern is isolated from callers", func(t *testing.T) {
		cache, err := sparse.NewPatternCache(
			sparse.WithCapacity(1<<20),
			sparse.WithLogger(logr.Discard()),
		)
		require.NoError(t, err)

		gen := sparse.NewGen(3)
		a := gen.Csr(5, 5, 0.4, 2)
		b := gen.Csr(5, 5, 0.4, 2)

		first, err := sparse.SpMMWithCache(cache, a, b)
		require.NoError(t, err)

		// corrupting the returned matrix structure must not poison the cache
		first.Pattern().Indices()[0] = 4

		second, err := sparse.SpMMWithCache(cache, a, b)
		require.NoError(t, err)

		want, err := sparse.SpMM(a, b)
		require.NoError(t, err)
		assert.Equal(t, want.Pattern().Offsets(), second.Pattern().Offsets())
		assert.Equal(t, want.Pattern().Indices(), second.Pattern().Indices())
	})
}
