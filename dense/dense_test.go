package dense_test

import (
	"errors"
	"testing"

	"github.com/varphone/nalgebra-sparse/dense"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_constructors(t *testing.T) {
	t.Run("zeros", func(t *testing.T) {
		m, err := dense.Zeros(2, 3)
		require.NoError(t, err)

		rows, cols := m.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 3, cols)
		assert.InDelta(t, 0.0, m.At(1, 2), 1e-14)
	})

	t.Run("negative shape", func(t *testing.T) {
		_, err := dense.Zeros(-1, 2)
		require.Error(t, err)
		require.True(t, errors.Is(err, dense.ErrInvalidShape))
	})

	t.Run("row major layout", func(t *testing.T) {
		m, err := dense.FromRowMajor(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		require.NoError(t, err)

		assert.InDelta(t, 2.0, m.At(0, 1), 1e-14)
		assert.InDelta(t, 4.0, m.At(1, 0), 1e-14)
		assert.InDelta(t, 6.0, m.At(1, 2), 1e-14)

		// column-major backing
		assert.InDelta(t, 1.0, m.Data()[0], 1e-14)
		assert.InDelta(t, 4.0, m.Data()[1], 1e-14)
	})

	t.Run("data length mismatch", func(t *testing.T) {
		_, err := dense.FromColumnMajor(2, 2, []float64{1, 2, 3})
		require.Error(t, err)
		require.True(t, errors.Is(err, dense.ErrDataLengthMismatch))
	})
}

func Test_mul(t *testing.T) {
	a, err := dense.FromRowMajor(2, 3, []float64{
		1, 2, 0,
		0, 1, 4,
	})
	require.NoError(t, err)

	b, err := dense.FromRowMajor(3, 2, []float64{
		1, 0,
		2, 1,
		0, 3,
	})
	require.NoError(t, err)

	c, err := dense.Mul(a, b)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, c.At(0, 0), 1e-14)
	assert.InDelta(t, 2.0, c.At(0, 1), 1e-14)
	assert.InDelta(t, 2.0, c.At(1, 0), 1e-14)
	assert.InDelta(t, 13.0, c.At(1, 1), 1e-14)

	_, err = dense.Mul(a, a)
	require.Error(t, err)
	require.True(t, errors.Is(err, dense.ErrShapeMismatch))
}

func Test_transpose_swapRows(t *testing.T) {
	m, err := dense.FromRowMajor(2, 2, []float64{
		1, 2,
		3, 4,
	})
	require.NoError(t, err)

	mt := m.T()
	assert.InDelta(t, 3.0, mt.At(0, 1), 1e-14)
	assert.InDelta(t, 2.0, mt.At(1, 0), 1e-14)

	m.SwapRows(0, 1)
	assert.InDelta(t, 3.0, m.At(0, 0), 1e-14)
	assert.InDelta(t, 1.0, m.At(1, 0), 1e-14)
}

func Test_clone_isIndependent(t *testing.T) {
	m := dense.Identity(2)
	cp := m.Clone()
	cp.Set(0, 0, 42)

	assert.InDelta(t, 1.0, m.At(0, 0), 1e-14)
	assert.InDelta(t, 42.0, cp.At(0, 0), 1e-14)
}
