package sparse_test

import (
	"errors"
	"testing"

	sparse "github.com/varphone/nalgebra-sparse"
	"github.com/varphone/nalgebra-sparse/dense"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compare(t *testing.T) {
	t.Run("sparse vs dense match", func(t *testing.T) {
		d, err := dense.FromRowMajor(2, 2, []float64{1, 0, 0, 2})
		require.NoError(t, err)

		csr := sparse.CsrFromDense(d)

		mismatch, err := sparse.Compare(csr, d, sparse.Exact())
		require.NoError(t, err)
		assert.Nil(t, mismatch)
		assert.True(t, sparse.EqualApprox(csr, d, sparse.Exact()))
	})

	t.Run("reports first mismatch", func(t *testing.T) {
		a, err := dense.FromRowMajor(2, 2, []float64{1, 0, 0, 2})
		require.NoError(t, err)

		b, err := dense.FromRowMajor(2, 2, []float64{1, 0, 3, 2})
		require.NoError(t, err)

		mismatch, err := sparse.Compare(a, b, sparse.Exact())
		require.NoError(t, err)
		require.NotNil(t, mismatch)
		assert.Equal(t, 1, mismatch.Row)
		assert.Equal(t, 0, mismatch.Col)
		assert.InDelta(t, 0.0, mismatch.Got, 1e-14)
		assert.InDelta(t, 3.0, mismatch.Want, 1e-14)
	})

	t.Run("tolerances", func(t *testing.T) {
		a, err := dense.FromRowMajor(1, 1, []float64{100.0005})
		require.NoError(t, err)

		b, err := dense.FromRowMajor(1, 1, []float64{100})
		require.NoError(t, err)

		assert.False(t, sparse.EqualApprox(a, b, sparse.Exact()))
		assert.False(t, sparse.EqualApprox(a, b, sparse.Tolerance{Absolute: 1e-4}))
		assert.True(t, sparse.EqualApprox(a, b, sparse.Tolerance{Absolute: 1e-3}))
		assert.True(t, sparse.EqualApprox(a, b, sparse.Tolerance{Relative: 1e-5}))
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := sparse.Compare(sparse.CsrIdentity(2), sparse.CsrIdentity(3), sparse.Exact())
		require.Error(t, err)
		require.True(t, errors.Is(err, sparse.ErrShapeMismatch))

		assert.False(t, sparse.EqualApprox(sparse.CsrIdentity(2), sparse.CsrIdentity(3), sparse.Exact()))
	})
}
