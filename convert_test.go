package sparse_test

import (
	"testing"

	sparse "github.com/varphone/nalgebra-sparse"
	"github.com/varphone/nalgebra-sparse/dense"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Coo_toCsr(t *testing.T) {
	t.Run("sums duplicates and sorts lanes", func(t *testing.T) {
		coo, err := sparse.NewCooFromTriplets(
			3, 3,
			[]int{2, 0, 2, 0, 2},
			[]int{2, 1, 0, 1, 2},
			[]float64{1, 2, 3, 4, 5},
		)
		require.NoError(t, err)

		csr := coo.ToCsr()
		assert.Equal(t, 3, csr.NNZ())
		assert.Equal(t, []int{0, 1, 1, 3}, csr.Pattern().Offsets())
		assert.Equal(t, []int{1, 0, 2}, csr.Pattern().Indices())
		assert.InDelta(t, 6.0, csr.At(0, 1), 1e-14)
		assert.InDelta(t, 3.0, csr.At(2, 0), 1e-14)
		assert.InDelta(t, 6.0, csr.At(2, 2), 1e-14)
	})

	t.Run("empty matrix", func(t *testing.T) {
		coo, err := sparse.NewCoo(2, 5)
		require.NoError(t, err)

		csr := coo.ToCsr()
		assert.Equal(t, 0, csr.NNZ())
		assert.Equal(t, 2, csr.NRows())
		assert.Equal(t, 5, csr.NCols())
	})
}

func Test_Coo_toCsc(t *testing.T) {
	coo, err := sparse.NewCooFromTriplets(
		2, 3,
		[]int{0, 1, 0},
		[]int{2, 0, 2},
		[]float64{1, 2, 3},
	)
	require.NoError(t, err)

	csc := coo.ToCsc()
	assert.Equal(t, 2, csc.NNZ())
	assert.InDelta(t, 4.0, csc.At(0, 2), 1e-14)
	assert.InDelta(t, 2.0, csc.At(1, 0), 1e-14)

	indices, values := csc.Col(2)
	assert.Equal(t, []int{0}, indices)
	assert.InDelta(t, 4.0, values[0], 1e-14)
}

func Test_Csr_Csc_roundtrip(t *testing.T) {
	csr, err := sparse.NewCsr(
		3, 4,
		[]int{0, 2, 3, 5},
		[]int{0, 3, 1, 0, 2},
		[]float64{1, 2, 3, 4, 5},
	)
	require.NoError(t, err)

	csc := csr.ToCsc()
	assert.Equal(t, csr.NNZ(), csc.NNZ())
	assert.Equal(t, csr.NRows(), csc.NRows())
	assert.Equal(t, csr.NCols(), csc.NCols())

	back := csc.ToCsr()
	assert.Equal(t, csr.Pattern().Fingerprint(), back.Pattern().Fingerprint())
	assert.Equal(t, csr.Values(), back.Values())
}

func Test_dense_roundtrip(t *testing.T) {
	d, err := dense.FromRowMajor(2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})
	require.NoError(t, err)

	csr := sparse.CsrFromDense(d)
	assert.Equal(t, 3, csr.NNZ())

	back := csr.ToDense()
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, d.At(i, j), back.At(i, j), 1e-14)
		}
	}

	coo := csr.ToCoo()
	assert.Equal(t, csr.NNZ(), coo.NNZ())
	assert.InDelta(t, 3.0, coo.At(1, 1), 1e-14)

	csc := sparse.CscFromDense(d)
	assert.Equal(t, 3, csc.NNZ())
	assert.InDelta(t, 2.0, csc.At(0, 2), 1e-14)
}

func Test_transpose_matchesDense(t *testing.T) {
	csr, err := sparse.NewCsr(
		2, 3,
		[]int{0, 2, 3},
		[]int{0, 2, 1},
		[]float64{1, 2, 3},
	)
	require.NoError(t, err)

	ct := csr.Transpose()
	assert.Equal(t, 3, ct.NRows())
	assert.Equal(t, 2, ct.NCols())

	want := csr.ToDense().T()
	got := ct.ToDense()
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-14)
		}
	}
}
