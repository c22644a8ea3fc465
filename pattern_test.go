package sparse_test

import (
	"errors"
	"testing"

	sparse "github.com/varphone/nalgebra-sparse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewPattern_validation(t *testing.T) {
	tt := []struct {
		name     string
		majorDim int
		minorDim int
		offsets  []int
		indices  []int
		wantErr  error
	}{
		{
			name:     "wrong offsets length",
			majorDim: 3, minorDim: 3,
			offsets: []int{0, 1},
			indices: []int{0},
			wantErr: sparse.ErrInvalidOffsets,
		},
		{
			name:     "first offset not zero",
			majorDim: 2, minorDim: 2,
			offsets: []int{1, 1, 2},
			indices: []int{0, 1},
			wantErr: sparse.ErrInvalidOffsets,
		},
		{
			name:     "last offset does not cover indices",
			majorDim: 2, minorDim: 2,
			offsets: []int{0, 1, 1},
			indices: []int{0, 1},
			wantErr: sparse.ErrInvalidOffsets,
		},
		{
			name:     "decreasing offsets",
			majorDim: 2, minorDim: 3,
			offsets: []int{0, 2, 1},
			indices: []int{0},
			wantErr: sparse.ErrInvalidOffsets,
		},
		{
			name:     "index out of bounds",
			majorDim: 2, minorDim: 2,
			offsets: []int{0, 1, 2},
			indices: []int{0, 5},
			wantErr: sparse.ErrIndexOutOfBounds,
		},
		{
			name:     "negative index",
			majorDim: 1, minorDim: 2,
			offsets: []int{0, 1},
			indices: []int{-1},
			wantErr: sparse.ErrIndexOutOfBounds,
		},
		{
			name:     "duplicate index in lane",
			majorDim: 1, minorDim: 4,
			offsets: []int{0, 3},
			indices: []int{1, 1, 2},
			wantErr: sparse.ErrDuplicateEntry,
		},
		{
			name:     "unsorted lane",
			majorDim: 1, minorDim: 4,
			offsets: []int{0, 3},
			indices: []int{2, 0, 3},
			wantErr: sparse.ErrUnsortedIndices,
		},
		{
			name:     "negative shape",
			majorDim: -1, minorDim: 2,
			offsets: []int{0},
			indices: nil,
			wantErr: sparse.ErrInvalidShape,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			p, err := sparse.NewPattern(tc.majorDim, tc.minorDim, tc.offsets, tc.indices)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.wantErr))
			require.Nil(t, p)
		})
	}
}

func Test_NewPattern_valid(t *testing.T) {
	p, err := sparse.NewPattern(3, 4, []int{0, 2, 2, 4}, []int{0, 3, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, 3, p.MajorDim())
	assert.Equal(t, 4, p.MinorDim())
	assert.Equal(t, 4, p.NNZ())

	assert.Equal(t, []int{0, 3}, p.Lane(0))
	assert.Empty(t, p.Lane(1))
	assert.Equal(t, []int{1, 2}, p.Lane(2))

	assert.True(t, p.Contains(0, 3))
	assert.False(t, p.Contains(1, 0))
	assert.False(t, p.Contains(0, 2))

	k, ok := p.EntryIndex(2, 2)
	require.True(t, ok)
	assert.Equal(t, 3, k)
}

func Test_Pattern_transpose(t *testing.T) {
	p, err := sparse.NewPattern(2, 3, []int{0, 2, 3}, []int{0, 2, 1})
	require.NoError(t, err)

	pt := p.Transpose()
	assert.Equal(t, 3, pt.MajorDim())
	assert.Equal(t, 2, pt.MinorDim())
	assert.Equal(t, p.NNZ(), pt.NNZ())

	// every (i, j) of p must be (j, i) of pt
	for major := 0; major < p.MajorDim(); major++ {
		for _, minor := range p.Lane(major) {
			assert.True(t, pt.Contains(minor, major))
		}
	}

	back := pt.Transpose()
	assert.Equal(t, p.Fingerprint(), back.Fingerprint())
}

func Test_Pattern_fingerprint(t *testing.T) {
	a, err := sparse.NewPattern(2, 2, []int{0, 1, 2}, []int{0, 1})
	require.NoError(t, err)

	b, err := sparse.NewPattern(2, 2, []int{0, 1, 2}, []int{0, 1})
	require.NoError(t, err)

	c, err := sparse.NewPattern(2, 2, []int{0, 1, 2}, []int{1, 0})
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
