package sparse

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

var ErrInvalidOffsets = errors.New("major offsets are invalid")
var ErrIndexOutOfBounds = errors.New("minor index out of bounds")
var ErrUnsortedIndices = errors.New("minor indices are not sorted")
var ErrDuplicateEntry = errors.New("duplicate entry")
var ErrInvalidShape = errors.New("invalid matrix shape")

// Pattern is the sparsity structure shared by compressed matrices. It is
// expressed in major/minor form: for a CSR matrix the major dimension is
// rows, for a CSC matrix it is columns.
//
// Invariants held by any Pattern obtained from this package:
//   - len(offsets) == majorDim+1, offsets[0] == 0, offsets non-decreasing
//   - offsets[majorDim] == len(indices)
//   - indices within each major lane are strictly increasing
//   - every index is < minorDim
type Pattern struct {
	majorDim int
	minorDim int
	offsets  []int
	indices  []int
}

// NewPattern validates raw offsets and indices and assembles a Pattern.
// The given slices are not copied.
func NewPattern(majorDim, minorDim int, offsets, indices []int) (*Pattern, error) {
	if majorDim < 0 || minorDim < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", majorDim, minorDim)
	}

	if len(offsets) != majorDim+1 {
		return nil, errors.Wrapf(ErrInvalidOffsets, "expected %d offsets, got %d", majorDim+1, len(offsets))
	}

	if offsets[0] != 0 {
		return nil, errors.Wrapf(ErrInvalidOffsets, "first offset must be 0, got %d", offsets[0])
	}

	if offsets[majorDim] != len(indices) {
		return nil, errors.Wrapf(
			ErrInvalidOffsets,
			"last offset %d does not match %d indices", offsets[majorDim], len(indices),
		)
	}

	for lane := 0; lane < majorDim; lane++ {
		lo, hi := offsets[lane], offsets[lane+1]
		if lo > hi {
			return nil, errors.Wrapf(ErrInvalidOffsets, "lane %d has decreasing offsets %d > %d", lane, lo, hi)
		}

		for k := lo; k < hi; k++ {
			if indices[k] < 0 || indices[k] >= minorDim {
				return nil, errors.Wrapf(ErrIndexOutOfBounds, "lane %d index %d, minor dim %d", lane, indices[k], minorDim)
			}

			if k > lo {
				if indices[k] == indices[k-1] {
					return nil, errors.Wrapf(ErrDuplicateEntry, "lane %d index %d", lane, indices[k])
				}
				if indices[k] < indices[k-1] {
					return nil, errors.Wrapf(ErrUnsortedIndices, "lane %d: %d after %d", lane, indices[k], indices[k-1])
				}
			}
		}
	}

	return &Pattern{
		majorDim: majorDim,
		minorDim: minorDim,
		offsets:  offsets,
		indices:  indices,
	}, nil
}

func emptyPattern(majorDim, minorDim int) *Pattern {
	return &Pattern{
		majorDim: majorDim,
		minorDim: minorDim,
		offsets:  make([]int, majorDim+1),
	}
}

func (p *Pattern) MajorDim() int {
	return p.majorDim
}

func (p *Pattern) MinorDim() int {
	return p.minorDim
}

// NNZ reports the number of explicitly stored entries.
func (p *Pattern) NNZ() int {
	return len(p.indices)
}

// Offsets exposes the underlying major offsets. The slice is shared, not copied.
func (p *Pattern) Offsets() []int {
	return p.offsets
}

// Indices exposes the underlying minor indices. The slice is shared, not copied.
func (p *Pattern) Indices() []int {
	return p.indices
}

// Lane returns the minor indices of one major lane. The slice is shared.
func (p *Pattern) Lane(major int) []int {
	return p.indices[p.offsets[major]:p.offsets[major+1]]
}

// EntryIndex locates the storage position of (major, minor) via binary search.
func (p *Pattern) EntryIndex(major, minor int) (int, bool) {
	if major < 0 || major >= p.majorDim {
		return 0, false
	}

	lo, hi := p.offsets[major], p.offsets[major+1]
	lane := p.indices[lo:hi]
	k := sort.SearchInts(lane, minor)
	if k < len(lane) && lane[k] == minor {
		return lo + k, true
	}

	return 0, false
}

func (p *Pattern) Contains(major, minor int) bool {
	_, ok := p.EntryIndex(major, minor)
	return ok
}

// Transpose builds the pattern with major and minor dimensions exchanged.
func (p *Pattern) Transpose() *Pattern {
	offsets := make([]int, p.minorDim+1)
	for _, minor := range p.indices {
		offsets[minor+1]++
	}
	for i := 0; i < p.minorDim; i++ {
		offsets[i+1] += offsets[i]
	}

	indices := make([]int, len(p.indices))
	cursor := make([]int, p.minorDim)
	copy(cursor, offsets[:p.minorDim])

	for major := 0; major < p.majorDim; major++ {
		for k := p.offsets[major]; k < p.offsets[major+1]; k++ {
			minor := p.indices[k]
			indices[cursor[minor]] = major
			cursor[minor]++
		}
	}

	return &Pattern{
		majorDim: p.minorDim,
		minorDim: p.majorDim,
		offsets:  offsets,
		indices:  indices,
	}
}

// Fingerprint hashes the shape and structure of the pattern. Equal patterns
// always hash equal, which makes the fingerprint usable as a cache key and
// as a cheap inequality check.
func (p *Pattern) Fingerprint() uint64 {
	d := xxhash.New()

	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}

	writeInt(p.majorDim)
	writeInt(p.minorDim)
	for _, o := range p.offsets {
		writeInt(o)
	}
	for _, i := range p.indices {
		writeInt(i)
	}

	return d.Sum64()
}

func (p *Pattern) clone() *Pattern {
	offsets := make([]int, len(p.offsets))
	copy(offsets, p.offsets)
	indices := make([]int, len(p.indices))
	copy(indices, p.indices)

	return &Pattern{
		majorDim: p.majorDim,
		minorDim: p.minorDim,
		offsets:  offsets,
		indices:  indices,
	}
}
