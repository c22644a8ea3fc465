package sparse

import (
	"sort"

	"github.com/pkg/errors"
)

var ErrShapeMismatch = errors.New("operand shapes do not match")

// SpMV computes y = alpha*A*x + beta*y for a CSR matrix.
func SpMV(alpha float64, a *CsrMatrix, x []float64, beta float64, y []float64) error {
	if len(x) != a.NCols() {
		return errors.Wrapf(ErrShapeMismatch, "x has %d entries, want %d", len(x), a.NCols())
	}

	if len(y) != a.NRows() {
		return errors.Wrapf(ErrShapeMismatch, "y has %d entries, want %d", len(y), a.NRows())
	}

	p := a.cs.pattern
	for row := 0; row < p.majorDim; row++ {
		var dot float64
		for k := p.offsets[row]; k < p.offsets[row+1]; k++ {
			dot += a.cs.values[k] * x[p.indices[k]]
		}

		y[row] = alpha*dot + beta*y[row]
	}

	return nil
}

// SpAdd computes A + B for two CSR matrices of the same shape. The result
// pattern is the union of the operand patterns.
func SpAdd(a, b *CsrMatrix) (*CsrMatrix, error) {
	if a.NRows() != b.NRows() || a.NCols() != b.NCols() {
		return nil, errors.Wrapf(
			ErrShapeMismatch,
			"%d x %d plus %d x %d", a.NRows(), a.NCols(), b.NRows(), b.NCols(),
		)
	}

	pa, pb := a.cs.pattern, b.cs.pattern
	offsets := make([]int, pa.majorDim+1)
	indices := make([]int, 0, pa.NNZ()+pb.NNZ())
	values := make([]float64, 0, pa.NNZ()+pb.NNZ())

	for row := 0; row < pa.majorDim; row++ {
		ka, endA := pa.offsets[row], pa.offsets[row+1]
		kb, endB := pb.offsets[row], pb.offsets[row+1]

		// merge the two sorted lanes
		for ka < endA || kb < endB {
			switch {
			case kb == endB || (ka < endA && pa.indices[ka] < pb.indices[kb]):
				indices = append(indices, pa.indices[ka])
				values = append(values, a.cs.values[ka])
				ka++
			case ka == endA || pb.indices[kb] < pa.indices[ka]:
				indices = append(indices, pb.indices[kb])
				values = append(values, b.cs.values[kb])
				kb++
			default:
				indices = append(indices, pa.indices[ka])
				values = append(values, a.cs.values[ka]+b.cs.values[kb])
				ka++
				kb++
			}
		}

		offsets[row+1] = len(indices)
	}

	return &CsrMatrix{cs: csMatrix{
		pattern: &Pattern{majorDim: pa.majorDim, minorDim: pa.minorDim, offsets: offsets, indices: indices},
		values:  values,
	}}, nil
}

// spmmPattern runs the symbolic phase of the Gustavson product: the sparsity
// pattern of A*B without touching any values.
func spmmPattern(pa, pb *Pattern) *Pattern {
	offsets := make([]int, pa.majorDim+1)
	indices := make([]int, 0, pa.NNZ())

	marker := make([]int, pb.minorDim)
	for i := range marker {
		marker[i] = -1
	}

	for row := 0; row < pa.majorDim; row++ {
		start := len(indices)

		for ka := pa.offsets[row]; ka < pa.offsets[row+1]; ka++ {
			mid := pa.indices[ka]
			for kb := pb.offsets[mid]; kb < pb.offsets[mid+1]; kb++ {
				col := pb.indices[kb]
				if marker[col] != row {
					marker[col] = row
					indices = append(indices, col)
				}
			}
		}

		sort.Ints(indices[start:])
		offsets[row+1] = len(indices)
	}

	return &Pattern{majorDim: pa.majorDim, minorDim: pb.minorDim, offsets: offsets, indices: indices}
}

// spmmNumeric fills in the values of A*B for an already known product pattern.
func spmmNumeric(pattern *Pattern, a, b *CsrMatrix) []float64 {
	values := make([]float64, pattern.NNZ())
	scratch := make([]float64, pattern.minorDim)

	pa, pb := a.cs.pattern, b.cs.pattern
	for row := 0; row < pa.majorDim; row++ {
		for ka := pa.offsets[row]; ka < pa.offsets[row+1]; ka++ {
			mid := pa.indices[ka]
			av := a.cs.values[ka]
			for kb := pb.offsets[mid]; kb < pb.offsets[mid+1]; kb++ {
				scratch[pb.indices[kb]] += av * b.cs.values[kb]
			}
		}

		for k := pattern.offsets[row]; k < pattern.offsets[row+1]; k++ {
			col := pattern.indices[k]
			values[k] = scratch[col]
			scratch[col] = 0
		}
	}

	return values
}

// SpMM computes the sparse product A*B for two CSR matrices.
func SpMM(a, b *CsrMatrix) (*CsrMatrix, error) {
	return SpMMWithCache(nil, a, b)
}

// SpMMWithCache computes A*B, serving the symbolic phase from cache when one
// is given and the operand patterns have been seen before.
func SpMMWithCache(cache *PatternCache, a, b *CsrMatrix) (*CsrMatrix, error) {
	if a.NCols() != b.NRows() {
		return nil, errors.Wrapf(
			ErrShapeMismatch,
			"%d x %d times %d x %d", a.NRows(), a.NCols(), b.NRows(), b.NCols(),
		)
	}

	var pattern *Pattern
	if cache != nil {
		key := productCacheKey(a.cs.pattern, b.cs.pattern)
		if hit, ok := cache.lookup(key); ok {
			pattern = hit
		} else {
			pattern = spmmPattern(a.cs.pattern, b.cs.pattern)
			cache.store(key, pattern)
		}
	} else {
		pattern = spmmPattern(a.cs.pattern, b.cs.pattern)
	}

	return &CsrMatrix{cs: csMatrix{
		pattern: pattern,
		values:  spmmNumeric(pattern, a, b),
	}}, nil
}
