package sparse

import "github.com/pkg/errors"

var ErrValuesLengthMismatch = errors.New("values length does not match pattern")

// csMatrix is the compressed storage shared by CsrMatrix and CscMatrix:
// a sparsity pattern plus one value per stored entry.
type csMatrix struct {
	pattern *Pattern
	values  []float64
}

func newCsMatrix(pattern *Pattern, values []float64) (csMatrix, error) {
	if len(values) != pattern.NNZ() {
		return csMatrix{}, errors.Wrapf(
			ErrValuesLengthMismatch,
			"pattern has %d entries, got %d values", pattern.NNZ(), len(values),
		)
	}

	return csMatrix{pattern: pattern, values: values}, nil
}

func (cs csMatrix) at(major, minor int) float64 {
	if k, ok := cs.pattern.EntryIndex(major, minor); ok {
		return cs.values[k]
	}

	return 0
}

func (cs csMatrix) lane(major int) ([]int, []float64) {
	lo, hi := cs.pattern.offsets[major], cs.pattern.offsets[major+1]
	return cs.pattern.indices[lo:hi], cs.values[lo:hi]
}

// transpose re-buckets entries into the opposite major ordering,
// carrying values along with the indices.
func (cs csMatrix) transpose() csMatrix {
	p := cs.pattern
	offsets := make([]int, p.minorDim+1)
	for _, minor := range p.indices {
		offsets[minor+1]++
	}
	for i := 0; i < p.minorDim; i++ {
		offsets[i+1] += offsets[i]
	}

	indices := make([]int, len(p.indices))
	values := make([]float64, len(cs.values))
	cursor := make([]int, p.minorDim)
	copy(cursor, offsets[:p.minorDim])

	for major := 0; major < p.majorDim; major++ {
		for k := p.offsets[major]; k < p.offsets[major+1]; k++ {
			minor := p.indices[k]
			indices[cursor[minor]] = major
			values[cursor[minor]] = cs.values[k]
			cursor[minor]++
		}
	}

	return csMatrix{
		pattern: &Pattern{
			majorDim: p.minorDim,
			minorDim: p.majorDim,
			offsets:  offsets,
			indices:  indices,
		},
		values: values,
	}
}

func (cs csMatrix) clone() csMatrix {
	values := make([]float64, len(cs.values))
	copy(values, cs.values)
	return csMatrix{pattern: cs.pattern.clone(), values: values}
}

func (cs csMatrix) scale(alpha float64) {
	for k := range cs.values {
		cs.values[k] *= alpha
	}
}

func identityCs(n int) csMatrix {
	offsets := make([]int, n+1)
	indices := make([]int, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		offsets[i+1] = i + 1
		indices[i] = i
		values[i] = 1
	}

	return csMatrix{
		pattern: &Pattern{majorDim: n, minorDim: n, offsets: offsets, indices: indices},
		values:  values,
	}
}
