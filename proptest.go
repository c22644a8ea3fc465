package sparse

import "math/rand"

// Gen produces random sparse matrices with bounded shape and density. It is
// meant for randomized cross-check tests: a fixed seed gives a reproducible
// sequence.
type Gen struct {
	rng *rand.Rand
}

func NewGen(seed int64) *Gen {
	return &Gen{rng: rand.New(rand.NewSource(seed))}
}

// Pattern generates a pattern of the given shape where each location is
// stored with probability density.
func (g *Gen) Pattern(majorDim, minorDim int, density float64) *Pattern {
	offsets := make([]int, majorDim+1)
	var indices []int

	for major := 0; major < majorDim; major++ {
		for minor := 0; minor < minorDim; minor++ {
			if g.rng.Float64() < density {
				indices = append(indices, minor)
			}
		}

		offsets[major+1] = len(indices)
	}

	return &Pattern{majorDim: majorDim, minorDim: minorDim, offsets: offsets, indices: indices}
}

func (g *Gen) value(maxAbs float64) float64 {
	return (g.rng.Float64()*2 - 1) * maxAbs
}

func (g *Gen) values(n int, maxAbs float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		// explicit zeros are legal but make cross-checks ambiguous
		for values[i] == 0 {
			values[i] = g.value(maxAbs)
		}
	}

	return values
}

// Csr generates a random CSR matrix of the given shape and density with
// nonzero values in (-maxAbs, maxAbs).
func (g *Gen) Csr(nrows, ncols int, density, maxAbs float64) *CsrMatrix {
	pattern := g.Pattern(nrows, ncols, density)
	return &CsrMatrix{cs: csMatrix{pattern: pattern, values: g.values(pattern.NNZ(), maxAbs)}}
}

// Csc generates a random CSC matrix of the given shape and density with
// nonzero values in (-maxAbs, maxAbs).
func (g *Gen) Csc(nrows, ncols int, density, maxAbs float64) *CscMatrix {
	pattern := g.Pattern(ncols, nrows, density)
	return &CscMatrix{cs: csMatrix{pattern: pattern, values: g.values(pattern.NNZ(), maxAbs)}}
}

// Coo generates a random COO matrix with up to nnz triplets, possibly
// containing duplicate locations.
func (g *Gen) Coo(nrows, ncols, nnz int, maxAbs float64) *CooMatrix {
	m := &CooMatrix{nrows: nrows, ncols: ncols}
	if nrows == 0 || ncols == 0 {
		return m
	}

	for k := 0; k < nnz; k++ {
		m.rows = append(m.rows, g.rng.Intn(nrows))
		m.cols = append(m.cols, g.rng.Intn(ncols))
		m.values = append(m.values, g.value(maxAbs))
	}

	return m
}

// Vector generates a dense vector with entries in (-maxAbs, maxAbs).
func (g *Gen) Vector(n int, maxAbs float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = g.value(maxAbs)
	}

	return v
}

// Dims picks a random shape with both dimensions in [1, max].
func (g *Gen) Dims(max int) (int, int) {
	return 1 + g.rng.Intn(max), 1 + g.rng.Intn(max)
}
