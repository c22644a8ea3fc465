package sparse

// CsrMatrix is a sparse matrix in compressed sparse row format. Rows are the
// major dimension: row i owns entries rowOffsets[i] to rowOffsets[i+1].
type CsrMatrix struct {
	cs csMatrix
}

// NewCsr validates the raw CSR arrays and assembles a matrix. The slices are
// not copied.
func NewCsr(nrows, ncols int, rowOffsets, colIndices []int, values []float64) (*CsrMatrix, error) {
	pattern, err := NewPattern(nrows, ncols, rowOffsets, colIndices)
	if err != nil {
		return nil, err
	}

	return NewCsrFromPattern(pattern, values)
}

// NewCsrFromPattern pairs an already validated pattern with values.
func NewCsrFromPattern(pattern *Pattern, values []float64) (*CsrMatrix, error) {
	cs, err := newCsMatrix(pattern, values)
	if err != nil {
		return nil, err
	}

	return &CsrMatrix{cs: cs}, nil
}

// CsrIdentity builds the n by n identity matrix.
func CsrIdentity(n int) *CsrMatrix {
	return &CsrMatrix{cs: identityCs(n)}
}

// CsrFromDiagonal builds a square matrix with the given diagonal.
func CsrFromDiagonal(diag []float64) *CsrMatrix {
	m := CsrIdentity(len(diag))
	copy(m.cs.values, diag)
	return m
}

func (m *CsrMatrix) NRows() int {
	return m.cs.pattern.majorDim
}

func (m *CsrMatrix) NCols() int {
	return m.cs.pattern.minorDim
}

func (m *CsrMatrix) Dims() (int, int) {
	return m.NRows(), m.NCols()
}

func (m *CsrMatrix) NNZ() int {
	return m.cs.pattern.NNZ()
}

func (m *CsrMatrix) Pattern() *Pattern {
	return m.cs.pattern
}

// Values exposes the stored entry values. The slice is shared, not copied.
func (m *CsrMatrix) Values() []float64 {
	return m.cs.values
}

// At returns the entry at (row, col), zero when not stored.
func (m *CsrMatrix) At(row, col int) float64 {
	return m.cs.at(row, col)
}

// Row returns the column indices and values of one row. Both slices are shared.
func (m *CsrMatrix) Row(row int) ([]int, []float64) {
	return m.cs.lane(row)
}

// EachTriplet visits stored entries in row-major order.
func (m *CsrMatrix) EachTriplet(fn func(row, col int, value float64) bool) {
	p := m.cs.pattern
	for row := 0; row < p.majorDim; row++ {
		for k := p.offsets[row]; k < p.offsets[row+1]; k++ {
			if !fn(row, p.indices[k], m.cs.values[k]) {
				return
			}
		}
	}
}

// Transpose returns the transposed matrix, still in CSR form.
func (m *CsrMatrix) Transpose() *CsrMatrix {
	return &CsrMatrix{cs: m.cs.transpose()}
}

// Scale multiplies every stored value by alpha in place.
func (m *CsrMatrix) Scale(alpha float64) {
	m.cs.scale(alpha)
}

func (m *CsrMatrix) Clone() *CsrMatrix {
	return &CsrMatrix{cs: m.cs.clone()}
}

// Diagonal extracts the main diagonal as a dense slice.
func (m *CsrMatrix) Diagonal() []float64 {
	n := m.NRows()
	if c := m.NCols(); c < n {
		n = c
	}

	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = m.cs.at(i, i)
	}

	return diag
}
