package sparse

// CscMatrix is a sparse matrix in compressed sparse column format. Columns
// are the major dimension: column j owns entries colOffsets[j] to
// colOffsets[j+1].
type CscMatrix struct {
	cs csMatrix
}

// NewCsc validates the raw CSC arrays and assembles a matrix. The slices are
// not copied. Note the pattern is column-major: its major dimension is ncols.
func NewCsc(nrows, ncols int, colOffsets, rowIndices []int, values []float64) (*CscMatrix, error) {
	pattern, err := NewPattern(ncols, nrows, colOffsets, rowIndices)
	if err != nil {
		return nil, err
	}

	return NewCscFromPattern(pattern, values)
}

// NewCscFromPattern pairs an already validated column-major pattern with values.
func NewCscFromPattern(pattern *Pattern, values []float64) (*CscMatrix, error) {
	cs, err := newCsMatrix(pattern, values)
	if err != nil {
		return nil, err
	}

	return &CscMatrix{cs: cs}, nil
}

// CscIdentity builds the n by n identity matrix.
func CscIdentity(n int) *CscMatrix {
	return &CscMatrix{cs: identityCs(n)}
}

func (m *CscMatrix) NRows() int {
	return m.cs.pattern.minorDim
}

func (m *CscMatrix) NCols() int {
	return m.cs.pattern.majorDim
}

func (m *CscMatrix) Dims() (int, int) {
	return m.NRows(), m.NCols()
}

func (m *CscMatrix) NNZ() int {
	return m.cs.pattern.NNZ()
}

func (m *CscMatrix) Pattern() *Pattern {
	return m.cs.pattern
}

// Values exposes the stored entry values. The slice is shared, not copied.
func (m *CscMatrix) Values() []float64 {
	return m.cs.values
}

// At returns the entry at (row, col), zero when not stored.
func (m *CscMatrix) At(row, col int) float64 {
	return m.cs.at(col, row)
}

// Col returns the row indices and values of one column. Both slices are shared.
func (m *CscMatrix) Col(col int) ([]int, []float64) {
	return m.cs.lane(col)
}

// EachTriplet visits stored entries in column-major order.
func (m *CscMatrix) EachTriplet(fn func(row, col int, value float64) bool) {
	p := m.cs.pattern
	for col := 0; col < p.majorDim; col++ {
		for k := p.offsets[col]; k < p.offsets[col+1]; k++ {
			if !fn(p.indices[k], col, m.cs.values[k]) {
				return
			}
		}
	}
}

// Transpose returns the transposed matrix, still in CSC form.
func (m *CscMatrix) Transpose() *CscMatrix {
	return &CscMatrix{cs: m.cs.transpose()}
}

// Scale multiplies every stored value by alpha in place.
func (m *CscMatrix) Scale(alpha float64) {
	m.cs.scale(alpha)
}

func (m *CscMatrix) Clone() *CscMatrix {
	return &CscMatrix{cs: m.cs.clone()}
}

// Diagonal extracts the main diagonal as a dense slice.
func (m *CscMatrix) Diagonal() []float64 {
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
