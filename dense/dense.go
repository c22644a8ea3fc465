// Package dense provides the small column-major dense matrix type the sparse
// formats convert to and from, together with an LU factorization with partial
// pivoting.
package dense

import "github.com/pkg/errors"

var ErrInvalidShape = errors.New("invalid matrix shape")
var ErrShapeMismatch = errors.New("matrix shapes do not match")
var ErrDataLengthMismatch = errors.New("data length does not match shape")

// Matrix is a dense matrix stored in column-major order: entry (i, j) lives
// at data[j*rows+i].
type Matrix struct {
	rows int
	cols int
	data []float64
}

// Zeros allocates a rows by cols matrix of zeros.
func Zeros(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", rows, cols)
	}

	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Identity builds the n by n identity matrix.
func Identity(n int) *Matrix {
	m := &Matrix{rows: n, cols: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// FromColumnMajor wraps column-major data without copying it.
func FromColumnMajor(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", rows, cols)
	}

	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrDataLengthMismatch, "want %d, got %d", rows*cols, len(data))
	}

	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRowMajor copies row-major data into a new matrix.
func FromRowMajor(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", rows, cols)
	}

	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrDataLengthMismatch, "want %d, got %d", rows*cols, len(data))
	}

	m := &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[j*rows+i] = data[i*cols+j]
		}
	}

	return m, nil
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return m.cols
}

func (m *Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

func (m *Matrix) At(i, j int) float64 {
	return m.data[j*m.rows+i]
}

func (m *Matrix) Set(i, j int, v float64) {
	m.data[j*m.rows+i] = v
}

// Data exposes the column-major backing slice. The slice is shared, not copied.
func (m *Matrix) Data() []float64 {
	return m.data
}

// ColView returns column j of the matrix as a shared slice.
func (m *Matrix) ColView(j int) []float64 {
	return m.data[j*m.rows : (j+1)*m.rows]
}

func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// SwapRows exchanges rows i and k in place.
func (m *Matrix) SwapRows(i, k int) {
	if i == k {
		return
	}

	for j := 0; j < m.cols; j++ {
		base := j * m.rows
		m.data[base+i], m.data[base+k] = m.data[base+k], m.data[base+i]
	}
}

// T returns the transpose as a new matrix.
func (m *Matrix) T() *Matrix {
	t := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[i*t.rows+j] = m.data[j*m.rows+i]
		}
	}

	return t
}

// Mul computes a * b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d x %d times %d x %d", a.rows, a.cols, b.rows, b.cols)
	}

	c := &Matrix{rows: a.rows, cols: b.cols, data: make([]float64, a.rows*b.cols)}
	for j := 0; j < b.cols; j++ {
		for k := 0; k < a.cols; k++ {
			bv := b.data[j*b.rows+k]
			if bv == 0 {
				continue
			}

			for i := 0; i < a.rows; i++ {
				c.data[j*c.rows+i] += a.data[k*a.rows+i] * bv
			}
		}
	}

	return c, nil
}
