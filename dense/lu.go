package dense

import (
	"math"

	"github.com/pkg/errors"
)

var ErrSingular = errors.New("matrix is singular")
var ErrNotSquare = errors.New("matrix is not square")

// LU is the LU decomposition with partial (row) pivoting of an m by n matrix M:
// M == P * L * U, where L is m by min(m, n) lower-triangular with a unit
// diagonal, U is min(m, n) by n upper-triangular and P is an m by m
// permutation matrix.
//
// Pivots are stored as successive row interchanges: piv[k] is the row that was
// swapped with row k during elimination.
type LU struct {
	lu       *Matrix
	piv      []int
	singular bool
}

// Factorize computes the pivoted LU decomposition of m. The input is copied.
// Factorization always completes; solving with a singular factor fails with
// ErrSingular.
func Factorize(m *Matrix) *LU {
	lu := m.Clone()
	rows, cols := lu.Dims()

	min := rows
	if cols < min {
		min = cols
	}

	f := &LU{lu: lu, piv: make([]int, min)}

	for k := 0; k < min; k++ {
		// pivot: largest magnitude on or below the diagonal of column k
		p := k
		max := math.Abs(lu.At(k, k))
		for i := k + 1; i < rows; i++ {
			if a := math.Abs(lu.At(i, k)); a > max {
				max = a
				p = i
			}
		}

		f.piv[k] = p
		lu.SwapRows(k, p)

		pivot := lu.At(k, k)
		if pivot == 0 {
			f.singular = true
			continue
		}

		for i := k + 1; i < rows; i++ {
			factor := lu.At(i, k) / pivot
			lu.Set(i, k, factor)
			for j := k + 1; j < cols; j++ {
				lu.Set(i, j, lu.At(i, j)-factor*lu.At(k, j))
			}
		}
	}

	return f
}

// IsSingular reports whether a zero pivot was met during elimination.
func (f *LU) IsSingular() bool {
	return f.singular
}

// L returns the unit lower-triangular factor, m by min(m, n).
func (f *LU) L() *Matrix {
	rows := f.lu.Rows()
	min := len(f.piv)

	l := &Matrix{rows: rows, cols: min, data: make([]float64, rows*min)}
	for j := 0; j < min; j++ {
		l.Set(j, j, 1)
		for i := j + 1; i < rows; i++ {
			l.Set(i, j, f.lu.At(i, j))
		}
	}

	return l
}

// U returns the upper-triangular factor, min(m, n) by n.
func (f *LU) U() *Matrix {
	_, cols := f.lu.Dims()
	min := len(f.piv)

	u := &Matrix{rows: min, cols: cols, data: make([]float64, min*cols)}
	for i := 0; i < min; i++ {
		for j := i; j < cols; j++ {
			u.Set(i, j, f.lu.At(i, j))
		}
	}

	return u
}

// P returns the permutation matrix. Building it explicitly is costly; to
// permute the rows of a matrix use Permute instead.
func (f *LU) P() *Matrix {
	id := Identity(f.lu.Rows())
	f.Permute(id)
	return id
}

// PermutationIndices returns a copy of the raw pivot vector.
func (f *LU) PermutationIndices() []int {
	piv := make([]int, len(f.piv))
	copy(piv, f.piv)
	return piv
}

// Permute applies the permutation matrix P to rhs in place, so that
// Permute(L*U) reconstructs the original matrix. The interchanges are applied
// in reverse elimination order.
func (f *LU) Permute(rhs *Matrix) error {
	if rhs.Rows() != f.lu.Rows() {
		return errors.Wrapf(ErrShapeMismatch, "rhs has %d rows, want %d", rhs.Rows(), f.lu.Rows())
	}

	for k := len(f.piv) - 1; k >= 0; k-- {
		rhs.SwapRows(k, f.piv[k])
	}

	return nil
}

func (f *LU) solveMut(transpose bool, b *Matrix) error {
	rows, cols := f.lu.Dims()
	if rows != cols {
		return errors.Wrap(ErrNotSquare, "unable to solve a set of under/over-determined equations")
	}

	if b.Rows() != rows {
		return errors.Wrapf(ErrShapeMismatch, "rhs has %d rows, want %d", b.Rows(), rows)
	}

	if f.singular {
		return errors.Wrap(ErrSingular, "zero pivot met during factorization")
	}

	n := rows
	for col := 0; col < b.Cols(); col++ {
		x := b.ColView(col)

		if !transpose {
			// P^T b, then L y = b', then U x = y
			for k := 0; k < n; k++ {
				x[k], x[f.piv[k]] = x[f.piv[k]], x[k]
			}

			for j := 0; j < n; j++ {
				for i := j + 1; i < n; i++ {
					x[i] -= f.lu.At(i, j) * x[j]
				}
			}

			for j := n - 1; j >= 0; j-- {
				x[j] /= f.lu.At(j, j)
				for i := 0; i < j; i++ {
					x[i] -= f.lu.At(i, j) * x[j]
				}
			}
		} else {
			// U^T w = b, then L^T z = w, then x = P z
			for j := 0; j < n; j++ {
				for i := 0; i < j; i++ {
					x[j] -= f.lu.At(i, j) * x[i]
				}
				x[j] /= f.lu.At(j, j)
			}

			for j := n - 1; j >= 0; j-- {
				for i := j + 1; i < n; i++ {
					x[j] -= f.lu.At(i, j) * x[i]
				}
			}

			for k := n - 1; k >= 0; k-- {
				x[k], x[f.piv[k]] = x[f.piv[k]], x[k]
			}
		}
	}

	return nil
}

// Solve solves M * x = b for x. The decomposed matrix must be square.
func (f *LU) Solve(b *Matrix) (*Matrix, error) {
	x := b.Clone()
	if err := f.solveMut(false, x); err != nil {
		return nil, err
	}

	return x, nil
}

// SolveMut solves M * x = b in place, overwriting b with x.
func (f *LU) SolveMut(b *Matrix) error {
	return f.solveMut(false, b)
}

// SolveTranspose solves transpose(M) * x = b for x.
func (f *LU) SolveTranspose(b *Matrix) (*Matrix, error) {
	x := b.Clone()
	if err := f.solveMut(true, x); err != nil {
		return nil, err
	}

	return x, nil
}

// SolveTransposeMut solves transpose(M) * x = b in place, overwriting b with x.
func (f *LU) SolveTransposeMut(b *Matrix) error {
	return f.solveMut(true, b)
}

// Inverse computes the inverse of the decomposed matrix.
func (f *LU) Inverse() (*Matrix, error) {
	rows, cols := f.lu.Dims()
	if rows != cols {
		return nil, errors.Wrap(ErrNotSquare, "only square matrices are invertible")
	}

	inv := Identity(rows)
	if err := f.solveMut(false, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

// Determinant computes the determinant of the decomposed matrix from the
// diagonal of U and the parity of the pivot interchanges.
func (f *LU) Determinant() (float64, error) {
	rows, cols := f.lu.Dims()
	if rows != cols {
		return 0, errors.Wrap(ErrNotSquare, "determinant requires a square matrix")
	}

	det := 1.0
	for k := 0; k < rows; k++ {
		det *= f.lu.At(k, k)
		if f.piv[k] != k {
			det = -det
		}
	}

	return det, nil
}
