package sparse

import (
	"github.com/pkg/errors"

	"github.com/varphone/nalgebra-sparse/dense"
)

var ErrNotSquare = errors.New("matrix is not square")
var ErrZeroDiagonal = errors.New("triangular matrix has a missing or zero diagonal entry")

// SolveLowerTriangularCsc solves L * X = B in place for a lower-triangular
// CSC matrix, overwriting B with X. Entries of L strictly above the diagonal
// are ignored. A missing or zero diagonal makes the system singular.
func SolveLowerTriangularCsc(l *CscMatrix, b *dense.Matrix) error {
	if err := checkTriangularOperands(l, b); err != nil {
		return err
	}

	n := l.NCols()
	for col := 0; col < b.Cols(); col++ {
		x := b.ColView(col)

		for j := 0; j < n; j++ {
			rows, values := l.Col(j)

			d, ok := diagonalIn(rows, values, j)
			if !ok {
				return errors.Wrapf(ErrZeroDiagonal, "column %d", j)
			}

			x[j] /= d

			for k := range rows {
				if rows[k] > j {
					x[rows[k]] -= values[k] * x[j]
				}
			}
		}
	}

	return nil
}

// SolveUpperTriangularCsc solves U * X = B in place for an upper-triangular
// CSC matrix, overwriting B with X. Entries of U strictly below the diagonal
// are ignored. A missing or zero diagonal makes the system singular.
func SolveUpperTriangularCsc(u *CscMatrix, b *dense.Matrix) error {
	if err := checkTriangularOperands(u, b); err != nil {
		return err
	}

	n := u.NCols()
	for col := 0; col < b.Cols(); col++ {
		x := b.ColView(col)

		for j := n - 1; j >= 0; j-- {
			rows, values := u.Col(j)

			d, ok := diagonalIn(rows, values, j)
			if !ok {
				return errors.Wrapf(ErrZeroDiagonal, "column %d", j)
			}

			x[j] /= d

			for k := range rows {
				if rows[k] < j {
					x[rows[k]] -= values[k] * x[j]
				}
			}
		}
	}

	return nil
}

func checkTriangularOperands(m *CscMatrix, b *dense.Matrix) error {
	if m.NRows() != m.NCols() {
		return errors.Wrapf(ErrNotSquare, "%d x %d", m.NRows(), m.NCols())
	}

	if b.Rows() != m.NRows() {
		return errors.Wrapf(ErrShapeMismatch, "rhs has %d rows, want %d", b.Rows(), m.NRows())
	}

	return nil
}

func diagonalIn(rows []int, values []float64, j int) (float64, bool) {
	for k := range rows {
		if rows[k] == j {
			if values[k] == 0 {
				return 0, false
			}

			return values[k], true
		}
	}

	return 0, false
}
