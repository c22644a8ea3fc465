package sparse

import (
	"math"

	"github.com/pkg/errors"
)

// Entrywise is any matrix that can be probed entry by entry. All sparse
// formats of this package and dense.Matrix satisfy it.
type Entrywise interface {
	Dims() (int, int)
	At(row, col int) float64
}

// Tolerance bounds the acceptable entrywise deviation: got and want match
// when |got-want| <= Absolute + Relative*|want|.
type Tolerance struct {
	Absolute float64
	Relative float64
}

// Exact is the zero tolerance: entries must match bit for bit.
func Exact() Tolerance {
	return Tolerance{}
}

func (tol Tolerance) matches(got, want float64) bool {
	if got == want {
		return true
	}

	diff := math.Abs(got - want)
	return diff <= tol.Absolute+tol.Relative*math.Abs(want)
}

// Mismatch describes the first differing entry found by Compare.
type Mismatch struct {
	Row  int
	Col  int
	Got  float64
	Want float64
}

// Compare walks both matrices entry by entry and returns the first mismatch
// under the tolerance, or nil when the matrices match. Comparing matrices of
// different shapes is an error.
func Compare(got, want Entrywise, tol Tolerance) (*Mismatch, error) {
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d x %d vs %d x %d", gr, gc, wr, wc)
	}

	for i := 0; i < gr; i++ {
		for j := 0; j < gc; j++ {
			g, w := got.At(i, j), want.At(i, j)
			if !tol.matches(g, w) {
				return &Mismatch{Row: i, Col: j, Got: g, Want: w}, nil
			}
		}
	}

	return nil, nil
}

// EqualApprox reports whether both matrices match under the tolerance.
// Matrices of different shapes are never equal.
func EqualApprox(got, want Entrywise, tol Tolerance) bool {
	mismatch, err := Compare(got, want, tol)
	return err == nil && mismatch == nil
}
