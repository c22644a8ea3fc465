// Package sparse implements sparse matrices and operations on them for the
// nalgebra-sparse library.
//
// Three storage formats are provided: CooMatrix (coordinate triplets, the
// natural format for assembly), CsrMatrix (compressed sparse rows, the
// workhorse for row-wise products) and CscMatrix (compressed sparse columns,
// used by the triangular solvers). All formats convert into each other and
// into the column-major dense.Matrix of the dense subpackage, which also
// hosts an LU factorization with partial pivoting.
//
// Matrices can be read and written as Matrix Market files or JSON triplet
// documents. A PatternCache can be attached to sparse products to reuse the
// symbolic phase across multiplications with identical sparsity structure.
package sparse
