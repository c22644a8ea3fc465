package sparse

import (
	"sort"

	"github.com/varphone/nalgebra-sparse/dense"
)

// compressMajor turns triplets into compressed major-ordered storage,
// sorting each lane by minor index and summing duplicates.
func compressMajor(majorDim, minorDim int, majors, minors []int, values []float64) csMatrix {
	counts := make([]int, majorDim+1)
	for _, major := range majors {
		counts[major+1]++
	}
	for i := 0; i < majorDim; i++ {
		counts[i+1] += counts[i]
	}

	// bucket triplets per lane, duplicates still present
	bucketMinors := make([]int, len(minors))
	bucketValues := make([]float64, len(values))
	cursor := make([]int, majorDim)
	copy(cursor, counts[:majorDim])

	for k := range majors {
		major := majors[k]
		bucketMinors[cursor[major]] = minors[k]
		bucketValues[cursor[major]] = values[k]
		cursor[major]++
	}

	offsets := make([]int, majorDim+1)
	indices := make([]int, 0, len(minors))
	vals := make([]float64, 0, len(values))

	for major := 0; major < majorDim; major++ {
		lo, hi := counts[major], counts[major+1]
		lane := bucketMinors[lo:hi]
		laneVals := bucketValues[lo:hi]

		sort.Sort(&laneSorter{minors: lane, values: laneVals})

		for k := 0; k < len(lane); k++ {
			if k > 0 && lane[k] == lane[k-1] {
				vals[len(vals)-1] += laneVals[k]
				continue
			}

			indices = append(indices, lane[k])
			vals = append(vals, laneVals[k])
		}

		offsets[major+1] = len(indices)
	}

	return csMatrix{
		pattern: &Pattern{majorDim: majorDim, minorDim: minorDim, offsets: offsets, indices: indices},
		values:  vals,
	}
}

type laneSorter struct {
	minors []int
	values []float64
}

func (s *laneSorter) Len() int { return len(s.minors) }

func (s *laneSorter) Less(i, j int) bool { return s.minors[i] < s.minors[j] }

func (s *laneSorter) Swap(i, j int) {
	s.minors[i], s.minors[j] = s.minors[j], s.minors[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// ToCsr compresses the triplets row-major, summing duplicates.
func (m *CooMatrix) ToCsr() *CsrMatrix {
	return &CsrMatrix{cs: compressMajor(m.nrows, m.ncols, m.rows, m.cols, m.values)}
}

// ToCsc compresses the triplets column-major, summing duplicates.
func (m *CooMatrix) ToCsc() *CscMatrix {
	return &CscMatrix{cs: compressMajor(m.ncols, m.nrows, m.cols, m.rows, m.values)}
}

// ToCoo expands the compressed rows back into triplets.
func (m *CsrMatrix) ToCoo() *CooMatrix {
	coo := &CooMatrix{
		nrows:  m.NRows(),
		ncols:  m.NCols(),
		rows:   make([]int, 0, m.NNZ()),
		cols:   make([]int, 0, m.NNZ()),
		values: make([]float64, 0, m.NNZ()),
	}

	m.EachTriplet(func(row, col int, value float64) bool {
		coo.rows = append(coo.rows, row)
		coo.cols = append(coo.cols, col)
		coo.values = append(coo.values, value)
		return true
	})

	return coo
}

// ToCoo expands the compressed columns back into triplets.
func (m *CscMatrix) ToCoo() *CooMatrix {
	coo := &CooMatrix{
		nrows:  m.NRows(),
		ncols:  m.NCols(),
		rows:   make([]int, 0, m.NNZ()),
		cols:   make([]int, 0, m.NNZ()),
		values: make([]float64, 0, m.NNZ()),
	}

	m.EachTriplet(func(row, col int, value float64) bool {
		coo.rows = append(coo.rows, row)
		coo.cols = append(coo.cols, col)
		coo.values = append(coo.values, value)
		return true
	})

	return coo
}

// ToCsc re-buckets the rows into compressed columns of the same matrix.
func (m *CsrMatrix) ToCsc() *CscMatrix {
	return &CscMatrix{cs: m.cs.transpose()}
}

// ToCsr re-buckets the columns into compressed rows of the same matrix.
func (m *CscMatrix) ToCsr() *CsrMatrix {
	return &CsrMatrix{cs: m.cs.transpose()}
}

// ToDense materializes the matrix, duplicates summed.
func (m *CooMatrix) ToDense() *dense.Matrix {
	d, err := dense.Zeros(m.nrows, m.ncols)
	if err != nil {
		panic("coo matrix carries an invalid shape: " + err.Error())
	}

	m.EachTriplet(func(row, col int, value float64) bool {
		d.Set(row, col, d.At(row, col)+value)
		return true
	})

	return d
}

func (m *CsrMatrix) ToDense() *dense.Matrix {
	d, err := dense.Zeros(m.NRows(), m.NCols())
	if err != nil {
		panic("csr matrix carries an invalid shape: " + err.Error())
	}

	m.EachTriplet(func(row, col int, value float64) bool {
		d.Set(row, col, value)
		return true
	})

	return d
}

func (m *CscMatrix) ToDense() *dense.Matrix {
	d, err := dense.Zeros(m.NRows(), m.NCols())
	if err != nil {
		panic("csc matrix carries an invalid shape: " + err.Error())
	}

	m.EachTriplet(func(row, col int, value float64) bool {
		d.Set(row, col, value)
		return true
	})

	return d
}

// CooFromDense collects the explicitly nonzero entries of d.
func CooFromDense(d *dense.Matrix) *CooMatrix {
	rows, cols := d.Dims()
	coo := &CooMatrix{nrows: rows, ncols: cols}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := d.At(i, j); v != 0 {
				coo.rows = append(coo.rows, i)
				coo.cols = append(coo.cols, j)
				coo.values = append(coo.values, v)
			}
		}
	}

	return coo
}

// CsrFromDense collects the explicitly nonzero entries of d in CSR form.
func CsrFromDense(d *dense.Matrix) *CsrMatrix {
	return CooFromDense(d).ToCsr()
}

// CscFromDense collects the explicitly nonzero entries of d in CSC form.
func CscFromDense(d *dense.Matrix) *CscMatrix {
	return CooFromDense(d).ToCsc()
}
