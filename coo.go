package sparse

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrTripletOutOfBounds = errors.New("triplet out of bounds")
var ErrTripletArraysMismatch = errors.New("triplet arrays have mismatching lengths")

// CooMatrix is a sparse matrix in coordinate (triplet) format. Triplets may
// appear in any order and the same location may appear more than once, in
// which case the duplicates are additive.
type CooMatrix struct {
	nrows  int
	ncols  int
	rows   []int
	cols   []int
	values []float64
}

func NewCoo(nrows, ncols int) (*CooMatrix, error) {
	if nrows < 0 || ncols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", nrows, ncols)
	}

	return &CooMatrix{nrows: nrows, ncols: ncols}, nil
}

// NewCooFromTriplets validates the triplet arrays and assembles a CooMatrix.
// The slices are not copied.
func NewCooFromTriplets(nrows, ncols int, rows, cols []int, values []float64) (*CooMatrix, error) {
	if nrows < 0 || ncols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", nrows, ncols)
	}

	if len(rows) != len(cols) || len(rows) != len(values) {
		return nil, errors.Wrapf(
			ErrTripletArraysMismatch,
			"rows %d, cols %d, values %d", len(rows), len(cols), len(values),
		)
	}

	for k := range rows {
		if rows[k] < 0 || rows[k] >= nrows || cols[k] < 0 || cols[k] >= ncols {
			return nil, errors.Wrapf(ErrTripletOutOfBounds, "triplet #%d (%d, %d)", k, rows[k], cols[k])
		}
	}

	return &CooMatrix{nrows: nrows, ncols: ncols, rows: rows, cols: cols, values: values}, nil
}

func (m *CooMatrix) NRows() int {
	return m.nrows
}

func (m *CooMatrix) NCols() int {
	return m.ncols
}

func (m *CooMatrix) Dims() (int, int) {
	return m.nrows, m.ncols
}

func (m *CooMatrix) NNZ() int {
	return len(m.values)
}

// Push appends one triplet. Pushing the same location twice accumulates.
func (m *CooMatrix) Push(row, col int, value float64) error {
	if row < 0 || row >= m.nrows || col < 0 || col >= m.ncols {
		return errors.Wrapf(ErrTripletOutOfBounds, "(%d, %d) in %d x %d", row, col, m.nrows, m.ncols)
	}

	m.rows = append(m.rows, row)
	m.cols = append(m.cols, col)
	m.values = append(m.values, value)
	return nil
}

// Triplet returns the k-th stored triplet.
func (m *CooMatrix) Triplet(k int) (row, col int, value float64) {
	return m.rows[k], m.cols[k], m.values[k]
}

// EachTriplet calls fn for every stored triplet, duplicates included.
func (m *CooMatrix) EachTriplet(fn func(row, col int, value float64) bool) {
	for k := range m.values {
		if !fn(m.rows[k], m.cols[k], m.values[k]) {
			return
		}
	}
}

// At sums all triplets stored at (row, col). Linear in NNZ; convert to CSR
// or CSC for repeated random access.
func (m *CooMatrix) At(row, col int) float64 {
	var sum float64
	for k := range m.values {
		if m.rows[k] == row && m.cols[k] == col {
			sum += m.values[k]
		}
	}

	return sum
}

type cooData struct {
	NRows  int
	NCols  int
	Rows   []int
	Cols   []int
	Values []float64
}

func (m *CooMatrix) Clone() *CooMatrix {
	var cp cooData
	src := cooData{NRows: m.nrows, NCols: m.ncols, Rows: m.rows, Cols: m.cols, Values: m.values}
	if err := copier.Copy(&cp, &src); err != nil {
		panic("could not copy coo matrix: " + err.Error())
	}

	return &CooMatrix{nrows: cp.NRows, ncols: cp.NCols, rows: cp.Rows, cols: cp.Cols, values: cp.Values}
}

type tripletItem struct {
	row   int
	col   int
	value float64
}

func byRowCol(a, b interface{}) bool {
	ta, tb := a.(*tripletItem), b.(*tripletItem)
	if ta.row != tb.row {
		return ta.row < tb.row
	}

	return ta.col < tb.col
}

// CooBuilder accumulates triplets in (row, col) order, summing duplicates as
// they are added. Build yields a duplicate-free CooMatrix sorted row-major.
type CooBuilder struct {
	nrows int
	ncols int
	btr   *btree.BTree
}

func NewCooBuilder(nrows, ncols int) (*CooBuilder, error) {
	if nrows < 0 || ncols < 0 {
		return nil, errors.Wrapf(ErrInvalidShape, "%d x %d", nrows, ncols)
	}

	return &CooBuilder{
		nrows: nrows,
		ncols: ncols,
		btr:   btree.NewNonConcurrent(byRowCol),
	}, nil
}

func (b *CooBuilder) Add(row, col int, value float64) error {
	if row < 0 || row >= b.nrows || col < 0 || col >= b.ncols {
		return errors.Wrapf(ErrTripletOutOfBounds, "(%d, %d) in %d x %d", row, col, b.nrows, b.ncols)
	}

	item := &tripletItem{row: row, col: col, value: value}
	if existing := b.btr.Get(item); existing != nil {
		item.value += existing.(*tripletItem).value
	}

	b.btr.Set(item)
	return nil
}

// Len reports the number of distinct locations added so far.
func (b *CooBuilder) Len() int {
	return b.btr.Len()
}

func (b *CooBuilder) Build() *CooMatrix {
	n := b.btr.Len()
	m := &CooMatrix{
		nrows:  b.nrows,
		ncols:  b.ncols,
		rows:   make([]int, 0, n),
		cols:   make([]int, 0, n),
		values: make([]float64, 0, n),
	}

	b.btr.Ascend(nil, func(i interface{}) bool {
		t := i.(*tripletItem)
		m.rows = append(m.rows, t.row)
		m.cols = append(m.cols, t.col)
		m.values = append(m.values, t.value)
		return true
	})

	return m
}
