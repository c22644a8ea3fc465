package sparse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrMatrixMarketHeader = errors.New("invalid matrix market header")
var ErrMatrixMarketFormat = errors.New("invalid matrix market body")
var ErrMatrixMarketUnsupported = errors.New("unsupported matrix market variant")

const matrixMarketBanner = "%%MatrixMarket"

type mmSymmetry int

const (
	mmGeneral mmSymmetry = iota
	mmSymmetric
	mmSkewSymmetric
)

type mmReader struct {
	line int
}

// ReadMatrixMarket parses a Matrix Market "coordinate real" stream into a
// COO matrix. Symmetric and skew-symmetric files are expanded: every
// off-diagonal entry is mirrored across the diagonal.
func ReadMatrixMarket(r io.Reader) (*CooMatrix, error) {
	p := &mmReader{}
	return p.parse(bufio.NewScanner(r))
}

// ReadMatrixMarketFile parses the Matrix Market file at path.
func ReadMatrixMarketFile(path string) (*CooMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	m, err := ReadMatrixMarket(f)
	if err != nil {
		return nil, errors.Wrapf(err, "file %s", path)
	}

	return m, nil
}

func (p *mmReader) parse(sc *bufio.Scanner) (*CooMatrix, error) {
	symmetry, err := p.parseHeader(sc)
	if err != nil {
		return nil, err
	}

	nrows, ncols, nnz, err := p.parseSizeLine(sc)
	if err != nil {
		return nil, err
	}

	m, err := NewCoo(nrows, ncols)
	if err != nil {
		return nil, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %v", p.line, err)
	}

	seen := 0
	for sc.Scan() {
		p.line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		if seen == nnz {
			return nil, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - more than %d entries", p.line, nnz)
		}

		row, col, value, err := p.parseEntry(text)
		if err != nil {
			return nil, err
		}

		if err := m.Push(row, col, value); err != nil {
			return nil, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %v", p.line, err)
		}

		if row != col {
			switch symmetry {
			case mmSymmetric:
				if err := m.Push(col, row, value); err != nil {
					return nil, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %v", p.line, err)
				}
			case mmSkewSymmetric:
				if err := m.Push(col, row, -value); err != nil {
					return nil, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %v", p.line, err)
				}
			}
		}

		seen++
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(ErrMatrixMarketFormat, err.Error())
	}

	if seen != nnz {
		return nil, errors.Wrapf(ErrMatrixMarketFormat, "expected %d entries, got %d", nnz, seen)
	}

	return m, nil
}

func (p *mmReader) parseHeader(sc *bufio.Scanner) (mmSymmetry, error) {
	if !sc.Scan() {
		return 0, errors.Wrap(ErrMatrixMarketHeader, "empty input")
	}

	p.line++
	fields := strings.Fields(strings.ToLower(sc.Text()))
	if len(fields) != 5 || fields[0] != strings.ToLower(matrixMarketBanner) {
		return 0, errors.Wrapf(ErrMatrixMarketHeader, "line #%d - %s", p.line, sc.Text())
	}

	if fields[1] != "matrix" || fields[2] != "coordinate" {
		return 0, errors.Wrapf(ErrMatrixMarketUnsupported, "object %q in format %q", fields[1], fields[2])
	}

	if fields[3] != "real" && fields[3] != "integer" {
		return 0, errors.Wrapf(ErrMatrixMarketUnsupported, "field %q", fields[3])
	}

	switch fields[4] {
	case "general":
		return mmGeneral, nil
	case "symmetric":
		return mmSymmetric, nil
	case "skew-symmetric":
		return mmSkewSymmetric, nil
	default:
		return 0, errors.Wrapf(ErrMatrixMarketUnsupported, "symmetry %q", fields[4])
	}
}

func (p *mmReader) parseSizeLine(sc *bufio.Scanner) (int, int, int, error) {
	for sc.Scan() {
		p.line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %s is not a size line", p.line, text)
		}

		var dims [3]int
		for i, field := range fields {
			n, err := strconv.Atoi(field)
			if err != nil || n < 0 {
				return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - bad size %s", p.line, field)
			}

			dims[i] = n
		}

		return dims[0], dims[1], dims[2], nil
	}

	return 0, 0, 0, errors.Wrap(ErrMatrixMarketFormat, "missing size line")
}

func (p *mmReader) parseEntry(text string) (int, int, float64, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - %s is not a coordinate entry", p.line, text)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - bad row index %s", p.line, fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - bad column index %s", p.line, fields[1])
	}

	value, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, 0, errors.Wrapf(ErrMatrixMarketFormat, "line #%d - bad value %s", p.line, fields[2])
	}

	// matrix market indices are 1-based on the wire
	return row - 1, col - 1, value, nil
}

// WriteMatrixMarket serializes m as a general "coordinate real" Matrix
// Market stream, duplicates included.
func WriteMatrixMarket(w io.Writer, m *CooMatrix) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s matrix coordinate real general\n", matrixMarketBanner); err != nil {
		return errors.Wrap(err, "could not write matrix market header")
	}

	if _, err := fmt.Fprintf(bw, "%d %d %d\n", m.NRows(), m.NCols(), m.NNZ()); err != nil {
		return errors.Wrap(err, "could not write matrix market size line")
	}

	var writeErr error
	m.EachTriplet(func(row, col int, value float64) bool {
		if _, err := fmt.Fprintf(bw, "%d %d %s\n", row+1, col+1, strconv.FormatFloat(value, 'g', -1, 64)); err != nil {
			writeErr = errors.Wrap(err, "could not write matrix market entry")
			return false
		}

		return true
	})

	if writeErr != nil {
		return writeErr
	}

	return errors.Wrap(bw.Flush(), "could not flush matrix market output")
}

// WriteMatrixMarketFile serializes m into the file at path, replacing it.
func WriteMatrixMarketFile(path string, m *CooMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}

	if err := WriteMatrixMarket(f, m); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "file %s", path)
	}

	return errors.Wrapf(f.Close(), "could not close %s", path)
}
