package sparse

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrJsonInvalid = errors.New("json contents could not be parsed, probably invalid")
var ErrJsonField = errors.New("json field missing or of the wrong type")

type cooJson struct {
	NRows  int       `json:"nrows"`
	NCols  int       `json:"ncols"`
	Rows   []int     `json:"rows"`
	Cols   []int     `json:"cols"`
	Values []float64 `json:"values"`
}

type csrJson struct {
	NRows      int       `json:"nrows"`
	NCols      int       `json:"ncols"`
	RowOffsets []int     `json:"row_offsets"`
	ColIndices []int     `json:"col_indices"`
	Values     []float64 `json:"values"`
}

func (m *CooMatrix) MarshalJSON() ([]byte, error) {
	doc := cooJson{
		NRows:  m.nrows,
		NCols:  m.ncols,
		Rows:   m.rows,
		Cols:   m.cols,
		Values: m.values,
	}

	if doc.Rows == nil {
		doc.Rows = []int{}
		doc.Cols = []int{}
		doc.Values = []float64{}
	}

	return json.Marshal(&doc)
}

func (m *CooMatrix) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrJsonInvalid
	}

	nrows, err := jsonInt(data, "nrows")
	if err != nil {
		return err
	}

	ncols, err := jsonInt(data, "ncols")
	if err != nil {
		return err
	}

	rows, err := jsonIntSlice(data, "rows")
	if err != nil {
		return err
	}

	cols, err := jsonIntSlice(data, "cols")
	if err != nil {
		return err
	}

	values, err := jsonFloatSlice(data, "values")
	if err != nil {
		return err
	}

	parsed, err := NewCooFromTriplets(nrows, ncols, rows, cols, values)
	if err != nil {
		return err
	}

	*m = *parsed
	return nil
}

func (m *CsrMatrix) MarshalJSON() ([]byte, error) {
	doc := csrJson{
		NRows:      m.NRows(),
		NCols:      m.NCols(),
		RowOffsets: m.cs.pattern.offsets,
		ColIndices: m.cs.pattern.indices,
		Values:     m.cs.values,
	}

	if doc.ColIndices == nil {
		doc.ColIndices = []int{}
		doc.Values = []float64{}
	}

	return json.Marshal(&doc)
}

func (m *CsrMatrix) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrJsonInvalid
	}

	nrows, err := jsonInt(data, "nrows")
	if err != nil {
		return err
	}

	ncols, err := jsonInt(data, "ncols")
	if err != nil {
		return err
	}

	offsets, err := jsonIntSlice(data, "row_offsets")
	if err != nil {
		return err
	}

	indices, err := jsonIntSlice(data, "col_indices")
	if err != nil {
		return err
	}

	values, err := jsonFloatSlice(data, "values")
	if err != nil {
		return err
	}

	parsed, err := NewCsr(nrows, ncols, offsets, indices, values)
	if err != nil {
		return err
	}

	*m = *parsed
	return nil
}

func jsonInt(data []byte, path string) (int, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() || res.Type != gjson.Number {
		return 0, errors.Wrap(ErrJsonField, path)
	}

	return int(res.Int()), nil
}

func jsonIntSlice(data []byte, path string) ([]int, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() || !res.IsArray() {
		return nil, errors.Wrap(ErrJsonField, path)
	}

	arr := res.Array()
	out := make([]int, len(arr))
	for i, v := range arr {
		if v.Type != gjson.Number {
			return nil, errors.Wrapf(ErrJsonField, "%s[%d]", path, i)
		}

		out[i] = int(v.Int())
	}

	return out, nil
}

func jsonFloatSlice(data []byte, path string) ([]float64, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() || !res.IsArray() {
		return nil, errors.Wrap(ErrJsonField, path)
	}

	arr := res.Array()
	out := make([]float64, len(arr))
	for i, v := range arr {
		if v.Type != gjson.Number {
			return nil, errors.Wrapf(ErrJsonField, "%s[%d]", path, i)
		}

		out[i] = v.Float()
	}

	return out, nil
}
