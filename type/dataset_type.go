package _type

import (
	"strings"
	"time"
)

// RawRow is one CSV record keyed by column name. Columns keeps the file order
// so the positional charts can address "first column", "second column", ...
type RawRow struct {
	columns []string
	values  map[string]string
}

// NewRawRow pairs a header with one record. Missing trailing cells read as "".
// Duplicate header names keep the last value, like an object built from a row.
func NewRawRow(header []string, record []string) RawRow {
	row := RawRow{
		columns: make([]string, 0, len(header)),
		values:  make(map[string]string, len(header)),
	}
	for i, name := range header {
		val := ""
		if i < len(record) {
			val = record[i]
		}
		row.set(name, val)
	}
	return row
}

func (r *RawRow) set(name string, val string) {
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = val
}

// Columns returns the column names in file order.
func (r RawRow) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r RawRow) Len() int {
	return len(r.columns)
}

// Get returns the value of a named column.
func (r RawRow) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// At returns the value of the i-th column.
func (r RawRow) At(i int) (string, bool) {
	if i < 0 || i >= len(r.columns) {
		return "", false
	}
	return r.values[r.columns[i]], true
}

// Record returns the row values in column order.
func (r RawRow) Record() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = r.values[c]
	}
	return out
}

// Dataset is one loaded source: a header and its rows.
type Dataset struct {
	Name     string
	Header   []string
	Rows     []RawRow
	LoadedAt time.Time
}

// NewDataset builds a dataset from a header and raw records.
// Header names are trimmed; a UTF-8 BOM on the first name is dropped.
func NewDataset(name string, header []string, records [][]string) *Dataset {
	h := make([]string, len(header))
	for i := range header {
		h[i] = strings.TrimSpace(header[i])
	}
	if len(h) > 0 {
		h[0] = strings.TrimPrefix(h[0], "\ufeff")
	}

	ds := &Dataset{
		Name:     name,
		Header:   h,
		Rows:     make([]RawRow, 0, len(records)),
		LoadedAt: time.Now(),
	}
	for _, rec := range records {
		ds.Rows = append(ds.Rows, NewRawRow(h, rec))
	}
	return ds
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}
