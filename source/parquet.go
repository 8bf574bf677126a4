package source

import (
	"context"
	"fmt"
	"sort"

	_type "energyvis/type"

	"github.com/parquet-go/parquet-go"
)

// SnapshotCell is one value of a dataset stored in long format. Row 0 holds
// the header, with the column name as value; data rows start at 1.
type SnapshotCell struct {
	Dataset string `parquet:"dataset"`
	Row     int64  `parquet:"row"`
	Col     int32  `parquet:"col"`
	Column  string `parquet:"column"`
	Value   string `parquet:"value"`
}

// HeaderRow is the Row of the header cells in a snapshot.
const HeaderRow = 0

// ParquetSource reads a snapshot written in long format back into rows.
type ParquetSource struct {
	name string
	path string
}

func NewParquetSource(name, path string) *ParquetSource {
	return &ParquetSource{name: name, path: path}
}

func (s *ParquetSource) Name() string { return s.name }

func (s *ParquetSource) Fetch(ctx context.Context) (*_type.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open %s", s.path)
	}

	cells, err := parquet.ReadFile[SnapshotCell](s.path)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "read %s", s.path)
	}
	header, records, err := pivotCells(cells)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "read %s", s.path)
	}
	return _type.NewDataset(s.name, header, records), nil
}

// pivotCells rebuilds header and records from long-format cells. Every cell
// must sit inside the header; a row without cells reads as blanks.
func pivotCells(cells []SnapshotCell) ([]string, [][]string, error) {
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})

	var header []string
	for _, c := range cells {
		if c.Row < HeaderRow || c.Col < 0 {
			return nil, nil, fmt.Errorf("cell at row %d col %d: negative index", c.Row, c.Col)
		}
		if c.Row != HeaderRow {
			continue
		}
		for int(c.Col) >= len(header) {
			header = append(header, "")
		}
		header[c.Col] = c.Column
	}

	var records [][]string
	for _, c := range cells {
		if c.Row == HeaderRow {
			continue
		}
		if int(c.Col) >= len(header) {
			return nil, nil, fmt.Errorf("cell at row %d col %d: outside a header of %d columns", c.Row, c.Col, len(header))
		}
		for int(c.Row) > len(records) {
			records = append(records, make([]string, len(header)))
		}
		records[c.Row-1][c.Col] = c.Value
	}
	return header, records, nil
}
