package source

import (
	"context"

	_type "energyvis/type"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one sheet of a workbook; the first row is the header.
// An empty sheet name selects the first sheet.
type XLSXSource struct {
	name  string
	path  string
	sheet string
}

func NewXLSXSource(name, path, sheet string) *XLSXSource {
	return &XLSXSource{name: name, path: path, sheet: sheet}
}

func (s *XLSXSource) Name() string { return s.name }

func (s *XLSXSource) Fetch(ctx context.Context) (*_type.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open %s", s.path)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open %s", s.path)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "read sheet %q of %s", sheet, s.path)
	}
	if len(rows) == 0 {
		return _type.NewDataset(s.name, nil, nil), nil
	}
	return _type.NewDataset(s.name, rows[0], rows[1:]), nil
}
