// Package source fetches raw datasets from CSV files, HTTP servers,
// workbooks, parquet snapshots and MySQL tables.
package source

import (
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	_type "energyvis/type"

	"gorm.io/gorm"
)

// Source fetches and parses one dataset.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*_type.Dataset, error)
}

const mysqlScheme = "mysql:"

// New picks the source implementation for a configured location.
// db is only needed for "mysql:" locations and may be nil otherwise.
func New(cfg _type.DatasetConfig, db *gorm.DB) (Source, error) {
	loc := strings.TrimSpace(cfg.Location)
	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(cfg.Name, loc), nil
	case strings.HasPrefix(loc, mysqlScheme):
		if db == nil {
			return nil, _type.NewErrorf(_type.ErrCodeInvalidConfiguration,
				"dataset %s: %s location without a database connection", cfg.Name, loc)
		}
		return NewMySQLSource(cfg.Name, db, strings.TrimPrefix(loc, mysqlScheme)), nil
	case strings.EqualFold(filepath.Ext(loc), ".xlsx"):
		return NewXLSXSource(cfg.Name, loc, cfg.Sheet), nil
	case strings.EqualFold(filepath.Ext(loc), ".parquet"):
		return NewParquetSource(cfg.Name, loc), nil
	case loc == "":
		return nil, _type.NewErrorf(_type.ErrCodeInvalidConfiguration, "dataset %s: empty location", cfg.Name)
	default:
		return NewFileSource(cfg.Name, loc), nil
	}
}

// NeedsDB reports whether any configured dataset reads from MySQL.
func NeedsDB(datasets []_type.DatasetConfig) bool {
	for _, d := range datasets {
		if strings.HasPrefix(strings.TrimSpace(d.Location), mysqlScheme) {
			return true
		}
	}
	return false
}

// decodeCSV reads a header row followed by records. Rows may be ragged.
func decodeCSV(name string, r io.Reader) (*_type.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	heads, err := reader.Read()
	if err == io.EOF {
		return _type.NewDataset(name, nil, nil), nil
	}
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "decode %s header", name)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "decode %s", name)
	}
	return _type.NewDataset(name, heads, records), nil
}
