package script

import (
	"math"
	"strconv"
	"strings"
	"time"

	_type "energyvis/type"
)

// Schema declares which columns a chart reads. Positional charts need at
// least MinColumns columns and, when Expect is set, exactly those names at
// the leading positions. Named charts need every Required column.
type Schema struct {
	Chart      string
	MinColumns int
	Expect     []string
	Required   []string
}

var (
	LineSchema       = Schema{Chart: _type.TargetLine, MinColumns: 2}
	BarSchema        = Schema{Chart: _type.TargetBar, MinColumns: 2}
	GroupedBarSchema = Schema{Chart: _type.TargetGroupedBar, MinColumns: 2}
	ScatterSchema    = Schema{
		Chart:    _type.TargetScatter,
		Required: []string{colStarRating, colEnergy},
	}
)

// scatter columns
const (
	colStarRating = "star2"
	colEnergy     = "energy_consumpt"
	colScreenTech = "screen_tech"
	colBrand      = "brand"
	colScreenSize = "screensize"

	unknownLabel = "Unknown"
)

// WithExpect returns a copy of the schema pinned to the given leading column names.
func (s Schema) WithExpect(expect []string) Schema {
	s.Expect = append([]string(nil), expect...)
	if len(s.Expect) > s.MinColumns && s.MinColumns > 0 {
		s.MinColumns = len(s.Expect)
	}
	return s
}

// Check validates a header against the schema.
func (s Schema) Check(header []string) error {
	if len(header) < s.MinColumns {
		return _type.NewErrorf(_type.ErrCodeSchemaMismatch,
			"%s: need at least %d columns, header has %d (%s)",
			s.Chart, s.MinColumns, len(header), strings.Join(header, ","))
	}
	for i, name := range s.Expect {
		if i >= len(header) || header[i] != name {
			got := ""
			if i < len(header) {
				got = header[i]
			}
			return _type.NewErrorf(_type.ErrCodeSchemaMismatch,
				"%s: column %d is %q, expected %q", s.Chart, i+1, got, name)
		}
	}
	for _, name := range s.Required {
		found := false
		for _, h := range header {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			return _type.NewErrorf(_type.ErrCodeSchemaMismatch, "%s: missing column %q", s.Chart, name)
		}
	}
	return nil
}

// InferOptions tunes row filtering.
type InferOptions struct {
	// StrictNumbers drops rows whose numeric cell does not parse instead of
	// reading it as zero. Only the line and bar charts honour it.
	StrictNumbers bool
}

// Inference is the outcome of mapping one dataset: how many rows were read
// and how many were dropped.
type Inference struct {
	Rows    int
	Dropped int
}

func emptyDataset(chart string, inf Inference) error {
	return _type.NewErrorf(_type.ErrCodeEmptyDataset, "%s: no valid rows out of %d", chart, inf.Rows)
}

// parseNumber reads a cell the way a numeric coercion of text does:
// surrounding blanks are ignored and an empty cell is 0.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// coerceNumber is parseNumber with the zero fallback. Non-finite values also
// read as zero so nothing infinite reaches a chart.
func coerceNumber(s string) float64 {
	v, ok := parseNumber(s)
	if !ok || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func strictNumber(s string) (float64, bool) {
	v, ok := parseNumber(s)
	if !ok || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

const dateLayout = "2006-01-02"

var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006-01",
	"2006",
}

// parseDate tries the fixed day layout first, then a list of generic ones.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InferPricePoints maps the first column to a date and the second to a price.
func InferPricePoints(ds *_type.Dataset, schema Schema, opts InferOptions) ([]_type.PricePoint, Inference, error) {
	inf := Inference{Rows: ds.Len()}
	if err := schema.Check(ds.Header); err != nil {
		return nil, inf, err
	}

	points := make([]_type.PricePoint, 0, ds.Len())
	for _, row := range ds.Rows {
		dateCell, _ := row.At(0)
		priceCell, _ := row.At(1)

		date, ok := parseDate(dateCell)
		if !ok {
			inf.Dropped++
			continue
		}

		price := coerceNumber(priceCell)
		if opts.StrictNumbers {
			if price, ok = strictNumber(priceCell); !ok {
				inf.Dropped++
				continue
			}
		}
		points = append(points, _type.PricePoint{Date: date, Price: price})
	}

	if len(points) == 0 {
		return nil, inf, emptyDataset(schema.Chart, inf)
	}
	return points, inf, nil
}

// InferCategoryValues maps the first column to a label and the second to a value.
func InferCategoryValues(ds *_type.Dataset, schema Schema, opts InferOptions) ([]_type.CategoryValue, Inference, error) {
	inf := Inference{Rows: ds.Len()}
	if err := schema.Check(ds.Header); err != nil {
		return nil, inf, err
	}

	values := make([]_type.CategoryValue, 0, ds.Len())
	for _, row := range ds.Rows {
		labelCell, _ := row.At(0)
		valueCell, _ := row.At(1)

		label := strings.TrimSpace(labelCell)
		if label == "" {
			inf.Dropped++
			continue
		}

		value := coerceNumber(valueCell)
		if opts.StrictNumbers {
			var ok bool
			if value, ok = strictNumber(valueCell); !ok {
				inf.Dropped++
				continue
			}
		}
		values = append(values, _type.CategoryValue{Category: label, Value: value})
	}

	if len(values) == 0 {
		return nil, inf, emptyDataset(schema.Chart, inf)
	}
	return values, inf, nil
}

// InferSeriesRecords maps the first column to a label and every other column
// to a numeric series.
func InferSeriesRecords(ds *_type.Dataset, schema Schema, _ InferOptions) ([]_type.SeriesRecord, Inference, error) {
	inf := Inference{Rows: ds.Len()}
	if err := schema.Check(ds.Header); err != nil {
		return nil, inf, err
	}

	series := append([]string(nil), ds.Header[1:]...)
	records := make([]_type.SeriesRecord, 0, ds.Len())
	for _, row := range ds.Rows {
		labelCell, _ := row.At(0)
		label := strings.TrimSpace(labelCell)
		if label == "" {
			inf.Dropped++
			continue
		}

		rec := _type.SeriesRecord{
			Category: label,
			Series:   series,
			Values:   make(map[string]float64, len(series)),
		}
		for _, name := range series {
			cell, _ := row.Get(name)
			rec.Values[name] = coerceNumber(cell)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, inf, emptyDataset(schema.Chart, inf)
	}
	return records, inf, nil
}

// InferScatterPoints reads the named scatter columns and keeps rows whose
// star rating and energy are both positive.
func InferScatterPoints(ds *_type.Dataset, schema Schema, _ InferOptions) ([]_type.ScatterPoint, Inference, error) {
	inf := Inference{Rows: ds.Len()}
	if err := schema.Check(ds.Header); err != nil {
		return nil, inf, err
	}

	text := func(row _type.RawRow, name string) string {
		v, _ := row.Get(name)
		if v = strings.TrimSpace(v); v == "" {
			return unknownLabel
		}
		return v
	}
	number := func(row _type.RawRow, name string) float64 {
		v, _ := row.Get(name)
		return coerceNumber(v)
	}

	points := make([]_type.ScatterPoint, 0, ds.Len())
	for _, row := range ds.Rows {
		p := _type.ScatterPoint{
			X:          number(row, colStarRating),
			Y:          number(row, colEnergy),
			Category:   text(row, colScreenTech),
			Brand:      text(row, colBrand),
			ScreenSize: number(row, colScreenSize),
		}
		if !(p.X > 0 && p.Y > 0) {
			inf.Dropped++
			continue
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, inf, emptyDataset(schema.Chart, inf)
	}
	return points, inf, nil
}
