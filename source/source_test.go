package source

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	_type "energyvis/type"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type SourceTestSuite struct {
	suite.Suite
	dir string
}

func TestSourceSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (suite *SourceTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *SourceTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (suite *SourceTestSuite) TestFileSource() {
	path := suite.writeFile("prices.csv", "date,price\n2024-01-01,10.5\n2024-01-02,11\n")

	ds, err := NewFileSource("areSpotPrices", path).Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal("areSpotPrices", ds.Name)
	suite.Equal([]string{"date", "price"}, ds.Header)
	suite.Equal(2, ds.Len())
	v, _ := ds.Rows[1].At(1)
	suite.Equal("11", v)
}

func (suite *SourceTestSuite) TestFileSourceRaggedAndEmpty() {
	path := suite.writeFile("ragged.csv", "a,b,c\n1,2\n3,4,5,6\n")
	ds, err := NewFileSource("r", path).Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal(2, ds.Len())
	v, _ := ds.Rows[0].Get("c")
	suite.Equal("", v)

	empty := suite.writeFile("empty.csv", "")
	ds, err = NewFileSource("e", empty).Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal(0, ds.Len())
}

func (suite *SourceTestSuite) TestFileSourceMissing() {
	_, err := NewFileSource("m", filepath.Join(suite.dir, "nope.csv")).Fetch(context.Background())
	suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure))
}

func (suite *SourceTestSuite) TestHTTPSource() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("screen_type,energy\nLCD,120\nOLED,95\n"))
	}))
	defer srv.Close()

	ds, err := NewHTTPSource("tv55inch", srv.URL+"/tv.csv").Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal(2, ds.Len())
	v, _ := ds.Rows[0].Get("screen_type")
	suite.Equal("LCD", v)

	_, err = NewHTTPSource("tv55inch", srv.URL+"/missing.csv").Fetch(context.Background())
	suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure))
}

func (suite *SourceTestSuite) TestXLSXSource() {
	path := filepath.Join(suite.dir, "sizes.xlsx")
	f := excelize.NewFile()
	suite.Require().NoError(f.SetSheetRow("Sheet1", "A1", &[]interface{}{"type", "32", "55"}))
	suite.Require().NoError(f.SetSheetRow("Sheet1", "A2", &[]interface{}{"LCD", 80, 120}))
	suite.Require().NoError(f.SaveAs(path))
	suite.Require().NoError(f.Close())

	ds, err := NewXLSXSource("tvAllSizes", path, "").Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"type", "32", "55"}, ds.Header)
	suite.Equal(1, ds.Len())
	v, _ := ds.Rows[0].Get("55")
	suite.Equal("120", v)

	_, err = NewXLSXSource("tvAllSizes", path, "NoSuchSheet").Fetch(context.Background())
	suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure))
}

func (suite *SourceTestSuite) TestCancelledContext() {
	path := suite.writeFile("prices.csv", "date,price\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileSource("p", path).Fetch(ctx)
	suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure))
}

func (suite *SourceTestSuite) TestParquetSource() {
	path := filepath.Join(suite.dir, "tv55inch.parquet")
	// cells out of order, with a short second row
	cells := []SnapshotCell{
		{Dataset: "tv55inch", Row: 2, Col: 0, Column: "screen_type", Value: "OLED"},
		{Dataset: "tv55inch", Row: 1, Col: 1, Column: "energy", Value: "120"},
		{Dataset: "tv55inch", Row: HeaderRow, Col: 1, Column: "energy", Value: "energy"},
		{Dataset: "tv55inch", Row: 1, Col: 0, Column: "screen_type", Value: "LCD"},
		{Dataset: "tv55inch", Row: HeaderRow, Col: 0, Column: "screen_type", Value: "screen_type"},
	}
	suite.Require().NoError(parquet.WriteFile(path, cells))

	ds, err := NewParquetSource("tv55inch", path).Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"screen_type", "energy"}, ds.Header)
	suite.Require().Equal(2, ds.Len())
	suite.Equal([]string{"LCD", "120"}, ds.Rows[0].Record())
	suite.Equal([]string{"OLED", ""}, ds.Rows[1].Record())

	_, err = NewParquetSource("x", filepath.Join(suite.dir, "missing.parquet")).Fetch(context.Background())
	suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure))
}

func (suite *SourceTestSuite) TestParquetSourceHeaderOnly() {
	path := filepath.Join(suite.dir, "empty.parquet")
	cells := []SnapshotCell{
		{Dataset: "e", Row: HeaderRow, Col: 0, Column: "date", Value: "date"},
		{Dataset: "e", Row: HeaderRow, Col: 1, Column: "price", Value: "price"},
	}
	suite.Require().NoError(parquet.WriteFile(path, cells))

	ds, err := NewParquetSource("e", path).Fetch(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"date", "price"}, ds.Header)
	suite.Equal(0, ds.Len())
}

func (suite *SourceTestSuite) TestParquetSourceBadCells() {
	header := SnapshotCell{Dataset: "b", Row: HeaderRow, Col: 0, Column: "a", Value: "a"}
	for name, bad := range map[string]SnapshotCell{
		"negative_col.parquet": {Dataset: "b", Row: 1, Col: -1, Column: "a", Value: "x"},
		"negative_row.parquet": {Dataset: "b", Row: -3, Col: 0, Column: "a", Value: "x"},
		"wide.parquet":         {Dataset: "b", Row: 1, Col: 4, Column: "e", Value: "x"},
	} {
		path := filepath.Join(suite.dir, name)
		suite.Require().NoError(parquet.WriteFile(path, []SnapshotCell{header, bad}))

		_, err := NewParquetSource("b", path).Fetch(context.Background())
		suite.True(_type.HasCode(err, _type.ErrCodeLoadFailure), name)
	}
}

func TestNewPicksImplementation(t *testing.T) {
	s, err := New(_type.DatasetConfig{Name: "a", Location: "https://host/a.csv"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, s)

	s, err = New(_type.DatasetConfig{Name: "b", Location: "data/b.XLSX"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &XLSXSource{}, s)

	s, err = New(_type.DatasetConfig{Name: "p", Location: "src_data/p_1.parquet"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &ParquetSource{}, s)

	s, err = New(_type.DatasetConfig{Name: "c", Location: "data/c.csv"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, s)
	assert.Equal(t, "c", s.Name())

	_, err = New(_type.DatasetConfig{Name: "d", Location: "mysql:tv_energy"}, nil)
	assert.True(t, _type.HasCode(err, _type.ErrCodeInvalidConfiguration))

	_, err = New(_type.DatasetConfig{Name: "e", Location: "  "}, nil)
	assert.True(t, _type.HasCode(err, _type.ErrCodeInvalidConfiguration))

	assert.True(t, NeedsDB([]_type.DatasetConfig{{Location: "a.csv"}, {Location: "mysql:t"}}))
	assert.False(t, NeedsDB(_type.DefaultDatasets()))
}

type fakeRows struct {
	data [][]*string
	pos  int
	err  error
}

func (f *fakeRows) Next() bool {
	f.pos++
	return f.pos <= len(f.data)
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.data[f.pos-1]
	for i := range dest {
		ns := dest[i].(*sql.NullString)
		if row[i] != nil {
			*ns = sql.NullString{String: *row[i], Valid: true}
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func TestScanStrings(t *testing.T) {
	s := func(v string) *string { return &v }
	rows := &fakeRows{data: [][]*string{
		{s("LCD"), s("4.5")},
		{nil, s("2")},
	}}

	records, err := scanStrings(rows, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"LCD", "4.5"}, {"", "2"}}, records)

	_, err = scanStrings(&fakeRows{err: errors.New("conn reset")}, 2)
	assert.EqualError(t, err, "conn reset")
}
