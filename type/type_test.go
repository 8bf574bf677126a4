package _type

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRowKeepsFileOrder(t *testing.T) {
	row := NewRawRow([]string{"date", "price", "note"}, []string{"2024-01-02", "12.5"})

	assert.Equal(t, []string{"date", "price", "note"}, row.Columns())
	v, ok := row.At(1)
	assert.True(t, ok)
	assert.Equal(t, "12.5", v)

	v, ok = row.Get("note")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = row.At(3)
	assert.False(t, ok)
	assert.Equal(t, []string{"2024-01-02", "12.5", ""}, row.Record())
}

func TestRawRowDuplicateHeader(t *testing.T) {
	row := NewRawRow([]string{"a", "b", "a"}, []string{"1", "2", "3"})
	assert.Equal(t, 2, row.Len())
	v, _ := row.Get("a")
	assert.Equal(t, "3", v)
}

func TestNewDatasetTrimsHeader(t *testing.T) {
	ds := NewDataset("x", []string{"\ufeffdate ", " price"}, [][]string{{"2024-01-01", "1"}})
	assert.Equal(t, []string{"date", "price"}, ds.Header)
	assert.Equal(t, 1, ds.Len())

	var nilDs *Dataset
	assert.Equal(t, 0, nilDs.Len())
}

func TestTrendLineSegment(t *testing.T) {
	tl := TrendLine{Slope: 2, Intercept: 1}
	seg := tl.Segment([2]float64{0, 10})
	assert.Equal(t, [2]float64{0, 1}, seg[0])
	assert.Equal(t, [2]float64{10, 21}, seg[1])
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(ErrCodeLoadFailure, "fetch", cause)

	assert.True(t, HasCode(err, ErrCodeLoadFailure))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[300] fetch: boom", err.Error())
	assert.Equal(t, ErrCodeUnknown, GetCode(cause))
	assert.False(t, HasCode(nil, ErrCodeUnknown))
	assert.Equal(t, "empty dataset", ErrCodeEmptyDataset.String())
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "11235", cfg.DstPort)
	assert.Equal(t, Margin{Top: 20, Right: 30, Bottom: 40, Left: 50}, cfg.Viewport.Margin)
	assert.Len(t, cfg.Datasets, 4)
	w, h := cfg.Viewport.Inner()
	assert.Equal(t, 880, w)
	assert.Equal(t, 440, h)
	assert.Equal(t, "dump:111@tcp(127.0.0.1:6001)/system?charset=utf8mb4&parseTime=True&loc=Local", cfg.MySQL.DSN())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energyvis.yaml")
	content := `
port: "8080"
log_level: debug
viewport:
  width: 400
  height: 300
datasets:
  - name: tvEnergy
    location: http://example.com/tv.csv
image_format: svg
load_timeout: 5s
strict_numbers: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.DstPort)
	assert.Equal(t, 400, cfg.Viewport.Width)
	assert.Equal(t, 20, cfg.Viewport.Margin.Top)
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout)
	assert.True(t, cfg.StrictNumbers)

	d, ok := cfg.Dataset(DatasetTVEnergy)
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/tv.csv", d.Location)
	d, ok = cfg.Dataset(DatasetSpotPrices)
	assert.True(t, ok)
	assert.Equal(t, SrcDataDir+"/Ex5_ARE_Spot_Prices.csv", d.Location)
	assert.Len(t, cfg.Datasets, 4)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image_format: gif\n"), 0o644))

	_, err := LoadConfig(path)
	assert.True(t, HasCode(err, ErrCodeInvalidConfiguration))

	cfg := &Config{Datasets: []DatasetConfig{{Name: "a", Location: "x"}, {Name: "a", Location: "y"}}}
	cfg.FillDefault()
	assert.True(t, HasCode(cfg.Validate(), ErrCodeInvalidConfiguration))

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, HasCode(err, ErrCodeInvalidConfiguration))
}
