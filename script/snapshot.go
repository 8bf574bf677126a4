package script

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"energyvis/source"
	_type "energyvis/type"

	"github.com/parquet-go/parquet-go"
)

// Snapshotter keeps a local copy of datasets read from a database so a later
// run can render from the file instead.
type Snapshotter struct {
	dir    string
	format string
	now    func() time.Time
}

func NewSnapshotter(dir, format string) *Snapshotter {
	return &Snapshotter{dir: dir, format: format, now: time.Now}
}

// Save writes the dataset and returns the file path.
func (s *Snapshotter) Save(ds *_type.Dataset) (string, error) {
	ext := s.format
	if ext == "" {
		ext = "csv"
	}
	name := filepath.Join(s.dir, fmt.Sprintf("%s_%d.%s", ds.Name, s.now().UnixMilli(), ext))
	if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
		return "", err
	}

	switch ext {
	case "csv":
		return name, saveCSV(name, ds)
	case "parquet":
		return name, saveParquet(name, ds)
	default:
		return "", _type.NewErrorf(_type.ErrCodeInvalidConfiguration, "unknown snapshot format %q", s.format)
	}
}

func saveCSV(name string, ds *_type.Dataset) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.UseCRLF = false

	if err = writer.Write(ds.Header); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err = writer.Write(row.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func saveParquet(name string, ds *_type.Dataset) error {
	cells := make([]source.SnapshotCell, 0, (ds.Len()+1)*len(ds.Header))
	for c, col := range ds.Header {
		cells = append(cells, source.SnapshotCell{
			Dataset: ds.Name,
			Row:     source.HeaderRow,
			Col:     int32(c),
			Column:  col,
			Value:   col,
		})
	}
	for i, row := range ds.Rows {
		for c, col := range ds.Header {
			v, _ := row.Get(col)
			cells = append(cells, source.SnapshotCell{
				Dataset: ds.Name,
				Row:     int64(i + 1),
				Col:     int32(c),
				Column:  col,
				Value:   v,
			})
		}
	}
	return parquet.WriteFile(name, cells)
}
