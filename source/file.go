package source

import (
	"context"
	"os"

	_type "energyvis/type"
)

// FileSource reads a CSV file from disk.
type FileSource struct {
	name string
	path string
}

func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

func (s *FileSource) Name() string { return s.name }

func (s *FileSource) Fetch(ctx context.Context) (*_type.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open %s", s.path)
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "open %s", s.path)
	}
	defer file.Close()

	return decodeCSV(s.name, file)
}
