package source

import (
	"bytes"
	"context"

	_type "energyvis/type"

	"github.com/go-resty/resty/v2"
)

// HTTPSource fetches a CSV document over HTTP(S). There is no retry.
type HTTPSource struct {
	name   string
	url    string
	client *resty.Client
}

func NewHTTPSource(name, url string) *HTTPSource {
	client := resty.New().
		SetHeader("Accept", "text/csv, text/plain, */*").
		SetRetryCount(0)
	return &HTTPSource{name: name, url: url, client: client}
}

func (s *HTTPSource) Name() string { return s.name }

func (s *HTTPSource) Fetch(ctx context.Context) (*_type.Dataset, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, _type.WrapErrorf(_type.ErrCodeLoadFailure, err, "fetch %s", s.url)
	}
	if resp.IsError() {
		return nil, _type.NewErrorf(_type.ErrCodeLoadFailure, "fetch %s: %s", s.url, resp.Status())
	}
	return decodeCSV(s.name, bytes.NewReader(resp.Body()))
}
