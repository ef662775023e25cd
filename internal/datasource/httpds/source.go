package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Source adapts Client to the datasource.Source interface: Open issues a GET
// for the configured URL and hands the response body to the caller.
type Source struct {
	client *Client
	url    string
}

// NewSource returns an HTTP data source for the given URL using a client
// built from cfg.
func NewSource(url string, cfg Config) *Source {
	return &Source{client: NewClient(cfg), url: url}
}

// Open fetches the URL and returns the response body. Non-2xx responses are
// an error; retryable statuses have already been retried by the client.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("httpds: status %d from GET %s", resp.StatusCode, s.url)
	}
	return resp.Body, nil
}
