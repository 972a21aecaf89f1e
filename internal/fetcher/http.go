package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bassista/go_grades/internal/grades"
	"github.com/bassista/go_grades/internal/logger"
)

// HTTPFetcher downloads the dataset with a GET request against a fixed URL.
// It does not retry, and its default client has no timeout: the request lives
// as long as the context passed to Fetch.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for url. A nil client means a client without timeout.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{url: url, client: client}
}

func (f *HTTPFetcher) Source() string { return f.url }

// Fetch performs the GET and decodes the body.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]grades.GradeRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{Source: f.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	logger.WithComponent("fetcher").Debugf("GET %s", f.url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			return nil, &FetchError{Source: f.url, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
		}
		return nil, &FetchError{Source: f.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, msg)}
	}

	records, err := Decode(f.url, resp.Body)
	if err != nil {
		return nil, err
	}
	logger.WithComponent("fetcher").Debugf("decoded %d records from %s", len(records), f.url)
	return records, nil
}
