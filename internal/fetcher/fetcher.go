// Package fetcher retrieves the grade dataset from its source and decodes it
// into grade records.
package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bassista/go_grades/internal/grades"
)

// Fetcher retrieves the full grade dataset.
type Fetcher interface {
	Fetch(ctx context.Context) ([]grades.GradeRecord, error)
	Source() string
}

// Watchable is implemented by sources that can signal changes on their own.
type Watchable interface {
	Watch(ctx context.Context, onChange func()) error
}

// New builds a Fetcher for source: http(s) URLs are fetched over HTTP,
// file:// URLs and plain paths are read from disk.
func New(source string) (Fetcher, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("grades source is required")
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse grades source: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTPFetcher(source, nil), nil
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return NewFileFetcher(path)
	case "":
		return NewFileFetcher(source)
	default:
		return nil, fmt.Errorf("unsupported grades source scheme %q (supported: http, https, file)", u.Scheme)
	}
}
