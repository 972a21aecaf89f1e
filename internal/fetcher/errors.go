package fetcher

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is wrapped by FetchError when the source answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// FetchError reports that the source could not be reached or did not answer successfully.
type FetchError struct {
	Source     string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a payload that is not a well-formed array of grade records.
type ParseError struct {
	Source string
	Index  int // offending element, -1 when the payload as a whole is malformed
	Err    error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parse %s: record %d: %v", e.Source, e.Index, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
