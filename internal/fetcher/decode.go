package fetcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bassista/go_grades/internal/grades"
	"github.com/go-playground/validator/v10"
)

// recordPayload mirrors the wire shape. Pointers let validation tell a missing
// field apart from a zero value.
type recordPayload struct {
	ID     *int64           `json:"id" validate:"required"`
	Course *grades.CourseID `json:"course" validate:"required"`
	Grade  *float64         `json:"grade" validate:"required"`
}

var payloadValidator = validator.New()

// Decode reads a JSON array of grade records from r, preserving array order.
// Any failure is returned as a *ParseError tagged with source.
func Decode(source string, r io.Reader) ([]grades.GradeRecord, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("read body: %w", err)}
	}
	return decodeBytes(source, body)
}

func decodeBytes(source string, body []byte) ([]grades.GradeRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{Source: source, Index: -1, Err: errors.New("payload is not a JSON array")}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ParseError{Source: source, Index: -1, Err: err}
	}

	records := make([]grades.GradeRecord, 0, len(raw))
	for i, item := range raw {
		var p recordPayload
		if err := json.Unmarshal(item, &p); err != nil {
			return nil, &ParseError{Source: source, Index: i, Err: err}
		}
		if err := payloadValidator.Struct(&p); err != nil {
			return nil, &ParseError{Source: source, Index: i, Err: err}
		}
		records = append(records, grades.GradeRecord{
			StudentID: *p.ID,
			Course:    *p.Course,
			Grade:     *p.Grade,
		})
	}
	return records, nil
}
