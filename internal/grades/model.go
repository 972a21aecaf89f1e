package grades

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CourseID identifies a course. The source feed uses either strings or integers;
// integers are kept as their literal text.
type CourseID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (c *CourseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CourseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("course must be a string or a number")
	}
	*c = CourseID(n.String())
	return nil
}

// GradeRecord is a single exam grade as published by the source feed.
type GradeRecord struct {
	StudentID int64    `json:"id"`
	Course    CourseID `json:"course"`
	Grade     float64  `json:"grade"`
}

// CourseStats holds the derived statistics for one course.
type CourseStats struct {
	HighestGrade float64 `json:"highestGrade"`
	LowestGrade  float64 `json:"lowestGrade"`
	AverageGrade float64 `json:"averageGrade"`
}

// CourseReport maps every course present in a record set to its statistics.
type CourseReport map[CourseID]CourseStats

// Clone returns an independent copy of the report.
func (r CourseReport) Clone() CourseReport {
	out := make(CourseReport, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
