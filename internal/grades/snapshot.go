package grades

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the unit of publication: a record set together with the report
// derived from it. A Snapshot is never modified after NewSnapshot returns; all
// accessors hand out copies.
type Snapshot struct {
	ID        string
	FetchedAt time.Time

	records   []GradeRecord
	report    CourseReport
	byStudent map[int64][]int
}

// NewSnapshot copies records, aggregates them and indexes them by student.
func NewSnapshot(records []GradeRecord, fetchedAt time.Time) *Snapshot {
	owned := make([]GradeRecord, len(records))
	copy(owned, records)

	byStudent := make(map[int64][]int)
	for i, r := range owned {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], i)
	}

	return &Snapshot{
		ID:        uuid.New().String(),
		FetchedAt: fetchedAt,
		records:   owned,
		report:    Aggregate(owned),
		byStudent: byStudent,
	}
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// CourseCount returns the number of distinct courses.
func (s *Snapshot) CourseCount() int {
	return len(s.report)
}

// Records returns the records in fetch order.
func (s *Snapshot) Records() []GradeRecord {
	out := make([]GradeRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Report returns the per-course statistics.
func (s *Snapshot) Report() CourseReport {
	return s.report.Clone()
}

// RecordsByStudentID returns the student's records in fetch order, or an empty slice.
func (s *Snapshot) RecordsByStudentID(id int64) []GradeRecord {
	idx := s.byStudent[id]
	out := make([]GradeRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}
