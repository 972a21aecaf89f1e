package cache

import (
	"sync/atomic"

	"github.com/bassista/go_grades/internal/grades"
)

// Store holds the currently published snapshot. Reads are a single atomic load
// and never wait for a refresh; a nil snapshot means the store is unpopulated.
type Store struct {
	current atomic.Pointer[grades.Snapshot]
}

// NewStore creates an unpopulated store.
func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current snapshot. A nil snapshot is ignored.
func (s *Store) Publish(snap *grades.Snapshot) {
	if snap == nil {
		return
	}
	s.current.Store(snap)
}

// Snapshot returns the current snapshot, false when unpopulated.
func (s *Store) Snapshot() (*grades.Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// IsPopulated reports whether a refresh has ever succeeded.
func (s *Store) IsPopulated() bool {
	return s.current.Load() != nil
}

// CourseReport returns the report of the current snapshot, false when unpopulated.
func (s *Store) CourseReport() (grades.CourseReport, bool) {
	snap := s.current.Load()
	if snap == nil {
		return nil, false
	}
	return snap.Report(), true
}

// RecordsByStudentID returns the student's records in fetch order. The result is
// empty both when unpopulated and when the student has no records.
func (s *Store) RecordsByStudentID(id int64) []grades.GradeRecord {
	snap := s.current.Load()
	if snap == nil {
		return []grades.GradeRecord{}
	}
	return snap.RecordsByStudentID(id)
}
