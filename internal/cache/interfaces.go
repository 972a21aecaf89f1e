package cache

import "github.com/bassista/go_grades/internal/grades"

// SnapshotReader is the minimal cache API for callers that need the whole snapshot.
type SnapshotReader interface {
	Snapshot() (*grades.Snapshot, bool)
	IsPopulated() bool
}

// ReportReader is the cache API needed by course handlers.
type ReportReader interface {
	CourseReport() (grades.CourseReport, bool)
}

// StudentGradesReader is the cache API needed by student grade handlers.
type StudentGradesReader interface {
	RecordsByStudentID(id int64) []grades.GradeRecord
}

// ReadOnlyStore combines every read operation.
type ReadOnlyStore interface {
	SnapshotReader
	ReportReader
	StudentGradesReader
}

// StatusReader exposes the outcome of the latest refresh cycles.
type StatusReader interface {
	Status() RefreshStatus
}

// Publisher is the cache API needed by the refresher.
type Publisher interface {
	Publish(snap *grades.Snapshot)
}

// AppStore is the cache contract the application container exposes.
type AppStore interface {
	ReadOnlyStore
	Publisher
}
