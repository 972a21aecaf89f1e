package grades

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot_ReportMatchesRecords(t *testing.T) {
	snap := NewSnapshot(scenarioRecords(), time.Now())

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, 2, snap.CourseCount())
	assert.Equal(t, Aggregate(snap.Records()), snap.Report())
}

func TestSnapshot_RecordsByStudentID(t *testing.T) {
	snap := NewSnapshot(scenarioRecords(), time.Now())

	assert.Equal(t, []GradeRecord{
		{StudentID: 1, Course: "A", Grade: 80},
		{StudentID: 1, Course: "B", Grade: 70},
	}, snap.RecordsByStudentID(1))

	none := snap.RecordsByStudentID(999)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSnapshot_IsolatedFromCallers(t *testing.T) {
	input := scenarioRecords()
	snap := NewSnapshot(input, time.Now())

	input[0].Grade = 0

	records := snap.Records()
	records[1].Grade = 0

	report := snap.Report()
	report["A"] = CourseStats{}
	delete(report, "B")

	byStudent := snap.RecordsByStudentID(1)
	byStudent[0].Course = "Z"

	assert.Equal(t, scenarioRecords(), snap.Records())
	assert.Equal(t, CourseStats{HighestGrade: 90, LowestGrade: 80, AverageGrade: 85}, snap.Report()["A"])
	assert.Len(t, snap.Report(), 2)
	assert.Equal(t, CourseID("A"), snap.RecordsByStudentID(1)[0].Course)
}

func TestNewSnapshot_Empty(t *testing.T) {
	snap := NewSnapshot(nil, time.Now())

	assert.Equal(t, 0, snap.Len())
	assert.NotNil(t, snap.Report())
	assert.Empty(t, snap.Report())
	assert.Empty(t, snap.RecordsByStudentID(1))
}

func TestNewSnapshot_UniqueIDs(t *testing.T) {
	a := NewSnapshot(nil, time.Now())
	b := NewSnapshot(nil, time.Now())
	assert.NotEqual(t, a.ID, b.ID)
}
