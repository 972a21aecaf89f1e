package grades

import "math"

type accumulator struct {
	max   float64
	min   float64
	sum   float64
	mean  float64
	count int
}

func (a *accumulator) add(g float64) {
	if g > a.max {
		a.max = g
	}
	if g < a.min {
		a.min = g
	}
	a.sum += g
	a.count++
	n := float64(a.count)
	a.mean += g/n - a.mean/n
}

// average is sum/count while the sum is finite, the running mean once it overflowed.
func (a *accumulator) average() float64 {
	if math.IsInf(a.sum, 0) {
		return a.mean
	}
	return a.sum / float64(a.count)
}

// Aggregate computes per-course statistics in a single pass over records.
// The result does not depend on record order. An empty input yields an empty report.
func Aggregate(records []GradeRecord) CourseReport {
	acc := make(map[CourseID]*accumulator)

	for _, r := range records {
		a, ok := acc[r.Course]
		if !ok {
			acc[r.Course] = &accumulator{max: r.Grade, min: r.Grade, sum: r.Grade, mean: r.Grade, count: 1}
			continue
		}
		a.add(r.Grade)
	}

	report := make(CourseReport, len(acc))
	for course, a := range acc {
		report[course] = CourseStats{
			HighestGrade: a.max,
			LowestGrade:  a.min,
			AverageGrade: a.average(),
		}
	}
	return report
}
