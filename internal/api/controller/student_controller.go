package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/grades"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/bassista/go_grades/internal/student"
	"github.com/gin-gonic/gin"
)

const gradesNotFoundMessage = "Grades not found!"

// StudentLookup is the student repository API needed by the student handlers.
type StudentLookup interface {
	Get(ctx context.Context, id int64) (*student.Student, error)
}

type StudentController struct {
	students StudentLookup
	grades   cache.StudentGradesReader
}

func NewStudentController(students StudentLookup, reader cache.StudentGradesReader) *StudentController {
	return &StudentController{students: students, grades: reader}
}

// studentGradesResponse flattens the student fields next to the grades.
// A nil Student leaves only the grades in the output.
type studentGradesResponse struct {
	*student.Student
	Grades []grades.GradeRecord `json:"grades"`
}

// parseStudentID returns the id path parameter. ok is false when it is missing;
// valid is false when it is present but not an integer.
func parseStudentID(c *gin.Context) (id int64, ok bool, valid bool) {
	raw := c.Param("id")
	if raw == "" {
		return 0, false, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, true, false
	}
	return id, true, true
}

// GetStudent returns the student identity record, or null when there is none.
func (sc *StudentController) GetStudent(c *gin.Context) {
	id, ok, valid := parseStudentID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "missing student id"})
		return
	}
	if !valid {
		c.JSON(http.StatusOK, nil)
		return
	}

	s, err := sc.students.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, student.ErrStudentNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		logger.WithComponent("student_controller").Errorf("failed to get student %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read student"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// StudentGrades returns the student's grade records from the current snapshot,
// merged with the identity fields when the student is known.
func (sc *StudentController) StudentGrades(c *gin.Context) {
	id, ok, valid := parseStudentID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "missing student id"})
		return
	}
	if !valid {
		c.JSON(http.StatusOK, gin.H{"message": gradesNotFoundMessage})
		return
	}

	records := sc.grades.RecordsByStudentID(id)
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": gradesNotFoundMessage})
		return
	}

	s, err := sc.students.Get(c.Request.Context(), id)
	if err != nil && !errors.Is(err, student.ErrStudentNotFound) {
		logger.WithComponent("student_controller").Errorf("failed to get student %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read student"})
		return
	}

	c.JSON(http.StatusOK, studentGradesResponse{Student: s, Grades: records})
}
