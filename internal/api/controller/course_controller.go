package controller

import (
	"encoding/json"
	"net/http"

	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/gin-gonic/gin"
)

type CourseController struct {
	reports cache.ReportReader
}

func NewCourseController(reports cache.ReportReader) *CourseController {
	return &CourseController{reports: reports}
}

// AllGrades returns the per-course statistics of the current snapshot.
func (cc *CourseController) AllGrades(c *gin.Context) {
	report, ok := cc.reports.CourseReport()
	if !ok || len(report) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": gradesNotFoundMessage})
		return
	}

	// Encoded up front so an unencodable report becomes a 500 instead of an empty 200.
	body, err := json.Marshal(report)
	if err != nil {
		logger.WithComponent("course_controller").Errorf("failed to encode course report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode course report"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
