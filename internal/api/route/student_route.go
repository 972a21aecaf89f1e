package route

import (
	"time"

	"github.com/bassista/go_grades/internal/api/controller"
	"github.com/bassista/go_grades/internal/api/middleware"
	"github.com/bassista/go_grades/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewStudentRouter(timeout time.Duration, group *gin.RouterGroup, students controller.StudentLookup, reader cache.StudentGradesReader) {
	group.Use(middleware.RequestTimeout(timeout))

	sc := controller.NewStudentController(students, reader)

	group.GET(":id", sc.GetStudent)
	group.GET(":id/grades", sc.StudentGrades)
}
