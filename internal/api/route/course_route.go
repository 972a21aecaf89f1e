package route

import (
	"time"

	"github.com/bassista/go_grades/internal/api/controller"
	"github.com/bassista/go_grades/internal/api/middleware"
	"github.com/bassista/go_grades/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewCourseRouter(timeout time.Duration, group *gin.RouterGroup, reports cache.ReportReader) {
	group.Use(middleware.RequestTimeout(timeout))

	cc := controller.NewCourseController(reports)

	group.GET("all/grades", cc.AllGrades)
}
