package route

import (
	"time"

	"github.com/bassista/go_grades/internal/api/controller"
	"github.com/bassista/go_grades/internal/api/middleware"
	"github.com/bassista/go_grades/internal/cache"
	"github.com/gin-gonic/gin"
)

func NewAdminRouter(refreshTimeout time.Duration, group *gin.RouterGroup, refresher cache.Refreshable) {
	group.Use(middleware.RequestTimeout(refreshTimeout))

	rc := controller.NewRefreshController(refresher)

	group.POST("refresh", rc.Refresh)
}
