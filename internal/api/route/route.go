package route

import (
	"net/http"
	"time"

	"github.com/bassista/go_grades/internal/api/controller"
	"github.com/bassista/go_grades/internal/api/middleware"
	"github.com/bassista/go_grades/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// adminRefreshTimeout bounds how long POST /admin/refresh waits for a cycle.
// The cycle itself keeps running when the request gives up.
const adminRefreshTimeout = 30 * time.Second

// SetupRoutes builds the engine with middleware and every route of the service.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	timeout := appCtx.Config.Server.RequestTimeout

	hc := controller.NewHealthController(appCtx.Students, appCtx.Cache, appCtx.Refresher)
	r.GET("/health", middleware.RequestTimeout(timeout), hc.Health)

	if appCtx.Metrics != nil {
		r.GET("/metrics", gin.WrapH(appCtx.Metrics.Handler()))
	}

	NewStudentRouter(timeout, r.Group("/student"), appCtx.Students, appCtx.Cache)
	NewCourseRouter(timeout, r.Group("/course"), appCtx.Cache)
	NewAdminRouter(adminRefreshTimeout, r.Group("/admin"), appCtx.Refresher)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
