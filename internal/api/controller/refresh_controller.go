package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/fetcher"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/gin-gonic/gin"
)

type RefreshController struct {
	refresher cache.Refreshable
}

func NewRefreshController(refresher cache.Refreshable) *RefreshController {
	return &RefreshController{refresher: refresher}
}

// Refresh triggers a refresh cycle, or joins the running one, and reports the
// published snapshot. Giving up on the request does not stop the cycle.
func (rc *RefreshController) Refresh(c *gin.Context) {
	log := logger.WithComponent("refresh_controller")

	snap, err := rc.refresher.Refresh(c.Request.Context())
	if err != nil {
		switch {
		case fetcher.IsParseError(err):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case fetcher.IsFetchError(err):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case errors.Is(err, context.DeadlineExceeded):
			log.Warn("refresh still running when the request deadline passed")
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "refresh still in progress"})
		case errors.Is(err, context.Canceled):
			log.Debug("client went away while waiting for refresh")
			c.Abort()
		default:
			log.Errorf("refresh failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshotId": snap.ID,
		"records":    snap.Len(),
		"courses":    snap.CourseCount(),
		"fetchedAt":  snap.FetchedAt.UTC().Format(time.RFC3339Nano),
	})
}
