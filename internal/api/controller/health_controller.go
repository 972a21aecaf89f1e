package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/gin-gonic/gin"
)

// Pinger is implemented by dependencies whose reachability defines health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db      Pinger
	store   cache.SnapshotReader
	refresh cache.StatusReader
}

// NewHealthController builds the health handler. refresh may be nil.
func NewHealthController(db Pinger, store cache.SnapshotReader, refresh cache.StatusReader) *HealthController {
	return &HealthController{db: db, store: store, refresh: refresh}
}

// Health reports whether the student store is reachable, plus the cache state
// and the outcome of the latest refresh. An unpopulated cache does not make the
// service unhealthy.
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.db.Ping(c.Request.Context()); err != nil {
		logger.WithComponent("health_controller").Errorf("student store ping failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "student store unavailable"})
		return
	}

	resp := gin.H{
		"success":   true,
		"populated": false,
	}
	if snap, ok := hc.store.Snapshot(); ok {
		resp["populated"] = true
		resp["snapshotId"] = snap.ID
	}
	if hc.refresh != nil {
		status := hc.refresh.Status()
		if !status.LastSuccess.IsZero() {
			resp["lastSuccess"] = status.LastSuccess.UTC().Format(time.RFC3339Nano)
		}
		if status.LastError != "" {
			resp["lastError"] = status.LastError
		}
	}
	c.JSON(http.StatusOK, resp)
}
