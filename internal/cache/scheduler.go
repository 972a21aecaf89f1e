package cache

import (
	"context"
	"time"

	"github.com/bassista/go_grades/internal/logger"
)

// StartRefreshScheduler runs a goroutine that periodically refreshes the cache.
// Ticks that fire while a cycle is still running join it instead of starting another.
// Returns a channel that is closed when the scheduler has stopped.
func StartRefreshScheduler(ctx context.Context, refresher Refreshable, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		logger.WithComponent("refresh-sched").Debugf("periodic refresh disabled")
		close(done)
		return done
	}

	logger.WithComponent("refresh-sched").Debugf("starting refresh scheduler with interval: %v", interval)
	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("refresh-sched").Info("refresh scheduler stopped")
				return
			case <-ticker.C:
				logger.WithComponent("refresh-sched").Tracef("refresh scheduler tick")
				// Errors are logged by the refresher; the last good snapshot stays published.
				_, _ = refresher.Refresh(ctx)
			}
		}
	}()
	return done
}
