package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bassista/go_grades/internal/cache"
	"github.com/bassista/go_grades/internal/config"
	"github.com/bassista/go_grades/internal/fetcher"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/bassista/go_grades/internal/metrics"
	"github.com/bassista/go_grades/internal/student"
)

// App is the application container (immutable dependencies + lifecycle context).
// It is not a request context; handlers should still use gin's request context.
type App struct {
	Config    *config.Config
	Fetcher   fetcher.Fetcher
	Cache     cache.AppStore
	Refresher *cache.Refresher
	Students  student.Repository
	Metrics   *metrics.Collector

	BaseCtx context.Context
	Cancel  context.CancelFunc

	closeOnce sync.Once
}

// New wires the application. m may be nil when metrics are not collected.
func New(cfg *config.Config, f fetcher.Fetcher, store cache.AppStore, students student.Repository, m *metrics.Collector) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if f == nil {
		return nil, errors.New("fetcher is nil")
	}
	if store == nil {
		return nil, errors.New("cache store is nil")
	}
	if students == nil {
		return nil, errors.New("student repository is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Config:    cfg,
		Fetcher:   f,
		Cache:     store,
		Refresher: cache.NewRefresher(ctx, f, store, m),
		Students:  students,
		Metrics:   m,
		BaseCtx:   ctx,
		Cancel:    cancel,
	}, nil
}

// Shutdown cancels the lifecycle context, stopping background work and any
// in-flight fetch, and releases the student repository.
func (a *App) Shutdown() {
	if a == nil || a.Cancel == nil {
		return
	}
	a.Cancel()
	a.closeOnce.Do(func() {
		if a.Students != nil {
			a.Students.Close()
		}
	})
}

// StartWatchers starts the background refresh triggers: an initial refresh,
// the periodic scheduler and, when enabled, the source file watcher.
// A failed initial refresh is not fatal; the cache stays unpopulated until a later
// cycle succeeds.
func (a *App) StartWatchers() error {
	log := logger.WithComponent("app")

	go func() {
		if _, err := a.Refresher.Refresh(a.BaseCtx); err != nil {
			log.Warnf("initial refresh failed, serving unpopulated cache until the next refresh: %v", err)
		}
	}()

	cache.StartRefreshScheduler(a.BaseCtx, a.Refresher, a.Config.Source.RefreshInterval)

	if !a.Config.Source.Watch {
		return nil
	}

	w, ok := a.Fetcher.(fetcher.Watchable)
	if !ok {
		log.Warnf("source %s does not support watching, ignoring watch setting", a.Fetcher.Source())
		return nil
	}

	err := w.Watch(a.BaseCtx, func() {
		if _, err := a.Refresher.RefreshLatest(a.BaseCtx); err != nil {
			log.Warnf("refresh after source change failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("cannot start source watcher: %w", err)
	}
	return nil
}
