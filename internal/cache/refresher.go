package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bassista/go_grades/internal/fetcher"
	"github.com/bassista/go_grades/internal/grades"
	"github.com/bassista/go_grades/internal/logger"
	"github.com/bassista/go_grades/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "grades"

// Refreshable is the refresher API needed by triggers (scheduler, watcher, HTTP).
type Refreshable interface {
	Refresh(ctx context.Context) (*grades.Snapshot, error)
}

// RefreshStatus describes the outcome of the most recent refresh cycles.
type RefreshStatus struct {
	LastAttempt time.Time
	LastSuccess time.Time
	LastError   string
}

// Refresher runs refresh cycles: fetch, aggregate, publish.
//
// At most one cycle is in flight; a trigger arriving while one runs joins it
// and receives the same result. The cycle runs in its own goroutine bound to
// the refresher's base context, so a caller giving up (ctx cancelled) never
// aborts a fetch other callers may be waiting on.
type Refresher struct {
	fetcher fetcher.Fetcher
	store   Publisher
	metrics *metrics.Collector
	baseCtx context.Context
	now     func() time.Time

	group  singleflight.Group
	cycles atomic.Uint64

	mu     sync.RWMutex
	status RefreshStatus
}

// NewRefresher creates a refresher publishing into store. baseCtx bounds every
// fetch and is normally the application lifetime context. m may be nil.
func NewRefresher(baseCtx context.Context, f fetcher.Fetcher, store Publisher, m *metrics.Collector) *Refresher {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Refresher{
		fetcher: f,
		store:   store,
		metrics: m,
		baseCtx: baseCtx,
		now:     time.Now,
	}
}

// Refresh triggers a cycle, or joins the one in flight, and waits for its
// result or for ctx to be done. On failure the published snapshot is left untouched.
func (r *Refresher) Refresh(ctx context.Context) (*grades.Snapshot, error) {
	ch := r.group.DoChan(refreshKey, func() (interface{}, error) {
		return r.cycle()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*grades.Snapshot), nil
	case <-ctx.Done():
		logger.WithComponent("refresh").Debugf("caller stopped waiting: %v", ctx.Err())
		return nil, ctx.Err()
	}
}

// RefreshLatest is Refresh for change notifications. When the call only joined
// a cycle that had started before it, that cycle may have read the source too
// early, so one more cycle is run.
func (r *Refresher) RefreshLatest(ctx context.Context) (*grades.Snapshot, error) {
	started := r.cycles.Load()
	snap, err := r.Refresh(ctx)
	if ctx.Err() != nil || r.cycles.Load() != started {
		return snap, err
	}
	logger.WithComponent("refresh").Debug("joined a cycle started before the change, refreshing again")
	return r.Refresh(ctx)
}

// Status returns the outcome of the most recent cycles.
func (r *Refresher) Status() RefreshStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Refresher) cycle() (*grades.Snapshot, error) {
	r.cycles.Add(1)
	start := r.now()
	logger.WithComponent("refresh").Debugf("refreshing grades from %s", r.fetcher.Source())

	records, err := r.fetcher.Fetch(r.baseCtx)
	if err != nil {
		outcome := outcomeFor(err)
		r.metrics.ObserveRefresh(outcome, time.Since(start))
		r.recordFailure(start, err)
		logger.WithComponent("refresh").WithField("outcome", outcome).
			Errorf("refresh failed, keeping current snapshot: %v", err)
		return nil, err
	}

	snap := grades.NewSnapshot(records, r.now())
	r.store.Publish(snap)

	r.metrics.ObserveRefresh(metrics.OutcomeSuccess, time.Since(start))
	r.metrics.SetSnapshot(snap.Len(), snap.CourseCount(), snap.FetchedAt)
	r.recordSuccess(start, snap.FetchedAt)

	logger.WithSnapshot("refresh", snap.ID).Infof("published %d records across %d courses in %v",
		snap.Len(), snap.CourseCount(), time.Since(start).Round(time.Millisecond))
	return snap, nil
}

func (r *Refresher) recordFailure(attempt time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.LastAttempt = attempt
	r.status.LastError = err.Error()
}

func (r *Refresher) recordSuccess(attempt, fetchedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.LastAttempt = attempt
	r.status.LastSuccess = fetchedAt
	r.status.LastError = ""
}

func outcomeFor(err error) string {
	switch {
	case fetcher.IsParseError(err):
		return metrics.OutcomeParseError
	case fetcher.IsFetchError(err):
		return metrics.OutcomeFetchError
	default:
		return metrics.OutcomeError
	}
}
