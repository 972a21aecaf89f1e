// Package metrics exposes Prometheus collectors for the grade cache.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes used as the "outcome" label.
const (
	OutcomeSuccess    = "success"
	OutcomeFetchError = "fetch_error"
	OutcomeParseError = "parse_error"
	OutcomeError      = "error"
)

// Collector groups the cache metrics on a private registry.
// All methods are safe on a nil *Collector, which records nothing.
type Collector struct {
	registry *prometheus.Registry

	refreshTotal    *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	records         prometheus.Gauge
	courses         prometheus.Gauge
	lastSuccess     prometheus.Gauge
	populated       prometheus.Gauge
}

// New creates a Collector with Go runtime and process collectors registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grades",
			Name:      "refresh_total",
			Help:      "Refresh cycles by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grades",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of refresh cycles (fetch, parse, aggregate, publish).",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grades",
			Subsystem: "cache",
			Name:      "records",
			Help:      "Grade records in the published snapshot.",
		}),
		courses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grades",
			Subsystem: "cache",
			Name:      "courses",
			Help:      "Courses in the published report.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grades",
			Subsystem: "cache",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last published snapshot.",
		}),
		populated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grades",
			Subsystem: "cache",
			Name:      "populated",
			Help:      "1 once a snapshot has been published, 0 before.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.refreshTotal,
		c.refreshDuration,
		c.records,
		c.courses,
		c.lastSuccess,
		c.populated,
	)
	return c
}

// ObserveRefresh records the outcome and duration of one refresh cycle.
func (c *Collector) ObserveRefresh(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.refreshTotal.WithLabelValues(outcome).Inc()
	c.refreshDuration.Observe(d.Seconds())
}

// SetSnapshot records the shape of a newly published snapshot.
func (c *Collector) SetSnapshot(records, courses int, fetchedAt time.Time) {
	if c == nil {
		return
	}
	c.records.Set(float64(records))
	c.courses.Set(float64(courses))
	c.lastSuccess.Set(float64(fetchedAt.Unix()))
	c.populated.Set(1)
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
