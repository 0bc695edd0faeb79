package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	gridComputations  *prometheus.CounterVec
	gridDuration      prometheus.Histogram
	gridRows          prometheus.Histogram
	holidayConflicts  prometheus.Counter
	skippedRecords    *prometheus.CounterVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	cacheEvictions    prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		gridComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_grid_computations_total",
			Help: "Total attendance grid computations by source and outcome.",
		}, []string{"source", "outcome"}),
		gridDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_grid_compute_duration_seconds",
			Help:    "Histogram of attendance grid computation durations, excluding data fetch.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		gridRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendance_grid_rows",
			Help:    "Histogram of roster sizes per computed grid.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		holidayConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_grid_holiday_conflicts_total",
			Help: "Total dates covered by more than one holiday, per grid served.",
		}),
		skippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_grid_skipped_records_total",
			Help: "Total input records skipped because of unusable dates, by source.",
		}, []string{"source"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_grid_cache_hits_total",
			Help: "Total grid cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_grid_cache_misses_total",
			Help: "Total grid cache misses observed.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_grid_cache_evictions_total",
			Help: "Total grid cache entries removed on expiry or when the cache is full.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpDuration,
		m.gridComputations,
		m.gridDuration,
		m.gridRows,
		m.holidayConflicts,
		m.skippedRecords,
		m.cacheHits,
		m.cacheMisses,
		m.cacheEvictions,
	)

	return m
}

// Middleware records request counts and durations labelled by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		if m == nil {
			return
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GridComputed records one computation. source is "database" or "snapshot".
func (m *Metrics) GridComputed(source string, duration time.Duration, rows int, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.gridComputations.WithLabelValues(source, outcome).Inc()
	if err != nil {
		return
	}
	m.gridDuration.Observe(duration.Seconds())
	m.gridRows.Observe(float64(rows))
}

func (m *Metrics) HolidayConflicts(n int) {
	if m == nil || n == 0 {
		return
	}
	m.holidayConflicts.Add(float64(n))
}

func (m *Metrics) SkippedRecords(source string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.skippedRecords.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) CacheEvicted(n int) {
	if m == nil || n == 0 {
		return
	}
	m.cacheEvictions.Add(float64(n))
}
