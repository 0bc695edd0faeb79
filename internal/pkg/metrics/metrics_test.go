package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_GridCounters(t *testing.T) {
	m := NewMetrics()

	m.GridComputed("database", 3*time.Millisecond, 12, nil)
	m.GridComputed("snapshot", time.Millisecond, 1, nil)
	m.GridComputed("snapshot", 0, 0, errors.New("invalid month"))
	m.HolidayConflicts(2)
	m.HolidayConflicts(0)
	m.SkippedRecords("attendance", 3)
	m.SkippedRecords("leaves", 0)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.CacheEvicted(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gridComputations.WithLabelValues("database", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gridComputations.WithLabelValues("snapshot", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gridComputations.WithLabelValues("snapshot", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.holidayConflicts))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.skippedRecords.WithLabelValues("attendance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheMisses))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.cacheEvictions))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.GridComputed("database", time.Second, 1, nil)
		m.HolidayConflicts(1)
		m.SkippedRecords("holidays", 1)
		m.CacheHit()
		m.CacheMiss()
		m.CacheEvicted(1)
	})

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMetrics_MiddlewareLabelsRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/companies/{companyID}/grid", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/"+id+"/grid", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/companies/{companyID}/grid", "204")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "attendance_grid_holiday_conflicts_total 0")
}

func TestMetrics_MiddlewareKeepsFlusher(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
		f, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must expose http.Flusher")
		_, _ = w.Write([]byte("chunk"))
		f.Flush()
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.True(t, rec.Flushed)
	assert.Equal(t, "chunk", rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/stream", "200")))
}
