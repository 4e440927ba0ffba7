package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordUpload("stored", "image")
	m.RecordUpload("rejected", "")
	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.uploads.WithLabelValues("stored", "image")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.uploads.WithLabelValues("rejected", "unknown")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.logins.WithLabelValues("rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin_logins_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RecordUpload("stored", "video")
		m.RecordCleanup(true)
		m.RecordLogin(true)
	})
}
