package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	// Constructing twice must hand back the registered collectors, not
	// fresh ones the default registry never scrapes.
	m1 := NewMetrics()
	m2 := NewMetrics()

	require.Same(t, m1.RequestTotal, m2.RequestTotal)
	require.Same(t, m1.RequestDuration, m2.RequestDuration)
}

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/api/video/{id}", "200"))

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/video/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/video/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The route label is the pattern, so per-ID paths share one series.
	after := testutil.ToFloat64(m.RequestTotal.WithLabelValues("GET", "/api/video/{id}", "200"))
	require.Equal(t, before+1, after)
}
