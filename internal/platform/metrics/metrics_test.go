package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecorder_NilRegistry(t *testing.T) {
	recorder, err := NewRecorder(nil)
	assert.Error(t, err)
	assert.Nil(t, recorder)
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := NewRecorder(registry)
	require.NoError(t, err)

	_, err = NewRecorder(registry)
	assert.Error(t, err, "registering the same collectors twice must fail")
}

func TestRecorder_ObserveRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := NewRecorder(registry)
	require.NoError(t, err)

	recorder.ObserveRequest("200", 125*time.Millisecond)
	recorder.ObserveRequest("200", 80*time.Millisecond)
	recorder.ObserveRequest("502", 30*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(recorder.requests.WithLabelValues("200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.requests.WithLabelValues("502")))
}

func TestRecorder_ObserveNormalize(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := NewRecorder(registry)
	require.NoError(t, err)

	recorder.ObserveNormalize("brace_scan")
	recorder.ObserveNormalize("brace_scan")
	recorder.ObserveNormalize("exhausted")

	assert.Equal(t, float64(2), testutil.ToFloat64(recorder.normalize.WithLabelValues("brace_scan")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recorder.normalize.WithLabelValues("exhausted")))
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder, err := NewRecorder(registry)
	require.NoError(t, err)

	recorder.ObserveRequest("200", 10*time.Millisecond)
	recorder.ObserveNormalize("whole_content")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(registry).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "excuse_generator_requests_total")
	assert.Contains(t, body, "excuse_generator_request_duration_seconds")
	assert.Contains(t, body, `excuse_generator_normalize_total{strategy="whole_content"} 1`)
}
