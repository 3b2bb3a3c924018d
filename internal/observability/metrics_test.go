package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordGenerations(t *testing.T) {
	m := NewMetrics()

	m.ObserveGeneration("groq", "ok", 2*time.Second)
	m.ObserveGeneration("groq", "engine_auth", time.Second)
	m.ObserveGeneration("groq", "ok", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("groq", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("groq", "engine_auth")))
}

func TestMetricsHandlerExposesSeries(t *testing.T) {
	m := NewMetrics()
	m.ObserveHTTP("GET", "/", "200", 10*time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `edugen_http_requests_total{method="GET",route="/",status="200"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("GET", "/", "200", time.Millisecond)
	m.ObserveGeneration("mock", "ok", time.Millisecond)
	m.InflightInc()
	m.InflightDec()
	assert.Nil(t, m.Registry())
}
