package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/logging"
)

func newRouter(t *testing.T) (*gin.Engine, *PrometheusMiddleware, *prometheus.Registry, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger, err := logging.NewLoggerWithOptions("http", logging.Options{Console: &buf, ConsoleLevel: logging.INFO})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	pm := NewPrometheusMiddleware("test", reg)

	r := gin.New()
	r.Use(NewRequestLogger(logger).Handler(), pm.Handler())
	pm.RegisterMetricsEndpoint(r, reg)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(TraceIDKey)) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return r, pm, reg, &buf
}

func TestRequestLoggerSetsTraceID(t *testing.T) {
	r, _, _, buf := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	traceID := rec.Body.String()
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "без span trace-id генерируется как UUID")
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-Id"))
	assert.Contains(t, buf.String(), "GET /ok 200")
}

func TestPrometheusCountsErrors(t *testing.T) {
	r, pm, _, _ := newRouter(t)

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere/123", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(pm.reqErrors.WithLabelValues("GET", "/bad", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.reqErrors.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(pm.reqInflight))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_request_duration_seconds")
}

func TestPrometheusResponseSizeByRoute(t *testing.T) {
	r, _, reg, _ := newRouter(t)
	r.GET("/chunks/:cx", func(c *gin.Context) { c.String(http.StatusOK, "0123456789") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/chunks/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/chunks/-7", nil))

	n, err := testutil.GatherAndCount(reg, "test_http_response_size_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "оба запроса попадают в одну серию по шаблону маршрута")
}
