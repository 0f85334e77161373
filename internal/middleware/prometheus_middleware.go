package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute - метка для запросов мимо зарегистрированных маршрутов
const unmatchedRoute = "unmatched"

// PrometheusMiddleware собирает HTTP-метрики отладочного API.
// Метка path - шаблон маршрута gin (/api/v1/chunks/:cx/:cz), не сырой URL.
//
//	mw := middleware.NewPrometheusMiddleware("voxeld", reg)
//	r.Use(mw.Handler())
//	mw.RegisterMetricsEndpoint(r, reg)
type PrometheusMiddleware struct {
	reqDuration *prometheus.HistogramVec // {method,route,status}
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec   // {method,route,status}, только 4xx/5xx
	respSize    *prometheus.HistogramVec // {route}
	slow        time.Duration
	slowReqs    *prometheus.CounterVec // {route}
}

// NewPrometheusMiddleware регистрирует метрики в reg (nil - регистр по умолчанию)
func NewPrometheusMiddleware(service string, reg prometheus.Registerer) *PrometheusMiddleware {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	labels := []string{"method", "path", "status"}
	pm := &PrometheusMiddleware{
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Длительность HTTP-запросов.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, labels),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "Запросы в обработке.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "Запросы с ответом 4xx/5xx.",
		}, labels),
		// Сырой чанк после zstd занимает от сотен байт до десятков килобайт
		respSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_response_size_bytes",
			Help:      "Размер тела ответа.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}, []string{"path"}),
		slow: 250 * time.Millisecond,
		slowReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_slow_requests_total",
			Help:      "Запросы дольше 250мс (обычно генерация новых чанков).",
		}, []string{"path"}),
	}

	reg.MustRegister(pm.reqDuration, pm.reqInflight, pm.reqErrors, pm.respSize, pm.slowReqs)
	return pm
}

// Handler возвращает gin.HandlerFunc для router.Use()
func (pm *PrometheusMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		pm.reqInflight.Inc()
		defer pm.reqInflight.Dec()

		start := time.Now()
		c.Next()
		took := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)
		method := c.Request.Method

		pm.reqDuration.WithLabelValues(method, route, status).Observe(took.Seconds())
		if size := c.Writer.Size(); size > 0 {
			pm.respSize.WithLabelValues(route).Observe(float64(size))
		}
		if took > pm.slow {
			pm.slowReqs.WithLabelValues(route).Inc()
		}
		if code >= 400 {
			pm.reqErrors.WithLabelValues(method, route, status).Inc()
		}
	}
}

// RegisterMetricsEndpoint добавляет GET /metrics с метриками из g
// (nil - регистр по умолчанию).
func (pm *PrometheusMiddleware) RegisterMetricsEndpoint(r gin.IRoutes, g prometheus.Gatherer) {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
