package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/middleware"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/sim"
)

// RenderStats отдаёт сводку по загруженной геометрии
type RenderStats interface {
	Stats() render.Stats
}

// Config содержит конфигурацию для отладочного сервера
type Config struct {
	Addr        string // адрес для запуска сервера, например ":8089"
	Session     *sim.Session
	Render      RenderStats           // может быть nil
	Inputs      *sim.InputQueue       // nil - очередь создаётся сервером
	Registerer  prometheus.Registerer // nil - регистр по умолчанию
	Gatherer    prometheus.Gatherer   // nil - регистр по умолчанию
	ServiceName string                // имя для трейсов и метрик
}

// RestServer - отладочный HTTP API мира
type RestServer struct {
	router  *gin.Engine
	http    *http.Server
	session *sim.Session
	render  RenderStats
	inputs  *sim.InputQueue
	metrics *ProcessMetrics
	encoder *zstd.Encoder
	logger  *logging.Logger
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRestServer создает новый сервер
func NewRestServer(cfg Config) (*RestServer, error) {
	if cfg.Session == nil {
		return nil, errors.New("api: session is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8089"
	}
	if cfg.Inputs == nil {
		cfg.Inputs = sim.NewInputQueue()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "voxel_api"
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}

	logger := logging.GetServerLogger()

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	router.Use(middleware.NewRequestLogger(logger).Handler())
	router.Use(otelgin.Middleware(cfg.ServiceName))

	promMw := middleware.NewPrometheusMiddleware(cfg.ServiceName, cfg.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, cfg.Gatherer)

	rs := &RestServer{
		router:  router,
		session: cfg.Session,
		render:  cfg.Render,
		inputs:  cfg.Inputs,
		metrics: NewProcessMetrics(),
		encoder: enc,
		logger:  logger,
	}
	rs.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	rs.setupRoutes()
	return rs, nil
}

// setupRoutes настраивает маршруты
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	v1 := rs.router.Group("/api/v1")
	{
		v1.GET("/blocks", rs.handleGetBlock)
		v1.PUT("/blocks", rs.handleSetBlock)
		v1.GET("/surface", rs.handleSurface)
		v1.GET("/chunks/:cx/:cz", rs.handleChunk)
		v1.GET("/chunks/:cx/:cz/raw", rs.handleChunkRaw)
		v1.POST("/raycast", rs.handleRaycast)
		v1.POST("/input", rs.handleInput)
		v1.GET("/stats", rs.handleStats)
	}
}

// Inputs возвращает очередь управления, которую читает цикл симуляции
func (rs *RestServer) Inputs() *sim.InputQueue {
	return rs.inputs
}

// Handler возвращает http.Handler сервера
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// Start запускает сервер и блокируется до его остановки
func (rs *RestServer) Start() error {
	rs.logger.Info("🌐 Отладочный API слушает %s", rs.http.Addr)
	if err := rs.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop останавливает сервер, дожидаясь завершения активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	err := rs.http.Shutdown(ctx)
	rs.encoder.Close()
	return err
}
