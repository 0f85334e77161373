package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/voxel-engine/internal/api"
	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/sim"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации (по умолчанию $VOXEL_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logOpts, err := loggingOptions(cfg.Logging)
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации логирования: %v", err)
	}
	if err := logging.InitDefaultLogger("voxeld", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	logging.GetLoggerManager().Configure(logOpts)
	defer logging.GetLoggerManager().CloseAll()
	defer logging.CloseDefaultLogger()

	if err := run(cfg); err != nil {
		logging.Error("❌ %v", err)
		os.Exit(1)
	}
	logging.Info("👋 Движок остановлен")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТРАССИРОВКА ===
	if cfg.Server.Tracing.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Server.Tracing.ServiceName)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				logging.Warn("Ошибка остановки трассировки: %v", err)
			}
		}()
		logging.Info("🔭 Трассировка OTLP включена (%s)", cfg.Server.Tracing.ServiceName)
	}

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	eng := metrics.NewEngine("voxel", reg)

	// === МИР И СЕССИЯ ===
	logging.Info("🌍 Мир: seed=%d, шум=%s, дальность=%d", cfg.World.Seed, cfg.World.NoiseBackend, cfg.World.RenderDistance)
	w, err := sim.NewWorld(cfg.World, block.Default(), world.WithObserver(eng))
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	renderer := render.NewHeadless()
	session := sim.NewSession(cfg.Sim, w, renderer, eng)
	inputs := sim.NewInputQueue()

	// === ОТЛАДОЧНЫЙ API ===
	srv, err := api.NewRestServer(api.Config{
		Addr:        fmt.Sprintf(":%d", cfg.Server.GetHTTPPort()),
		Session:     session,
		Render:      renderer,
		Inputs:      inputs,
		Registerer:  reg,
		Gatherer:    reg,
		ServiceName: "voxeld",
	})
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// === ЦИКЛ СИМУЛЯЦИИ ===
	tick := time.Second / time.Duration(cfg.Sim.TickRate)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	logging.Info("✅ Движок запущен: %d шагов/с", cfg.Sim.TickRate)
	last := time.Now()

loop:
	for {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал, завершение работы...")
			break loop
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("api: %w", err)
			}
			break loop
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if _, err := session.Step(ctx, dt, inputs.Next()); err != nil {
				logging.Warn("Ошибка шага симуляции: %v", err)
			}
		}
	}

	// === GRACEFUL SHUTDOWN ===
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(sctx); err != nil {
		logging.Error("❌ Ошибка остановки API: %v", err)
	}
	return nil
}

func loggingOptions(cfg config.LoggingConfig) (logging.Options, error) {
	console, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return logging.Options{}, err
	}
	file, err := logging.ParseLevel(cfg.FileLevel)
	if err != nil {
		return logging.Options{}, err
	}
	return logging.Options{Dir: cfg.Dir, ConsoleLevel: console, FileLevel: file}, nil
}
