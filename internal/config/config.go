package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MaxTickRate - наибольшая частота шагов симуляции в секунду
const MaxTickRate = 1000

// ErrInvalidConfig возвращается Validate для недопустимых значений
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации движка
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Sim     SimConfig     `yaml:"sim"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type WorldConfig struct {
	Seed           int64   `yaml:"seed"`
	RenderDistance int     `yaml:"render_distance"`
	NoiseBackend   string  `yaml:"noise_backend"` // gradient | perlin
	SeaLevel       int     `yaml:"sea_level"`
	Amplitude      float64 `yaml:"amplitude"`
	Scale          float64 `yaml:"scale"`
}

type SimConfig struct {
	TickRate           int     `yaml:"tick_rate"` // шагов в секунду
	ChunksPerStep      int     `yaml:"chunks_per_step"`
	Reach              float64 `yaml:"reach"`
	Gravity            float64 `yaml:"gravity"`
	FallDamageVelocity float64 `yaml:"fall_damage_velocity"`
}

type ServerConfig struct {
	HTTPPort int           `yaml:"http_port"`
	Tracing  TracingConfig `yaml:"tracing"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	FileLevel string `yaml:"file_level"`
	Dir       string `yaml:"dir"` // пусто - без файлов
}

// GetHTTPPort возвращает порт отладочного API с поддержкой fallback значений
func (s *ServerConfig) GetHTTPPort() int {
	return getPortWithEnvFallback(s.HTTPPort, "VOXEL_HTTP_PORT", 8089)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:           12345,
			RenderDistance: 4,
			NoiseBackend:   "gradient",
			SeaLevel:       32,
			Amplitude:      10,
			Scale:          0.05,
		},
		Sim: SimConfig{
			TickRate:           20,
			ChunksPerStep:      2,
			Reach:              5,
			Gravity:            -28,
			FallDamageVelocity: 13,
		},
		Server: ServerConfig{
			Tracing: TracingConfig{ServiceName: "voxeld"},
		},
		Logging: LoggingConfig{
			Level:     "info",
			FileLevel: "debug",
		},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG,
// а без него возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, с которыми движок не сможет работать
func (c *Config) Validate() error {
	switch {
	case c.World.RenderDistance < 0:
		return fmt.Errorf("%w: world.render_distance must be >= 0", ErrInvalidConfig)
	case c.World.NoiseBackend != "gradient" && c.World.NoiseBackend != "perlin":
		return fmt.Errorf("%w: world.noise_backend %q", ErrInvalidConfig, c.World.NoiseBackend)
	case c.World.SeaLevel-int(c.World.Amplitude) < 1 || c.World.SeaLevel+int(c.World.Amplitude) >= 64-8:
		return fmt.Errorf("%w: world.sea_level/amplitude leave no room for terrain", ErrInvalidConfig)
	case c.World.Scale <= 0:
		return fmt.Errorf("%w: world.scale must be > 0", ErrInvalidConfig)
	case c.Sim.TickRate <= 0 || c.Sim.TickRate > MaxTickRate:
		return fmt.Errorf("%w: sim.tick_rate must be in 1..%d", ErrInvalidConfig, MaxTickRate)
	case c.Sim.ChunksPerStep <= 0:
		return fmt.Errorf("%w: sim.chunks_per_step must be > 0", ErrInvalidConfig)
	case c.Sim.Reach <= 0:
		return fmt.Errorf("%w: sim.reach must be > 0", ErrInvalidConfig)
	case c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535:
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	return nil
}
