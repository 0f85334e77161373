package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv("VOXEL_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 777
  noise_backend: perlin
sim:
  chunks_per_step: 5
server:
  http_port: 9000
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(777), cfg.World.Seed)
	assert.Equal(t, "perlin", cfg.World.NoiseBackend)
	assert.Equal(t, 5, cfg.Sim.ChunksPerStep)
	assert.Equal(t, 4, cfg.World.RenderDistance, "незаданные поля остаются по умолчанию")
	assert.Equal(t, 9000, cfg.Server.GetHTTPPort())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "world:\n  seed: 42\n")
	t.Setenv("VOXEL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.World.Seed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world:\n  noise_backend: simplex\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"render distance": func(c *Config) { c.World.RenderDistance = -1 },
		"scale":           func(c *Config) { c.World.Scale = 0 },
		"sea level":       func(c *Config) { c.World.SeaLevel = 60 },
		"tick rate":       func(c *Config) { c.Sim.TickRate = 0 },
		"tick rate high":  func(c *Config) { c.Sim.TickRate = 2_000_000_000 },
		"chunks per step": func(c *Config) { c.Sim.ChunksPerStep = 0 },
		"reach":           func(c *Config) { c.Sim.Reach = -1 },
		"port":            func(c *Config) { c.Server.HTTPPort = 70000 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}

	cfg := Default()
	cfg.Sim.TickRate = MaxTickRate
	assert.NoError(t, cfg.Validate())
}

func TestHTTPPortFallback(t *testing.T) {
	s := ServerConfig{}

	t.Setenv("VOXEL_HTTP_PORT", "")
	assert.Equal(t, 8089, s.GetHTTPPort())

	t.Setenv("VOXEL_HTTP_PORT", "9100")
	assert.Equal(t, 9100, s.GetHTTPPort())

	t.Setenv("VOXEL_HTTP_PORT", "abc")
	assert.Equal(t, 8089, s.GetHTTPPort())

	s.HTTPPort = 7000
	assert.Equal(t, 7000, s.GetHTTPPort())
}
