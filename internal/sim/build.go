package sim

import (
	"fmt"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/noise"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// NewTerrain создаёт генератор рельефа по настройкам мира
func NewTerrain(cfg config.WorldConfig, reg block.Lookup) (*world.TerrainGenerator, error) {
	src, err := noise.NewSource(cfg.NoiseBackend, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("height source: %w", err)
	}

	tc := world.DefaultTerrainConfig()
	tc.SeaLevel = cfg.SeaLevel
	tc.Amplitude = cfg.Amplitude
	tc.Scale = cfg.Scale

	return world.NewTerrainGenerator(cfg.Seed, src, reg, tc)
}

// NewWorld создаёт мир с генератором по настройкам
func NewWorld(cfg config.WorldConfig, reg block.Lookup, opts ...world.Option) (*world.World, error) {
	gen, err := NewTerrain(cfg, reg)
	if err != nil {
		return nil, err
	}

	opts = append([]world.Option{
		world.WithRegistry(reg),
		world.WithRenderDistance(cfg.RenderDistance),
	}, opts...)
	return world.NewWorld(gen, opts...), nil
}
