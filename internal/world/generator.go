package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/voxel-engine/internal/noise"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// ErrMissingBlock возвращается, если в реестре нет блока, нужного генератору
var ErrMissingBlock = errors.New("terrain block not registered")

// Generator заполняет только что созданный чанк
type Generator interface {
	Generate(c *Chunk)
}

// TerrainConfig - параметры рельефа
type TerrainConfig struct {
	SeaLevel    int
	Amplitude   float64
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64

	SnowAbove    int // снег, если высота > SeaLevel+SnowAbove
	SandBelow    int // песок, если высота < SeaLevel-SandBelow
	SubsurfDepth int // толщина слоя земли под поверхностью

	MaxTrees int // до MaxTrees деревьев на чанк
}

// DefaultTerrainConfig возвращает параметры рельефа по умолчанию
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		SeaLevel:     SeaLevel,
		Amplitude:    TerrainAmplitude,
		Scale:        TerrainScale,
		Octaves:      5,
		Persistence:  0.5,
		Lacunarity:   2.0,
		SnowAbove:    6,
		SandBelow:    1,
		SubsurfDepth: 3,
		MaxTrees:     3,
	}
}

// TerrainGenerator генерирует ландшафт мира
type TerrainGenerator struct {
	seed   int64
	height noise.Source
	cfg    TerrainConfig
}

// terrainBlocks - блоки, без которых генератор не может работать
var terrainBlocks = []block.BlockID{
	block.BedrockBlockID,
	block.StoneBlockID,
	block.DirtBlockID,
	block.GrassBlockID,
	block.SandBlockID,
	block.SnowBlockID,
	block.WoodBlockID,
	block.LeavesBlockID,
}

// NewTerrainGenerator создаёт генератор. reg проверяется заранее: если какого-то
// блока рельефа нет в реестре, это ошибка конфигурации.
func NewTerrainGenerator(seed int64, height noise.Source, reg block.Lookup, cfg TerrainConfig) (*TerrainGenerator, error) {
	for _, id := range terrainBlocks {
		if _, ok := reg.Get(id); !ok {
			return nil, fmt.Errorf("%w: id %d", ErrMissingBlock, id)
		}
	}
	if height == nil {
		height = noise.New(seed)
	}
	return &TerrainGenerator{seed: seed, height: height, cfg: cfg}, nil
}

// Seed возвращает сид генератора
func (g *TerrainGenerator) Seed() int64 {
	return g.seed
}

// Generate заполняет пустой чанк: сначала поле высот, затем деревья
func (g *TerrainGenerator) Generate(c *Chunk) {
	origin := c.Origin()

	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			h := g.SurfaceHeight(origin.X+lx, origin.Z+lz)
			for ly := 0; ly < ChunkHeight; ly++ {
				if id := g.blockAt(ly, h); id != block.AirBlockID {
					c.SetBlock(lx, ly, lz, id)
				}
			}
		}
	}

	g.plantTrees(c)
}

// SurfaceHeight возвращает высоту поверхности в мировой колонке (wx, wz)
func (g *TerrainGenerator) SurfaceHeight(wx, wz int) int {
	n := noise.Octave(g.height,
		float64(wx)*g.cfg.Scale,
		float64(wz)*g.cfg.Scale,
		g.cfg.Octaves, g.cfg.Persistence, g.cfg.Lacunarity,
	)
	// n ∈ [-1, 1] → высота ∈ [SeaLevel-Amplitude, SeaLevel+Amplitude]
	return int(math.Floor(float64(g.cfg.SeaLevel) + n*g.cfg.Amplitude + 0.5))
}

// blockAt классифицирует клетку по её высоте относительно поверхности
func (g *TerrainGenerator) blockAt(ly, surface int) block.BlockID {
	switch {
	case ly == 0:
		return block.BedrockBlockID
	case ly > surface:
		return block.AirBlockID
	case ly == surface:
		return g.topBlock(surface)
	case ly >= surface-g.cfg.SubsurfDepth:
		return block.DirtBlockID
	default:
		return block.StoneBlockID
	}
}

// topBlock выбирает верхний блок в зависимости от высоты
func (g *TerrainGenerator) topBlock(surface int) block.BlockID {
	switch {
	case surface > g.cfg.SeaLevel+g.cfg.SnowAbove:
		return block.SnowBlockID
	case surface < g.cfg.SeaLevel-g.cfg.SandBelow:
		return block.SandBlockID
	default:
		return block.GrassBlockID
	}
}
