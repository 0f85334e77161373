package world

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// flatGenerator заполняет чанк камнем до высоты top включительно
type flatGenerator struct {
	top   int
	calls int
}

func (g *flatGenerator) Generate(c *Chunk) {
	g.calls++
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			for y := 0; y <= g.top; y++ {
				c.SetBlock(lx, y, lz, block.StoneBlockID)
			}
		}
	}
}

type recordingObserver struct {
	generated []ChunkPos
	changes   int
}

func (o *recordingObserver) ChunkGenerated(pos ChunkPos, _ time.Duration) {
	o.generated = append(o.generated, pos)
}

func (o *recordingObserver) BlockChanged(_ vec.Vec3, _, _ block.BlockID) {
	o.changes++
}

func TestWorldLazyChunkCreation(t *testing.T) {
	gen := &flatGenerator{top: 10}
	w := NewWorld(gen)

	assert.Nil(t, w.GetChunk(0, 0), "GetChunk не должен создавать чанк")
	assert.Equal(t, block.AirBlockID, w.GetBlock(3, 5, 3), "в несозданном чанке воздух")
	assert.Equal(t, 0, w.ChunkCount(), "GetBlock не должен создавать чанк")

	c := w.GetOrCreateChunk(0, 0)
	require.NotNil(t, c)
	assert.Same(t, c, w.GetOrCreateChunk(0, 0))
	assert.Equal(t, 1, gen.calls, "генерация выполняется один раз")
	assert.Equal(t, block.StoneBlockID, w.GetBlock(3, 5, 3))
}

func TestWorldVerticalRange(t *testing.T) {
	w := NewWorld(&flatGenerator{top: 3})

	w.SetBlock(0, -1, 0, block.StoneBlockID)
	w.SetBlock(0, ChunkHeight, 0, block.StoneBlockID)
	assert.Equal(t, 0, w.ChunkCount(), "запись вне высоты не создаёт чанк")
	assert.Equal(t, block.AirBlockID, w.GetBlock(0, -1, 0))
}

func TestWorldSetBlockCreatesChunk(t *testing.T) {
	obs := &recordingObserver{}
	var created []*Chunk
	w := NewWorld(&flatGenerator{top: 3},
		WithObserver(obs),
		WithChunkCreatedHook(func(c *Chunk) { created = append(created, c) }),
	)

	w.SetBlock(-1, 20, -1, block.GlassBlockID)

	c := w.GetChunk(-1, -1)
	require.NotNil(t, c)
	assert.Equal(t, block.GlassBlockID, c.GetBlock(15, 20, 15))
	assert.Equal(t, block.GlassBlockID, w.GetBlock(-1, 20, -1))
	assert.Equal(t, block.AirBlockID, w.GetBlock(15, 20, 15), "(15,20,15) лежит в другом чанке")

	assert.Equal(t, []ChunkPos{{X: -1, Z: -1}}, obs.generated)
	assert.Equal(t, 1, obs.changes)
	require.Len(t, created, 1)
	assert.Same(t, c, created[0])
}

func TestWorldBoundaryMarksNeighbours(t *testing.T) {
	w := NewWorld(&flatGenerator{top: 3})
	a := w.GetOrCreateChunk(0, 0)
	b := w.GetOrCreateChunk(1, 0)
	a.ClearDirty()
	b.ClearDirty()

	// x=16 - локальный x=0 чанка (1,0)
	w.SetBlock(16, 10, 5, block.StoneBlockID)

	assert.True(t, b.Dirty(), "изменённый чанк должен быть dirty")
	assert.True(t, a.Dirty(), "соседний чанк по границе должен быть dirty")
	assert.Nil(t, w.GetChunk(1, -1), "несуществующие соседи не создаются")
}

func TestWorldInteriorDoesNotMarkNeighbours(t *testing.T) {
	w := NewWorld(&flatGenerator{top: 3})
	a := w.GetOrCreateChunk(0, 0)
	b := w.GetOrCreateChunk(1, 0)
	a.ClearDirty()
	b.ClearDirty()

	w.SetBlock(20, 10, 5, block.StoneBlockID)
	assert.True(t, b.Dirty())
	assert.False(t, a.Dirty())
}

func TestUpdateAroundPlayer(t *testing.T) {
	gen := &flatGenerator{top: 3}
	w := NewWorld(gen, WithRenderDistance(1))

	dirty := w.UpdateAroundPlayer(-0.5, 17.2)
	assert.Len(t, dirty, 9, "все новые чанки dirty")
	assert.Equal(t, 9, w.ChunkCount())
	assert.Equal(t, ChunkPos{X: -2, Z: 0}, dirty[0].Pos(), "обход начинается с угла (-1-1, 1-1)")

	for _, c := range dirty {
		assert.LessOrEqual(t, c.Pos().ChebyshevDistance(ChunkPos{X: -1, Z: 1}), 1)
		c.ClearDirty()
	}

	assert.Empty(t, w.UpdateAroundPlayer(-0.5, 17.2), "после перестройки dirty-чанков нет")
	assert.Equal(t, 9, gen.calls)

	w.SetBlock(-8, 10, 20, block.DirtBlockID)
	dirty = w.UpdateAroundPlayer(-0.5, 17.2)
	require.Len(t, dirty, 1)
	assert.Equal(t, ChunkPos{X: -1, Z: 1}, dirty[0].Pos())
}

func TestSurfaceY(t *testing.T) {
	w := NewWorld(&flatGenerator{top: 12})
	w.GetOrCreateChunk(0, 0)

	assert.Equal(t, 13, w.SurfaceY(4, 4), "над столбом высотой 12 поверхность 13")
	assert.Equal(t, SurfaceFloorY, w.SurfaceY(100, 100), "пустой столб даёт значение по умолчанию")

	w.SetBlock(4, 40, 4, block.StoneBlockID)
	assert.Equal(t, 41, w.SurfaceY(4, 4))

	w.SetBlock(5, 50, 5, block.WaterBlockID)
	assert.Equal(t, 13, w.SurfaceY(5, 5), "вода не считается твёрдой")
}

func TestWorldWithTerrain(t *testing.T) {
	gen := newTestGenerator(t, 2024)
	w := NewWorld(gen)

	c := w.GetOrCreateChunk(0, 0)
	h := gen.SurfaceHeight(8, 8)
	assert.True(t, c.Dirty())
	assert.NotEqual(t, block.AirBlockID, w.GetBlock(8, h, 8))
	assert.GreaterOrEqual(t, w.SurfaceY(8, 8), h+1)
}
