package mesh

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

type fakeRenderer struct {
	next     int
	uploaded map[Handle]Geometry
	disposed []Handle
	fail     bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{uploaded: make(map[Handle]Geometry)}
}

func (r *fakeRenderer) Upload(geo Geometry) (Handle, error) {
	if r.fail {
		return "", errors.New("gpu lost")
	}
	r.next++
	h := Handle(fmt.Sprintf("h%d", r.next))
	r.uploaded[h] = geo
	return h, nil
}

func (r *fakeRenderer) Dispose(h Handle) {
	r.disposed = append(r.disposed, h)
	delete(r.uploaded, h)
}

type countingObserver struct{ builds int }

func (o *countingObserver) MeshBuilt(world.ChunkPos, int, time.Duration) { o.builds++ }

func emptyWorld() *world.World {
	return world.NewWorld(nil)
}

func build(w *world.World, c *world.Chunk) Geometry {
	return NewBuilder(block.Default()).Build(c, w)
}

func TestSingleBlockEmitsSixFaces(t *testing.T) {
	w := emptyWorld()
	w.SetBlock(5, 5, 5, block.StoneBlockID)
	c := w.GetChunk(0, 0)

	geo := build(w, c)
	require.Len(t, geo.Batches, 1)
	b := geo.Batches[0]

	assert.Equal(t, "stone", b.Key)
	assert.Equal(t, 6, b.QuadCount())
	assert.Equal(t, 24, b.VertexCount())
	assert.Len(t, b.Normals, 24)
	assert.Len(t, b.UVs, 24)
	assert.Len(t, b.Indices, 36)
}

func TestAdjacentOpaqueBlocksShareNoFaces(t *testing.T) {
	w := emptyWorld()
	w.SetBlock(5, 5, 5, block.StoneBlockID)
	w.SetBlock(6, 5, 5, block.StoneBlockID)

	geo := build(w, w.GetChunk(0, 0))
	assert.Equal(t, 10, geo.QuadCount(), "две общие грани должны быть скрыты")

	b, ok := geo.Batch("stone")
	require.True(t, ok)
	for i := 0; i < len(b.Positions); i += 4 {
		n := b.Normals[i]
		// грань +X первого блока лежала бы в плоскости x=6
		if n == (mgl32.Vec3{1, 0, 0}) {
			assert.Equal(t, float32(7), b.Positions[i].X())
		}
		if n == (mgl32.Vec3{-1, 0, 0}) {
			assert.Equal(t, float32(5), b.Positions[i].X())
		}
	}
}

func TestTransparentNeighbourDoesNotCull(t *testing.T) {
	for _, id := range []block.BlockID{block.WaterBlockID, block.GlassBlockID} {
		w := emptyWorld()
		w.SetBlock(5, 5, 5, block.StoneBlockID)
		w.SetBlock(6, 5, 5, id)

		geo := build(w, w.GetChunk(0, 0))
		stone, ok := geo.Batch("stone")
		require.True(t, ok)
		assert.Equal(t, 6, stone.QuadCount(), "прозрачный сосед %d не скрывает грань камня", id)
	}
}

func TestFaceTextureClasses(t *testing.T) {
	w := emptyWorld()
	w.SetBlock(3, 10, 3, block.GrassBlockID)

	geo := build(w, w.GetChunk(0, 0))
	top, ok := geo.Batch("grass_top")
	require.True(t, ok)
	side, ok := geo.Batch("grass_side")
	require.True(t, ok)
	bottom, ok := geo.Batch("dirt")
	require.True(t, ok)

	assert.Equal(t, 1, top.QuadCount())
	assert.Equal(t, 4, side.QuadCount())
	assert.Equal(t, 1, bottom.QuadCount())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, top.Normals[0])
	assert.Equal(t, []string{"dirt", "grass_side", "grass_top"},
		[]string{geo.Batches[0].Key, geo.Batches[1].Key, geo.Batches[2].Key}, "пакеты отсортированы по ключу")
}

func TestQuadWindingOutward(t *testing.T) {
	for _, f := range faces {
		a, b, c := f.corners[0], f.corners[1], f.corners[2]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.True(t, n.ApproxEqual(f.normal), "грань %v: нормаль обхода %v", f.dir, n)
	}
}

func TestChunkBoundaryUsesNeighbour(t *testing.T) {
	w := emptyWorld()
	w.SetBlock(15, 5, 0, block.StoneBlockID) // чанк (0,0)
	w.SetBlock(16, 5, 0, block.StoneBlockID) // чанк (1,0)

	assert.Equal(t, 5, build(w, w.GetChunk(0, 0)).QuadCount())
	assert.Equal(t, 5, build(w, w.GetChunk(1, 0)).QuadCount())
}

func TestWorldEdgesEmitFaces(t *testing.T) {
	w := emptyWorld()
	w.SetBlock(0, 0, 0, block.BedrockBlockID)
	w.SetBlock(0, world.ChunkHeight-1, 0, block.StoneBlockID)

	geo := build(w, w.GetChunk(0, 0))
	assert.Equal(t, 12, geo.QuadCount(), "за пределами высоты мира воздух")
}

func TestMesherRebuild(t *testing.T) {
	w := emptyWorld()
	r := newFakeRenderer()
	obs := &countingObserver{}
	m := NewMesher(NewBuilder(block.Default()), r, obs)

	w.SetBlock(1, 1, 1, block.DirtBlockID)
	c := w.GetChunk(0, 0)
	require.True(t, c.Dirty())

	_, err := m.Rebuild(c, w)
	require.NoError(t, err)
	assert.False(t, c.Dirty())
	first, ok := m.Handles().Get(c.Pos())
	require.True(t, ok)

	w.SetBlock(1, 2, 1, block.DirtBlockID)
	_, err = m.Rebuild(c, w)
	require.NoError(t, err)
	second, _ := m.Handles().Get(c.Pos())
	assert.NotEqual(t, first, second)
	assert.Equal(t, []Handle{first}, r.disposed, "старая геометрия освобождается")

	w.SetBlock(1, 1, 1, block.AirBlockID)
	w.SetBlock(1, 2, 1, block.AirBlockID)
	geo, err := m.Rebuild(c, w)
	require.NoError(t, err)
	assert.True(t, geo.Empty())
	assert.False(t, c.Dirty(), "пустой чанк тоже снимает флаг")
	assert.Equal(t, 0, m.Handles().Len())
	assert.Empty(t, r.uploaded)
	assert.Equal(t, 3, obs.builds)
}

func TestMesherUploadError(t *testing.T) {
	w := emptyWorld()
	r := newFakeRenderer()
	r.fail = true
	m := NewMesher(NewBuilder(block.Default()), r, nil)

	w.SetBlock(1, 1, 1, block.DirtBlockID)
	c := w.GetChunk(0, 0)

	_, err := m.Rebuild(c, w)
	assert.Error(t, err)
	assert.True(t, c.Dirty(), "при ошибке чанк остаётся dirty")
}

func TestQueueStep(t *testing.T) {
	w := world.NewWorld(nil, world.WithRenderDistance(1))
	m := NewMesher(NewBuilder(block.Default()), newFakeRenderer(), nil)
	q := NewQueue(0)

	dirty := w.UpdateAroundPlayer(0, 0)
	q.Push(dirty...)
	q.Push(dirty...)
	assert.Equal(t, 9, q.Len(), "повторы не добавляются")

	n, err := q.Step(m, w)
	require.NoError(t, err)
	assert.Equal(t, DefaultChunksPerStep, n)
	assert.Equal(t, 7, q.Len())

	total := n
	for q.Len() > 0 {
		n, err = q.Step(m, w)
		require.NoError(t, err)
		total += n
	}
	assert.Equal(t, 9, total)
	assert.Empty(t, w.UpdateAroundPlayer(0, 0))
}

func TestMesherUploadErrorKeepsPreviousGeometry(t *testing.T) {
	w := emptyWorld()
	r := newFakeRenderer()
	m := NewMesher(NewBuilder(block.Default()), r, nil)

	w.SetBlock(1, 1, 1, block.DirtBlockID)
	c := w.GetChunk(0, 0)
	_, err := m.Rebuild(c, w)
	require.NoError(t, err)
	before, ok := m.Handles().Get(c.Pos())
	require.True(t, ok)

	w.SetBlock(2, 1, 1, block.DirtBlockID)
	r.fail = true
	_, err = m.Rebuild(c, w)
	require.Error(t, err)

	after, ok := m.Handles().Get(c.Pos())
	require.True(t, ok, "старая геометрия остаётся на экране")
	assert.Equal(t, before, after)
	assert.Empty(t, r.disposed)
	assert.Contains(t, r.uploaded, before)
	assert.True(t, c.Dirty())

	r.fail = false
	_, err = m.Rebuild(c, w)
	require.NoError(t, err)
	assert.Equal(t, []Handle{before}, r.disposed)
}
