package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/world"
)

// Batch - грани одного ключа текстуры. Рисуется с одной привязкой текстуры.
type Batch struct {
	Key       string
	Positions []mgl32.Vec3 // в координатах чанка
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount возвращает число вершин
func (b *Batch) VertexCount() int {
	return len(b.Positions)
}

// QuadCount возвращает число граней
func (b *Batch) QuadCount() int {
	return len(b.Positions) / 4
}

func (b *Batch) addQuad(f *face, lx, ly, lz int) {
	base := uint32(len(b.Positions))
	offset := mgl32.Vec3{float32(lx), float32(ly), float32(lz)}

	for i, corner := range f.corners {
		b.Positions = append(b.Positions, offset.Add(corner))
		b.Normals = append(b.Normals, f.normal)
		b.UVs = append(b.UVs, quadUVs[i])
	}
	for _, idx := range quadIndices {
		b.Indices = append(b.Indices, base+idx)
	}
}

// Geometry - результат построения геометрии чанка.
// Пакеты отсортированы по ключу текстуры.
type Geometry struct {
	Pos     world.ChunkPos
	Origin  mgl32.Vec3 // мировое смещение, которое рендерер применяет к вершинам
	Batches []Batch
}

// Empty возвращает true, если видимых граней нет
func (g Geometry) Empty() bool {
	return len(g.Batches) == 0
}

// QuadCount возвращает общее число граней
func (g Geometry) QuadCount() int {
	n := 0
	for i := range g.Batches {
		n += g.Batches[i].QuadCount()
	}
	return n
}

// Batch возвращает пакет по ключу
func (g Geometry) Batch(key string) (*Batch, bool) {
	for i := range g.Batches {
		if g.Batches[i].Key == key {
			return &g.Batches[i], true
		}
	}
	return nil, false
}
