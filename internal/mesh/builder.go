package mesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// BlockSource даёт доступ к блокам по мировым координатам.
// Нужен для граней на границе чанка.
type BlockSource interface {
	GetBlock(wx, wy, wz int) block.BlockID
}

// Builder строит геометрию видимых граней чанка
type Builder struct {
	registry block.Lookup
}

// NewBuilder создаёт построитель с указанным реестром блоков
func NewBuilder(reg block.Lookup) *Builder {
	return &Builder{registry: reg}
}

// Build строит геометрию чанка. Грань выводится, только если соседний блок
// не является твёрдым непрозрачным. Чанк не изменяется.
func (b *Builder) Build(c *world.Chunk, src BlockSource) Geometry {
	origin := c.Origin()
	batches := make(map[string]*Batch)

	for ly := 0; ly < world.ChunkHeight; ly++ {
		for lz := 0; lz < world.ChunkSize; lz++ {
			for lx := 0; lx < world.ChunkSize; lx++ {
				id := c.GetBlock(lx, ly, lz)
				if id == block.AirBlockID {
					continue
				}
				top, side, bottom := b.registry.TextureKeys(id)

				for i := range faces {
					f := &faces[i]
					nx, ny, nz := lx+f.dir.X, ly+f.dir.Y, lz+f.dir.Z

					var neighbour block.BlockID
					if world.InBounds(nx, ny, nz) {
						neighbour = c.GetBlock(nx, ny, nz)
					} else {
						neighbour = src.GetBlock(origin.X+nx, ny, origin.Z+nz)
					}
					if b.registry.IsOpaque(neighbour) {
						continue
					}

					key := side
					switch f.class {
					case FaceTop:
						key = top
					case FaceBottom:
						key = bottom
					}

					batch, ok := batches[key]
					if !ok {
						batch = &Batch{Key: key}
						batches[key] = batch
					}
					batch.addQuad(f, lx, ly, lz)
				}
			}
		}
	}

	geo := Geometry{
		Pos:    c.Pos(),
		Origin: mgl32.Vec3{float32(origin.X), 0, float32(origin.Z)},
	}
	if len(batches) == 0 {
		return geo
	}

	keys := make([]string, 0, len(batches))
	for k := range batches {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	geo.Batches = make([]Batch, 0, len(keys))
	for _, k := range keys {
		geo.Batches = append(geo.Batches, *batches[k])
	}
	return geo
}
