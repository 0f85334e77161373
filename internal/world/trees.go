package world

import (
	"math/rand"

	"github.com/annel0/voxel-engine/internal/world/block"
)

const (
	treeMargin    = 2 // отступ ствола от края чанка
	treeMinTrunk  = 4
	treeTrunkVar  = 2 // ствол 4 или 5 блоков
	canopyWideR   = 2
	canopyNarrowR = 1
)

// treeRand возвращает генератор случайных чисел для деревьев чанка.
// Один и тот же сид и чанк всегда дают одни и те же деревья.
func treeRand(seed int64, pos ChunkPos) *rand.Rand {
	s := seed ^ int64(pos.X)*73856093 ^ int64(pos.Z)*19349663
	return rand.New(rand.NewSource(s))
}

// plantTrees сажает деревья на травяных участках чанка.
// Части кроны, выходящие за границы чанка, отбрасываются.
func (g *TerrainGenerator) plantTrees(c *Chunk) {
	rng := treeRand(g.seed, c.Pos())
	origin := c.Origin()

	count := rng.Intn(g.cfg.MaxTrees + 1)
	for i := 0; i < count; i++ {
		lx := treeMargin + rng.Intn(ChunkSize-2*treeMargin)
		lz := treeMargin + rng.Intn(ChunkSize-2*treeMargin)
		h := g.SurfaceHeight(origin.X+lx, origin.Z+lz)

		if h < g.cfg.SeaLevel || float64(h) > float64(g.cfg.SeaLevel)+g.cfg.Amplitude-3 {
			continue
		}
		if c.GetBlock(lx, h, lz) != block.GrassBlockID {
			continue
		}

		trunk := treeMinTrunk + rng.Intn(treeTrunkVar)
		g.placeTree(c, lx, h, lz, trunk)
	}
}

// placeTree ставит ствол и крону над поверхностью h.
// Пишутся только клетки с воздухом.
func (g *TerrainGenerator) placeTree(c *Chunk, lx, h, lz, trunk int) {
	for dy := 1; dy <= trunk; dy++ {
		setIfAir(c, lx, h+dy, lz, block.WoodBlockID)
	}

	top := h + trunk + 1
	for dy := -1; dy <= 2; dy++ {
		r := canopyWideR
		if dy > 0 {
			r = canopyNarrowR
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if abs(dx) == r && abs(dz) == r {
					continue // без углов
				}
				setIfAir(c, lx+dx, top+dy, lz+dz, block.LeavesBlockID)
			}
		}
	}
}

func setIfAir(c *Chunk, lx, ly, lz int, id block.BlockID) {
	if !InBounds(lx, ly, lz) {
		return
	}
	if c.GetBlock(lx, ly, lz) == block.AirBlockID {
		c.SetBlock(lx, ly, lz, id)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
