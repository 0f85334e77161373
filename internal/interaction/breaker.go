package interaction

import (
	"math"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// BlockWriter - доступ к миру для чтения и записи блоков
type BlockWriter interface {
	GetBlock(wx, wy, wz int) block.BlockID
	SetBlock(wx, wy, wz int, id block.BlockID)
}

// Broken описывает разрушенный блок
type Broken struct {
	Pos     vec.Vec3
	BlockID block.BlockID
	Drop    block.BlockID // AirBlockID, если ничего не выпадает
}

// Breaker накапливает время удержания на блоке и разрушает его,
// когда время достигает BreakTime блока
type Breaker struct {
	world    BlockWriter
	registry block.Lookup

	active  bool
	target  vec.Vec3
	blockID block.BlockID
	elapsed float64
}

// NewBreaker создаёт Breaker
func NewBreaker(w BlockWriter, reg block.Lookup) *Breaker {
	return &Breaker{world: w, registry: reg}
}

// Update продвигает разрушение на dt. Без удержания или без цели прогресс сбрасывается.
// При смене цели отсчёт начинается заново. Неразрушимые блоки игнорируются.
func (b *Breaker) Update(hit physics.Hit, ok, holding bool, dt float64) (Broken, bool) {
	if !holding || !ok {
		b.Reset()
		return Broken{}, false
	}

	if !b.active || b.target != hit.Block {
		b.active = true
		b.target = hit.Block
		b.blockID = hit.BlockID
		b.elapsed = 0
	}

	def := b.registry.Definition(hit.BlockID)
	if !def.Breakable() {
		return Broken{}, false
	}

	b.elapsed += dt
	if b.elapsed < def.BreakTime {
		return Broken{}, false
	}

	p := hit.Block
	b.world.SetBlock(p.X, p.Y, p.Z, block.AirBlockID)
	b.Reset()

	drop, _ := def.Drop()
	return Broken{Pos: p, BlockID: hit.BlockID, Drop: drop}, true
}

// Progress возвращает долю выполненного разрушения в [0, 1]
func (b *Breaker) Progress() float64 {
	if !b.active {
		return 0
	}
	bt := b.registry.Definition(b.blockID).BreakTime
	if math.IsInf(bt, 1) {
		return 0
	}
	if bt <= 0 {
		return 1
	}
	return math.Min(b.elapsed/bt, 1)
}

// Target возвращает текущую цель
func (b *Breaker) Target() (vec.Vec3, bool) {
	return b.target, b.active
}

// Reset сбрасывает прогресс
func (b *Breaker) Reset() {
	b.active = false
	b.target = vec.Vec3{}
	b.blockID = block.AirBlockID
	b.elapsed = 0
}
