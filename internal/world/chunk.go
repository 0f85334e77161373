package world

import (
	"github.com/cespare/xxhash/v2"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Chunk хранит блоки участка мира размером ChunkSize×ChunkHeight×ChunkSize.
// Индекс в массиве: lx + lz*ChunkSize + ly*ChunkSize*ChunkSize.
type Chunk struct {
	pos    ChunkPos
	blocks [ChunkVolume]block.BlockID
	dirty  bool // геометрия устарела относительно содержимого
}

// NewChunk создаёт пустой чанк. Новый чанк всегда помечен как dirty:
// геометрии для него ещё нет.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{pos: pos, dirty: true}
}

// Pos возвращает координаты чанка
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// Origin возвращает мировые координаты начала чанка
func (c *Chunk) Origin() vec.Vec3 {
	return c.pos.Origin()
}

// InBounds проверяет локальные координаты
func InBounds(lx, ly, lz int) bool {
	return lx >= 0 && lx < ChunkSize &&
		ly >= 0 && ly < ChunkHeight &&
		lz >= 0 && lz < ChunkSize
}

func index(lx, ly, lz int) int {
	return lx + lz*ChunkSize + ly*chunkArea
}

// GetBlock возвращает ID блока по локальным координатам.
// За пределами чанка возвращает воздух.
func (c *Chunk) GetBlock(lx, ly, lz int) block.BlockID {
	if !InBounds(lx, ly, lz) {
		return block.AirBlockID
	}
	return c.blocks[index(lx, ly, lz)]
}

// SetBlock устанавливает блок по локальным координатам и помечает чанк.
// Запись за пределами чанка игнорируется.
func (c *Chunk) SetBlock(lx, ly, lz int, id block.BlockID) {
	if !InBounds(lx, ly, lz) {
		return
	}
	c.blocks[index(lx, ly, lz)] = id
	c.dirty = true
}

// Dirty возвращает true, если геометрию чанка нужно перестроить
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// MarkDirty помечает геометрию чанка устаревшей
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// ClearDirty снимает пометку после перестройки геометрии
func (c *Chunk) ClearDirty() {
	c.dirty = false
}

// IsEmpty возвращает true, если чанк целиком из воздуха
func (c *Chunk) IsEmpty() bool {
	for _, id := range c.blocks {
		if id != block.AirBlockID {
			return false
		}
	}
	return true
}

// Bytes возвращает копию массива блоков в порядке индексов
func (c *Chunk) Bytes() []byte {
	out := make([]byte, ChunkVolume)
	for i, id := range c.blocks {
		out[i] = byte(id)
	}
	return out
}

// Checksum возвращает xxhash содержимого чанка.
// Одинаковые сид и координаты дают одинаковую сумму между запусками.
func (c *Chunk) Checksum() uint64 {
	return xxhash.Sum64(c.Bytes())
}

// CountNonAir возвращает количество блоков, отличных от воздуха
func (c *Chunk) CountNonAir() int {
	n := 0
	for _, id := range c.blocks {
		if id != block.AirBlockID {
			n++
		}
	}
	return n
}
