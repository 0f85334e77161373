package world

import (
	"time"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Observer получает уведомления о работе мира (метрики, отладка)
type Observer interface {
	ChunkGenerated(pos ChunkPos, took time.Duration)
	BlockChanged(pos vec.Vec3, prev, next block.BlockID)
}

// Option настраивает World
type Option func(*World)

// WithRenderDistance задаёт радиус прогрузки в чанках
func WithRenderDistance(r int) Option {
	return func(w *World) {
		if r >= 0 {
			w.renderDistance = r
		}
	}
}

// WithRegistry задаёт реестр блоков, по которому определяется твёрдость
func WithRegistry(reg block.Lookup) Option {
	return func(w *World) { w.registry = reg }
}

// WithObserver подключает наблюдателя
func WithObserver(o Observer) Option {
	return func(w *World) { w.observer = o }
}

// WithChunkCreatedHook задаёт функцию, вызываемую после генерации нового чанка
func WithChunkCreatedHook(fn func(*Chunk)) Option {
	return func(w *World) { w.onCreated = fn }
}

// WithLogger задаёт логгер мира
func WithLogger(l *logging.Logger) Option {
	return func(w *World) { w.logger = l }
}

// World владеет чанками и пересчитывает мировые координаты в локальные.
// Не потокобезопасен: вызывающий код работает с миром из одной горутины.
type World struct {
	chunks         map[ChunkPos]*Chunk
	generator      Generator
	registry       block.Lookup
	renderDistance int
	observer       Observer
	onCreated      func(*Chunk)
	logger         *logging.Logger
}

// NewWorld создаёт пустой мир. Чанки появляются лениво.
func NewWorld(gen Generator, opts ...Option) *World {
	w := &World{
		chunks:         make(map[ChunkPos]*Chunk),
		generator:      gen,
		registry:       block.Default(),
		renderDistance: DefaultRenderDistance,
		logger:         logging.GetWorldLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Registry возвращает реестр блоков мира
func (w *World) Registry() block.Lookup {
	return w.registry
}

// RenderDistance возвращает радиус прогрузки
func (w *World) RenderDistance() int {
	return w.renderDistance
}

// GetChunk возвращает чанк или nil, если он ещё не создан
func (w *World) GetChunk(cx, cz int) *Chunk {
	return w.chunks[ChunkPos{X: cx, Z: cz}]
}

// GetOrCreateChunk возвращает чанк, создавая и генерируя его при первом обращении.
// Чанк попадает в мир только после полной генерации.
func (w *World) GetOrCreateChunk(cx, cz int) *Chunk {
	pos := ChunkPos{X: cx, Z: cz}
	if c, ok := w.chunks[pos]; ok {
		return c
	}

	start := time.Now()
	c := NewChunk(pos)
	if w.generator != nil {
		w.generator.Generate(c)
	}
	c.MarkDirty()
	w.chunks[pos] = c
	took := time.Since(start)

	w.logger.Debug("Чанк %s сгенерирован за %v", pos, took)
	if w.observer != nil {
		w.observer.ChunkGenerated(pos, took)
	}
	if w.onCreated != nil {
		w.onCreated(c)
	}
	return c
}

// GetBlock возвращает блок по мировым координатам.
// Вне вертикального диапазона и в несозданных чанках - воздух.
func (w *World) GetBlock(wx, wy, wz int) block.BlockID {
	if !InVerticalRange(wy) {
		return block.AirBlockID
	}
	pos, local := Decompose(wx, wy, wz)
	c := w.chunks[pos]
	if c == nil {
		return block.AirBlockID
	}
	return c.GetBlock(local.X, local.Y, local.Z)
}

// SetBlock ставит блок, создавая чанк при необходимости.
// Если блок лежит на границе чанка, существующие соседи тоже помечаются dirty.
func (w *World) SetBlock(wx, wy, wz int, id block.BlockID) {
	if !InVerticalRange(wy) {
		return
	}
	pos, local := Decompose(wx, wy, wz)
	c := w.GetOrCreateChunk(pos.X, pos.Z)

	old := c.GetBlock(local.X, local.Y, local.Z)
	c.SetBlock(local.X, local.Y, local.Z, id)

	if local.X == 0 {
		w.markDirty(pos.Offset(-1, 0))
	}
	if local.X == ChunkSize-1 {
		w.markDirty(pos.Offset(1, 0))
	}
	if local.Z == 0 {
		w.markDirty(pos.Offset(0, -1))
	}
	if local.Z == ChunkSize-1 {
		w.markDirty(pos.Offset(0, 1))
	}

	if w.observer != nil {
		w.observer.BlockChanged(vec.Vec3{X: wx, Y: wy, Z: wz}, old, id)
	}
}

func (w *World) markDirty(pos ChunkPos) {
	if c := w.chunks[pos]; c != nil {
		c.MarkDirty()
	}
}

// UpdateAroundPlayer создаёт все чанки в квадрате радиуса RenderDistance вокруг
// чанка игрока и возвращает те из них, что помечены dirty
func (w *World) UpdateAroundPlayer(px, pz float64) []*Chunk {
	center := ChunkPosAt(vec.Floor(px), vec.Floor(pz))
	r := w.renderDistance

	var dirty []*Chunk
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			c := w.GetOrCreateChunk(center.X+dx, center.Z+dz)
			if c.Dirty() {
				dirty = append(dirty, c)
			}
		}
	}
	return dirty
}

// SurfaceY возвращает высоту над верхним твёрдым блоком колонки
// или SurfaceFloorY, если твёрдых блоков нет
func (w *World) SurfaceY(wx, wz int) int {
	for y := ChunkHeight - 1; y >= 0; y-- {
		if w.registry.IsSolid(w.GetBlock(wx, y, wz)) {
			return y + 1
		}
	}
	return SurfaceFloorY
}

// ChunkCount возвращает число созданных чанков
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// ForEachChunk обходит все созданные чанки в произвольном порядке
func (w *World) ForEachChunk(fn func(*Chunk)) {
	for _, c := range w.chunks {
		fn(c)
	}
}
