package mesh

import (
	"fmt"
	"time"

	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/world"
)

// Observer получает сведения о каждой перестройке
type Observer interface {
	MeshBuilt(pos world.ChunkPos, quads int, took time.Duration)
}

// Mesher перестраивает геометрию чанков и управляет объектами рендерера
type Mesher struct {
	builder  *Builder
	renderer Renderer
	handles  *HandleTable
	observer Observer
	logger   *logging.Logger
}

// NewMesher создаёт Mesher. observer может быть nil.
func NewMesher(builder *Builder, renderer Renderer, observer Observer) *Mesher {
	return &Mesher{
		builder:  builder,
		renderer: renderer,
		handles:  NewHandleTable(),
		observer: observer,
		logger:   logging.GetMeshLogger(),
	}
}

// Handles возвращает таблицу объектов рендерера
func (m *Mesher) Handles() *HandleTable {
	return m.handles
}

// Rebuild заменяет геометрию чанка новой. Старый объект рендерера освобождается
// только после успешной загрузки нового: при ошибке чанк остаётся со старой
// геометрией и флагом dirty. Для чанка без видимых граней ничего не загружается.
func (m *Mesher) Rebuild(c *world.Chunk, src BlockSource) (Geometry, error) {
	start := time.Now()
	pos := c.Pos()

	geo := m.builder.Build(c, src)
	if geo.Empty() {
		m.Remove(pos)
		c.ClearDirty()
		m.report(pos, 0, time.Since(start))
		return geo, nil
	}

	h, err := m.renderer.Upload(geo)
	if err != nil {
		return geo, fmt.Errorf("upload chunk %s: %w", pos, err)
	}
	if old, ok := m.handles.Set(pos, h); ok {
		m.renderer.Dispose(old)
	}
	c.ClearDirty()

	m.report(pos, geo.QuadCount(), time.Since(start))
	return geo, nil
}

// Remove освобождает объект рендерера чанка
func (m *Mesher) Remove(pos world.ChunkPos) {
	if h, ok := m.handles.Delete(pos); ok {
		m.renderer.Dispose(h)
	}
}

func (m *Mesher) report(pos world.ChunkPos, quads int, took time.Duration) {
	m.logger.Trace("Геометрия чанка %s: %d граней за %v", pos, quads, took)
	if m.observer != nil {
		m.observer.MeshBuilt(pos, quads, took)
	}
}
