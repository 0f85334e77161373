package mesh

import (
	"sync"

	"github.com/annel0/voxel-engine/internal/world"
)

// Handle - непрозрачная ссылка на объект, созданный рендерером
type Handle string

// Renderer загружает геометрию на сторону отображения и освобождает её
type Renderer interface {
	Upload(geo Geometry) (Handle, error)
	Dispose(h Handle)
}

// HandleTable хранит текущий объект рендерера для каждого чанка.
// Данные чанка ничего не знают о рендерере.
type HandleTable struct {
	mu      sync.RWMutex
	handles map[world.ChunkPos]Handle
}

// NewHandleTable создаёт пустую таблицу
func NewHandleTable() *HandleTable {
	return &HandleTable{handles: make(map[world.ChunkPos]Handle)}
}

// Get возвращает объект чанка
func (t *HandleTable) Get(pos world.ChunkPos) (Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handles[pos]
	return h, ok
}

// Set запоминает объект чанка и возвращает предыдущий
func (t *HandleTable) Set(pos world.ChunkPos, h Handle) (Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.handles[pos]
	t.handles[pos] = h
	return prev, ok
}

// Delete удаляет запись и возвращает удалённый объект
func (t *HandleTable) Delete(pos world.ChunkPos) (Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, ok := t.handles[pos]
	delete(t.handles, pos)
	return prev, ok
}

// Len возвращает число чанков с загруженной геометрией
func (t *HandleTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handles)
}
