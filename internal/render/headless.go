package render

import (
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/world"
)

// Upload хранит сводку по загруженной геометрии
type Upload struct {
	Pos      world.ChunkPos
	Batches  int
	Quads    int
	Vertices int
}

// Stats - сводка по всем загруженным объектам
type Stats struct {
	Objects  int `json:"objects"`
	Batches  int `json:"batches"`
	Quads    int `json:"quads"`
	Vertices int `json:"vertices"`
	Uploads  int `json:"uploads_total"`
	Disposes int `json:"disposes_total"`
}

// Headless - рендерер без вывода на экран. Запоминает, что было бы загружено
// на GPU, и выдаёт уникальные ссылки на объекты.
type Headless struct {
	mu       sync.RWMutex
	objects  map[mesh.Handle]Upload
	uploads  int
	disposes int
}

// NewHeadless создаёт рендерер
func NewHeadless() *Headless {
	return &Headless{objects: make(map[mesh.Handle]Upload)}
}

// Upload регистрирует геометрию и возвращает ссылку на неё
func (h *Headless) Upload(geo mesh.Geometry) (mesh.Handle, error) {
	u := Upload{Pos: geo.Pos, Batches: len(geo.Batches)}
	for i := range geo.Batches {
		u.Quads += geo.Batches[i].QuadCount()
		u.Vertices += geo.Batches[i].VertexCount()
	}

	handle := mesh.Handle(uuid.NewString())

	h.mu.Lock()
	h.objects[handle] = u
	h.uploads++
	h.mu.Unlock()

	return handle, nil
}

// Dispose освобождает объект. Повторное освобождение ничего не делает.
func (h *Headless) Dispose(handle mesh.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.objects[handle]; !ok {
		return
	}
	delete(h.objects, handle)
	h.disposes++
}

// Lookup возвращает сводку по объекту
func (h *Headless) Lookup(handle mesh.Handle) (Upload, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	u, ok := h.objects[handle]
	return u, ok
}

// Stats возвращает сводку по всем живым объектам
func (h *Headless) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s := Stats{Objects: len(h.objects), Uploads: h.uploads, Disposes: h.disposes}
	for _, u := range h.objects {
		s.Batches += u.Batches
		s.Quads += u.Quads
		s.Vertices += u.Vertices
	}
	return s
}

var _ mesh.Renderer = (*Headless)(nil)
