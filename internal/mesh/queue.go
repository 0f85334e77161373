package mesh

import (
	"github.com/annel0/voxel-engine/internal/world"
)

// DefaultChunksPerStep - сколько чанков перестраивается за один шаг по умолчанию
const DefaultChunksPerStep = 2

// Queue накапливает dirty-чанки и перестраивает их понемногу за шаг.
// Один чанк стоит в очереди не больше одного раза.
type Queue struct {
	pending []*world.Chunk
	queued  map[world.ChunkPos]struct{}
	perStep int
}

// NewQueue создаёт очередь. perStep <= 0 означает DefaultChunksPerStep.
func NewQueue(perStep int) *Queue {
	if perStep <= 0 {
		perStep = DefaultChunksPerStep
	}
	return &Queue{
		queued:  make(map[world.ChunkPos]struct{}),
		perStep: perStep,
	}
}

// Push добавляет чанки, которых ещё нет в очереди
func (q *Queue) Push(chunks ...*world.Chunk) {
	for _, c := range chunks {
		if _, ok := q.queued[c.Pos()]; ok {
			continue
		}
		q.queued[c.Pos()] = struct{}{}
		q.pending = append(q.pending, c)
	}
}

// Len возвращает число ожидающих чанков
func (q *Queue) Len() int {
	return len(q.pending)
}

// Step перестраивает до perStep чанков и возвращает число перестроенных.
// Чанки, которые успели стать чистыми, пропускаются без перестройки.
func (q *Queue) Step(m *Mesher, src BlockSource) (int, error) {
	built := 0
	for built < q.perStep && len(q.pending) > 0 {
		c := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		delete(q.queued, c.Pos())

		if !c.Dirty() {
			continue
		}
		if _, err := m.Rebuild(c, src); err != nil {
			return built, err
		}
		built++
	}
	return built, nil
}
