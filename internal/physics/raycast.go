package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// DefaultReach - дальность луча взаимодействия в блоках
const DefaultReach = 5.0

// Hit - результат попадания луча
type Hit struct {
	Block    vec.Vec3 // координаты блока
	Normal   vec.Vec3 // нормаль грани, через которую луч вошёл в блок
	BlockID  block.BlockID
	Distance float64
}

// Adjacent возвращает клетку перед гранью попадания
func (h Hit) Adjacent() vec.Vec3 {
	return h.Block.Add(h.Normal)
}

// ValidDirection сообщает, годится ли dir как направление луча:
// все компоненты конечны и хотя бы одна не равна нулю.
func ValidDirection(dir mgl64.Vec3) bool {
	nonZero := false
	for _, c := range dir {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
		if c != 0 {
			nonZero = true
		}
	}
	return nonZero
}

// Raycaster ищет первый твёрдый блок вдоль луча
type Raycaster struct {
	world    BlockSource
	registry block.Lookup
}

// NewRaycaster создаёт Raycaster
func NewRaycaster(w BlockSource, reg block.Lookup) *Raycaster {
	return &Raycaster{world: w, registry: reg}
}

// Cast проходит по клеткам сетки вдоль луча (DDA), начиная с клетки origin.
// Сама начальная клетка не проверяется. dir должен быть единичным вектором;
// нулевые компоненты никогда не дают шага по своей оси. Нулевой или
// нечисловой dir и нечисловой maxDist дают промах.
func (r *Raycaster) Cast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if !ValidDirection(dir) {
		return Hit{}, false
	}
	if maxDist < 0 || math.IsNaN(maxDist) || math.IsInf(maxDist, 0) {
		return Hit{}, false
	}

	var (
		cell  [3]int
		step  [3]int
		tMax  [3]float64
		tStep [3]float64
	)
	for i := 0; i < 3; i++ {
		o, d := origin[i], dir[i]
		cell[i] = int(math.Floor(o))

		switch {
		case d > 0:
			step[i] = 1
			tStep[i] = 1 / d
			tMax[i] = (math.Floor(o) + 1 - o) / d
		case d < 0:
			step[i] = -1
			tStep[i] = -1 / d
			tMax[i] = (o - math.Floor(o)) / -d
		default:
			tStep[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		var axis int
		switch {
		case tMax[0] < tMax[1] && tMax[0] < tMax[2]:
			axis = 0
		case tMax[1] < tMax[2]:
			axis = 1
		default:
			axis = 2
		}

		t := tMax[axis]
		if t > maxDist || math.IsInf(t, 1) {
			return Hit{}, false
		}
		cell[axis] += step[axis]
		tMax[axis] += tStep[axis]

		id := r.world.GetBlock(cell[0], cell[1], cell[2])
		if !r.registry.IsSolid(id) {
			continue
		}

		var normal [3]int
		normal[axis] = -step[axis]
		return Hit{
			Block:    vec.Vec3{X: cell[0], Y: cell[1], Z: cell[2]},
			Normal:   vec.Vec3{X: normal[0], Y: normal[1], Z: normal[2]},
			BlockID:  id,
			Distance: t,
		}, true
	}
}
