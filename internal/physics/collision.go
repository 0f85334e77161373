package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/world/block"
)

// BlockSource даёт доступ к блокам мира
type BlockSource interface {
	GetBlock(wx, wy, wz int) block.BlockID
}

// Result - итог перемещения за шаг
type Result struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
	// Impact - вертикальная скорость в момент приземления, 0 если приземления не было
	Impact  float64
	Blocked [3]bool
}

// Resolver перемещает коллайдер по миру, не давая ему войти в блоки
type Resolver struct {
	world    BlockSource
	registry block.Lookup
}

// NewResolver создаёт Resolver
func NewResolver(w BlockSource, reg block.Lookup) *Resolver {
	return &Resolver{world: w, registry: reg}
}

// Resolve двигает коллайдер по осям X, Y, Z по очереди. Ось, на которой
// коллайдер упёрся в блок, не сдвигается и её скорость обнуляется, остальные
// оси продолжают движение. grounded - состояние до шага; оно сбрасывается
// при свободном движении по Y и устанавливается при приземлении.
func (r *Resolver) Resolve(pos mgl64.Vec3, shape Shape, vel mgl64.Vec3, dt float64, grounded bool) Result {
	res := Result{Position: pos, Velocity: vel, Grounded: grounded}

	for axis := 0; axis < 3; axis++ {
		delta := res.Velocity[axis] * dt
		candidate := res.Position
		candidate[axis] += delta

		if !r.Overlaps(shape.BoxAt(candidate)) {
			res.Position = candidate
			if axis == 1 {
				res.Grounded = false
			}
			continue
		}

		res.Blocked[axis] = true
		if axis == 1 {
			if res.Velocity[1] < 0 {
				res.Impact = res.Velocity[1]
				res.Grounded = true
			} else {
				res.Grounded = false
			}
		}
		res.Velocity[axis] = 0
	}
	return res
}

// Overlaps проверяет, задевает ли AABB хоть один твёрдый непрозрачный блок
func (r *Resolver) Overlaps(box AABB) bool {
	lo, hi := box.BlockRange()
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				if r.collides(r.world.GetBlock(x, y, z)) {
					return true
				}
			}
		}
	}
	return false
}

func (r *Resolver) collides(id block.BlockID) bool {
	return r.registry.IsSolid(id) && !r.registry.IsTransparent(id)
}
