package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape - размеры коллайдера актёра. Позиция актёра - центр нижней грани.
type Shape struct {
	Width  float64 // по X и Z
	Height float64 // по Y
}

// PlayerShape - коллайдер игрока
var PlayerShape = Shape{Width: 0.6, Height: 1.8}

// AABB - выровненный по осям параллелепипед
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAt строит AABB коллайдера в позиции pos
func (s Shape) BoxAt(pos mgl64.Vec3) AABB {
	hw := s.Width / 2
	return AABB{
		Min: mgl64.Vec3{pos.X() - hw, pos.Y(), pos.Z() - hw},
		Max: mgl64.Vec3{pos.X() + hw, pos.Y() + s.Height, pos.Z() + hw},
	}
}

// Intersects проверяет строгое пересечение двух AABB
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X() < o.Max.X() && b.Max.X() > o.Min.X() &&
		b.Min.Y() < o.Max.Y() && b.Max.Y() > o.Min.Y() &&
		b.Min.Z() < o.Max.Z() && b.Max.Z() > o.Min.Z()
}

// BlockBox возвращает AABB единичного блока
func BlockBox(x, y, z int) AABB {
	return AABB{
		Min: mgl64.Vec3{float64(x), float64(y), float64(z)},
		Max: mgl64.Vec3{float64(x + 1), float64(y + 1), float64(z + 1)},
	}
}

// BlockRange возвращает включительный диапазон блоков, которые задевает AABB.
// Граница, лежащая ровно на целом числе, захватывает следующий блок.
func (b AABB) BlockRange() (lo, hi [3]int) {
	for i := 0; i < 3; i++ {
		lo[i] = int(math.Floor(b.Min[i]))
		hi[i] = int(math.Floor(b.Max[i]))
	}
	return lo, hi
}
