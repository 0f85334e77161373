package world

import (
	"fmt"

	"github.com/annel0/voxel-engine/internal/vec"
)

// ChunkPos - координаты чанка в сетке чанков
type ChunkPos struct {
	X, Z int
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}

// Origin возвращает мировые координаты угла (-X, -Z) чанка на уровне y = 0
func (p ChunkPos) Origin() vec.Vec3 {
	return vec.Vec3{X: p.X * ChunkSize, Y: 0, Z: p.Z * ChunkSize}
}

// Offset возвращает соседний чанк со смещением (dx, dz)
func (p ChunkPos) Offset(dx, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

// ChebyshevDistance - расстояние в чанках по квадрату
func (p ChunkPos) ChebyshevDistance(other ChunkPos) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := p.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

// ChunkPosAt возвращает чанк, которому принадлежит мировая колонка (wx, wz).
// Используется деление с округлением вниз, поэтому -1 попадает в чанк -1.
func ChunkPosAt(wx, wz int) ChunkPos {
	return ChunkPos{X: vec.FloorDiv(wx, ChunkSize), Z: vec.FloorDiv(wz, ChunkSize)}
}

// LocalCoord переводит мировую координату X или Z в локальную [0, ChunkSize)
func LocalCoord(w int) int {
	return vec.FloorMod(w, ChunkSize)
}

// Decompose раскладывает мировую позицию блока на чанк и локальные координаты
func Decompose(wx, wy, wz int) (ChunkPos, vec.Vec3) {
	return ChunkPosAt(wx, wz), vec.Vec3{X: LocalCoord(wx), Y: wy, Z: LocalCoord(wz)}
}

// Compose собирает мировую позицию из чанка и локальных координат
func Compose(pos ChunkPos, local vec.Vec3) vec.Vec3 {
	return pos.Origin().Add(local)
}

// InVerticalRange проверяет, лежит ли y внутри высоты мира
func InVerticalRange(y int) bool {
	return y >= 0 && y < ChunkHeight
}
