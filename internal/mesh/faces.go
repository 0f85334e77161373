package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-engine/internal/vec"
)

// FaceClass определяет, какой ключ текстуры блока использует грань
type FaceClass uint8

const (
	FaceTop FaceClass = iota
	FaceSide
	FaceBottom
)

func (c FaceClass) String() string {
	switch c {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "side"
	}
}

// face описывает одну грань единичного куба.
// Вершины перечислены против часовой стрелки, если смотреть снаружи.
type face struct {
	dir     vec.Vec3
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
	class   FaceClass
}

var faces = [6]face{
	{ // +Y
		dir:     vec.Up,
		normal:  mgl32.Vec3{0, 1, 0},
		corners: [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
		class:   FaceTop,
	},
	{ // -Y
		dir:     vec.Down,
		normal:  mgl32.Vec3{0, -1, 0},
		corners: [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		class:   FaceBottom,
	},
	{ // +Z
		dir:     vec.North,
		normal:  mgl32.Vec3{0, 0, 1},
		corners: [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		class:   FaceSide,
	},
	{ // -Z
		dir:     vec.South,
		normal:  mgl32.Vec3{0, 0, -1},
		corners: [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		class:   FaceSide,
	},
	{ // +X
		dir:     vec.East,
		normal:  mgl32.Vec3{1, 0, 0},
		corners: [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
		class:   FaceSide,
	},
	{ // -X
		dir:     vec.West,
		normal:  mgl32.Vec3{-1, 0, 0},
		corners: [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
		class:   FaceSide,
	},
}

// quadUVs - текстурные координаты вершин грани в порядке corners
var quadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// quadIndices - два треугольника квадрата относительно первой вершины
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
