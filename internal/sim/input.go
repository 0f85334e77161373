package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/world/block"
)

// Input - управление игроком на один шаг
type Input struct {
	Yaw   float64 `json:"yaw"`   // радианы; 0 смотрит в -Z
	Pitch float64 `json:"pitch"` // радианы; положительный вверх

	Forward float64 `json:"forward"` // -1..1
	Strafe  float64 `json:"strafe"`  // -1..1, положительный вправо
	Sprint  bool    `json:"sprint"`
	Jump    bool    `json:"jump"`
	Descend bool    `json:"descend"` // спуск в полёте

	ToggleFly bool `json:"toggle_fly"`

	Break bool          `json:"break"` // удержание кнопки разрушения
	Place block.BlockID `json:"place"` // не воздух - поставить блок
}

// LookDir возвращает единичный вектор взгляда
func (in Input) LookDir() mgl64.Vec3 {
	cp := math.Cos(in.Pitch)
	return mgl64.Vec3{
		-math.Sin(in.Yaw) * cp,
		math.Sin(in.Pitch),
		-math.Cos(in.Yaw) * cp,
	}.Normalize()
}

// walkVelocity возвращает горизонтальную скорость по вводу
func (in Input) walkVelocity(walk, sprint float64) (float64, float64) {
	front := mgl64.Vec2{-math.Sin(in.Yaw), -math.Cos(in.Yaw)}
	right := mgl64.Vec2{math.Cos(in.Yaw), -math.Sin(in.Yaw)}

	move := front.Mul(in.Forward).Add(right.Mul(in.Strafe))
	if move.Len() == 0 {
		return 0, 0
	}

	speed := walk
	if in.Sprint {
		speed = sprint
	}
	move = move.Normalize().Mul(speed)
	return move.X(), move.Y()
}
