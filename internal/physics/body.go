package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	Gravity            = -28.0 // м/с²
	JumpVelocity       = 8.0
	FlyVelocity        = 8.0
	WalkSpeed          = 5.0
	SprintSpeed        = 9.0
	FallDamageVelocity = 13.0 // скорость падения, с которой начинается урон
	flyDamping         = 0.75
)

// Body - состояние тела актёра между шагами
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Shape    Shape
	Grounded bool
	Flying   bool
	Gravity  float64

	// LastLandingVelocity - скорость последнего приземления.
	// Вызывающий код забирает её через TakeLanding.
	LastLandingVelocity float64
}

// NewBody создаёт тело игрока в позиции pos
func NewBody(pos mgl64.Vec3) *Body {
	return &Body{Position: pos, Shape: PlayerShape, Gravity: Gravity}
}

// Jump задаёт начальную скорость прыжка, если тело стоит на земле
func (b *Body) Jump() bool {
	if b.Flying || !b.Grounded {
		return false
	}
	b.Velocity[1] = JumpVelocity
	b.Grounded = false
	return true
}

// SetFlying включает или выключает полёт. При выключении вертикальная скорость обнуляется.
func (b *Body) SetFlying(on bool) {
	if b.Flying && !on {
		b.Velocity[1] = 0
	}
	b.Flying = on
}

// Fly управляет вертикальной скоростью в полёте: +1 вверх, -1 вниз, 0 плавное торможение
func (b *Body) Fly(dir int) {
	if !b.Flying {
		return
	}
	switch {
	case dir > 0:
		b.Velocity[1] = FlyVelocity
	case dir < 0:
		b.Velocity[1] = -FlyVelocity
	default:
		b.Velocity[1] *= flyDamping
	}
}

// Step применяет гравитацию (кроме полёта) и двигает тело через Resolver
func (b *Body) Step(r *Resolver, dt float64) Result {
	if !b.Flying {
		b.Velocity[1] += b.Gravity * dt
	}

	res := r.Resolve(b.Position, b.Shape, b.Velocity, dt, b.Grounded)
	b.Position = res.Position
	b.Velocity = res.Velocity
	b.Grounded = res.Grounded
	if res.Impact != 0 {
		b.LastLandingVelocity = res.Impact
	}
	return res
}

// TakeLanding возвращает скорость последнего приземления и сбрасывает её
func (b *Body) TakeLanding() float64 {
	v := b.LastLandingVelocity
	b.LastLandingVelocity = 0
	return v
}

// Teleport переносит тело и гасит скорость
func (b *Body) Teleport(pos mgl64.Vec3) {
	b.Position = pos
	b.Velocity = mgl64.Vec3{}
	b.Grounded = false
	b.LastLandingVelocity = 0
}

// FallDamage возвращает урон от приземления со скоростью impact (отрицательной).
// Урона нет, пока падение не быстрее threshold.
func FallDamage(impact, threshold float64) int {
	if impact >= -threshold {
		return 0
	}
	return int(math.Ceil(-impact - threshold))
}
