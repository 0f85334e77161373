// Package noise реализует детерминированный двумерный градиентный шум
// и его сложение по октавам для генерации рельефа.
package noise

import "math"

// grads2 - градиенты для двумерного шума
var grads2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Generator - градиентный шум с таблицей перестановок, построенной из сида.
// После создания не меняется, поэтому безопасен для конкурентного чтения.
type Generator struct {
	seed int64
	perm [512]uint8
}

// New создаёт генератор шума для указанного сида
func New(seed int64) *Generator {
	g := &Generator{seed: seed}

	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// Тасование Фишера–Йетса на 32-битном LCG
	s := uint32(seed)
	for i := 255; i > 0; i-- {
		s = s*1664525 + 1013904223
		j := s % uint32(i+1)
		p[i], p[j] = p[j], p[i]
	}

	for i := range g.perm {
		g.perm[i] = p[i&255]
	}
	return g
}

// Seed возвращает сид генератора
func (g *Generator) Seed() int64 {
	return g.seed
}

// Noise2D возвращает значение шума в диапазоне [-1, 1]
func (g *Generator) Noise2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	X := int(fx) & 255
	Y := int(fy) & 255
	xf := x - fx
	yf := y - fy
	u := fade(xf)
	v := fade(yf)

	p := &g.perm
	aa := p[int(p[X])+Y]
	ab := p[int(p[X])+Y+1]
	ba := p[int(p[X+1])+Y]
	bb := p[int(p[X+1])+Y+1]

	n := lerp(
		lerp(dot2(aa, xf, yf), dot2(ba, xf-1, yf), u),
		lerp(dot2(ab, xf, yf-1), dot2(bb, xf-1, yf-1), u),
		v,
	)
	return clamp(n)
}

// fade - квинтическая кривая 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func dot2(hash uint8, x, y float64) float64 {
	g := grads2[hash&7]
	return g[0]*x + g[1]*y
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
