package noise

import (
	"github.com/aquilax/go-perlin"
)

// Параметры go-perlin для одной октавы: сложение октав выполняет Octave
const (
	perlinAlpha = 2.0 // Сглаживание шума
	perlinBeta  = 2.0 // Частота шума
	perlinN     = 1   // Количество октав внутри go-perlin
)

// PerlinSource - источник шума на основе github.com/aquilax/go-perlin.
// Используется как альтернативный рельеф (noise_backend: perlin).
type PerlinSource struct {
	p *perlin.Perlin
}

// NewPerlinSource инициализирует генератор шума Перлина с указанным сидом
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)}
}

// Noise2D возвращает значение шума Перлина в диапазоне [-1, 1]
func (s *PerlinSource) Noise2D(x, y float64) float64 {
	return clamp(s.p.Noise2D(x, y))
}
