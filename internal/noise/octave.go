package noise

// Source - любой двумерный шум со значениями в [-1, 1]
type Source interface {
	Noise2D(x, y float64) float64
}

// Octave складывает octaves вызовов src с частотой, растущей в lacunarity раз,
// и амплитудой, падающей в persistence раз. Сумма нормируется на сумму
// амплитуд, поэтому результат остаётся в [-1, 1].
func Octave(src Source, x, y float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves <= 0 {
		return 0
	}

	var value, maxValue float64
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < octaves; i++ {
		value += src.Noise2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return value / maxValue
}

// Octave2D - сложение октав собственного шума генератора
func (g *Generator) Octave2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	return Octave(g, x, y, octaves, persistence, lacunarity)
}
