package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoise2DDeterministic(t *testing.T) {
	g1 := New(12345)
	g2 := New(12345)

	for i := 0; i < 200; i++ {
		x := float64(i)*0.13 - 7
		y := float64(i)*0.29 + 3
		require.Equal(t, g1.Noise2D(x, y), g2.Noise2D(x, y), "шум не детерминирован в (%f, %f)", x, y)
	}
}

func TestNoise2DRange(t *testing.T) {
	g := New(42)
	for i := 0; i < 10000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		v := g.Noise2D(x, y)
		if v < -1 || v > 1 {
			t.Fatalf("Noise2D(%f, %f) = %f, вне [-1,1]", x, y, v)
		}
	}
}

func TestNoise2DZeroAtLatticePoints(t *testing.T) {
	// В узлах решетки вклад градиента равен нулю
	g := New(7)
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			assert.Equal(t, 0.0, g.Noise2D(float64(x), float64(y)))
		}
	}
}

func TestNoise2DContinuous(t *testing.T) {
	g := New(99)
	const eps = 1e-6
	for i := 0; i < 500; i++ {
		x := float64(i) * 0.071
		y := float64(i) * 0.043
		d := math.Abs(g.Noise2D(x, y) - g.Noise2D(x+eps, y+eps))
		assert.Less(t, d, 1e-4, "скачок шума в (%f, %f)", x, y)
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	differs := false
	for i := 0; i < 100 && !differs; i++ {
		x, y := float64(i)*0.31+0.5, float64(i)*0.17+0.25
		differs = a.Noise2D(x, y) != b.Noise2D(x, y)
	}
	assert.True(t, differs, "разные сиды должны давать разный шум")
	assert.NotEqual(t, a.perm, b.perm)
}

func TestOctaveRangeAndNormalization(t *testing.T) {
	g := New(12345)
	for i := 0; i < 5000; i++ {
		x := float64(i)*0.05 - 100
		y := float64(i)*0.07 - 100
		v := g.Octave2D(x, y, 5, 0.5, 2.0)
		if v < -1 || v > 1 {
			t.Fatalf("Octave2D(%f, %f) = %f, вне [-1,1]", x, y, v)
		}
	}

	// Одна октава - это сам шум
	assert.Equal(t, g.Noise2D(1.3, 2.7), g.Octave2D(1.3, 2.7, 1, 0.5, 2.0))
	assert.Equal(t, 0.0, g.Octave2D(1.3, 2.7, 0, 0.5, 2.0))
}

type constSource float64

func (c constSource) Noise2D(_, _ float64) float64 { return float64(c) }

func TestOctaveWeightedSum(t *testing.T) {
	// Постоянный источник после нормировки остается тем же значением
	assert.InDelta(t, 0.75, Octave(constSource(0.75), 3, 4, 5, 0.5, 2.0), 1e-12)
	assert.InDelta(t, -1.0, Octave(constSource(-1), 3, 4, 8, 0.3, 3.0), 1e-12)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("", 5)
	require.NoError(t, err)
	assert.IsType(t, &Generator{}, src)

	src, err = NewSource(BackendPerlin, 5)
	require.NoError(t, err)
	assert.IsType(t, &PerlinSource{}, src)

	_, err = NewSource("simplex", 5)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestPerlinSourceDeterministicAndBounded(t *testing.T) {
	a := NewPerlinSource(77)
	b := NewPerlinSource(77)
	for i := 0; i < 500; i++ {
		x, y := float64(i)*0.11, float64(i)*0.23
		va := a.Noise2D(x, y)
		assert.Equal(t, va, b.Noise2D(x, y))
		assert.True(t, va >= -1 && va <= 1)
	}
}
