package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
		{33, 16, 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FloorDiv(c.a, c.b), "FloorDiv(%d, %d)", c.a, c.b)
	}
}

func TestFloorModAlwaysNonNegative(t *testing.T) {
	for a := -100; a <= 100; a++ {
		m := FloorMod(a, 16)
		assert.GreaterOrEqual(t, m, 0)
		assert.Less(t, m, 16)
		assert.Equal(t, a, FloorDiv(a, 16)*16+m, "разложение %d должно собираться обратно", a)
	}
}

func TestFloor(t *testing.T) {
	assert.Equal(t, -1, Floor(-0.5))
	assert.Equal(t, 0, Floor(0.99))
	assert.Equal(t, -5, Floor(-5))
}
