package vec

import "math"

// FloorDiv делит с округлением вниз: FloorDiv(-1, 16) == -1.
// Обычное деление в Go усекает к нулю и для отрицательных координат
// дает соседний чанк.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod возвращает остаток в диапазоне [0, b) для b > 0.
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Floor переводит мировую координату с плавающей точкой в индекс блока.
func Floor(f float64) int {
	return int(math.Floor(f))
}
