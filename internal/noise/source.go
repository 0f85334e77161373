package noise

import (
	"errors"
	"fmt"
)

// Имена доступных реализаций шума
const (
	BackendGradient = "gradient"
	BackendPerlin   = "perlin"
)

// ErrUnknownBackend возвращается для неизвестного имени реализации
var ErrUnknownBackend = errors.New("unknown noise backend")

// NewSource создаёт источник шума по имени реализации.
// Пустое имя означает градиентный шум по умолчанию.
func NewSource(backend string, seed int64) (Source, error) {
	switch backend {
	case "", BackendGradient:
		return New(seed), nil
	case BackendPerlin:
		return NewPerlinSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
