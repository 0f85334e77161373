package block

// Lookup определяет запросы к каталогу блоков, которые нужны
// генератору, построителю геометрии и физике. *Registry реализует его.
type Lookup interface {
	// Get возвращает определение блока, если ID зарегистрирован.
	Get(id BlockID) (Definition, bool)

	// Definition возвращает определение с безопасной заменой для неизвестных ID.
	Definition(id BlockID) Definition

	// IsSolid возвращает true для блоков, участвующих в коллизиях.
	IsSolid(id BlockID) bool

	// IsTransparent возвращает true для блоков, не скрывающих грани соседей.
	IsTransparent(id BlockID) bool

	// IsOpaque возвращает true для твердых непрозрачных блоков.
	IsOpaque(id BlockID) bool

	// TextureKeys возвращает ключи текстур для верхней, боковых и нижней граней.
	TextureKeys(id BlockID) (top, side, bottom string)
}

var _ Lookup = (*Registry)(nil)
