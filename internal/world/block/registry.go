package block

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateBlock возвращается при повторной регистрации ID
var ErrDuplicateBlock = errors.New("block id already registered")

// Registry - каталог определений блоков. Регистрация только добавляет
// записи; перезапись существующего ID считается ошибкой конфигурации.
type Registry struct {
	defs  [256]*Definition
	count int
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{}
}

// Register добавляет определение блока в реестр
func (r *Registry) Register(def Definition) error {
	if r.defs[def.ID] != nil {
		return fmt.Errorf("register %q: %w: id %d is %q", def.Name, ErrDuplicateBlock, def.ID, r.defs[def.ID].Name)
	}
	d := def
	r.defs[def.ID] = &d
	r.count++
	return nil
}

// MustRegister регистрирует блок и паникует при ошибке.
// Используется при старте, когда неверный каталог должен остановить запуск.
func (r *Registry) MustRegister(defs ...Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Get возвращает определение для указанного ID
func (r *Registry) Get(id BlockID) (Definition, bool) {
	if d := r.defs[id]; d != nil {
		return *d, true
	}
	return Definition{}, false
}

// Definition возвращает определение или безопасную замену:
// воздух для ID 0 и твердый непрозрачный блок для неизвестных ID.
func (r *Registry) Definition(id BlockID) Definition {
	if d := r.defs[id]; d != nil {
		return *d
	}
	if id == AirBlockID {
		return airDefinition
	}
	return fallbackDefinition(id)
}

// IsValidBlockID проверяет, является ли ID зарегистрированным
func (r *Registry) IsValidBlockID(id BlockID) bool {
	return r.defs[id] != nil
}

// IsSolid проверяет, участвует ли блок в коллизиях
func (r *Registry) IsSolid(id BlockID) bool {
	if id == AirBlockID {
		return false
	}
	if d := r.defs[id]; d != nil {
		return d.Solid
	}
	return true
}

// IsTransparent проверяет, пропускает ли блок грани соседей
func (r *Registry) IsTransparent(id BlockID) bool {
	if id == AirBlockID {
		return true
	}
	if d := r.defs[id]; d != nil {
		return d.Transparent
	}
	return false
}

// IsOpaque - твердый и непрозрачный блок
func (r *Registry) IsOpaque(id BlockID) bool {
	return r.IsSolid(id) && !r.IsTransparent(id)
}

// TextureKeys возвращает ключи текстур верхней, боковых и нижней граней
func (r *Registry) TextureKeys(id BlockID) (top, side, bottom string) {
	t := r.Definition(id).Textures
	return t.Top, t.Side, t.Bottom
}

// Len возвращает количество зарегистрированных блоков
func (r *Registry) Len() int {
	return r.count
}

// Definitions возвращает все определения в порядке возрастания ID
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, r.count)
	for _, d := range r.defs {
		if d != nil {
			out = append(out, *d)
		}
	}
	return out
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default возвращает общий реестр со стандартным каталогом блоков
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.MustRegister(Catalog()...)
	})
	return defaultRegistry
}
