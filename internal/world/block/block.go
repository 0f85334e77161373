package block

import "math"

// BlockID представляет идентификатор блока (0 = воздух)
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID           BlockID = iota // 0
	GrassBlockID                        // 1
	DirtBlockID                         // 2
	StoneBlockID                        // 3
	SandBlockID                         // 4
	WaterBlockID                        // 5
	WoodBlockID                         // 6
	LeavesBlockID                       // 7
	SnowBlockID                         // 8
	PlanksBlockID                       // 9
	CraftingTableBlockID                // 10
	GlassBlockID                        // 11
	BedrockBlockID                      // 12
)

// Unbreakable - время разрушения неразрушаемого блока
var Unbreakable = math.Inf(1)

// FaceKeys хранит значения для верхней, боковых и нижней граней
type FaceKeys[T any] struct {
	Top    T
	Side   T
	Bottom T
}

// Uniform возвращает одинаковые ключи для всех граней
func Uniform[T any](v T) FaceKeys[T] {
	return FaceKeys[T]{Top: v, Side: v, Bottom: v}
}

// Definition описывает неизменяемые свойства типа блока.
type Definition struct {
	ID          BlockID
	Name        string
	Solid       bool    // участвует в коллизиях и перекрывает грани соседей
	Transparent bool    // не перекрывает грани соседей, даже если Solid
	BreakTime   float64 // секунды удержания; +Inf - неразрушаемый
	Drops       BlockID // что выпадает при разрушении; AirBlockID - ничего
	Textures    FaceKeys[string]
	Colors      FaceKeys[uint32]
}

// Opaque возвращает true, если блок скрывает грани соседей
func (d Definition) Opaque() bool {
	return d.Solid && !d.Transparent
}

// Breakable возвращает true, если блок можно разрушить
func (d Definition) Breakable() bool {
	return !math.IsInf(d.BreakTime, 1)
}

// Drop возвращает выпадающий блок и признак его наличия
func (d Definition) Drop() (BlockID, bool) {
	return d.Drops, d.Drops != AirBlockID
}

// airDefinition используется для ID 0, даже если воздух не зарегистрирован
var airDefinition = Definition{
	ID:          AirBlockID,
	Name:        "Air",
	Transparent: true,
	BreakTime:   Unbreakable,
}

// MissingTexture и MissingColor - заглушки для неизвестных блоков
const (
	MissingTexture        = "missing"
	MissingColor   uint32 = 0xff00ff
)

// fallbackDefinition возвращается для незарегистрированных ID:
// твердый непрозрачный блок с заглушкой вместо текстуры.
func fallbackDefinition(id BlockID) Definition {
	return Definition{
		ID:        id,
		Name:      "Unknown",
		Solid:     true,
		BreakTime: Unbreakable,
		Textures:  Uniform(MissingTexture),
		Colors:    Uniform(MissingColor),
	}
}
