package world

// Размеры чанка общие для всего движка
const (
	ChunkSize   = 16 // блоков по X и Z
	ChunkHeight = 64 // блоков по Y

	chunkArea   = ChunkSize * ChunkSize
	ChunkVolume = chunkArea * ChunkHeight
)

// Параметры рельефа по умолчанию
const (
	SeaLevel         = 32
	TerrainAmplitude = 10
	TerrainScale     = 0.05

	DefaultRenderDistance = 4 // чанков в каждую сторону

	// SurfaceFloorY возвращается SurfaceY для столбца без твердых блоков
	SurfaceFloorY = 1
)
