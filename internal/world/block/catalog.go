package block

// Catalog возвращает стандартный набор блоков.
// Цвета используются рендерером без текстур, ключи текстур - для материалов.
func Catalog() []Definition {
	return []Definition{
		airDefinition,
		{
			ID: GrassBlockID, Name: "Grass", Solid: true, BreakTime: 0.6, Drops: DirtBlockID,
			Textures: FaceKeys[string]{Top: "grass_top", Side: "grass_side", Bottom: "dirt"},
			Colors:   FaceKeys[uint32]{Top: 0x5a8f3c, Side: 0x7a5c3a, Bottom: 0x7a5c3a},
		},
		{
			ID: DirtBlockID, Name: "Dirt", Solid: true, BreakTime: 0.5, Drops: DirtBlockID,
			Textures: Uniform("dirt"), Colors: Uniform[uint32](0x7a5c3a),
		},
		{
			ID: StoneBlockID, Name: "Stone", Solid: true, BreakTime: 1.5, Drops: StoneBlockID,
			Textures: Uniform("stone"), Colors: Uniform[uint32](0x7a7a7a),
		},
		{
			ID: SandBlockID, Name: "Sand", Solid: true, BreakTime: 0.5, Drops: SandBlockID,
			Textures: Uniform("sand"), Colors: Uniform[uint32](0xdec87a),
		},
		{
			ID: WaterBlockID, Name: "Water", Transparent: true, BreakTime: Unbreakable,
			Textures: Uniform("water"), Colors: Uniform[uint32](0x3a7ac8),
		},
		{
			ID: WoodBlockID, Name: "Wood", Solid: true, BreakTime: 1.2, Drops: WoodBlockID,
			Textures: FaceKeys[string]{Top: "wood_top", Side: "wood_side", Bottom: "wood_top"},
			Colors:   Uniform[uint32](0x6b4c1e),
		},
		{
			ID: LeavesBlockID, Name: "Leaves", Solid: true, BreakTime: 0.3, Drops: LeavesBlockID,
			Textures: Uniform("leaves"), Colors: Uniform[uint32](0x3a7a2a),
		},
		{
			ID: SnowBlockID, Name: "Snow", Solid: true, BreakTime: 0.2, Drops: SnowBlockID,
			Textures: FaceKeys[string]{Top: "snow", Side: "grass_side", Bottom: "dirt"},
			Colors:   Uniform[uint32](0xf0f0f0),
		},
		{
			ID: PlanksBlockID, Name: "Planks", Solid: true, BreakTime: 0.8, Drops: PlanksBlockID,
			Textures: Uniform("planks"), Colors: Uniform[uint32](0xc8a460),
		},
		{
			ID: CraftingTableBlockID, Name: "Crafting Table", Solid: true, BreakTime: 0.8, Drops: CraftingTableBlockID,
			Textures: FaceKeys[string]{Top: "crafting_table_top", Side: "crafting_table_side", Bottom: "planks"},
			Colors:   Uniform[uint32](0xa07840),
		},
		{
			ID: GlassBlockID, Name: "Glass", Solid: true, Transparent: true, BreakTime: 0.3,
			Textures: Uniform("glass"), Colors: Uniform[uint32](0xc8e8f0),
		},
		{
			ID: BedrockBlockID, Name: "Bedrock", Solid: true, BreakTime: Unbreakable,
			Textures: Uniform("bedrock"), Colors: Uniform[uint32](0x3a3a3a),
		},
	}
}
