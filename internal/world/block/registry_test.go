package block

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDuplicateIsError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Definition{ID: StoneBlockID, Name: "Stone", Solid: true}))

	err := r.Register(Definition{ID: StoneBlockID, Name: "Другой камень"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateBlock), "ошибка должна оборачивать ErrDuplicateBlock")

	// Первое определение не перезаписано
	def, ok := r.Get(StoneBlockID)
	require.True(t, ok)
	assert.Equal(t, "Stone", def.Name)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.MustRegister(Definition{ID: 42, Name: "a"}, Definition{ID: 42, Name: "b"})
	})
}

func TestRegistryUnknownIDFallback(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get(200)
	assert.False(t, ok)

	def := r.Definition(200)
	assert.True(t, def.Solid, "неизвестный блок считается твердым")
	assert.False(t, def.Transparent)
	assert.Equal(t, MissingTexture, def.Textures.Top)
	assert.True(t, r.IsSolid(200))
	assert.True(t, r.IsOpaque(200))

	top, side, bottom := r.TextureKeys(200)
	assert.Equal(t, []string{MissingTexture, MissingTexture, MissingTexture}, []string{top, side, bottom})
}

func TestRegistryAirWithoutRegistration(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.IsSolid(AirBlockID))
	assert.True(t, r.IsTransparent(AirBlockID))
	assert.False(t, r.IsOpaque(AirBlockID))
	assert.Equal(t, "Air", r.Definition(AirBlockID).Name)
}

func TestDefaultCatalog(t *testing.T) {
	r := Default()
	assert.Equal(t, len(Catalog()), r.Len())

	for _, def := range r.Definitions() {
		assert.NotEmpty(t, def.Name, "блок %d без имени", def.ID)
	}

	// Вода не твердая, стекло твердое, но прозрачное
	assert.False(t, r.IsSolid(WaterBlockID))
	assert.True(t, r.IsSolid(GlassBlockID))
	assert.True(t, r.IsTransparent(GlassBlockID))
	assert.False(t, r.IsOpaque(GlassBlockID))
	assert.True(t, r.IsOpaque(LeavesBlockID))

	top, side, bottom := r.TextureKeys(GrassBlockID)
	assert.Equal(t, "grass_top", top)
	assert.Equal(t, "grass_side", side)
	assert.Equal(t, "dirt", bottom)
}

func TestDefinitionBreakAndDrops(t *testing.T) {
	r := Default()

	grass := r.Definition(GrassBlockID)
	assert.True(t, grass.Breakable())
	drop, ok := grass.Drop()
	assert.True(t, ok)
	assert.Equal(t, DirtBlockID, drop)

	bedrock := r.Definition(BedrockBlockID)
	assert.False(t, bedrock.Breakable())
	_, ok = bedrock.Drop()
	assert.False(t, ok)

	_, ok = r.Definition(GlassBlockID).Drop()
	assert.False(t, ok, "стекло ничего не роняет")
}
