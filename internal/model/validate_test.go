package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTemplateName(t *testing.T) {
	name, err := ValidateTemplateName("  Kitchen  ")
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", name)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := ValidateTemplateName(in)
		assert.ErrorIs(t, err, ErrEmptyTemplateName, "%q", in)
	}
}

func TestParseDimension(t *testing.T) {
	v, err := ParseDimension(DimWidth, "4.5")
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = ParseDimension(DimHeight, "6")
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ParseDimension(DimDepth, "0.5")
	assert.ErrorIs(t, err, ErrOutOfRange)

	for _, in := range []string{"", "abc", "NaN", "inf", "-Inf"} {
		_, err := ParseDimension(DimWidth, in)
		assert.ErrorIs(t, err, ErrInvalidNumber, "%q", in)
	}

	_, err = ParseDimension(5, "3")
	assert.ErrorIs(t, err, ErrDimensionIndex)
}

func TestParseRotationAndScale(t *testing.T) {
	r, err := ParseRotationDegrees(" 45 ")
	require.NoError(t, err)
	assert.Equal(t, 45.0, r)

	_, err = ParseRotationDegrees("nan")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	s, err := ParseScale("3")
	require.NoError(t, err)
	assert.Equal(t, 3.0, s, "clamping is the scene's job")
}

func TestValidateColor(t *testing.T) {
	c, err := ValidateColor("#A0522d")
	require.NoError(t, err)
	assert.Equal(t, "#A0522d", c)

	for _, in := range []string{"red", "#fff", "#12345g", ""} {
		_, err := ValidateColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, "%q", in)
	}
}

func TestParseFurnitureType(t *testing.T) {
	ft, err := ParseFurnitureType("coffeeTable")
	require.NoError(t, err)
	assert.Equal(t, CoffeeTable, ft)

	_, err = ParseFurnitureType("lamp")
	assert.ErrorIs(t, err, ErrUnknownFurniture)
}

func TestArchetypeRegistry(t *testing.T) {
	for _, ft := range AllFurnitureTypes() {
		a, ok := LookupArchetype(ft)
		require.True(t, ok, ft)
		assert.LessOrEqual(t, a.MinScale, a.DefaultScale, ft)
		assert.GreaterOrEqual(t, a.MaxScale, a.DefaultScale, ft)
		assert.NotEmpty(t, a.Parts, ft)
	}

	sil, color := SilhouetteFor("lamp")
	assert.Equal(t, FallbackSilhouette, sil)
	assert.Equal(t, "grey", color)

	sil, color = SilhouetteFor(Chair)
	assert.Equal(t, Silhouette{Width: 0.6, Depth: 0.6, Height: 0.8}, sil)
	assert.Equal(t, "#8B4513", color)
	assert.Len(t, MustArchetype(Chair).Parts, 6)
}

func TestRGB(t *testing.T) {
	r, g, b := RGB("#8B4513")
	assert.Equal(t, [3]uint8{0x8b, 0x45, 0x13}, [3]uint8{r, g, b})

	r, g, b = RGB(FallbackColor)
	assert.Equal(t, [3]uint8{128, 128, 128}, [3]uint8{r, g, b})
}
