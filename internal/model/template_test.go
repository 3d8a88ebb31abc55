package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplate(t *testing.T) {
	s := NewScene()
	s.PlaceAndSelect(Chair)

	tmpl := NewTemplate("  Living Room ", s)
	assert.Equal(t, "Living Room", tmpl.Name)
	assert.Equal(t, s.Room.Dimensions, tmpl.Dimensions)
	assert.Equal(t, s.Room.Color, tmpl.Color)
	assert.Equal(t, s.Placements, tmpl.PlacedFurniture)

	_, err := time.Parse(time.RFC3339, tmpl.Timestamp)
	assert.NoError(t, err)
}

func TestTemplateJSONRoundTripIsExact(t *testing.T) {
	s := NewScene()
	_ = s.SetRoomDimensions(DimWidth, 4.1)
	_ = s.SetRoomDimensions(DimDepth, 3.3333333333333335)
	s.SetRoomColor("#ffeedd")
	s.SetPlaced(Sofa, true)
	s.SetPosition(Sofa, Point3{0.1 + 0.2, 0, -1.0 / 3})
	s.SetRotation(Sofa, math.Pi/7)
	s.SetScale(Sofa, 1.0000000000000002)

	tmpl := NewTemplate("exact", s)
	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var back Template
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tmpl, back)

	restored := back.ToScene()
	assert.Equal(t, s.Room, restored.Room)
	assert.Equal(t, s.Placements, restored.Placements)
	assert.Empty(t, restored.Selected, "selection is not persisted")
}

func TestTemplateWireFormat(t *testing.T) {
	data, err := json.Marshal(NewTemplate("wire", NewScene()))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"name", "dimensions", "color", "placedFurniture", "timestamp"} {
		assert.Contains(t, raw, key)
	}

	var placed map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["placedFurniture"], &placed))
	assert.Len(t, placed, 5)
	for _, ft := range AllFurnitureTypes() {
		entry, ok := placed[string(ft)]
		require.True(t, ok, "missing %s", ft)
		for _, key := range []string{"placed", "position", "rotation", "scale"} {
			assert.Contains(t, entry, key)
		}
	}
}

func TestTemplateToSceneFallsBackToDefaults(t *testing.T) {
	var tmpl Template
	require.NoError(t, json.Unmarshal([]byte(`{"name":"old","placedFurniture":{"chair":{"placed":true,"position":[1,0,1]}}}`), &tmpl))

	s := tmpl.ToScene()
	assert.Equal(t, DefaultRoom(), s.Room)
	assert.True(t, s.Placements.Chair.Placed)
	assert.Equal(t, 0.5, s.Placements.Chair.Scale, "missing fields keep defaults")
	assert.Equal(t, DefaultPlacement(Sofa), s.Placements.Sofa)
}

func TestTemplateSetUpsert(t *testing.T) {
	set := NewTemplateSet()
	assert.True(t, set.Upsert(Template{Name: "A", Color: "#111111"}))
	assert.True(t, set.Upsert(Template{Name: "B"}))
	assert.False(t, set.Upsert(Template{Name: "A", Color: "#222222"}))

	assert.Equal(t, []string{"A", "B"}, set.Names())
	assert.Equal(t, "#222222", set.FindByName("A").Color)
	assert.Nil(t, set.FindByName("C"))

	assert.True(t, set.Remove("A"))
	assert.False(t, set.Remove("A"))
	assert.Equal(t, []string{"B"}, set.Names())
}
