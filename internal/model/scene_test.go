package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene()

	assert.Equal(t, [3]float64{3, 2.5, 3}, s.Room.Dimensions)
	assert.Equal(t, "#f5f5f5", s.Room.Color)
	assert.Empty(t, s.Selected)

	for _, ft := range AllFurnitureTypes() {
		p := s.Placements.Get(ft)
		if p.Placed {
			t.Errorf("%s should start unplaced", ft)
		}
		assert.Equal(t, Point3{}, p.Position, ft)
		assert.Zero(t, p.Rotation, ft)
		assert.Equal(t, MustArchetype(ft).DefaultScale, p.Scale, ft)
	}
	assert.Equal(t, 0.5, s.Placements.Chair.Scale)
	assert.Equal(t, 0.7, s.Placements.CoffeeTable.Scale)
}

func TestSetRoomDimensions(t *testing.T) {
	s := NewScene()
	require.NoError(t, s.SetRoomDimensions(DimWidth, 4))
	require.NoError(t, s.SetRoomDimensions(DimDepth, 5.5))
	assert.Equal(t, [3]float64{4, 2.5, 5.5}, s.Room.Dimensions)

	assert.ErrorIs(t, s.SetRoomDimensions(3, 1), ErrDimensionIndex)
	assert.ErrorIs(t, s.SetRoomDimensions(-1, 1), ErrDimensionIndex)
}

func TestSetRoomDimensionsStoresInvalidValues(t *testing.T) {
	// The model is not the validation boundary; renderers fail closed.
	s := NewScene()
	require.NoError(t, s.SetRoomDimensions(DimWidth, math.NaN()))
	assert.True(t, math.IsNaN(s.Room.Width()))
	require.NoError(t, s.SetRoomDimensions(DimDepth, -2))
	assert.Equal(t, -2.0, s.Room.Depth())
}

func TestSetPlacedPreservesState(t *testing.T) {
	s := NewScene()
	s.SetPlaced(Sofa, true)
	s.SetPosition(Sofa, Point3{1, 0, -0.5})
	s.SetRotation(Sofa, 1.2)
	s.SetScale(Sofa, 1.1)

	s.SetPlaced(Sofa, false)
	s.SetPlaced(Sofa, true)

	p := s.Placements.Get(Sofa)
	assert.True(t, p.Placed)
	assert.Equal(t, Point3{1, 0, -0.5}, p.Position)
	assert.Equal(t, 1.2, p.Rotation)
	assert.Equal(t, 1.1, p.Scale)
}

func TestUnplacingSelectedClearsSelection(t *testing.T) {
	s := NewScene()
	s.PlaceAndSelect(Table)
	assert.Equal(t, Table, s.Selected)

	s.SetPlaced(Chair, false)
	assert.Equal(t, Table, s.Selected, "unplacing another item keeps the selection")

	s.SetPlaced(Table, false)
	assert.Empty(t, s.Selected)
}

func TestSelectRequiresPlaced(t *testing.T) {
	s := NewScene()
	assert.False(t, s.Select(Cupboard))
	assert.Empty(t, s.Selected)

	s.SetPlaced(Cupboard, true)
	assert.True(t, s.Select(Cupboard))
	assert.Equal(t, Cupboard, s.Selected)

	s.ClearSelection()
	assert.Empty(t, s.Selected)
}

func TestSetScaleClamps(t *testing.T) {
	tests := []struct {
		ft   FurnitureType
		in   float64
		want float64
	}{
		{Chair, 2, 1.0},
		{Chair, 0, 0.1},
		{Chair, 0.3, 0.3},
		{CoffeeTable, 0.1, 0.3},
		{CoffeeTable, 5, 1.2},
		{Table, 0.2, 0.5},
		{Sofa, 1.5, 1.2},
		{Cupboard, 0.9, 0.9},
	}
	for _, tt := range tests {
		s := NewScene()
		s.SetScale(tt.ft, tt.in)
		assert.Equal(t, tt.want, s.Placements.Get(tt.ft).Scale, "%s scale %v", tt.ft, tt.in)
	}
}

func TestSetScaleNaNFallsBackToDefault(t *testing.T) {
	s := NewScene()
	s.SetScale(Sofa, math.NaN())
	assert.Equal(t, 0.8, s.Placements.Sofa.Scale)
}

func TestAdjustScaleRoundsAndClamps(t *testing.T) {
	s := NewScene()
	got := s.AdjustScale(Chair, 0.1)
	assert.Equal(t, 0.6, got)

	for i := 0; i < 10; i++ {
		s.AdjustScale(Chair, 0.1)
	}
	assert.Equal(t, 1.0, s.Placements.Chair.Scale)

	s.SetScale(Chair, 0.1236)
	assert.Equal(t, 0.124, s.AdjustScale(Chair, 0))
}

func TestRotationDegrees(t *testing.T) {
	s := NewScene()
	s.SetRotationDegrees(Table, 90)
	assert.InDelta(t, math.Pi/2, s.Placements.Table.Rotation, 1e-12)
	assert.InDelta(t, 90, s.RotationDegrees(Table), 1e-9)

	s.SetRotationDegrees(Table, -90)
	assert.InDelta(t, 270, s.RotationDegrees(Table), 1e-9)
}

func TestNormalizeRotation(t *testing.T) {
	assert.InDelta(t, 0, NormalizeRotation(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeRotation(-math.Pi), 1e-12)
	assert.Equal(t, 0.0, NormalizeRotation(math.NaN()))
	assert.Equal(t, 0.0, NormalizeRotation(math.Inf(1)))
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewScene()
	_ = s.SetRoomDimensions(DimHeight, 4)
	s.SetRoomColor("#000000")
	s.PlaceAndSelect(Sofa)
	s.SetPosition(Sofa, Point3{1, 0, 1})

	s.Reset()
	assert.Equal(t, NewScene(), s)
}

func TestPlacedTypesOrder(t *testing.T) {
	s := NewScene()
	s.SetPlaced(CoffeeTable, true)
	s.SetPlaced(Chair, true)
	assert.Equal(t, []FurnitureType{Chair, CoffeeTable}, s.PlacedTypes())
	assert.Equal(t, 2, s.PlacedCount())
}

func TestPlacementMapUnknownType(t *testing.T) {
	m := DefaultPlacements()
	before := m
	m.Set(FurnitureType("lamp"), PlacementState{Placed: true})
	assert.Equal(t, before, m)
	assert.Equal(t, PlacementState{}, m.Get("lamp"))
}
