package model

import (
	"math"
)

// Point3 is an (x, y, z) coordinate in meters.
type Point3 [3]float64

// Default room values for a new scene.
const (
	DefaultRoomColor   = "#f5f5f5"
	DefaultProjectName = "My Project"
)

// DefaultRoomDimensions is (width, height, depth) in meters.
var DefaultRoomDimensions = [3]float64{3, 2.5, 3}

// Dimension indices into RoomSpec.Dimensions.
const (
	DimWidth  = 0
	DimHeight = 1
	DimDepth  = 2
)

// RoomSpec describes the box-shaped room.
type RoomSpec struct {
	Dimensions [3]float64 `json:"dimensions"` // width, height, depth
	Color      string     `json:"color"`
}

func (r RoomSpec) Width() float64  { return r.Dimensions[DimWidth] }
func (r RoomSpec) Height() float64 { return r.Dimensions[DimHeight] }
func (r RoomSpec) Depth() float64  { return r.Dimensions[DimDepth] }

// DefaultRoom returns the room every new scene starts with.
func DefaultRoom() RoomSpec {
	return RoomSpec{Dimensions: DefaultRoomDimensions, Color: DefaultRoomColor}
}

// PlacementState is the editable state of one furniture item.
type PlacementState struct {
	Placed   bool    `json:"placed"`
	Position Point3  `json:"position"`
	Rotation float64 `json:"rotation"` // radians about the vertical axis
	Scale    float64 `json:"scale"`
}

// PlacementMap has exactly one entry per furniture type.
type PlacementMap struct {
	Chair       PlacementState `json:"chair"`
	Table       PlacementState `json:"table"`
	Sofa        PlacementState `json:"sofa"`
	Cupboard    PlacementState `json:"cupboard"`
	CoffeeTable PlacementState `json:"coffeeTable"`
}

// DefaultPlacements returns every type unplaced at the origin.
func DefaultPlacements() PlacementMap {
	var m PlacementMap
	for _, t := range AllFurnitureTypes() {
		*m.entry(t) = DefaultPlacement(t)
	}
	return m
}

func (m *PlacementMap) entry(t FurnitureType) *PlacementState {
	switch t {
	case Chair:
		return &m.Chair
	case Table:
		return &m.Table
	case Sofa:
		return &m.Sofa
	case Cupboard:
		return &m.Cupboard
	case CoffeeTable:
		return &m.CoffeeTable
	}
	return nil
}

// Get returns the state for t. Unknown types yield the zero value.
func (m PlacementMap) Get(t FurnitureType) PlacementState {
	if e := m.entry(t); e != nil {
		return *e
	}
	return PlacementState{}
}

// Set replaces the state for t. Unknown types are ignored.
func (m *PlacementMap) Set(t FurnitureType, s PlacementState) {
	if e := m.entry(t); e != nil {
		*e = s
	}
}

// Scene is the whole editable design: room, placements and selection.
type Scene struct {
	Room       RoomSpec
	Placements PlacementMap
	Selected   FurnitureType // empty when nothing is selected
}

// NewScene returns the default scene.
func NewScene() Scene {
	return Scene{Room: DefaultRoom(), Placements: DefaultPlacements()}
}

// Reset restores the default room and placements and clears the selection.
func (s *Scene) Reset() {
	*s = NewScene()
}

// SetRoomDimensions replaces one dimension component. The value is stored
// as given; renderers reject non-positive or non-finite dimensions.
func (s *Scene) SetRoomDimensions(index int, value float64) error {
	if index < DimWidth || index > DimDepth {
		return ErrDimensionIndex
	}
	s.Room.Dimensions[index] = value
	return nil
}

func (s *Scene) SetRoomColor(color string) {
	s.Room.Color = color
}

// SetPlaced toggles visibility without touching position, rotation or scale.
// Unplacing the selected item clears the selection.
func (s *Scene) SetPlaced(t FurnitureType, placed bool) {
	e := s.Placements.entry(t)
	if e == nil {
		return
	}
	e.Placed = placed
	if !placed && s.Selected == t {
		s.Selected = ""
	}
}

func (s *Scene) SetPosition(t FurnitureType, p Point3) {
	if e := s.Placements.entry(t); e != nil {
		e.Position = p
	}
}

func (s *Scene) SetRotation(t FurnitureType, radians float64) {
	if e := s.Placements.entry(t); e != nil {
		e.Rotation = radians
	}
}

// SetRotationDegrees sets the rotation from a value in degrees.
func (s *Scene) SetRotationDegrees(t FurnitureType, degrees float64) {
	s.SetRotation(t, degrees*math.Pi/180)
}

// RotationDegrees returns the rotation of t normalized to [0, 360).
func (s Scene) RotationDegrees(t FurnitureType) float64 {
	return NormalizeRotation(s.Placements.Get(t).Rotation) * 180 / math.Pi
}

// SetScale stores the scale clamped to the archetype bounds.
func (s *Scene) SetScale(t FurnitureType, scale float64) {
	if e := s.Placements.entry(t); e != nil {
		e.Scale = ClampScale(t, scale)
	}
}

// AdjustScale adds delta to the current scale, clamps it and rounds the
// result to three decimals.
func (s *Scene) AdjustScale(t FurnitureType, delta float64) float64 {
	e := s.Placements.entry(t)
	if e == nil {
		return 0
	}
	next := ClampScale(t, e.Scale+delta)
	next = math.Round(next*1000) / 1000
	e.Scale = ClampScale(t, next)
	return e.Scale
}

// PlaceAndSelect marks t placed and selects it.
func (s *Scene) PlaceAndSelect(t FurnitureType) {
	e := s.Placements.entry(t)
	if e == nil {
		return
	}
	e.Placed = true
	s.Selected = t
}

// Select selects a placed item. Selecting an unplaced item is a no-op.
func (s *Scene) Select(t FurnitureType) bool {
	if !s.Placements.Get(t).Placed {
		return false
	}
	s.Selected = t
	return true
}

func (s *Scene) ClearSelection() {
	s.Selected = ""
}

// PlacedTypes returns the placed items in display order.
func (s Scene) PlacedTypes() []FurnitureType {
	var out []FurnitureType
	for _, t := range AllFurnitureTypes() {
		if s.Placements.Get(t).Placed {
			out = append(out, t)
		}
	}
	return out
}

func (s Scene) PlacedCount() int {
	return len(s.PlacedTypes())
}

// NormalizeRotation maps an angle in radians to [0, 2π).
func NormalizeRotation(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}
