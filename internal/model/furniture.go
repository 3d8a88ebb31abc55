package model

import (
	"fmt"
	"math"
)

// FurnitureType identifies one of the fixed furniture archetypes.
type FurnitureType string

const (
	Chair       FurnitureType = "chair"
	Table       FurnitureType = "table"
	Sofa        FurnitureType = "sofa"
	Cupboard    FurnitureType = "cupboard"
	CoffeeTable FurnitureType = "coffeeTable"
)

// AllFurnitureTypes returns the archetypes in display order.
func AllFurnitureTypes() []FurnitureType {
	return []FurnitureType{Chair, Table, Sofa, Cupboard, CoffeeTable}
}

// ParseFurnitureType converts a wire name into a FurnitureType.
func ParseFurnitureType(s string) (FurnitureType, error) {
	for _, t := range AllFurnitureTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFurniture, s)
}

// Label returns a human readable name for menus and exports.
func (t FurnitureType) Label() string {
	switch t {
	case Chair:
		return "Chair"
	case Table:
		return "Table"
	case Sofa:
		return "Sofa"
	case Cupboard:
		return "Cupboard"
	case CoffeeTable:
		return "Coffee Table"
	default:
		return string(t)
	}
}

// Silhouette is the simplified footprint (meters) used by the 2D projections.
type Silhouette struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// Box is an axis-aligned box in an item's local frame.
type Box struct {
	Center Point3 `json:"center"`
	Size   Point3 `json:"size"`
	Color  string `json:"color"`
}

// Archetype holds the static description of a furniture type.
type Archetype struct {
	Type         FurnitureType
	DefaultScale float64
	MinScale     float64
	MaxScale     float64
	Silhouette   Silhouette
	Color        string // 2D fill color
	Parts        []Box  // 3D composition, local coordinates at scale 1
	Highlight    Box    // selection outline
}

// FallbackSilhouette is used for any type without a registry entry.
var FallbackSilhouette = Silhouette{Width: 0.5, Depth: 0.5, Height: 0.5}

// FallbackColor pairs with FallbackSilhouette.
const FallbackColor = "grey"

// HighlightColor is the color of the selection outline.
const HighlightColor = "#4a90d9"

var archetypes = map[FurnitureType]Archetype{
	Chair: {
		Type:         Chair,
		DefaultScale: 0.5, MinScale: 0.1, MaxScale: 1.0,
		Silhouette: Silhouette{Width: 0.6, Depth: 0.6, Height: 0.8},
		Color:      "#8B4513",
		Parts: append([]Box{
			{Center: Point3{0, 0.2, 0}, Size: Point3{0.5, 0.05, 0.5}, Color: "#8B4513"},
			{Center: Point3{0, 0.5, -0.22}, Size: Point3{0.5, 0.6, 0.05}, Color: "#8B4513"},
		}, legs(0.2, 0.1, 0.2, Point3{0.05, 0.2, 0.05}, "#8B4513")...),
		Highlight: Box{Center: Point3{0, 0.3, 0}, Size: Point3{0.7, 1, 0.7}, Color: HighlightColor},
	},
	Table: {
		Type:         Table,
		DefaultScale: 0.7, MinScale: 0.5, MaxScale: 1.2,
		Silhouette: Silhouette{Width: 1.2, Depth: 0.8, Height: 0.75},
		Color:      "#A0522D",
		Parts: append([]Box{
			{Center: Point3{0, 0.4, 0}, Size: Point3{1.2, 0.08, 0.8}, Color: "#A0522D"},
		}, legs(0.5, 0.2, 0.3, Point3{0.08, 0.4, 0.08}, "#A0522D")...),
		Highlight: Box{Center: Point3{0, 0.3, 0}, Size: Point3{1.4, 0.8, 1}, Color: HighlightColor},
	},
	Sofa: {
		Type:         Sofa,
		DefaultScale: 0.8, MinScale: 0.5, MaxScale: 1.2,
		Silhouette: Silhouette{Width: 2, Depth: 0.9, Height: 0.85},
		Color:      "#696969",
		Parts: append([]Box{
			{Center: Point3{0, 0.25, 0}, Size: Point3{2, 0.5, 0.8}, Color: "#696969"},
			{Center: Point3{0, 0.7, -0.35}, Size: Point3{2, 0.9, 0.1}, Color: "#696969"},
			{Center: Point3{-0.95, 0.5, 0}, Size: Point3{0.1, 0.5, 0.8}, Color: "#696969"},
			{Center: Point3{0.95, 0.5, 0}, Size: Point3{0.1, 0.5, 0.8}, Color: "#696969"},
		}, legs(0.8, 0.1, 0.3, Point3{0.08, 0.2, 0.08}, "#4a4a4a")...),
		Highlight: Box{Center: Point3{0, 0.5, 0}, Size: Point3{2.2, 1.2, 1}, Color: HighlightColor},
	},
	Cupboard: {
		Type:         Cupboard,
		DefaultScale: 0.8, MinScale: 0.5, MaxScale: 1.2,
		Silhouette: Silhouette{Width: 1, Depth: 0.5, Height: 1.8},
		Color:      "#D2B48C",
		Parts: append([]Box{
			{Center: Point3{0, 0.75, 0}, Size: Point3{1.2, 1.5, 0.5}, Color: "#8B4513"},
			{Center: Point3{-0.3, 0.75, 0.26}, Size: Point3{0.55, 1.45, 0.02}, Color: "#A0522D"},
			{Center: Point3{0.3, 0.75, 0.26}, Size: Point3{0.55, 1.45, 0.02}, Color: "#A0522D"},
			{Center: Point3{-0.05, 0.75, 0.28}, Size: Point3{0.02, 0.1, 0.02}, Color: "#D2B48C"},
			{Center: Point3{0.05, 0.75, 0.28}, Size: Point3{0.02, 0.1, 0.02}, Color: "#D2B48C"},
			{Center: Point3{0, 0.5, 0}, Size: Point3{1.15, 0.02, 0.48}, Color: "#8B4513"},
			{Center: Point3{0, 1.0, 0}, Size: Point3{1.15, 0.02, 0.48}, Color: "#8B4513"},
		}, legs(0.5, 0.05, 0.2, Point3{0.1, 0.1, 0.1}, "#5C4033")...),
		Highlight: Box{Center: Point3{0, 0.75, 0}, Size: Point3{1.3, 1.6, 0.6}, Color: HighlightColor},
	},
	CoffeeTable: {
		Type:         CoffeeTable,
		DefaultScale: 0.7, MinScale: 0.3, MaxScale: 1.2,
		Silhouette: Silhouette{Width: 0.8, Depth: 0.5, Height: 0.45},
		Color:      "#CD853F",
		Parts: append([]Box{
			{Center: Point3{0, 0.25, 0}, Size: Point3{1.4, 0.05, 0.8}, Color: "#CD853F"},
			{Center: Point3{0, 0.26, 0}, Size: Point3{1.2, 0.02, 0.6}, Color: "#DEB887"},
			{Center: Point3{0, 0.1, 0}, Size: Point3{1.3, 0.02, 0.7}, Color: "#CD853F"},
		}, legs(0.65, 0.15, 0.35, Point3{0.08, 0.3, 0.08}, "#8B5A2B")...),
		Highlight: Box{Center: Point3{0, 0.15, 0}, Size: Point3{1.5, 0.7, 0.9}, Color: HighlightColor},
	},
}

// legs returns four boxes at (±x, y, ±z).
func legs(x, y, z float64, size Point3, color string) []Box {
	out := make([]Box, 0, 4)
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			out = append(out, Box{Center: Point3{sx * x, y, sz * z}, Size: size, Color: color})
		}
	}
	return out
}

// LookupArchetype returns the registry entry for t.
func LookupArchetype(t FurnitureType) (Archetype, bool) {
	a, ok := archetypes[t]
	return a, ok
}

// MustArchetype returns the registry entry for t and panics for unknown types.
func MustArchetype(t FurnitureType) Archetype {
	a, ok := archetypes[t]
	if !ok {
		panic(fmt.Sprintf("model: no archetype for %q", t))
	}
	return a
}

// SilhouetteFor returns the 2D silhouette and color for t, falling back to
// a grey 0.5m cube for unknown types.
func SilhouetteFor(t FurnitureType) (Silhouette, string) {
	if a, ok := archetypes[t]; ok {
		return a.Silhouette, a.Color
	}
	return FallbackSilhouette, FallbackColor
}

// ClampScale restricts s to the archetype's scale bounds.
// NaN clamps to the default scale.
func ClampScale(t FurnitureType, s float64) float64 {
	a, ok := archetypes[t]
	if !ok {
		return s
	}
	if math.IsNaN(s) {
		return a.DefaultScale
	}
	return math.Min(a.MaxScale, math.Max(a.MinScale, s))
}

// DefaultPlacement returns the initial placement state for t.
func DefaultPlacement(t FurnitureType) PlacementState {
	scale := 1.0
	if a, ok := archetypes[t]; ok {
		scale = a.DefaultScale
	}
	return PlacementState{Scale: scale}
}
