// Package scene3d builds the 3D representation of a scene: one group of
// boxes per placed item, the room shell and a floor grid. The same model
// drives picking, the wireframe view and the glTF export.
package scene3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
)

// GridCellSize is the floor grid spacing in meters.
const GridCellSize = 0.5

// GridSectionSize is the spacing of the emphasized grid lines in meters.
const GridSectionSize = 3.0

// Group is one placed furniture item with its transform.
type Group struct {
	Type      model.FurnitureType
	Position  geom.Vec3
	Rotation  float64 // radians about +Y
	Scale     float64
	Boxes     []model.Box
	Selected  bool
	Highlight model.Box
}

// Room is the box-shaped shell, centered on the origin with its floor at y=0.
type Room struct {
	Width, Height, Depth float64
	Color                string
}

// Model is everything the 3D view draws.
type Model struct {
	Room   Room
	Groups []Group
}

// Build converts a scene into its 3D model. Unplaced items are omitted.
func Build(s model.Scene) Model {
	m := Model{
		Room: Room{
			Width:  s.Room.Width(),
			Height: s.Room.Height(),
			Depth:  s.Room.Depth(),
			Color:  s.Room.Color,
		},
	}
	for _, t := range s.PlacedTypes() {
		a, ok := model.LookupArchetype(t)
		if !ok {
			continue
		}
		p := s.Placements.Get(t)
		m.Groups = append(m.Groups, Group{
			Type:      t,
			Position:  geom.Vec3(p.Position),
			Rotation:  p.Rotation,
			Scale:     p.Scale,
			Boxes:     a.Parts,
			Selected:  s.Selected == t,
			Highlight: a.Highlight,
		})
	}
	return m
}

// Group returns the group for t.
func (m Model) Group(t model.FurnitureType) (Group, bool) {
	for _, g := range m.Groups {
		if g.Type == t {
			return g, true
		}
	}
	return Group{}, false
}

// Transform is the group's local-to-world matrix: scale, then rotation
// about +Y, then translation.
func (g Group) Transform() mgl64.Mat4 {
	return mgl64.Translate3D(g.Position.Elem()).
		Mul4(mgl64.HomogRotate3DY(g.Rotation)).
		Mul4(mgl64.Scale3D(g.Scale, g.Scale, g.Scale))
}

// ToWorld maps a point from the group's local frame into world space.
func (g Group) ToWorld(local geom.Vec3) geom.Vec3 {
	return mgl64.TransformCoordinate(local, g.Transform())
}

// BoxCorners returns the eight local corners of b.
func BoxCorners(b model.Box) [8]geom.Vec3 {
	c := geom.Vec3(b.Center)
	h := geom.Vec3(b.Size).Mul(0.5)
	var out [8]geom.Vec3
	i := 0
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				out[i] = c.Add(geom.V3(sx*h.X(), sy*h.Y(), sz*h.Z()))
				i++
			}
		}
	}
	return out
}

// boxEdges indexes pairs of BoxCorners that form the twelve edges.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along z
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along x
}

// WorldBounds returns the axis-aligned bounds of every box in the group.
func (g Group) WorldBounds() geom.AABB {
	b := geom.EmptyAABB()
	m := g.Transform()
	for _, box := range g.Boxes {
		for _, c := range BoxCorners(box) {
			b = b.Extend(mgl64.TransformCoordinate(c, m))
		}
	}
	return b
}

// Bounds returns the room's interior volume.
func (r Room) Bounds() geom.AABB {
	return geom.AABB{
		Min: geom.V3(-r.Width/2, 0, -r.Depth/2),
		Max: geom.V3(r.Width/2, r.Height, r.Depth/2),
	}
}

// Valid reports whether every room dimension is a positive finite number.
func (r Room) Valid() bool {
	for _, v := range []float64{r.Width, r.Height, r.Depth} {
		if !(v > 0) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Pick returns the nearest placed item hit by ray.
func Pick(ray geom.Ray, m Model) (model.FurnitureType, bool) {
	best := math.Inf(1)
	var hit model.FurnitureType
	for _, g := range m.Groups {
		if !geom.IsFinite(g.Position) {
			continue
		}
		if d, ok := ray.IntersectAABB(g.WorldBounds()); ok && d < best {
			best = d
			hit = g.Type
		}
	}
	return hit, hit != ""
}
