package scene3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
)

// Projector maps world points to normalized device coordinates.
// *geom.Camera satisfies it.
type Projector interface {
	Project(p geom.Vec3) (ndcX, ndcY float64, ok bool)
}

// SegmentKind tells the view how to style a segment.
type SegmentKind int

const (
	KindFurniture SegmentKind = iota
	KindHighlight
	KindRoom
	KindGrid
	KindGridSection
)

// Segment is a line in viewport pixels.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Kind           SegmentKind
}

// Wireframe projects the model into viewport line segments. Segments with
// an endpoint behind the camera are dropped.
func Wireframe(m Model, cam Projector, width, height float64) []Segment {
	var out []Segment
	line := func(a, b geom.Vec3, color string, kind SegmentKind) {
		ax, ay, ok := cam.Project(a)
		if !ok {
			return
		}
		bx, by, ok := cam.Project(b)
		if !ok {
			return
		}
		x1, y1 := geom.NDCToPixel(ax, ay, width, height)
		x2, y2 := geom.NDCToPixel(bx, by, width, height)
		out = append(out, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Kind: kind})
	}

	if m.Room.Valid() {
		for _, seg := range gridLines(m.Room) {
			line(seg.a, seg.b, "#c8c8c8", seg.kind)
		}
		room := model.Box{
			Center: model.Point3{0, m.Room.Height / 2, 0},
			Size:   model.Point3{m.Room.Width, m.Room.Height, m.Room.Depth},
		}
		corners := BoxCorners(room)
		for _, e := range boxEdges {
			line(corners[e[0]], corners[e[1]], m.Room.Color, KindRoom)
		}
	}

	for _, g := range m.Groups {
		if !geom.IsFinite(g.Position) {
			continue
		}
		world := g.Transform()
		edges := func(box model.Box, kind SegmentKind) {
			corners := BoxCorners(box)
			for i, c := range corners {
				corners[i] = mgl64.TransformCoordinate(c, world)
			}
			for _, e := range boxEdges {
				line(corners[e[0]], corners[e[1]], box.Color, kind)
			}
		}
		for _, box := range g.Boxes {
			edges(box, KindFurniture)
		}
		if g.Selected {
			edges(g.Highlight, KindHighlight)
		}
	}
	return out
}

type gridSegment struct {
	a, b geom.Vec3
	kind SegmentKind
}

// gridLines covers the room floor with GridCellSize spacing, emphasizing
// every GridSectionSize meters.
func gridLines(r Room) []gridSegment {
	var out []gridSegment
	hw, hd := r.Width/2, r.Depth/2
	kind := func(v float64) SegmentKind {
		if math.Abs(math.Remainder(v, GridSectionSize)) < 1e-9 {
			return KindGridSection
		}
		return KindGrid
	}
	for x := -math.Floor(hw/GridCellSize) * GridCellSize; x <= hw+1e-9; x += GridCellSize {
		out = append(out, gridSegment{geom.V3(x, 0, -hd), geom.V3(x, 0, hd), kind(x)})
	}
	for z := -math.Floor(hd/GridCellSize) * GridCellSize; z <= hd+1e-9; z += GridCellSize {
		out = append(out, gridSegment{geom.V3(-hw, 0, z), geom.V3(hw, 0, z), kind(z)})
	}
	return out
}
