package export

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/scene3d"
)

// floorThickness is the height of the exported floor slab in meters.
const floorThickness = 0.02

// unit cube centered on the origin
var (
	cubePositions = [][3]float32{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	}
	cubeIndices = []uint16{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
)

// glbBuilder shares one cube geometry between one mesh per color.
type glbBuilder struct {
	doc     *gltf.Document
	pos     int
	indices int
	meshes  map[string]int
}

func newGLBBuilder() *glbBuilder {
	doc := gltf.NewDocument()
	return &glbBuilder{
		doc:     doc,
		pos:     modeler.WritePosition(doc, cubePositions),
		indices: modeler.WriteIndices(doc, cubeIndices),
		meshes:  make(map[string]int),
	}
}

// mesh returns the cube mesh for color, creating its material on first use.
func (b *glbBuilder) mesh(color string) int {
	if idx, ok := b.meshes[color]; ok {
		return idx
	}
	r, g, bl := model.RGB(color)
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name: color,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(r) / 255, float64(g) / 255, float64(bl) / 255, 1},
			MetallicFactor:  gltf.Float(0),
		},
	})
	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: "box " + color,
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(b.indices),
			Attributes: map[string]int{gltf.POSITION: b.pos},
			Material:   gltf.Index(len(b.doc.Materials) - 1),
		}},
	})
	idx := len(b.doc.Meshes) - 1
	b.meshes[color] = idx
	return idx
}

func (b *glbBuilder) addNode(n *gltf.Node) int {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return len(b.doc.Nodes) - 1
}

// boxNode adds a cube node stretched and moved to match box.
func (b *glbBuilder) boxNode(name string, box model.Box) int {
	return b.addNode(&gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(b.mesh(box.Color)),
		Translation: box.Center,
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       box.Size,
	})
}

// ExportGLB writes the 3D scene as a binary glTF file: a floor slab in the
// room color and one node per placed item carrying its position, rotation
// and scale, with a child node per box.
func ExportGLB(path string, d Design) error {
	m := scene3d.Build(d.Scene)
	if !m.Room.Valid() {
		return fmt.Errorf("cannot export scene: room dimensions %v are invalid", d.Scene.Room.Dimensions)
	}

	b := newGLBBuilder()
	var roots []int

	roots = append(roots, b.boxNode("floor", model.Box{
		Center: model.Point3{0, -floorThickness / 2, 0},
		Size:   model.Point3{m.Room.Width, floorThickness, m.Room.Depth},
		Color:  m.Room.Color,
	}))

	for _, g := range m.Groups {
		if !geom.IsFinite(g.Position) {
			continue
		}
		var children []int
		for i, box := range g.Boxes {
			children = append(children, b.boxNode(fmt.Sprintf("%s part %d", g.Type, i+1), box))
		}
		rot := g.Rotation
		if math.IsNaN(rot) || math.IsInf(rot, 0) {
			rot = 0
		}
		sin, cos := math.Sincos(rot / 2)
		roots = append(roots, b.addNode(&gltf.Node{
			Name:        string(g.Type),
			Translation: [3]float64(g.Position),
			Rotation:    [4]float64{0, sin, 0, cos},
			Scale:       [3]float64{g.Scale, g.Scale, g.Scale},
			Children:    children,
		}))
	}

	b.doc.Scenes[0].Name = d.ProjectName
	b.doc.Scenes[0].Nodes = roots

	if err := gltf.SaveBinary(b.doc, path); err != nil {
		return fmt.Errorf("failed to write GLB: %w", err)
	}
	return nil
}
