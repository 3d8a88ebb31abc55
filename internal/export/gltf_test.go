package export

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/piwi3910/RoomCraft/internal/model"
)

func TestExportGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.glb")
	d := buildTestDesign()
	if err := ExportGLB(path, d); err != nil {
		t.Fatalf("ExportGLB returned error: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("failed to read GLB: %v", err)
	}

	placed := d.Scene.PlacedTypes()
	if got := len(doc.Scenes[0].Nodes); got != 1+len(placed) {
		t.Fatalf("expected %d root nodes, got %d", 1+len(placed), got)
	}
	if doc.Scenes[0].Name != "Living Room" {
		t.Errorf("scene name %q", doc.Scenes[0].Name)
	}

	var sofa *gltf.Node
	for _, idx := range doc.Scenes[0].Nodes {
		if doc.Nodes[idx].Name == string(model.Sofa) {
			sofa = doc.Nodes[idx]
		}
	}
	if sofa == nil {
		t.Fatal("sofa node missing")
	}
	if sofa.Translation != [3]float64{0.5, 0, -1} {
		t.Errorf("unexpected translation %v", sofa.Translation)
	}
	// 90 degrees about +Y
	want := math.Sqrt2 / 2
	if math.Abs(sofa.Rotation[1]-want) > 1e-9 || math.Abs(sofa.Rotation[3]-want) > 1e-9 {
		t.Errorf("unexpected rotation %v", sofa.Rotation)
	}
	if sofa.Scale != [3]float64{0.8, 0.8, 0.8} {
		t.Errorf("unexpected scale %v", sofa.Scale)
	}
	if len(sofa.Children) != len(model.MustArchetype(model.Sofa).Parts) {
		t.Errorf("expected one child per box, got %d", len(sofa.Children))
	}

	// one mesh per distinct color, all sharing the cube accessors
	for _, m := range doc.Meshes {
		if m.Primitives[0].Attributes[gltf.POSITION] != doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION] {
			t.Error("meshes should share the cube geometry")
		}
	}
}

func TestExportGLB_SkipsNonFinitePosition(t *testing.T) {
	d := buildTestDesign()
	d.Scene.SetPosition(model.Chair, model.Point3{math.NaN(), 0, 0})

	path := filepath.Join(t.TempDir(), "room.glb")
	if err := ExportGLB(path, d); err != nil {
		t.Fatalf("ExportGLB returned error: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("failed to read GLB: %v", err)
	}
	for _, idx := range doc.Scenes[0].Nodes {
		if doc.Nodes[idx].Name == string(model.Chair) {
			t.Error("chair with NaN position should not be exported")
		}
	}
}

func TestExportGLB_InvalidRoom(t *testing.T) {
	d := buildTestDesign()
	d.Scene.Room.Dimensions[model.DimHeight] = -1
	if err := ExportGLB(filepath.Join(t.TempDir(), "x.glb"), d); err == nil {
		t.Fatal("expected error for invalid room")
	}
}
