package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/projection"
)

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")
	d := buildTestDesign()
	if err := ExportDXF(path, d); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to read DXF: %v", err)
	}

	polylines, texts := 0, 0
	for _, e := range drawing.Entities() {
		switch v := e.(type) {
		case *entity.LwPolyline:
			polylines++
			if len(v.Vertices) != 4 {
				t.Errorf("expected 4 vertices, got %d", len(v.Vertices))
			}
		case *entity.Text:
			texts++
		}
	}
	placed := d.Scene.PlacedCount()
	if polylines != 1+placed {
		t.Errorf("expected %d polylines, got %d", 1+placed, polylines)
	}
	if texts != placed {
		t.Errorf("expected %d labels, got %d", placed, texts)
	}
}

func TestExportDXF_InvalidRoom(t *testing.T) {
	d := buildTestDesign()
	d.Scene.Room.Dimensions[model.DimWidth] = 0
	if err := ExportDXF(filepath.Join(t.TempDir(), "plan.dxf"), d); err == nil {
		t.Fatal("expected error for invalid room")
	}
}

func TestPlanPoint(t *testing.T) {
	d := buildTestDesign()
	d.Scene.Room.Dimensions = [3]float64{4, 2.5, 2}
	x, y := planPoint(viewOf(t, d), 0, 0)
	if x != -2 || y != 1 {
		t.Errorf("top-left corner mapped to (%v, %v)", x, y)
	}
	x, y = planPoint(viewOf(t, d), 4, 2)
	if x != 2 || y != -1 {
		t.Errorf("bottom-right corner mapped to (%v, %v)", x, y)
	}
}

func viewOf(t *testing.T, d Design) projection.View {
	t.Helper()
	view, err := projection.Project(projection.Top, d.Scene, 1)
	if err != nil {
		t.Fatalf("projection failed: %v", err)
	}
	return view
}
