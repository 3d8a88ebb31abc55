package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/projection"
)

// DXF layer names. Each furniture type gets its own layer so the plan can
// be read back.
const (
	RoomLayer       = "ROOM"
	LabelLayer      = "LABELS"
	FurniturePrefix = "FURNITURE_"
)

// FurnitureLayer returns the layer name used for t.
func FurnitureLayer(t model.FurnitureType) string {
	return FurniturePrefix + string(t)
}

// planPoint converts top-view coordinates (meters from the top-left corner,
// y down) into plan coordinates centered on the room with y pointing to -z.
func planPoint(view projection.View, x, y float64) (float64, float64) {
	return x - view.WidthPx/2, view.HeightPx/2 - y
}

// ExportDXF writes the top view as a floor plan in meters: the room outline,
// one closed polyline per placed item and a text label at each item center.
func ExportDXF(path string, d Design) error {
	view, err := projection.Project(projection.Top, d.Scene, 1)
	if err != nil {
		return fmt.Errorf("cannot export floor plan: %w", err)
	}

	dw := dxf.NewDrawing()
	if _, err := dw.AddLayer(RoomLayer, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	x0, y0 := planPoint(view, 0, 0)
	x1, y1 := planPoint(view, view.WidthPx, view.HeightPx)
	if _, err := dw.LwPolyline(true, []float64{x0, y0, 0}, []float64{x1, y0, 0}, []float64{x1, y1, 0}, []float64{x0, y1, 0}); err != nil {
		return fmt.Errorf("failed to draw room: %w", err)
	}

	for i, item := range view.Items {
		if _, err := dw.AddLayer(FurnitureLayer(item.Type), color.ColorNumber(i%6+1), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer: %w", err)
		}
		corners := item.Corners()
		vertices := make([][]float64, 0, len(corners))
		for _, c := range corners {
			x, y := planPoint(view, c[0], c[1])
			vertices = append(vertices, []float64{x, y, 0})
		}
		if _, err := dw.LwPolyline(true, vertices...); err != nil {
			return fmt.Errorf("failed to draw %s: %w", item.Type, err)
		}
	}

	if err := drawLabels(dw, view); err != nil {
		return err
	}

	if err := dw.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save floor plan: %w", err)
	}
	return nil
}

func drawLabels(dw *drawing.Drawing, view projection.View) error {
	if len(view.Items) == 0 {
		return nil
	}
	if _, err := dw.AddLayer(LabelLayer, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, item := range view.Items {
		cx, cy := item.Center()
		x, y := planPoint(view, cx, cy)
		if _, err := dw.Text(item.Type.Label(), x, y, 0, 0.08); err != nil {
			return fmt.Errorf("failed to label %s: %w", item.Type, err)
		}
	}
	return nil
}
