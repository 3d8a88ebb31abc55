package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/scene3d"
)

type recordingController struct {
	hit      bool
	begins   int
	moves    [][2]float64
	ends     int
	orbits   [][2]float64
	zooms    []float64
	viewport [2]float64
}

func (c *recordingController) BeginDrag(x, y float64, _ int) (model.FurnitureType, bool) {
	c.begins++
	if !c.hit {
		return "", false
	}
	return model.Chair, true
}

func (c *recordingController) DragTo(x, y float64) bool {
	c.moves = append(c.moves, [2]float64{x, y})
	return true
}

func (c *recordingController) EndDrag(int) bool {
	c.ends++
	return true
}

func (c *recordingController) OrbitCamera(dx, dy float64) {
	c.orbits = append(c.orbits, [2]float64{dx, dy})
}

func (c *recordingController) ZoomCamera(f float64) {
	c.zooms = append(c.zooms, f)
}

func (c *recordingController) SetViewport(w, h float64) {
	c.viewport = [2]float64{w, h}
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestSceneViewResizeSetsViewport(t *testing.T) {
	test.NewTempApp(t)
	ctrl := &recordingController{}
	v := NewSceneView(ctrl)
	v.Resize(fyne.NewSize(400, 300))
	if ctrl.viewport != [2]float64{400, 300} {
		t.Errorf("unexpected viewport %v", ctrl.viewport)
	}
}

func TestSceneViewDragsPickedItem(t *testing.T) {
	test.NewTempApp(t)
	ctrl := &recordingController{hit: true}
	v := NewSceneView(ctrl)
	v.Resize(fyne.NewSize(400, 300))

	v.MouseDown(press(200, 150))
	v.Dragged(drag(300, 150, 100, 0))
	v.DragEnd()
	v.MouseUp(press(300, 150))

	if ctrl.begins != 1 {
		t.Fatalf("expected one BeginDrag, got %d", ctrl.begins)
	}
	if len(ctrl.moves) != 1 || ctrl.moves[0] != [2]float64{0.5, 0} {
		t.Errorf("expected a move to NDC (0.5, 0), got %v", ctrl.moves)
	}
	if len(ctrl.orbits) != 0 {
		t.Errorf("dragging an item must not orbit: %v", ctrl.orbits)
	}
	if ctrl.ends != 1 {
		t.Errorf("expected one EndDrag, got %d", ctrl.ends)
	}
}

func TestSceneViewOrbitsOnMiss(t *testing.T) {
	test.NewTempApp(t)
	ctrl := &recordingController{}
	v := NewSceneView(ctrl)
	v.Resize(fyne.NewSize(400, 300))

	v.MouseDown(press(10, 10))
	v.Dragged(drag(20, 15, 10, 5))
	v.DragEnd()

	if len(ctrl.orbits) != 1 || ctrl.orbits[0] != [2]float64{10, 5} {
		t.Errorf("expected one orbit by (10, 5), got %v", ctrl.orbits)
	}
	if len(ctrl.moves) != 0 || ctrl.ends != 0 {
		t.Errorf("no drag should have happened: moves %v ends %d", ctrl.moves, ctrl.ends)
	}
}

func TestSceneViewLockedNeverPicks(t *testing.T) {
	test.NewTempApp(t)
	ctrl := &recordingController{hit: true}
	v := NewSceneView(ctrl)
	v.Locked = true
	v.Resize(fyne.NewSize(400, 300))

	v.MouseDown(press(200, 150))
	v.Dragged(drag(210, 150, 10, 0))

	if ctrl.begins != 0 {
		t.Errorf("locked view should not begin drags")
	}
	if len(ctrl.orbits) != 1 {
		t.Errorf("locked view should orbit, got %v", ctrl.orbits)
	}
}

func TestSceneViewScrollZooms(t *testing.T) {
	test.NewTempApp(t)
	ctrl := &recordingController{}
	v := NewSceneView(ctrl)

	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	v.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(3, 0)})

	if len(ctrl.zooms) != 2 || ctrl.zooms[0] != zoomStep || ctrl.zooms[1] != 1/zoomStep {
		t.Errorf("unexpected zooms %v", ctrl.zooms)
	}
}

func TestSceneViewRendersWireframe(t *testing.T) {
	test.NewTempApp(t)
	v := NewSceneView(nil)
	s := model.NewScene()
	s.PlaceAndSelect(model.Table)
	v.SetScene(scene3d.Build(s), *geom.NewCamera())

	r := test.WidgetRenderer(v)
	r.Layout(fyne.NewSize(400, 400))
	if n := len(r.Objects()); n < 2 {
		t.Fatalf("expected background plus lines, got %d objects", n)
	}

	empty := NewSceneView(nil)
	er := test.WidgetRenderer(empty)
	if n := len(er.Objects()); n != 1 {
		t.Errorf("an unsized view draws only its background, got %d", n)
	}
}
