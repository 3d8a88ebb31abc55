package widgets

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/scene3d"
)

// mousePointer is the pointer ID used for desktop mouse drags.
const mousePointer = 1

// zoomStep is the distance factor applied per scroll notch.
const zoomStep = 0.9

var (
	colorViewBackground = color.NRGBA{R: 245, G: 247, B: 250, A: 255}
	colorHighlight      = color.NRGBA{R: 255, G: 140, B: 0, A: 255}
)

// SceneController receives the pointer input of a SceneView.
// *session.Session satisfies it.
type SceneController interface {
	BeginDrag(ndcX, ndcY float64, pointerID int) (model.FurnitureType, bool)
	DragTo(ndcX, ndcY float64) bool
	EndDrag(pointerID int) bool
	OrbitCamera(dx, dy float64)
	ZoomCamera(factor float64)
	SetViewport(width, height float64)
}

// SceneView draws the 3D model as a wireframe. Pressing on an item drags
// it across the floor; dragging empty space orbits the camera; scrolling
// zooms. With Locked set every drag orbits.
type SceneView struct {
	widget.BaseWidget

	Locked bool

	ctrl     SceneController
	model    scene3d.Model
	camera   geom.Camera
	dragging bool
}

var (
	_ desktop.Mouseable = (*SceneView)(nil)
	_ fyne.Draggable    = (*SceneView)(nil)
	_ fyne.Scrollable   = (*SceneView)(nil)
)

func NewSceneView(ctrl SceneController) *SceneView {
	v := &SceneView{ctrl: ctrl, camera: *geom.NewCamera()}
	v.ExtendBaseWidget(v)
	return v
}

// SetScene replaces the model and camera being drawn.
func (v *SceneView) SetScene(m scene3d.Model, cam geom.Camera) {
	v.model = m
	v.camera = cam
	v.Refresh()
}

// Resize keeps the camera aspect ratio in step with the widget.
func (v *SceneView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	if v.ctrl != nil {
		v.ctrl.SetViewport(float64(size.Width), float64(size.Height))
	}
}

func (v *SceneView) ndc(pos fyne.Position) (float64, float64) {
	size := v.Size()
	return geom.PixelToNDC(float64(pos.X), float64(pos.Y), float64(size.Width), float64(size.Height))
}

func (v *SceneView) MouseDown(ev *desktop.MouseEvent) {
	if v.Locked || v.ctrl == nil || ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := v.ndc(ev.Position)
	_, v.dragging = v.ctrl.BeginDrag(x, y, mousePointer)
}

func (v *SceneView) MouseUp(*desktop.MouseEvent) {
	v.endDrag()
}

func (v *SceneView) Dragged(ev *fyne.DragEvent) {
	if v.ctrl == nil {
		return
	}
	if v.dragging {
		x, y := v.ndc(ev.Position)
		v.ctrl.DragTo(x, y)
		return
	}
	v.ctrl.OrbitCamera(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
}

func (v *SceneView) DragEnd() {
	v.endDrag()
}

func (v *SceneView) endDrag() {
	if !v.dragging {
		return
	}
	v.dragging = false
	v.ctrl.EndDrag(mousePointer)
}

func (v *SceneView) Scrolled(ev *fyne.ScrollEvent) {
	if v.ctrl == nil || ev.Scrolled.DY == 0 {
		return
	}
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	v.ctrl.ZoomCamera(factor)
}

func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(colorViewBackground)
	return &sceneViewRenderer{view: v, background: bg}
}

type sceneViewRenderer struct {
	view       *SceneView
	background *canvas.Rectangle
	lines      []fyne.CanvasObject
	size       fyne.Size
}

func (r *sceneViewRenderer) rebuild() {
	r.lines = r.lines[:0]
	w, h := float64(r.size.Width), float64(r.size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	for _, seg := range scene3d.Wireframe(r.view.model, &r.view.camera, w, h) {
		if !finiteSegment(seg) {
			continue
		}
		line := canvas.NewLine(segmentColor(seg))
		line.StrokeWidth = segmentWidth(seg.Kind)
		line.Position1 = fyne.NewPos(float32(seg.X1), float32(seg.Y1))
		line.Position2 = fyne.NewPos(float32(seg.X2), float32(seg.Y2))
		r.lines = append(r.lines, line)
	}
}

func finiteSegment(s scene3d.Segment) bool {
	for _, v := range []float64{s.X1, s.Y1, s.X2, s.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func segmentColor(s scene3d.Segment) color.Color {
	switch s.Kind {
	case scene3d.KindHighlight:
		return colorHighlight
	case scene3d.KindGrid:
		return hexColor(s.Color, 110)
	default:
		return hexColor(s.Color, 255)
	}
}

func segmentWidth(k scene3d.SegmentKind) float32 {
	switch k {
	case scene3d.KindHighlight:
		return 2.5
	case scene3d.KindFurniture:
		return 1.5
	case scene3d.KindGridSection, scene3d.KindRoom:
		return 1
	default:
		return 0.5
	}
}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	if size != r.size {
		r.size = size
		r.rebuild()
	}
}

func (r *sceneViewRenderer) Refresh() {
	r.rebuild()
	r.background.Refresh()
}

func (r *sceneViewRenderer) Destroy() {}

func (r *sceneViewRenderer) MinSize() fyne.Size { return fyne.NewSize(320, 240) }

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.lines)+1)
	objs = append(objs, r.background)
	return append(objs, r.lines...)
}
