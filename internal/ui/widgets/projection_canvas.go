package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/projection"
)

var (
	colorRoomBorder = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colorItemBorder = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	colorDiagnostic = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
)

// hexColor converts a #rrggbb string to a Fyne color with the given alpha.
func hexColor(hex string, alpha uint8) color.NRGBA {
	r, g, b := model.RGB(hex)
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// ProjectionCanvas draws one orthographic view of the room, scaled down to
// fit within its maximum size.
type ProjectionCanvas struct {
	widget.BaseWidget
	view      projection.View
	maxWidth  float32
	maxHeight float32
}

func NewProjectionCanvas(maxW, maxH float32) *ProjectionCanvas {
	pc := &ProjectionCanvas{maxWidth: maxW, maxHeight: maxH}
	pc.ExtendBaseWidget(pc)
	return pc
}

// SetView replaces the drawn view.
func (pc *ProjectionCanvas) SetView(v projection.View) {
	pc.view = v
	pc.Refresh()
}

// View returns the view being drawn.
func (pc *ProjectionCanvas) View() projection.View {
	return pc.view
}

func (pc *ProjectionCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newProjectionCanvasRenderer(pc)
}

// fit returns the factor mapping view pixels to canvas pixels. Views larger
// than the canvas shrink; smaller ones are drawn at their own scale.
func (pc *ProjectionCanvas) fit() float32 {
	v := pc.view
	if v.WidthPx <= 0 || v.HeightPx <= 0 {
		return 1
	}
	scale := pc.maxWidth / float32(v.WidthPx)
	if s := pc.maxHeight / float32(v.HeightPx); s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	return scale
}

type projectionCanvasRenderer struct {
	pc      *ProjectionCanvas
	objects []fyne.CanvasObject
}

func newProjectionCanvasRenderer(pc *ProjectionCanvas) *projectionCanvasRenderer {
	r := &projectionCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

func (r *projectionCanvasRenderer) rebuild() {
	r.objects = nil
	v := r.pc.view

	if !v.Valid() {
		msg := canvas.NewText(v.Diagnostic, colorDiagnostic)
		msg.TextSize = 11
		msg.TextStyle = fyne.TextStyle{Bold: true}
		msg.Move(fyne.NewPos(4, 4))
		r.objects = append(r.objects, msg)
		return
	}

	scale := r.pc.fit()
	roomW := float32(v.WidthPx) * scale
	roomH := float32(v.HeightPx) * scale

	bg := canvas.NewRectangle(hexColor(v.RoomColor, 255))
	bg.StrokeColor = colorRoomBorder
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(roomW, roomH))
	r.objects = append(r.objects, bg)

	for _, item := range v.Items {
		r.drawItem(item, scale)
	}
}

// drawItem fills unrotated rectangles and outlines every rectangle along
// its rotated corners.
func (r *projectionCanvasRenderer) drawItem(item projection.Rect, scale float32) {
	fill := hexColor(item.Color, 200)
	if item.RotationDeg == 0 {
		rect := canvas.NewRectangle(fill)
		rect.Resize(fyne.NewSize(float32(item.Width)*scale, float32(item.Height)*scale))
		rect.Move(fyne.NewPos(float32(item.Left)*scale, float32(item.Top)*scale))
		r.objects = append(r.objects, rect)
	}

	corners := item.Corners()
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		edge := canvas.NewLine(colorItemBorder)
		if item.RotationDeg != 0 {
			edge.StrokeColor = fill
			edge.StrokeWidth = 2
		}
		edge.Position1 = fyne.NewPos(float32(a[0])*scale, float32(a[1])*scale)
		edge.Position2 = fyne.NewPos(float32(b[0])*scale, float32(b[1])*scale)
		r.objects = append(r.objects, edge)
	}

	w, h := float32(item.Width)*scale, float32(item.Height)*scale
	if w > 30 && h > 12 {
		cx, cy := item.Center()
		label := canvas.NewText(item.Type.Label(), color.Black)
		label.TextSize = 9
		label.Move(fyne.NewPos(float32(cx)*scale-w/2+3, float32(cy)*scale-6))
		r.objects = append(r.objects, label)
	}
}

func (r *projectionCanvasRenderer) Layout(size fyne.Size)        {}
func (r *projectionCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *projectionCanvasRenderer) Destroy()                     {}
func (r *projectionCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *projectionCanvasRenderer) MinSize() fyne.Size {
	v := r.pc.view
	if !v.Valid() {
		return fyne.NewSize(r.pc.maxWidth, 40)
	}
	scale := r.pc.fit()
	return fyne.NewSize(float32(v.WidthPx)*scale, float32(v.HeightPx)*scale)
}
