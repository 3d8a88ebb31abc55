// Package export writes a room design to drawing, schedule and model files.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/projection"
)

// Design is what every exporter writes: a named scene.
type Design struct {
	ProjectName string
	Scene       model.Scene
}

// NewDesign names a scene, falling back to the default project name.
func NewDesign(name string, s model.Scene) Design {
	if name == "" {
		name = model.DefaultProjectName
	}
	return Design{ProjectName: name, Scene: s}
}

// Template returns the design as a storable template record.
func (d Design) Template() model.Template {
	return model.NewTemplate(d.ProjectName, d.Scene)
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 45.0
)

// ExportPDF writes a drawing set: a summary page followed by the top, front
// and side views. A view whose room dimensions are invalid gets a page
// carrying the diagnostic instead of a drawing.
func ExportPDF(path string, d Design) error {
	if path == "" {
		return errors.New("no output path")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(d.ProjectName, true)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, d); err != nil {
		return err
	}

	for _, plane := range projection.AllPlanes() {
		// meters; scaled to the page below
		view, _ := projection.Project(plane, d.Scene, 1)
		pdf.AddPage()
		renderViewPage(pdf, d, view)
	}

	return pdf.OutputFileAndClose(path)
}

// renderViewPage draws a single orthographic view on the current page.
func renderViewPage(pdf *fpdf.Fpdf, d Design, view projection.View) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s", d.ProjectName, view.Plane.Title())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	if !view.Valid() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, drawAreaTop)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, view.Diagnostic, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/view.WidthPx, drawHeight/view.HeightPx)

	canvasW := view.WidthPx * scale
	canvasH := view.HeightPx * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	r, g, b := model.RGB(view.RoomColor)
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, item := range view.Items {
		corners := item.Corners()
		pts := make([]fpdf.PointType, 0, len(corners))
		for _, c := range corners {
			pts = append(pts, fpdf.PointType{X: offsetX + c[0]*scale, Y: offsetY + c[1]*scale})
		}
		r, g, b := model.RGB(item.Color)
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(pts, "FD")

		w, h := item.Width*scale, item.Height*scale
		if w > 15 && h > 6 {
			label := item.Type.Label()
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(255, 255, 255)
			cx, cy := item.Center()
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(offsetX+cx*scale-labelW/2, offsetY+cy*scale-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}

	drawDimensionAnnotations(pdf, view, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, view, offsetY+canvasH+8)
}

// drawDimensionAnnotations labels the room extent below and left of the view.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, view projection.View, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f m", view.WidthPx)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f m", view.HeightPx)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists the drawn items with their color swatches.
func drawLegend(pdf *fpdf.Fpdf, view projection.View, startY float64) {
	if len(view.Items) == 0 && len(view.Skipped) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Furniture:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	for _, item := range view.Items {
		label := fmt.Sprintf("%s (%.2f x %.2f m)", item.Type.Label(), item.Width, item.Height)
		labelW := pdf.GetStringWidth(label) + 6

		r, g, b := model.RGB(item.Color)
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}

	if len(view.Skipped) > 0 {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, startY+5)
		pdf.CellFormat(200, 4, fmt.Sprintf("Not drawn (invalid position): %d item(s)", len(view.Skipped)), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderSummaryPage draws the room, the placement table and a QR code
// holding the template record.
func renderSummaryPage(pdf *fpdf.Fpdf, d Design) error {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, d.ProjectName, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Room", "", 0, "L", false, 0, "")
	y += 9

	room := d.Scene.Room
	roomItems := []struct {
		label string
		value string
	}{
		{"Width", fmt.Sprintf("%.2f m", room.Width())},
		{"Height", fmt.Sprintf("%.2f m", room.Height())},
		{"Depth", fmt.Sprintf("%.2f m", room.Depth())},
		{"Color", room.Color},
		{"Placed items", fmt.Sprintf("%d", d.Scene.PlacedCount())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range roomItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{35, 25, 60, 30, 25}
	headers := []string{"Item", "Placed", "Position (m)", "Rotation", "Scale"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range scheduleRows(d.Scene) {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			row.Type.Label(),
			yesNo(row.Placed),
			fmt.Sprintf("%.2f, %.2f, %.2f", row.Position[0], row.Position[1], row.Position[2]),
			fmt.Sprintf("%.0f\xb0", row.RotationDeg),
			fmt.Sprintf("%.3f", row.Scale),
		}
		xPos = marginLeft
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	qrData, err := json.Marshal(d.Template())
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Low, 512)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("template_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := pageWidth - marginRight - qrSize
	qrY := marginTop + 18
	pdf.ImageOptions("template_qr", qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(qrX, qrY+qrSize+1)
	pdf.CellFormat(qrSize, 4, "Scan to import the template", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomCraft - Room Designer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 9
	case minDim > 20:
		return 8
	default:
		return 6
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
