package ui

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// scaleStep is the size change of the - and + buttons.
const scaleStep = 0.05

var dimensionLabels = [3]string{"Width (m)", "Height (m)", "Depth (m)"}

// ─── Room Panel ────────────────────────────────────────────

func (a *App) buildRoomPanel() fyne.CanvasObject {
	form := container.NewGridWithColumns(2)
	for i := range a.dimEntries {
		e := widget.NewEntry()
		e.OnSubmitted = func(string) { a.applyRoomDimensions() }
		a.dimEntries[i] = e
		form.Add(widget.NewLabel(dimensionLabels[i]))
		form.Add(e)
	}

	a.colorSwatch = canvas.NewRectangle(color.White)
	a.colorSwatch.SetMinSize(fyne.NewSize(24, 24))
	a.colorSwatch.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	a.colorSwatch.StrokeWidth = 1
	a.colorLabel = widget.NewLabel("")

	apply := widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), func() {
		a.applyRoomDimensions()
	})
	pick := newIconButtonWithTooltip(theme.ColorPaletteIcon(), "Choose the room color", func() {
		a.showColorPicker()
	})

	return widget.NewCard("Room", "", container.NewVBox(
		form,
		container.NewHBox(widget.NewLabel("Color"), a.colorSwatch, a.colorLabel, pick),
		apply,
	))
}

func (a *App) refreshRoomPanel(room model.RoomSpec) {
	for i, e := range a.dimEntries {
		e.SetText(formatMeters(room.Dimensions[i]))
	}
	a.colorSwatch.FillColor = hexToColor(room.Color)
	a.colorSwatch.Refresh()
	a.colorLabel.SetText(room.Color)
}

// applyRoomDimensions validates all three entries before changing the room,
// so a bad value leaves the room untouched.
func (a *App) applyRoomDimensions() {
	var values [3]float64
	var errs []error
	for i, e := range a.dimEntries {
		v, err := model.ParseDimension(i, e.Text)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dimensionLabels[i], err))
			continue
		}
		values[i] = v
	}
	if len(errs) > 0 {
		dialog.ShowError(errors.Join(errs...), a.window)
		a.refreshRoomPanel(a.sess.Scene().Room)
		return
	}
	for i, v := range values {
		if err := a.sess.SetRoomDimension(i, v); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
	}
}

func (a *App) showColorPicker() {
	picker := dialog.NewColorPicker("Room Color", "Choose the wall color", func(c color.Color) {
		a.sess.SetRoomColor(colorToHex(c))
	}, a.window)
	picker.Advanced = true
	picker.SetColor(hexToColor(a.sess.Scene().Room.Color))
	picker.Show()
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// colorToHex formats a color as #rrggbb, dropping alpha.
func colorToHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func hexToColor(hex string) color.NRGBA {
	r, g, b := model.RGB(hex)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// ─── Furniture Palette ─────────────────────────────────────

func (a *App) buildPalette() fyne.CanvasObject {
	rows := container.NewVBox()
	for _, t := range model.AllFurnitureTypes() {
		label := t.Label()
		place := newButtonWithTooltip(label, "Place the "+label+" in the room", func() {
			a.sess.PlaceFurniture(t)
		})
		buy := newIconButtonWithTooltip(theme.ContentAddIcon(), "Add the "+label+" to the cart", func() {
			a.addToCart(t)
		})
		rows.Add(container.NewBorder(nil, nil, nil, buy, place))
	}
	return widget.NewCard("Add Furniture", "", rows)
}

// ─── Placed Furniture Panel ────────────────────────────────

// panelState is what the placed-items panel shows. The panel is rebuilt
// only when it changes.
type panelState struct {
	placed   string
	selected model.FurnitureType
	rotation float64
	scale    float64
}

func newPanelState(sc model.Scene) panelState {
	st := panelState{selected: sc.Selected}
	for _, t := range sc.PlacedTypes() {
		st.placed += string(t) + ","
	}
	if sc.Selected != "" {
		p := sc.Placements.Get(sc.Selected)
		st.rotation = p.Rotation
		st.scale = p.Scale
	}
	return st
}

func (a *App) buildPlacedPanel() fyne.CanvasObject {
	a.placedContainer = container.NewVBox()
	return widget.NewCard("Placed Furniture", "", a.placedContainer)
}

func (a *App) refreshPlacedPanel(sc model.Scene) {
	a.placedContainer.RemoveAll()

	placed := sc.PlacedTypes()
	if len(placed) == 0 {
		a.placedContainer.Add(widget.NewLabel("No furniture placed yet."))
		return
	}

	for _, t := range placed {
		name := widget.NewButton(t.Label(), func() {
			a.sess.Select(t)
		})
		if sc.Selected == t {
			name.Importance = widget.HighImportance
		}
		remove := newIconButtonWithTooltip(theme.DeleteIcon(), "Remove the "+t.Label(), func() {
			a.sess.RemoveFurniture(t)
		})
		a.placedContainer.Add(container.NewBorder(nil, nil, nil, remove, name))

		if sc.Selected == t {
			a.placedContainer.Add(a.buildItemControls(sc, t))
		}
	}
	a.placedContainer.Refresh()
}

// buildItemControls holds the rotation and size controls of the selected item.
func (a *App) buildItemControls(sc model.Scene, t model.FurnitureType) fyne.CanvasObject {
	p := sc.Placements.Get(t)
	arch := model.MustArchetype(t)

	rotEntry := widget.NewEntry()
	rotEntry.SetText(fmt.Sprintf("%.0f", sc.RotationDegrees(t)))
	rotEntry.OnSubmitted = func(text string) {
		deg, err := model.ParseRotationDegrees(text)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.sess.SetRotationDegrees(t, deg)
	}
	rotate90 := newIconButtonWithTooltip(theme.MediaReplayIcon(), "Rotate 90°", func() {
		a.sess.SetRotation(t, model.NormalizeRotation(p.Rotation+math.Pi/2))
	})

	scaleLabel := widget.NewLabel(fmt.Sprintf("%.2f", p.Scale))
	slider := widget.NewSlider(arch.MinScale, arch.MaxScale)
	slider.Step = 0.01
	slider.Value = p.Scale
	slider.OnChanged = func(v float64) {
		scaleLabel.SetText(fmt.Sprintf("%.2f", v))
	}
	slider.OnChangeEnded = func(v float64) {
		a.sess.SetScale(t, v)
	}
	shrink := newIconButtonWithTooltip(theme.ContentRemoveIcon(), "Smaller", func() {
		a.sess.AdjustScale(t, -scaleStep)
	})
	grow := newIconButtonWithTooltip(theme.ContentAddIcon(), "Larger", func() {
		a.sess.AdjustScale(t, scaleStep)
	})

	return container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Rotate:"), container.NewHBox(widget.NewLabel("deg"), rotate90), rotEntry),
		container.NewBorder(nil, nil, container.NewHBox(widget.NewLabel("Size:"), shrink), container.NewHBox(grow, scaleLabel), slider),
		widget.NewSeparator(),
	)
}
