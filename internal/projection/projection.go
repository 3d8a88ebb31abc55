// Package projection maps a scene into 2D pixel rectangles for the top,
// front and side orthographic views.
package projection

import (
	"fmt"
	"math"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// DefaultScaleFactor is the number of pixels per meter.
const DefaultScaleFactor = 50.0

// Plane selects one of the three orthographic views.
type Plane string

const (
	Top   Plane = "top"
	Front Plane = "front"
	Side  Plane = "side"
)

// AllPlanes returns the views in display order.
func AllPlanes() []Plane {
	return []Plane{Top, Front, Side}
}

// ParsePlane converts a view name into a Plane.
func ParsePlane(s string) (Plane, error) {
	switch Plane(s) {
	case Top, Front, Side:
		return Plane(s), nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Title returns the display title, e.g. "Top View".
func (p Plane) Title() string {
	switch p {
	case Top:
		return "Top View"
	case Front:
		return "Front View"
	case Side:
		return "Side View"
	}
	return string(p)
}

// axes returns the room dimension indices used as (horizontal, vertical).
func (p Plane) axes() (int, int) {
	switch p {
	case Front:
		return model.DimWidth, model.DimHeight
	case Side:
		return model.DimDepth, model.DimHeight
	default:
		return model.DimWidth, model.DimDepth
	}
}

func (p Plane) axisNames() string {
	switch p {
	case Front:
		return "width and height"
	case Side:
		return "depth and height"
	default:
		return "width and depth"
	}
}

// InvalidRoomError reports room dimensions a view cannot be drawn from.
type InvalidRoomError struct {
	Plane      Plane
	Dimensions [3]float64
}

func (e *InvalidRoomError) Error() string {
	return fmt.Sprintf("Invalid Room Dimensions for %s. Please check room %s.", e.Plane.Title(), e.Plane.axisNames())
}

// Rect is one item's rectangle in view pixels. Top is measured from the
// top edge of the room rectangle, Bottom from its bottom edge.
type Rect struct {
	Type        model.FurnitureType `json:"type"`
	Left        float64             `json:"left"`
	Top         float64             `json:"top"`
	Bottom      float64             `json:"bottom"`
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	RotationDeg float64             `json:"rotationDeg"`
	Color       string              `json:"color"`
}

// Center returns the rectangle center in top-left pixel coordinates.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Corners returns the four corners after rotating about the center,
// clockwise from top-left, in top-left pixel coordinates.
func (r Rect) Corners() [4][2]float64 {
	cx, cy := r.Center()
	sin, cos := math.Sincos(r.RotationDeg * math.Pi / 180)
	hw, hh := r.Width/2, r.Height/2
	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, p := range local {
		out[i] = [2]float64{
			cx + p[0]*cos - p[1]*sin,
			cy + p[0]*sin + p[1]*cos,
		}
	}
	return out
}

// View is the complete 2D rendering of one plane.
type View struct {
	Plane      Plane                 `json:"plane"`
	WidthPx    float64               `json:"widthPx"`
	HeightPx   float64               `json:"heightPx"`
	RoomColor  string                `json:"roomColor"`
	Items      []Rect                `json:"items"`
	Skipped    []model.FurnitureType `json:"skipped,omitempty"`
	Diagnostic string                `json:"diagnostic,omitempty"`
}

// Valid reports whether the view could be drawn.
func (v View) Valid() bool {
	return v.Diagnostic == ""
}

func validLength(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Project computes the view of the scene on plane at scale pixels per meter.
// Invalid room dimensions produce a view carrying only a diagnostic and an
// *InvalidRoomError. Items with non-finite positions are listed in Skipped.
func Project(plane Plane, s model.Scene, scale float64) (View, error) {
	dims := s.Room.Dimensions
	hi, vi := plane.axes()
	view := View{Plane: plane, RoomColor: s.Room.Color, Items: []Rect{}}

	if !validLength(dims[hi]) || !validLength(dims[vi]) || !validLength(scale) {
		err := &InvalidRoomError{Plane: plane, Dimensions: dims}
		view.Diagnostic = err.Error()
		return view, err
	}
	view.WidthPx = dims[hi] * scale
	view.HeightPx = dims[vi] * scale

	for _, t := range s.PlacedTypes() {
		p := s.Placements.Get(t)
		rect, ok := projectItem(plane, t, p, dims, scale, view.HeightPx)
		if !ok {
			view.Skipped = append(view.Skipped, t)
			continue
		}
		view.Items = append(view.Items, rect)
	}
	return view, nil
}

func projectItem(plane Plane, t model.FurnitureType, p model.PlacementState, dims [3]float64, scale, roomHeightPx float64) (Rect, bool) {
	sil, color := model.SilhouetteFor(t)
	x, y, z := p.Position[0], p.Position[1], p.Position[2]
	width, height, depth := dims[model.DimWidth], dims[model.DimHeight], dims[model.DimDepth]
	r := Rect{Type: t, Color: color}

	switch plane {
	case Top:
		if !finite(x) || !finite(z) {
			return Rect{}, false
		}
		r.Width = sil.Width * scale
		r.Height = sil.Depth * scale
		r.Left = (x+width/2)*scale - r.Width/2
		r.Top = (z+depth/2)*scale - r.Height/2
		r.Bottom = roomHeightPx - r.Top - r.Height
		if finite(p.Rotation) {
			r.RotationDeg = p.Rotation * 180 / math.Pi
		}
	case Front, Side:
		horizontal, extent := x, sil.Width
		room := width
		if plane == Side {
			horizontal, extent, room = z, sil.Depth, depth
		}
		if !finite(horizontal) || !finite(y) {
			return Rect{}, false
		}
		r.Width = extent * scale
		r.Height = sil.Height * scale
		r.Left = (horizontal+room/2)*scale - r.Width/2
		r.Bottom = (y + height/2) * scale
		r.Top = roomHeightPx - r.Bottom - r.Height
	default:
		return Rect{}, false
	}
	return r, true
}
