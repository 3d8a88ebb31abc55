package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// Layer names written by the floor plan exporter.
const (
	roomLayer       = "ROOM"
	furniturePrefix = "FURNITURE_"
)

// point2 is a plan coordinate in meters, y pointing toward -z.
type point2 struct {
	X, Y float64
}

// ImportDXF reads a floor plan in meters. The polyline on the ROOM layer
// sets the room width and depth; each closed four-vertex polyline on a
// FURNITURE_<type> layer places that item at its center with the rotation
// of its first edge. Heights and scales are not part of a plan and keep
// their defaults.
func ImportDXF(path string) ImportResult {
	result := newResult()

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	roomFound := false
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			continue
		}
		layer := ""
		if l := lw.Layer(); l != nil {
			layer = l.Name()
		}
		outline := lwPolylineToOutline(lw)

		switch {
		case strings.EqualFold(layer, roomLayer):
			if roomFound {
				result.Warnings = append(result.Warnings, "Multiple room outlines, using the first")
				continue
			}
			roomFound = true
			applyRoomOutline(&result, outline)

		case strings.HasPrefix(strings.ToUpper(layer), furniturePrefix):
			name := layer[len(furniturePrefix):]
			t, ok := parseItem(name)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped unknown furniture layer '%s'", layer))
				continue
			}
			if len(outline) != 4 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped %s outline with %d vertices", t.Label(), len(outline)))
				continue
			}
			placeFromOutline(&result, t, outline)
		}
	}

	if !roomFound {
		result.Warnings = append(result.Warnings, "No room outline found, keeping default room")
	}
	if len(result.Imported) == 0 {
		result.Errors = append(result.Errors, "No furniture found in DXF file")
	}
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to plan points.
// Bulges are ignored; furniture footprints are rectangles.
func lwPolylineToOutline(lw *entity.LwPolyline) []point2 {
	outline := make([]point2, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		if len(v) < 2 {
			continue
		}
		outline = append(outline, point2{X: v[0], Y: v[1]})
	}
	return outline
}

// bounds returns the bounding box of an outline.
func bounds(o []point2) (min, max point2) {
	min = point2{math.Inf(1), math.Inf(1)}
	max = point2{math.Inf(-1), math.Inf(-1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

func applyRoomOutline(result *ImportResult, outline []point2) {
	if len(outline) < 3 {
		result.Warnings = append(result.Warnings, "Room outline has fewer than 3 vertices, keeping default room")
		return
	}
	min, max := bounds(outline)
	dims := []struct {
		idx   int
		value float64
		name  string
	}{
		{model.DimWidth, max.X - min.X, "width"},
		{model.DimDepth, max.Y - min.Y, "depth"},
	}
	for _, d := range dims {
		v, err := model.CheckDimension(d.idx, roundMM(d.value))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Room %s %.3f m rejected: %v", d.name, d.value, err))
			continue
		}
		_ = result.Scene.SetRoomDimensions(d.idx, v)
	}
}

// placeFromOutline places t at the center of its footprint. The rotation is
// recovered from the first edge, which the exporter writes along the item's
// local +x axis.
func placeFromOutline(result *ImportResult, t model.FurnitureType, outline []point2) {
	var cx, cy float64
	for _, p := range outline {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(outline))
	cy /= float64(len(outline))

	dx := outline[1].X - outline[0].X
	dy := outline[1].Y - outline[0].Y
	rotation := model.NormalizeRotation(math.Atan2(-dy, dx))

	st := result.Scene.Placements.Get(t)
	st.Placed = true
	st.Position = model.Point3{roundMM(cx), 0, roundMM(-cy)}
	st.Rotation = rotation
	result.Scene.Placements.Set(t, st)

	for _, seen := range result.Imported {
		if seen == t {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s drawn more than once, using the last outline", t.Label()))
			return
		}
	}
	result.Imported = append(result.Imported, t)
}

// roundMM rounds meters to the nearest millimeter.
func roundMM(v float64) float64 {
	return math.Round(v*1000) / 1000
}
