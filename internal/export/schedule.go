package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// Sheet names in the placement schedule workbook.
const (
	PlacementsSheet = "Placements"
	RoomSheet       = "Room"
)

// ScheduleHeaders is the header row of the placements sheet.
var ScheduleHeaders = []string{"Item", "Placed", "X (m)", "Y (m)", "Z (m)", "Rotation (deg)", "Scale"}

// ScheduleRow is one furniture line of the placement schedule.
type ScheduleRow struct {
	Type        model.FurnitureType
	Placed      bool
	Position    model.Point3
	RotationDeg float64
	Scale       float64
}

// scheduleRows lists every furniture type in palette order. Rotations are
// rounded to micro-degrees.
func scheduleRows(s model.Scene) []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(model.AllFurnitureTypes()))
	for _, t := range model.AllFurnitureTypes() {
		p := s.Placements.Get(t)
		rows = append(rows, ScheduleRow{
			Type:        t,
			Placed:      p.Placed,
			Position:    p.Position,
			RotationDeg: math.Round(s.RotationDegrees(t)*1e6) / 1e6,
			Scale:       p.Scale,
		})
	}
	return rows
}

// ExportSchedule writes the placement schedule workbook: one row per
// furniture type on the Placements sheet and the room on the Room sheet.
func ExportSchedule(path string, d Design) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), PlacementsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(ScheduleHeaders))
	for i, h := range ScheduleHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(PlacementsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range scheduleRows(d.Scene) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			string(row.Type),
			yesNo(row.Placed),
			row.Position[0],
			row.Position[1],
			row.Position[2],
			row.RotationDeg,
			row.Scale,
		}
		if err := f.SetSheetRow(PlacementsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row: %w", row.Type, err)
		}
	}

	if _, err := f.NewSheet(RoomSheet); err != nil {
		return fmt.Errorf("failed to add room sheet: %w", err)
	}
	room := d.Scene.Room
	rows := [][]interface{}{
		{"Project", "Width (m)", "Height (m)", "Depth (m)", "Color"},
		{d.ProjectName, room.Width(), room.Height(), room.Depth(), room.Color},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RoomSheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write room sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}
