// Package importer reads placement schedules from CSV and Excel files and
// floor plans from DXF files back into a scene. It supports automatic
// delimiter detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// ImportResult holds the results of an import operation. Scene starts from
// the default scene; only rows that parsed cleanly are applied to it.
type ImportResult struct {
	Scene       model.Scene
	ProjectName string
	Imported    []model.FurnitureType
	Errors      []string
	Warnings    []string
}

func newResult() ImportResult {
	return ImportResult{Scene: model.NewScene()}
}

// OK reports whether at least one item was imported without errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Imported) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Item     int
	Placed   int
	X        int
	Y        int
	Z        int
	Rotation int
	Scale    int
}

// positionalMapping matches the column order of exported schedules.
var positionalMapping = ColumnMapping{Item: 0, Placed: 1, X: 2, Y: 3, Z: 4, Rotation: 5, Scale: 6}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"item":     {"item", "type", "furniture", "name", "piece"},
	"placed":   {"placed", "visible", "in room", "shown"},
	"x":        {"x", "pos x", "position x"},
	"y":        {"y", "pos y", "position y", "elevation"},
	"z":        {"z", "pos z", "position z"},
	"rotation": {"rotation", "rot", "angle", "degrees", "heading"},
	"scale":    {"scale", "size", "factor"},
}

// normalizeHeader lowercases a header cell and drops a trailing unit such
// as "(m)" or "(deg)".
func normalizeHeader(cell string) string {
	h := strings.ToLower(strings.TrimSpace(cell))
	if i := strings.Index(h, "("); i > 0 {
		h = strings.TrimSpace(h[:i])
	}
	return h
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping of exported schedules and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Item: -1, Placed: -1, X: -1, Y: -1, Z: -1, Rotation: -1, Scale: -1}
	slots := map[string]*int{
		"item":     &mapping.Item,
		"placed":   &mapping.Placed,
		"x":        &mapping.X,
		"y":        &mapping.Y,
		"z":        &mapping.Z,
		"rotation": &mapping.Rotation,
		"scale":    &mapping.Scale,
	}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// parseItem accepts a wire name ("coffeeTable") or a label ("Coffee Table"),
// case-insensitively.
func parseItem(s string) (model.FurnitureType, bool) {
	s = strings.TrimSpace(s)
	if t, err := model.ParseFurnitureType(s); err == nil {
		return t, true
	}
	for _, t := range model.AllFurnitureTypes() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, true
		}
	}
	return "", false
}

// parsePlaced converts a placed flag. Blank cells count as placed.
func parsePlaced(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "y", "true", "1", "x":
		return true, true
	case "no", "n", "false", "0", "-":
		return false, true
	default:
		return true, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowUpdate is one parsed schedule line.
type rowUpdate struct {
	item  model.FurnitureType
	state model.PlacementState
	deg   float64
}

// parseRow extracts one placement from a row using the given column mapping.
// Returns the update, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (rowUpdate, string, []string) {
	var warnings []string

	itemStr := getCell(row, mapping.Item)
	if itemStr == "" {
		return rowUpdate{}, fmt.Sprintf("%s: Missing item", rowLabel), nil
	}
	item, ok := parseItem(itemStr)
	if !ok {
		return rowUpdate{}, fmt.Sprintf("%s: Unknown item '%s'", rowLabel, itemStr), nil
	}

	u := rowUpdate{item: item, state: model.DefaultPlacement(item)}

	placed, ok := parsePlaced(getCell(row, mapping.Placed))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown placed value '%s', defaulting to yes", rowLabel, getCell(row, mapping.Placed)))
	}
	u.state.Placed = placed

	axes := []struct {
		name string
		idx  int
	}{{"X", mapping.X}, {"Y", mapping.Y}, {"Z", mapping.Z}}
	for i, axis := range axes {
		s := getCell(row, axis.idx)
		if s == "" {
			continue
		}
		v, err := model.ParseCoordinate(s)
		if err != nil {
			return rowUpdate{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, axis.name, s), nil
		}
		u.state.Position[i] = v
	}
	if u.state.Position[1] != 0 {
		warnings = append(warnings, fmt.Sprintf("%s: %s is raised %.2f m off the floor", rowLabel, item.Label(), u.state.Position[1]))
	}

	if s := getCell(row, mapping.Rotation); s != "" {
		v, err := model.ParseRotationDegrees(s)
		if err != nil {
			return rowUpdate{}, fmt.Sprintf("%s: Invalid rotation '%s'", rowLabel, s), nil
		}
		u.deg = v
	}

	if s := getCell(row, mapping.Scale); s != "" {
		v, err := model.ParseScale(s)
		if err != nil {
			return rowUpdate{}, fmt.Sprintf("%s: Invalid scale '%s'", rowLabel, s), nil
		}
		clamped := model.ClampScale(item, v)
		if clamped != v {
			warnings = append(warnings, fmt.Sprintf("%s: Scale %g out of range for %s, using %g", rowLabel, v, item.Label(), clamped))
		}
		u.state.Scale = clamped
	}

	return u, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a placement schedule from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := newResult()

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return ImportCSVFromReader(bytes.NewReader(data), delimiter, warnings...)
}

// ImportCSVFromReader imports a placement schedule from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, warnings ...string) ImportResult {
	result := newResult()

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports a placement schedule from an Excel file. The
// placements come from the "Placements" sheet, or the first sheet when there
// is none; an optional "Room" sheet supplies the project name, dimensions
// and color.
func ImportExcel(path string) ImportResult {
	result := newResult()

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	placements := sheets[0]
	hasRoom := false
	for _, name := range sheets {
		switch {
		case strings.EqualFold(name, "Placements"):
			placements = name
		case strings.EqualFold(name, "Room"):
			hasRoom = true
		}
	}

	rows, err := f.GetRows(placements)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	result = importFromRows(rows, "Row", nil)

	if hasRoom {
		roomRows, err := f.GetRows("Room")
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Cannot read room sheet: %v", err))
			return result
		}
		applyRoomRows(&result, roomRows)
	}
	return result
}

// roomAliases recognizes the Room sheet headers.
var roomAliases = map[string]int{
	"width":  model.DimWidth,
	"w":      model.DimWidth,
	"height": model.DimHeight,
	"h":      model.DimHeight,
	"depth":  model.DimDepth,
	"d":      model.DimDepth,
	"length": model.DimDepth,
}

// applyRoomRows reads a header row and one value row describing the room.
// Invalid values leave the default and add a warning.
func applyRoomRows(result *ImportResult, rows [][]string) {
	if len(rows) < 2 {
		result.Warnings = append(result.Warnings, "Room sheet has no values, keeping default room")
		return
	}
	header, values := rows[0], rows[1]
	for i, cell := range header {
		h := normalizeHeader(cell)
		v := getCell(values, i)
		if v == "" {
			continue
		}
		switch {
		case h == "project" || h == "name":
			result.ProjectName = v
		case h == "color" || h == "colour":
			c, err := model.ValidateColor(v)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Room: Invalid color '%s', keeping %s", v, result.Scene.Room.Color))
				continue
			}
			result.Scene.SetRoomColor(c)
		default:
			idx, ok := roomAliases[h]
			if !ok {
				continue
			}
			d, err := model.ParseDimension(idx, v)
			if err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Room: Invalid %s '%s': %v", h, v, err))
				continue
			}
			_ = result.Scene.SetRoomDimensions(idx, d)
		}
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and applies each row to the scene.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := newResult()
	result.Warnings = initialWarnings

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Item == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Item")
			return result
		}
	} else if _, ok := parseItem(getCell(rows[0], mapping.Item)); !ok {
		// unrecognized header; skip it but keep positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	seen := make(map[model.FurnitureType]string)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		u, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		if prev, dup := seen[u.item]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s already listed on %s, using the later row", rowLabel, u.item.Label(), prev))
		} else {
			result.Imported = append(result.Imported, u.item)
		}
		seen[u.item] = rowLabel

		result.Scene.Placements.Set(u.item, u.state)
		result.Scene.SetRotationDegrees(u.item, u.deg)
	}

	if len(result.Imported) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
