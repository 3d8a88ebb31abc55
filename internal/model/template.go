package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Template is a named snapshot of a scene. Selection is not part of it.
type Template struct {
	Name            string       `json:"name"`
	Dimensions      [3]float64   `json:"dimensions"`
	Color           string       `json:"color"`
	PlacedFurniture PlacementMap `json:"placedFurniture"`
	Timestamp       string       `json:"timestamp"`
}

// NewTemplate captures the scene under the given name with the current time.
func NewTemplate(name string, s Scene) Template {
	return Template{
		Name:            strings.TrimSpace(name),
		Dimensions:      s.Room.Dimensions,
		Color:           s.Room.Color,
		PlacedFurniture: s.Placements,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

// ToScene rebuilds a scene from the template. A record without dimensions
// or color falls back to the default room values.
func (t Template) ToScene() Scene {
	room := RoomSpec{Dimensions: t.Dimensions, Color: t.Color}
	if t.Dimensions == ([3]float64{}) {
		room.Dimensions = DefaultRoomDimensions
	}
	if room.Color == "" {
		room.Color = DefaultRoomColor
	}
	return Scene{Room: room, Placements: t.PlacedFurniture}
}

// UnmarshalJSON fills entries that are absent from the record with defaults.
func (m *PlacementMap) UnmarshalJSON(data []byte) error {
	type plain PlacementMap
	p := plain(DefaultPlacements())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = PlacementMap(p)
	return nil
}

// TemplateSet is an ordered collection of templates keyed by name.
type TemplateSet struct {
	Templates []Template `json:"templates"`
}

// NewTemplateSet creates an empty set.
func NewTemplateSet() TemplateSet {
	return TemplateSet{Templates: []Template{}}
}

// Upsert replaces the template with the same name in place or appends it.
// Returns true when a new entry was appended.
func (ts *TemplateSet) Upsert(t Template) bool {
	for i := range ts.Templates {
		if ts.Templates[i].Name == t.Name {
			ts.Templates[i] = t
			return false
		}
	}
	ts.Templates = append(ts.Templates, t)
	return true
}

// Remove removes a template by name. Returns true if found and removed.
func (ts *TemplateSet) Remove(name string) bool {
	for i, t := range ts.Templates {
		if t.Name == name {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the template with the given name, or nil.
func (ts *TemplateSet) FindByName(name string) *Template {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names for UI dropdowns.
func (ts *TemplateSet) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
