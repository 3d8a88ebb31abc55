package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// View modes remembered between runs.
const (
	ViewMode3D = "3d"
	ViewMode2D = "2d"
)

const maxRecentTemplates = 10

// Preferences holds per-user desktop settings.
type Preferences struct {
	RecentTemplates []string `json:"recent_templates"`
	ViewMode        string   `json:"view_mode"` // "3d" or "2d"
	Theme           string   `json:"theme"`     // "light", "dark", "system"
}

// DefaultPreferences returns the settings used on first launch.
func DefaultPreferences() Preferences {
	return Preferences{
		RecentTemplates: []string{},
		ViewMode:        ViewMode3D,
		Theme:           "system",
	}
}

// AddRecent moves name to the front of the recent list.
func (p *Preferences) AddRecent(name string) {
	out := []string{name}
	for _, n := range p.RecentTemplates {
		if n != name && len(out) < maxRecentTemplates {
			out = append(out, n)
		}
	}
	p.RecentTemplates = out
}

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.roomcraft/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roomcraft")
}

// DefaultPreferencesPath returns the default path of the preferences file.
func DefaultPreferencesPath() string {
	return filepath.Join(DefaultConfigDir(), "preferences.json")
}

// SavePreferences persists preferences to the given path as JSON.
// It creates any missing parent directories automatically.
func SavePreferences(path string, prefs Preferences) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPreferences reads preferences from the given path.
// If the file does not exist, it returns DefaultPreferences with no error.
func LoadPreferences(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreferences(), nil
		}
		return Preferences{}, err
	}
	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, err
	}
	if prefs.RecentTemplates == nil {
		prefs.RecentTemplates = []string{}
	}
	if prefs.ViewMode != ViewMode2D {
		prefs.ViewMode = ViewMode3D
	}
	return prefs, nil
}
