// Package ui provides the RoomCraft desktop designer.
//
// This file defines a compact Fyne theme with a selectable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme names stored in the preferences.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// RoomCraftTheme wraps the default Fyne theme with compact sizing and an
// optional fixed variant. Without a fixed variant it follows the system.
type RoomCraftTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewRoomCraftTheme creates a theme for the named preference.
func NewRoomCraftTheme(name string) *RoomCraftTheme {
	t := &RoomCraftTheme{base: theme.DefaultTheme()}
	t.SetName(name)
	return t
}

// SetName switches between ThemeSystem, ThemeLight and ThemeDark. Unknown
// names follow the system.
func (t *RoomCraftTheme) SetName(name string) {
	switch name {
	case ThemeLight:
		t.variant, t.fixed = theme.VariantLight, true
	case ThemeDark:
		t.variant, t.fixed = theme.VariantDark, true
	default:
		t.fixed = false
	}
}

// Name returns the preference name of the current setting.
func (t *RoomCraftTheme) Name() string {
	switch {
	case !t.fixed:
		return ThemeSystem
	case t.variant == theme.VariantLight:
		return ThemeLight
	default:
		return ThemeDark
	}
}

func (t *RoomCraftTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *RoomCraftTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *RoomCraftTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for the dense side panels.
func (t *RoomCraftTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
