package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DimensionBounds are the accepted ranges for user-entered room dimensions.
var DimensionBounds = [3][2]float64{
	DimWidth:  {1, 10},
	DimHeight: {1, 5},
	DimDepth:  {1, 10},
}

// DimensionStep is the UI increment for room dimensions.
const DimensionStep = 0.1

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateTemplateName trims the name and rejects empty results.
func ValidateTemplateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyTemplateName
	}
	return name, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// ParseDimension parses user input for the room dimension at index and
// checks it against DimensionBounds.
func ParseDimension(index int, s string) (float64, error) {
	if index < DimWidth || index > DimDepth {
		return 0, ErrDimensionIndex
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, err
	}
	return CheckDimension(index, v)
}

// CheckDimension validates an already numeric dimension value.
func CheckDimension(index int, v float64) (float64, error) {
	if index < DimWidth || index > DimDepth {
		return 0, ErrDimensionIndex
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	b := DimensionBounds[index]
	if v < b[0] || v > b[1] {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, v, b[0], b[1])
	}
	return v, nil
}

// ParseCoordinate parses one position component in meters.
func ParseCoordinate(s string) (float64, error) {
	return parseFinite(s)
}

// ParseRotationDegrees parses a rotation entered in degrees.
func ParseRotationDegrees(s string) (float64, error) {
	return parseFinite(s)
}

// ParseScale parses a scale value. Out of range values are accepted here
// and clamped by the scene.
func ParseScale(s string) (float64, error) {
	return parseFinite(s)
}

// ValidateColor accepts #rrggbb hex colors.
func ValidateColor(c string) (string, error) {
	c = strings.TrimSpace(c)
	if !hexColor.MatchString(c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	return c, nil
}

// RGB decodes a #rrggbb color. Anything else, including named colors such
// as the fallback "grey", decodes to mid grey.
func RGB(c string) (r, g, b uint8) {
	c = strings.TrimSpace(c)
	if !hexColor.MatchString(c) {
		return 128, 128, 128
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 128, 128, 128
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}
