package model

import "errors"

var (
	ErrInvalidNumber     = errors.New("value is not a finite number")
	ErrOutOfRange        = errors.New("value out of range")
	ErrDimensionIndex    = errors.New("dimension index must be 0, 1 or 2")
	ErrEmptyTemplateName = errors.New("template name must not be empty")
	ErrInvalidColor      = errors.New("color must be #rrggbb")
	ErrUnknownFurniture  = errors.New("unknown furniture type")
)
