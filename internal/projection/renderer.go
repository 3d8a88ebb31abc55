package projection

import (
	"errors"

	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/model"
)

// Views holds the three projections of a single scene value.
type Views struct {
	Top   View `json:"top"`
	Front View `json:"front"`
	Side  View `json:"side"`
}

// Get returns the view for plane.
func (v Views) Get(p Plane) View {
	switch p {
	case Front:
		return v.Front
	case Side:
		return v.Side
	default:
		return v.Top
	}
}

// Renderer produces views and logs the problems it tolerates.
type Renderer struct {
	scale float64
	log   *zap.Logger
}

// NewRenderer creates a renderer. A non-positive scale selects
// DefaultScaleFactor.
func NewRenderer(scale float64, log *zap.Logger) *Renderer {
	if scale <= 0 {
		scale = DefaultScaleFactor
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{scale: scale, log: log}
}

// ScaleFactor returns the pixels per meter in use.
func (r *Renderer) ScaleFactor() float64 {
	return r.scale
}

// Render projects s onto plane. It never fails: invalid rooms yield a
// view with a diagnostic.
func (r *Renderer) Render(plane Plane, s model.Scene) View {
	view, err := Project(plane, s, r.scale)
	if err != nil {
		var roomErr *InvalidRoomError
		if errors.As(err, &roomErr) {
			r.log.Warn("invalid room dimensions",
				zap.String("view", string(plane)),
				zap.Float64s("dimensions", roomErr.Dimensions[:]))
		} else {
			r.log.Error("projection failed", zap.String("view", string(plane)), zap.Error(err))
		}
		return view
	}
	for _, t := range view.Skipped {
		r.log.Warn("skipping item with invalid position",
			zap.String("view", string(plane)),
			zap.String("item", string(t)),
			zap.Float64s("position", positionSlice(s, t)))
	}
	return view
}

// RenderAll derives all three views from the same scene value.
func (r *Renderer) RenderAll(s model.Scene) Views {
	return Views{
		Top:   r.Render(Top, s),
		Front: r.Render(Front, s),
		Side:  r.Render(Side, s),
	}
}

func positionSlice(s model.Scene, t model.FurnitureType) []float64 {
	p := s.Placements.Get(t).Position
	return p[:]
}
