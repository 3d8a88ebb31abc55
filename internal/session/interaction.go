package session

import (
	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/scene3d"
)

// BeginDrag picks the placed item under the pointer, selects it and starts
// dragging. It returns the picked item, or false when nothing was hit or a
// drag is already in progress.
func (s *Session) BeginDrag(ndcX, ndcY float64, pointerID int) (model.FurnitureType, bool) {
	var picked model.FurnitureType
	var ok bool
	_ = s.update(func() (bool, error) {
		if s.drag.Active() {
			return false, nil
		}
		ray := s.camera.Ray(ndcX, ndcY)
		item, hit := scene3d.Pick(ray, scene3d.Build(s.scene))
		if !hit {
			return false, nil
		}
		p := s.scene.Placements.Get(item).Position
		if !s.drag.Begin(item, geom.Vec3(p), s.camera, ndcX, ndcY, pointerID) {
			return false, nil
		}
		s.scene.Select(item)
		picked, ok = item, true
		return true, nil
	})
	if ok {
		s.log.Debug("drag started", zap.String("item", string(picked)), zap.Int("pointer", pointerID))
	}
	return picked, ok
}

// DragTo moves the dragged item under the pointer. It returns false when
// no drag is active or the pointer ray misses the floor, in which case the
// item keeps its last position.
func (s *Session) DragTo(ndcX, ndcY float64) bool {
	var moved bool
	_ = s.update(func() (bool, error) {
		if !s.drag.Active() {
			return false, nil
		}
		pos, ok := s.drag.Move(s.camera, ndcX, ndcY)
		if !ok {
			return false, nil
		}
		s.scene.SetPosition(s.drag.Item(), model.Point3(pos))
		moved = true
		return true, nil
	})
	return moved
}

// EndDrag finishes the drag owned by pointerID.
func (s *Session) EndDrag(pointerID int) bool {
	var ended bool
	_ = s.update(func() (bool, error) {
		ended = s.drag.End(pointerID)
		return ended, nil
	})
	return ended
}

// CancelDrag abandons any drag, leaving the item where it was last moved.
func (s *Session) CancelDrag() {
	_ = s.update(func() (bool, error) {
		if !s.drag.Active() {
			return false, nil
		}
		s.drag.Cancel()
		return true, nil
	})
}

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Active()
}

// OrbitCamera rotates the 3D camera by pixel deltas.
func (s *Session) OrbitCamera(dx, dy float64) {
	_ = s.update(func() (bool, error) {
		s.camera.Orbit(dx, dy)
		return true, nil
	})
}

// ZoomCamera scales the camera distance.
func (s *Session) ZoomCamera(factor float64) {
	_ = s.update(func() (bool, error) {
		s.camera.Zoom(factor)
		return true, nil
	})
}

// SetViewport updates the camera aspect ratio for a width x height canvas.
func (s *Session) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	_ = s.update(func() (bool, error) {
		aspect := width / height
		if s.camera.Aspect == aspect {
			return false, nil
		}
		s.camera.Aspect = aspect
		return true, nil
	})
}

// ResetCamera restores the default 3D view.
func (s *Session) ResetCamera() {
	_ = s.update(func() (bool, error) {
		*s.camera = *geom.NewCamera()
		return true, nil
	})
}
