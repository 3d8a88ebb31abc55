// Package interact turns pointer input on the 3D view into floor-plane
// positions for furniture items.
package interact

import (
	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
)

// RayCaster produces a world ray through a point in normalized device
// coordinates. *geom.Camera satisfies it.
type RayCaster interface {
	Ray(ndcX, ndcY float64) geom.Ray
}

// ProjectToGround intersects the ray through (ndcX, ndcY) with the floor
// plane y = 0. It reports false when the ray runs parallel to the floor or
// points above the horizon; callers keep the previous position then.
func ProjectToGround(cam RayCaster, ndcX, ndcY float64) (geom.Vec3, bool) {
	return cam.Ray(ndcX, ndcY).IntersectPlaneY(0)
}

// DragState is the state of a DragController.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "Dragging"
	}
	return "Idle"
}

// DragController tracks one floor-plane drag at a time. The offset between
// the grabbed ground point and the item's position stays constant for the
// whole drag so the item does not jump to the cursor.
type DragController struct {
	state     DragState
	item      model.FurnitureType
	pointerID int
	offset    geom.Vec3
	last      geom.Vec3
}

// NewDragController returns an idle controller.
func NewDragController() *DragController {
	return &DragController{}
}

func (d *DragController) State() DragState { return d.state }
func (d *DragController) Item() model.FurnitureType { return d.item }
func (d *DragController) Active() bool { return d.state == Dragging }

// Begin starts dragging item from its current position. It returns false
// while another drag is active or when the pointer ray misses the floor.
func (d *DragController) Begin(item model.FurnitureType, itemPos geom.Vec3, cam RayCaster, ndcX, ndcY float64, pointerID int) bool {
	if d.state == Dragging {
		return false
	}
	ground, ok := ProjectToGround(cam, ndcX, ndcY)
	if !ok {
		return false
	}
	d.state = Dragging
	d.item = item
	d.pointerID = pointerID
	d.offset = ground.Sub(itemPos)
	d.last = itemPos
	return true
}

// Move returns the item's new position for the pointer at (ndcX, ndcY).
// The vertical component is always 0. When the ray misses the floor the
// last position is returned with ok=false.
func (d *DragController) Move(cam RayCaster, ndcX, ndcY float64) (geom.Vec3, bool) {
	if d.state != Dragging {
		return geom.Vec3{}, false
	}
	ground, ok := ProjectToGround(cam, ndcX, ndcY)
	if !ok {
		return d.last, false
	}
	pos := ground.Sub(d.offset)
	pos[1] = 0
	d.last = pos
	return pos, true
}

// End finishes the drag started by pointerID. A different pointer's release
// is ignored.
func (d *DragController) End(pointerID int) bool {
	if d.state != Dragging || pointerID != d.pointerID {
		return false
	}
	d.reset()
	return true
}

// Cancel ends any drag, as happens when pointer capture is lost.
func (d *DragController) Cancel() {
	d.reset()
}

func (d *DragController) reset() {
	*d = DragController{}
}
