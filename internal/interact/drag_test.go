package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/model"
)

// topDown looks straight down from y=10; NDC maps 1:1 onto x and z.
type topDown struct{}

func (topDown) Ray(x, y float64) geom.Ray {
	return geom.Ray{Origin: geom.V3(x, 10, -y), Direction: geom.V3(0, -1, 0)}
}

// horizon always casts rays parallel to the floor.
type horizon struct{}

func (horizon) Ray(x, y float64) geom.Ray {
	return geom.Ray{Origin: geom.V3(0, 1, 0), Direction: geom.V3(1, 0, 0)}
}

// skyward casts rays upward from above the floor.
type skyward struct{}

func (skyward) Ray(x, y float64) geom.Ray {
	return geom.Ray{Origin: geom.V3(x, 1, -y), Direction: geom.V3(0, 1, 0)}
}

func TestProjectToGround(t *testing.T) {
	p, ok := ProjectToGround(topDown{}, 0.5, -0.25)
	require.True(t, ok)
	assert.Equal(t, geom.V3(0.5, 0, 0.25), p)

	_, ok = ProjectToGround(horizon{}, 0, 0)
	assert.False(t, ok)

	_, ok = ProjectToGround(skyward{}, 0, 0)
	assert.False(t, ok)
}

func TestProjectToGroundWithCamera(t *testing.T) {
	cam := geom.NewCamera()
	p, ok := ProjectToGround(cam, 0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0, p.X(), 1e-9)
	assert.InDelta(t, 0, p.Z(), 1e-9)
}

func TestDragPreservesOffset(t *testing.T) {
	d := NewDragController()
	itemPos := geom.V3(1, 0, -0.5)

	// grab 0.2m right of the item center
	require.True(t, d.Begin(model.Sofa, itemPos, topDown{}, 1.2, 0.5, 1))
	assert.Equal(t, Dragging, d.State())
	assert.Equal(t, model.Sofa, d.Item())

	pos, ok := d.Move(topDown{}, 2.2, -0.5)
	require.True(t, ok)
	// P + (G1 - G0) = (1,0,-0.5) + ((2.2,0,0.5) - (1.2,0,-0.5))
	assert.InDelta(t, 2.0, pos.X(), 1e-9)
	assert.Equal(t, 0.0, pos.Y())
	assert.InDelta(t, 0.5, pos.Z(), 1e-9)

	assert.True(t, d.End(1))
	assert.Equal(t, Idle, d.State())
}

func TestDragForcesFloorLevel(t *testing.T) {
	d := NewDragController()
	require.True(t, d.Begin(model.Chair, geom.V3(0, 0.3, 0), topDown{}, 0, 0, 1))
	pos, ok := d.Move(topDown{}, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, pos.Y())
}

func TestDragIgnoresSecondBegin(t *testing.T) {
	d := NewDragController()
	require.True(t, d.Begin(model.Chair, geom.Vec3{}, topDown{}, 0, 0, 1))
	assert.False(t, d.Begin(model.Table, geom.Vec3{}, topDown{}, 0, 0, 2))
	assert.Equal(t, model.Chair, d.Item())

	assert.False(t, d.End(2), "other pointer does not end the drag")
	assert.True(t, d.Active())
}

func TestDragBeginMissesFloor(t *testing.T) {
	d := NewDragController()
	assert.False(t, d.Begin(model.Chair, geom.Vec3{}, horizon{}, 0, 0, 1))
	assert.Equal(t, Idle, d.State())
}

func TestDragMoveParallelKeepsLastPosition(t *testing.T) {
	d := NewDragController()
	require.True(t, d.Begin(model.Chair, geom.V3(0, 0, 0), topDown{}, 0, 0, 1))
	first, ok := d.Move(topDown{}, 1, 1)
	require.True(t, ok)

	pos, ok := d.Move(horizon{}, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, first, pos)
}

func TestDragMoveAboveHorizonKeepsLastPosition(t *testing.T) {
	d := NewDragController()
	require.True(t, d.Begin(model.Sofa, geom.V3(0, 0, 0), topDown{}, 0, 0, 1))
	first, ok := d.Move(topDown{}, 0.5, 0.5)
	require.True(t, ok)

	pos, ok := d.Move(skyward{}, 0.5, 0.5)
	assert.False(t, ok, "the floor behind the ray is not a hit")
	assert.Equal(t, first, pos)
}

func TestDragCancel(t *testing.T) {
	d := NewDragController()
	require.True(t, d.Begin(model.Chair, geom.Vec3{}, topDown{}, 0, 0, 7))
	d.Cancel()
	assert.Equal(t, Idle, d.State())

	_, ok := d.Move(topDown{}, 1, 1)
	assert.False(t, ok, "moves after cancel are ignored")
	assert.False(t, d.End(7))
}
