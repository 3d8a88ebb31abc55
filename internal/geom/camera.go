package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// The camera works in normalized device coordinates. Passing this viewport
// to mgl64.Project and UnProject makes window coordinates equal NDC.
const (
	ndcOrigin = -1
	ndcSize   = 2
)

// Camera is a perspective camera orbiting a target point.
type Camera struct {
	Target   Vec3
	Distance float64
	Pitch    float64 // elevation above the horizontal, radians
	Yaw      float64 // rotation about +Y from the +Z axis, radians
	FOV      float64 // vertical field of view, degrees
	Aspect   float64 // width / height
	Near     float64
	Far      float64

	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64
}

// NewCamera returns the designer's default view: from (5, 5, 5) toward the
// origin with a 50 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Distance:    math.Sqrt(75),
		Pitch:       math.Asin(5 / math.Sqrt(75)),
		Yaw:         math.Pi / 4,
		FOV:         50,
		Aspect:      1,
		Near:        0.1,
		Far:         1000,
		MinDistance: 1,
		MaxDistance: 40,
		MinPitch:    0.05,
		MaxPitch:    math.Pi/2 - 0.01,
	}
}

// LookFrom places the camera at pos, orbiting target.
func (c *Camera) LookFrom(pos, target Vec3) {
	d := pos.Sub(target)
	c.Target = target
	c.Distance = d.Len()
	if c.Distance == 0 {
		return
	}
	c.Pitch = math.Asin(d.Y() / c.Distance)
	c.Yaw = math.Atan2(d.X(), d.Z())
}

// Position returns the camera position in world space: the point at
// Distance along +Z, raised by Pitch and turned by Yaw about the target.
func (c *Camera) Position() Vec3 {
	orbit := mgl64.HomogRotate3DY(c.Yaw).Mul4(mgl64.HomogRotate3DX(-c.Pitch))
	return c.Target.Add(mgl64.TransformCoordinate(Vec3{0, 0, c.Distance}, orbit))
}

func (c *Camera) aspect() float64 {
	if c.Aspect <= 0 || math.IsNaN(c.Aspect) {
		return 1
	}
	return c.Aspect
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), c.Target, Up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.aspect(), c.Near, c.Far)
}

// Ray returns the world ray through a point in normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) Ray(ndcX, ndcY float64) Ray {
	eye := c.Position()
	near, err := mgl64.UnProject(Vec3{ndcX, ndcY, 0}, c.View(), c.Projection(), ndcOrigin, ndcOrigin, ndcSize, ndcSize)
	if err != nil {
		return Ray{Origin: eye, Direction: c.Target.Sub(eye).Normalize()}
	}
	return Ray{Origin: eye, Direction: near.Sub(eye).Normalize()}
}

// Project maps a world point to normalized device coordinates. It reports
// false for points behind the near plane.
func (c *Camera) Project(p Vec3) (ndcX, ndcY float64, ok bool) {
	view := c.View()
	if depth := -view.Mul4x1(p.Vec4(1)).Z(); depth < c.Near {
		return 0, 0, false
	}
	win := mgl64.Project(p, view, c.Projection(), ndcOrigin, ndcOrigin, ndcSize, ndcSize)
	return win.X(), win.Y(), true
}

// Orbit rotates the camera around its target by pixel deltas.
func (c *Camera) Orbit(deltaX, deltaY float64) {
	const sensitivity = 0.005
	c.Yaw -= deltaX * sensitivity
	c.Pitch = mgl64.Clamp(c.Pitch+deltaY*sensitivity, c.MinPitch, c.MaxPitch)
}

// Zoom scales the orbit distance; factors below 1 move closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl64.Clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// PixelToNDC converts viewport pixel coordinates (origin top-left) to NDC.
func PixelToNDC(px, py, width, height float64) (float64, float64) {
	return 2*px/width - 1, 1 - 2*py/height
}

// NDCToPixel is the inverse of PixelToNDC.
func NDCToPixel(x, y, width, height float64) (float64, float64) {
	return (x + 1) / 2 * width, (1 - y) / 2 * height
}
