// Package geom provides the small amount of 3D math the designer needs on
// top of mathgl: rays, bounding boxes and a perspective orbit camera.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3D vector in meters.
type Vec3 = mgl64.Vec3

// Up is the world vertical.
var Up = Vec3{0, 1, 0}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// RotateY rotates v about the vertical axis by angle radians
// (right-handed, counter-clockwise looking down -Y).
func RotateY(v Vec3, angle float64) Vec3 {
	return mgl64.TransformCoordinate(v, mgl64.HomogRotate3DY(angle))
}

// IsFinite reports whether every component is a finite number.
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
