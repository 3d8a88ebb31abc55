package geom

import "math"

// parallelEpsilon is the |dir.y| below which a ray counts as parallel to a
// horizontal plane.
const parallelEpsilon = 1e-9

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Extend grows the box to contain p.
func (b AABB) Extend(p Vec3) AABB {
	for i := range p {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// EmptyAABB returns a box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
// It reports false when the ray is parallel to the plane or the plane lies
// behind the origin.
func (r Ray) IntersectPlaneY(planeY float64) (Vec3, bool) {
	dy := r.Direction.Y()
	if math.Abs(dy) < parallelEpsilon || math.IsNaN(dy) {
		return Vec3{}, false
	}
	t := (planeY - r.Origin.Y()) / dy
	if t < 0 {
		return Vec3{}, false
	}
	p := r.At(t)
	p[1] = planeY
	return p, true
}

// IntersectAABB tests the ray against box using the slab method.
// Returns the entry distance, or the exit distance when the origin is inside.
func (r Ray) IntersectAABB(box AABB) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Direction[i]
		if d == 0 {
			if o < box.Min[i] || o > box.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[i] - o) / d
		t2 := (box.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
