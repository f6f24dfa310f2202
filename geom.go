package vrtk

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// geomEpsilon rejects near-tangent discriminants and roots at or behind
	// the ray origin.
	geomEpsilon = 1e-5
	// parallelEpsilon decides when the cylinder basis reference vector is
	// too close to the cylinder axis.
	parallelEpsilon = 1e-3
)

// Sphere is a sphere with center Pos and radius Rad.
type Sphere struct {
	Pos mgl32.Vec3
	Rad float32
}

// Cylinder is a finite cylinder without end caps, running from End[0] to End[1].
type Cylinder struct {
	End [2]mgl32.Vec3
	Rad float32
}

// AABox is an axis-aligned box.
type AABox struct {
	Min, Max mgl32.Vec3
}

// IntersectRaySphere intersects a ray with the surface of a sphere and returns
// the nearest hit in front of the ray origin. When the origin is inside the
// sphere the exit point is reported.
func IntersectRaySphere(ray Ray, sph Sphere) (HitPoint, bool) {
	a := ray.Dir.Dot(ray.Dir)
	if a < geomEpsilon || sph.Rad <= 0 {
		return HitPoint{}, false
	}
	oc := ray.Origin.Sub(sph.Pos)
	b := 2 * ray.Dir.Dot(oc)
	c := oc.Dot(oc) - sph.Rad*sph.Rad
	d := b*b - 4*a*c

	if d < geomEpsilon {
		return HitPoint{}, false
	}
	sqrtD := math32.Sqrt(d)

	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t1 < t0 {
		t0, t1 = t1, t0
	}

	if t0 < geomEpsilon {
		if t1 < geomEpsilon {
			return HitPoint{}, false
		}
		t0 = t1
	}

	pos := ray.At(t0)
	return HitPoint{
		T:    t0,
		Pos:  pos,
		Norm: pos.Sub(sph.Pos).Mul(1 / sph.Rad),
	}, true
}

// IntersectSpheres reports whether two spheres overlap. The hit lies on the
// surface of s1 in the direction of s2; T is InvalidT.
func IntersectSpheres(s1, s2 Sphere) (HitPoint, bool) {
	if s1.Rad <= 0 || s2.Rad <= 0 {
		return HitPoint{}, false
	}
	dir := s2.Pos.Sub(s1.Pos)
	dsq := dir.Dot(dir)
	sumRad := s1.Rad + s2.Rad
	if dsq > sumRad*sumRad {
		return HitPoint{}, false
	}

	norm := mgl32.Vec3{0, 1, 0}
	if dist := math32.Sqrt(dsq); dist > geomEpsilon {
		norm = dir.Mul(1 / dist)
	}
	return HitPoint{
		T:    InvalidT,
		Pos:  s1.Pos.Add(norm.Mul(s1.Rad)),
		Norm: norm,
	}, true
}

// cylinderBasis returns a rotation whose Y column is axis (unit length).
// The X and Z columns are derived from a reference vector that is not
// parallel to axis, then orthonormalized.
func cylinderBasis(axis mgl32.Vec3) mgl32.Mat3 {
	ref := mgl32.Vec3{0, 0, 1}
	if math32.Abs(axis.Dot(ref)) > 1-parallelEpsilon {
		ref = mgl32.Vec3{1, 0, 0}
	}
	vi := axis.Cross(ref).Normalize()
	vk := vi.Cross(axis)
	return mgl32.Mat3FromCols(vi, axis, vk)
}

// IntersectRayCylinder intersects a ray with the side of a finite cylinder.
// The ray is moved into a frame where the cylinder axis is +Y starting at the
// origin, the circle equation is solved in XZ and roots outside the caps are
// discarded.
func IntersectRayCylinder(ray Ray, cyl Cylinder) (HitPoint, bool) {
	axis := cyl.End[1].Sub(cyl.End[0])
	height := axis.Len()
	if height < geomEpsilon || cyl.Rad <= 0 {
		return HitPoint{}, false
	}

	basis := cylinderBasis(axis.Mul(1 / height))
	inv := basis.Transpose()
	lorig := inv.Mul3x1(ray.Origin.Sub(cyl.End[0]))
	ldir := inv.Mul3x1(ray.Dir)

	a := ldir.X()*ldir.X() + ldir.Z()*ldir.Z()
	if a < geomEpsilon {
		// Parallel to the axis: never crosses the side wall.
		return HitPoint{}, false
	}
	b := 2 * (ldir.X()*lorig.X() + ldir.Z()*lorig.Z())
	c := lorig.X()*lorig.X() + lorig.Z()*lorig.Z() - cyl.Rad*cyl.Rad
	d := b*b - 4*a*c
	if d < 0 {
		return HitPoint{}, false
	}
	sqrtD := math32.Sqrt(d)
	roots := [2]float32{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)}

	t := InvalidT
	for _, r := range roots {
		if r < geomEpsilon {
			continue
		}
		y := lorig.Y() + ldir.Y()*r
		if y < 0 || y > height {
			continue
		}
		t = r
		break
	}
	if t < 0 {
		return HitPoint{}, false
	}

	lpos := lorig.Add(ldir.Mul(t))
	lnorm := mgl32.Vec3{lpos.X() / cyl.Rad, 0, lpos.Z() / cyl.Rad}
	return HitPoint{
		T:    t,
		Pos:  ray.At(t),
		Norm: basis.Mul3x1(lnorm).Normalize(),
	}, true
}

// IntersectRayBox intersects a ray with an axis-aligned box using the slab
// method. The reported face is the one whose axis distance from the box center,
// relative to the half extent, is largest at the hit point.
func IntersectRayBox(ray Ray, box AABox) (HitPoint, bool) {
	if ray.Dir.Dot(ray.Dir) < geomEpsilon {
		return HitPoint{}, false
	}

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		o, d := ray.Origin[i], ray.Dir[i]
		if math32.Abs(d) < geomEpsilon {
			if o < box.Min[i] || o > box.Max[i] {
				return HitPoint{}, false
			}
			continue
		}
		t1 := (box.Min[i] - o) / d
		t2 := (box.Max[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return HitPoint{}, false
		}
	}

	if tmax < geomEpsilon {
		return HitPoint{}, false
	}
	t := tmin
	if t < geomEpsilon {
		t = tmax
	}

	pos := ray.At(t)
	center := box.Min.Add(box.Max).Mul(0.5)
	half := box.Max.Sub(box.Min).Mul(0.5)

	var norm mgl32.Vec3
	best := float32(-1)
	for i := 0; i < 3; i++ {
		if half[i] < geomEpsilon {
			continue
		}
		rel := (pos[i] - center[i]) / half[i]
		if math32.Abs(rel) > best {
			best = math32.Abs(rel)
			norm = mgl32.Vec3{}
			if rel < 0 {
				norm[i] = -1
			} else {
				norm[i] = 1
			}
		}
	}
	return HitPoint{T: t, Pos: pos, Norm: norm}, true
}

// ProjPointLineParam returns the parameter of the orthogonal projection of pt
// onto the line through ray.Origin along ray.Dir, in units of ray.Dir:
// 0 at the origin, 1 at Origin+Dir. A zero direction yields 0.
func ProjPointLineParam(pt mgl32.Vec3, ray Ray) float32 {
	dd := ray.Dir.Dot(ray.Dir)
	if dd < geomEpsilon*geomEpsilon {
		return 0
	}
	return pt.Sub(ray.Origin).Dot(ray.Dir) / dd
}

// closestPointSegment returns the point on segment [a, b] nearest to pt.
func closestPointSegment(pt, a, b mgl32.Vec3) mgl32.Vec3 {
	t := mgl32.Clamp(ProjPointLineParam(pt, Ray{Origin: a, Dir: b.Sub(a)}), 0, 1)
	return a.Add(b.Sub(a).Mul(t))
}
