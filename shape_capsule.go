package vrtk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Capsule is a capsuloid shape: every point within Radius of the segment
// between its two endpoints. A capsule whose endpoints coincide or whose
// radius is not positive is degenerate and never hit.
type Capsule struct {
	ShapeBase

	end [2]mgl32.Vec3
	rad float32

	// derived from end, refreshed lazily
	axis         mgl32.Vec3
	axisLen      float32
	derivedDirty bool

	mesh       *Mesh
	meshDirty  bool
	usub, vsub int
}

// NewCapsule creates a capsule from a to b with radius rad.
func NewCapsule(a, b mgl32.Vec3, rad float32) *Capsule {
	c := &Capsule{usub: defaultCapsuleUSub, vsub: defaultCapsuleVSub}
	c.SetCapsule(a, b, rad)
	return c
}

// Type returns ShapeCapsuloid.
func (c *Capsule) Type() ShapeType {
	return ShapeCapsuloid
}

// SetCapsule replaces both endpoints and the radius.
func (c *Capsule) SetCapsule(a, b mgl32.Vec3, rad float32) {
	c.end[0] = a
	c.end[1] = b
	c.rad = rad
	c.derivedDirty = true
	c.meshDirty = true
}

// SetEnd replaces endpoint idx (0 or 1). Other indices are ignored.
func (c *Capsule) SetEnd(idx int, v mgl32.Vec3) {
	if idx < 0 || idx > 1 {
		return
	}
	c.end[idx] = v
	c.derivedDirty = true
	c.meshDirty = true
}

// SetRadius sets the capsule radius.
func (c *Capsule) SetRadius(r float32) {
	c.rad = r
	c.meshDirty = true
}

// SetTessellation sets the segment and ring counts used for the render mesh.
func (c *Capsule) SetTessellation(usub, vsub int) {
	c.usub = usub
	c.vsub = vsub
	c.meshDirty = true
}

// End returns endpoint idx (0 or 1).
func (c *Capsule) End(idx int) mgl32.Vec3 {
	return c.end[idx]
}

// Radius returns the capsule radius.
func (c *Capsule) Radius() float32 {
	return c.rad
}

// Axis returns End(1) - End(0).
func (c *Capsule) Axis() mgl32.Vec3 {
	c.updateDerived()
	return c.axis
}

func (c *Capsule) updateDerived() {
	if !c.derivedDirty {
		return
	}
	c.axis = c.end[1].Sub(c.end[0])
	c.axisLen = c.axis.Len()
	c.derivedDirty = false
}

func (c *Capsule) degenerate() bool {
	c.updateDerived()
	return c.axisLen < geomEpsilon || c.rad <= 0
}

// nearestAxisPoint returns the point on the central segment closest to pt.
func (c *Capsule) nearestAxisPoint(pt mgl32.Vec3) mgl32.Vec3 {
	t := mgl32.Clamp(ProjPointLineParam(pt, Ray{Origin: c.end[0], Dir: c.axis}), 0, 1)
	return c.end[0].Add(c.axis.Mul(t))
}

// Contains reports whether pt lies within Radius of the central segment.
func (c *Capsule) Contains(pt mgl32.Vec3) bool {
	if c.degenerate() {
		return false
	}
	d := pt.Sub(c.nearestAxisPoint(pt))
	return d.Dot(d) <= c.rad*c.rad
}

// IntersectSphere reports whether sph overlaps the capsule. This is exactly
// containment of the sphere center in the capsule grown by the sphere radius.
// The hit lies on the capsule surface facing the sphere center; T is InvalidT.
// A zero-radius sphere tests containment of its center.
func (c *Capsule) IntersectSphere(sph Sphere) (HitPoint, bool) {
	if c.degenerate() || sph.Rad < 0 {
		return HitPoint{}, false
	}
	near := c.nearestAxisPoint(sph.Pos)
	d := sph.Pos.Sub(near)
	reach := c.rad + sph.Rad
	dsq := d.Dot(d)
	if dsq > reach*reach {
		return HitPoint{}, false
	}

	var norm mgl32.Vec3
	if dist := math32.Sqrt(dsq); dist > geomEpsilon {
		norm = d.Mul(1 / dist)
	} else {
		// Center on the axis: any direction perpendicular to it will do.
		norm = cylinderBasis(c.axis.Mul(1 / c.axisLen)).Col(0)
	}
	return HitPoint{
		T:    InvalidT,
		Pos:  near.Add(norm.Mul(c.rad)),
		Norm: norm,
		Obj:  c.widget,
	}, true
}

// IntersectRay tests the ray against the sphere around End(0), then the sphere
// around End(1), then the cylindrical body, and returns the first of those that
// hits. This is not guaranteed to be the nearest surface when a ray grazes a cap
// and the body, which is acceptable for pointer picking.
func (c *Capsule) IntersectRay(ray Ray) (HitPoint, bool) {
	if c.degenerate() {
		return HitPoint{}, false
	}

	hit, ok := IntersectRaySphere(ray, Sphere{Pos: c.end[0], Rad: c.rad})
	if !ok {
		hit, ok = IntersectRaySphere(ray, Sphere{Pos: c.end[1], Rad: c.rad})
	}
	if !ok {
		hit, ok = IntersectRayCylinder(ray, Cylinder{End: c.end, Rad: c.rad})
	}
	if !ok {
		return HitPoint{}, false
	}
	hit.Obj = c.widget
	return hit, true
}

// Mesh returns the render mesh, regenerating it if the capsule changed since
// the last call.
func (c *Capsule) Mesh() *Mesh {
	if c.mesh == nil || c.meshDirty {
		c.mesh = GenCapsule(c.end[0], c.end[1], c.rad, c.usub, c.vsub)
		c.meshDirty = false
	}
	return c.mesh
}

// Draw submits the cached capsule mesh.
func (c *Capsule) Draw(r Renderer, xform mgl32.Mat4) {
	if r == nil {
		return
	}
	r.DrawMesh(c.widget, c.Mesh(), xform)
}
