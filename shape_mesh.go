package vrtk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// triEpsilon rejects rays parallel to a triangle plane.
const triEpsilon = 1e-7

// MeshShape hit-tests against arbitrary triangle geometry. Containment assumes
// the mesh is closed.
type MeshShape struct {
	ShapeBase

	mesh        *Mesh
	bounds      AABox
	boundsDirty bool
}

// NewMeshShape creates a shape from m. The mesh is referenced, not copied;
// call InvalidateBounds after editing its vertices in place.
func NewMeshShape(m *Mesh) *MeshShape {
	s := &MeshShape{}
	s.SetMesh(m)
	return s
}

// Type returns ShapeMesh.
func (s *MeshShape) Type() ShapeType {
	return ShapeMesh
}

// SetMesh replaces the geometry.
func (s *MeshShape) SetMesh(m *Mesh) {
	s.mesh = m
	s.boundsDirty = true
}

// Mesh returns the geometry, possibly nil.
func (s *MeshShape) Mesh() *Mesh {
	return s.mesh
}

// InvalidateBounds forces the cached bounding box to be recomputed.
func (s *MeshShape) InvalidateBounds() {
	s.boundsDirty = true
}

func (s *MeshShape) empty() bool {
	return s.mesh == nil || s.mesh.NumTriangles() == 0
}

func (s *MeshShape) meshBounds() AABox {
	if s.boundsDirty {
		s.bounds = s.mesh.Bounds()
		s.boundsDirty = false
	}
	return s.bounds
}

// intersectTriangle is the Möller-Trumbore ray/triangle test. It returns the
// ray parameter of the hit.
func intersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triEpsilon && a < triEpsilon {
		return 0, false
	}

	f := 1 / a
	sv := ray.Origin.Sub(v0)
	u := f * sv.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := sv.Cross(edge1)
	v := f * ray.Dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t < geomEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectRay returns the nearest triangle hit along the ray. The normal is
// the geometric face normal, flipped to face the ray origin.
func (s *MeshShape) IntersectRay(ray Ray) (HitPoint, bool) {
	if s.empty() {
		return HitPoint{}, false
	}
	if _, ok := IntersectRayBox(ray, s.meshBounds()); !ok {
		return HitPoint{}, false
	}

	best := HitPoint{T: InvalidT}
	for i := 0; i < s.mesh.NumTriangles(); i++ {
		v0, v1, v2 := s.mesh.Triangle(i)
		t, ok := intersectTriangle(ray, v0, v1, v2)
		if !ok || (best.T >= 0 && t >= best.T) {
			continue
		}
		norm := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		if norm.Dot(ray.Dir) > 0 {
			norm = norm.Mul(-1)
		}
		best = HitPoint{T: t, Pos: ray.At(t), Norm: norm, Obj: s.widget}
	}
	if best.T < 0 {
		return HitPoint{}, false
	}
	return best, true
}

// Contains counts crossings of a ray cast from pt along +X; an odd count means
// the point is inside.
func (s *MeshShape) Contains(pt mgl32.Vec3) bool {
	if s.empty() {
		return false
	}
	b := s.meshBounds()
	for i := 0; i < 3; i++ {
		if pt[i] < b.Min[i] || pt[i] > b.Max[i] {
			return false
		}
	}

	// Slightly skewed direction keeps the ray off shared edges of
	// axis-aligned geometry.
	cast := Ray{Origin: pt, Dir: mgl32.Vec3{1, 1e-3, 2e-3}}
	crossings := 0
	for i := 0; i < s.mesh.NumTriangles(); i++ {
		v0, v1, v2 := s.mesh.Triangle(i)
		if _, ok := intersectTriangle(cast, v0, v1, v2); ok {
			crossings++
		}
	}
	return crossings%2 == 1
}

// IntersectSphere reports the surface point nearest to the sphere center when
// it lies within the sphere radius, or any overlap when the center is inside a
// closed mesh. T is InvalidT.
func (s *MeshShape) IntersectSphere(sph Sphere) (HitPoint, bool) {
	if s.empty() || sph.Rad < 0 {
		return HitPoint{}, false
	}

	var nearest mgl32.Vec3
	bestSq := float32(-1)
	for i := 0; i < s.mesh.NumTriangles(); i++ {
		v0, v1, v2 := s.mesh.Triangle(i)
		p := closestPointTriangle(sph.Pos, v0, v1, v2)
		d := sph.Pos.Sub(p)
		if dsq := d.Dot(d); bestSq < 0 || dsq < bestSq {
			bestSq = dsq
			nearest = p
		}
	}

	if bestSq > sph.Rad*sph.Rad && !s.Contains(sph.Pos) {
		return HitPoint{}, false
	}

	norm := mgl32.Vec3{0, 1, 0}
	if dist := math32.Sqrt(bestSq); dist > geomEpsilon {
		norm = sph.Pos.Sub(nearest).Mul(1 / dist)
	}
	return HitPoint{T: InvalidT, Pos: nearest, Norm: norm, Obj: s.widget}, true
}

// closestPointTriangle returns the point of triangle abc nearest to p, by
// Voronoi region classification.
func closestPointTriangle(p, a, b, c mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		return a.Add(ab.Mul(d1 / (d1 - d3)))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		return a.Add(ac.Mul(d2 / (d2 - d6)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// Draw submits the mesh.
func (s *MeshShape) Draw(r Renderer, xform mgl32.Mat4) {
	if r == nil || s.empty() {
		return
	}
	r.DrawMesh(s.widget, s.mesh, xform)
}
