package vrtk

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultCapsuleUSub = 16 // segments around the axis
	defaultCapsuleVSub = 6  // rings per hemisphere
)

// Mesh is an indexed triangle list. Normals, when present, are per vertex.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
}

// NumTriangles returns the number of complete triangles in the index list.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Triangle returns the three corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// Bounds returns the axis-aligned bounding box of all vertices. An empty mesh
// yields a zero box.
func (m *Mesh) Bounds() AABox {
	if len(m.Vertices) == 0 {
		return AABox{}
	}
	box := AABox{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			box.Min[i] = math32.Min(box.Min[i], v[i])
			box.Max[i] = math32.Max(box.Max[i], v[i])
		}
	}
	return box
}

// GenCapsule tessellates a capsule running from a to b. usub is the number of
// segments around the axis (minimum 3) and vsub the number of rings in each
// hemispherical cap (minimum 1).
func GenCapsule(a, b mgl32.Vec3, rad float32, usub, vsub int) *Mesh {
	if usub < 3 {
		usub = 3
	}
	if vsub < 1 {
		vsub = 1
	}

	axis := b.Sub(a)
	height := axis.Len()
	basis := mgl32.Ident3()
	if height > geomEpsilon {
		basis = cylinderBasis(axis.Mul(1 / height))
	}

	const halfPi = float32(math.Pi / 2)
	rings := 2 * (vsub + 1)
	cols := usub + 1
	m := &Mesh{
		Vertices: make([]mgl32.Vec3, 0, rings*cols),
		Normals:  make([]mgl32.Vec3, 0, rings*cols),
		Indices:  make([]uint32, 0, (rings-1)*usub*6),
	}

	for ring := 0; ring < rings; ring++ {
		// Bottom hemisphere sits on a, top hemisphere on b; the band between
		// ring vsub and vsub+1 is the cylindrical body.
		var phi, yoff float32
		if ring <= vsub {
			phi = -halfPi + halfPi*float32(ring)/float32(vsub)
		} else {
			phi = halfPi * float32(ring-vsub-1) / float32(vsub)
			yoff = height
		}
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)

		for seg := 0; seg < cols; seg++ {
			theta := 2 * math.Pi * float32(seg) / float32(usub)
			n := mgl32.Vec3{cosPhi * math32.Cos(theta), sinPhi, cosPhi * math32.Sin(theta)}
			p := n.Mul(rad).Add(mgl32.Vec3{0, yoff, 0})
			m.Vertices = append(m.Vertices, a.Add(basis.Mul3x1(p)))
			m.Normals = append(m.Normals, basis.Mul3x1(n))
		}
	}

	for ring := 0; ring < rings-1; ring++ {
		for seg := 0; seg < usub; seg++ {
			i0 := uint32(ring*cols + seg)
			i1 := i0 + 1
			i2 := i0 + uint32(cols)
			i3 := i2 + 1
			m.Indices = append(m.Indices, i0, i2, i1, i1, i2, i3)
		}
	}
	return m
}
