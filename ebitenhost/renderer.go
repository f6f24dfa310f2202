package ebitenhost

import (
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/vrtk"
)

// Shading and highlight parameters.
const (
	ambient float32 = 0.35
	diffuse float32 = 0.65
)

var (
	lightDir = mgl32.Vec3{0.3, 1, 0.5}.Normalize()

	hoverTint  = vrtk.Color{R: 1, G: 0.9, B: 0.4, A: 1}
	dragTint   = vrtk.Color{R: 1, G: 0.5, B: 0.2, A: 1}
	activeTint = vrtk.Color{R: 0.4, G: 1, B: 0.5, A: 1}
	focusTint  = vrtk.Color{R: 0.4, G: 0.6, B: 1, A: 1}
)

// triangle is a projected, shaded triangle waiting to be sorted.
type triangle struct {
	pts   [3]mgl32.Vec2
	depth float32 // centroid distance from the eye, larger is farther
	color vrtk.Color
}

// Renderer collects widget meshes as flat-shaded triangles and draws them
// back to front with the painter's algorithm.
type Renderer struct {
	view, proj    mgl32.Mat4
	width, height int
	eye           mgl32.Vec3

	tris  []triangle
	verts []ebiten.Vertex
	inds  []uint32
	white *ebiten.Image
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Begin starts a frame seen through cam on a width x height target.
func (r *Renderer) Begin(cam *OrbitCamera, width, height int) {
	r.view = cam.View()
	r.proj = cam.Projection(width, height)
	r.eye = cam.Eye()
	r.width, r.height = width, height
	r.tris = r.tris[:0]
}

// DrawMesh implements vrtk.Renderer.
func (r *Renderer) DrawMesh(w *vrtk.Widget, m *vrtk.Mesh, xform mgl32.Mat4) {
	base := widgetColor(w)
	if base.A <= 0 {
		return
	}
	normalMat := xform.Inv().Transpose()
	mvp := r.proj.Mul4(r.view).Mul4(xform)

	for i := range m.NumTriangles() {
		a, b, c := m.Triangle(i)

		var tri triangle
		var centroid mgl32.Vec3
		visible := true
		for k, p := range [3]mgl32.Vec3{a, b, c} {
			sp, ok := projectToScreen(mvp, p, r.width, r.height)
			if !ok {
				visible = false
				break
			}
			tri.pts[k] = sp
			centroid = centroid.Add(mgl32.TransformCoordinate(p, xform))
		}
		if !visible {
			continue
		}
		centroid = centroid.Mul(1.0 / 3)
		// Two-sided lighting: face the normal toward the viewer.
		n := mgl32.TransformNormal(b.Sub(a).Cross(c.Sub(a)), normalMat)
		toEye := r.eye.Sub(centroid)
		if n.Dot(toEye) < 0 {
			n = n.Mul(-1)
		}
		tri.depth = toEye.Len()
		tri.color = shade(base, n)
		r.tris = append(r.tris, tri)
	}
}

// Flush sorts the collected triangles and draws them onto target.
func (r *Renderer) Flush(target *ebiten.Image) {
	if len(r.tris) == 0 {
		return
	}
	sortBackToFront(r.tris)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, t := range r.tris {
		base := uint32(len(r.verts))
		for _, p := range t.pts {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: p.X(), DstY: p.Y(),
				SrcX: 1, SrcY: 1,
				ColorR: t.color.R * t.color.A,
				ColorG: t.color.G * t.color.A,
				ColorB: t.color.B * t.color.A,
				ColorA: t.color.A,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}

	var triOp ebiten.DrawTrianglesOptions
	target.DrawTriangles32(r.verts, r.inds, r.whiteImage(), &triOp)
}

// whiteImage returns the 1x1 white source region used for solid fills.
func (r *Renderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(image.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

// projectToScreen maps a model-space point to pixel coordinates (y down).
// Points behind the camera are rejected.
func projectToScreen(mvp mgl32.Mat4, p mgl32.Vec3, width, height int) (mgl32.Vec2, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * float32(width),
		(1 - ndc.Y()) * 0.5 * float32(height),
	}, true
}

// widgetColor derives the fill color of w from its tint and animated state.
func widgetColor(w *vrtk.Widget) vrtk.Color {
	c := w.Color
	c = c.Lerp(hoverTint, 0.5*w.Hover().Value())
	c = c.Lerp(focusTint, 0.5*w.Focused().Value())
	c = c.Lerp(dragTint, 0.6*w.Dragged().Value())
	c = c.Lerp(activeTint, 0.4*w.Active().Value())
	c.A *= w.Visible().Value()
	return c
}

// shade applies a single directional light to c for a surface with normal n.
func shade(c vrtk.Color, n mgl32.Vec3) vrtk.Color {
	l := n.Len()
	k := ambient
	if l > 0 {
		k += diffuse * max(0, n.Mul(1/l).Dot(lightDir))
	}
	return vrtk.Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// sortBackToFront orders triangles farthest first. The sort is stable so
// coplanar triangles keep submission order.
func sortBackToFront(tris []triangle) {
	slices.SortStableFunc(tris, func(a, b triangle) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
}
