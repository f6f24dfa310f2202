package vrtk

import "github.com/go-gl/mathgl/mgl32"

// Renderer is the render context supplied by the host. The core never talks to
// a graphics API directly; shapes hand their geometry to DrawMesh together with
// the owning widget's world transform.
type Renderer interface {
	DrawMesh(w *Widget, m *Mesh, xform mgl32.Mat4)
}

// Shape is geometry attached to a widget and used for hit testing. All queries
// are expressed in the widget's local coordinate space; Widget maps world-space
// queries in and out.
type Shape interface {
	Type() ShapeType

	// SetWidget records the widget displaying this shape. The reference does
	// not keep the widget alive.
	SetWidget(w *Widget)
	Widget() *Widget

	Contains(pt mgl32.Vec3) bool
	IntersectSphere(sph Sphere) (HitPoint, bool)
	IntersectRay(ray Ray) (HitPoint, bool)

	Draw(r Renderer, xform mgl32.Mat4)
}

// ShapeBase provides the widget back-reference and the no-op defaults shared by
// all shapes. Embed it in custom Shape implementations.
type ShapeBase struct {
	widget *Widget
}

// Type returns ShapeUnknown.
func (b *ShapeBase) Type() ShapeType {
	return ShapeUnknown
}

// SetWidget sets the non-owning widget reference.
func (b *ShapeBase) SetWidget(w *Widget) {
	b.widget = w
}

// Widget returns the widget displaying this shape, or nil.
func (b *ShapeBase) Widget() *Widget {
	return b.widget
}

// Draw does nothing.
func (b *ShapeBase) Draw(r Renderer, xform mgl32.Mat4) {}
