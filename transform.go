package vrtk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// singularEpsilon is the determinant below which a transform is treated as
// non-invertible (e.g. a zero scale component).
const singularEpsilon = 1e-12

// computeLocalXform composes the local matrix as T(pos) * R(rot) * S(scale):
// scale is applied first, then orientation, then translation.
func computeLocalXform(w *Widget) mgl32.Mat4 {
	t := mgl32.Translate3D(w.pos.X(), w.pos.Y(), w.pos.Z())
	r := w.rot.Normalize().Mat4()
	s := mgl32.Scale3D(w.scale.X(), w.scale.Y(), w.scale.Z())
	return t.Mul4(r).Mul4(s)
}

// updateXform recomputes the cached world matrix and its inverse if any
// transform on the path to the root changed since the last read.
func (w *Widget) updateXform() {
	if !w.xformDirty {
		return
	}
	local := computeLocalXform(w)
	if w.parent != nil {
		w.xform = w.parent.Xform().Mul4(local)
	} else {
		w.xform = local
	}
	det := w.xform.Det()
	w.invValid = math32.Abs(det) > singularEpsilon
	if w.invValid {
		w.invXform = w.xform.Inv()
	}
	w.xformDirty = false
}

// markSubtreeDirty sets xformDirty on w and all its descendants.
func markSubtreeDirty(w *Widget) {
	w.xformDirty = true
	for _, c := range w.children {
		markSubtreeDirty(c)
	}
}

// --- Transform property setters ---

// SetPosition sets the local position and invalidates the cached transform.
func (w *Widget) SetPosition(pos mgl32.Vec3) {
	w.pos = pos
	markSubtreeDirty(w)
}

// Position returns the local position.
func (w *Widget) Position() mgl32.Vec3 {
	return w.pos
}

// SetRotation sets the local rotation and invalidates the cached transform.
func (w *Widget) SetRotation(rot mgl32.Quat) {
	w.rot = rot
	markSubtreeDirty(w)
}

// Rotation returns the local rotation.
func (w *Widget) Rotation() mgl32.Quat {
	return w.rot
}

// SetScaling sets a per-axis local scale and invalidates the cached transform.
func (w *Widget) SetScaling(scale mgl32.Vec3) {
	w.scale = scale
	markSubtreeDirty(w)
}

// SetScalingUniform sets the same scale on all three axes.
func (w *Widget) SetScalingUniform(s float32) {
	w.SetScaling(mgl32.Vec3{s, s, s})
}

// Scaling returns the local scale.
func (w *Widget) Scaling() mgl32.Vec3 {
	return w.scale
}

// MarkDirty forces the transform to be recomputed on next read.
func (w *Widget) MarkDirty() {
	markSubtreeDirty(w)
}

// Xform returns the world transform: the parent's world transform times the
// local T * R * S matrix. Computed lazily and cached until a transform on the
// path to the root changes.
func (w *Widget) Xform() mgl32.Mat4 {
	w.updateXform()
	return w.xform
}

// LocalXform returns T(pos) * R(rot) * S(scale) without the parent chain.
func (w *Widget) LocalXform() mgl32.Mat4 {
	return computeLocalXform(w)
}

// InvXform returns the inverse world transform. ok is false when the
// transform is singular.
func (w *Widget) InvXform() (inv mgl32.Mat4, ok bool) {
	w.updateXform()
	return w.invXform, w.invValid
}

// --- Coordinate conversion ---

// LocalToWorld converts a local-space point to world space.
func (w *Widget) LocalToWorld(pt mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(pt, w.Xform())
}

// WorldToLocal converts a world-space point to local space. Points are
// returned unchanged when the transform is singular.
func (w *Widget) WorldToLocal(pt mgl32.Vec3) mgl32.Vec3 {
	inv, ok := w.InvXform()
	if !ok {
		return pt
	}
	return mgl32.TransformCoordinate(pt, inv)
}

// hitToWorld maps a local-space hit from this widget's shape back to world
// space. Ray hits keep their parameter because rays are mapped without
// renormalization.
func (w *Widget) hitToWorld(hit HitPoint) HitPoint {
	inv, _ := w.InvXform()
	hit.Pos = mgl32.TransformCoordinate(hit.Pos, w.Xform())
	n := mgl32.TransformNormal(hit.Norm, inv.Transpose())
	if l := n.Len(); l > geomEpsilon {
		hit.Norm = n.Mul(1 / l)
	}
	hit.Obj = w
	return hit
}

// minWorldScale returns the smallest axis scale of the world transform.
func (w *Widget) minWorldScale() float32 {
	m := w.Xform()
	s := m.Col(0).Vec3().Len()
	for i := 1; i < 3; i++ {
		s = math32.Min(s, m.Col(i).Vec3().Len())
	}
	return s
}
