package vrtk

import "github.com/go-gl/mathgl/mgl32"

// --- Widget subtree queries ---

// hittable reports whether queries should consider w. Hidden widgets (logical
// state off) and disposed widgets are skipped together with their subtrees.
func (w *Widget) hittable() bool {
	return !w.disposed && w.visible.Get()
}

// Contains reports whether the world-space point lies inside the shape of w or
// of any of its visible descendants.
func (w *Widget) Contains(pt mgl32.Vec3) bool {
	if !w.hittable() {
		return false
	}
	if w.shape != nil {
		if _, ok := w.InvXform(); ok && w.shape.Contains(w.WorldToLocal(pt)) {
			return true
		}
	}
	for _, c := range w.children {
		if c.Contains(pt) {
			return true
		}
	}
	return false
}

// IntersectRay returns the nearest hit among w and its visible descendants.
// Ties keep the widget visited first (w before its children, children in
// order). The world-space ray is mapped into each widget's local space, so
// the returned T is measured in units of ray.Dir.
func (w *Widget) IntersectRay(ray Ray) (HitPoint, bool) {
	if !w.hittable() {
		return HitPoint{}, false
	}

	var nearest HitPoint
	found := false
	if w.shape != nil {
		if inv, ok := w.InvXform(); ok {
			if hit, ok := w.shape.IntersectRay(ray.Transform(inv)); ok {
				nearest = w.hitToWorld(hit)
				found = true
			}
		}
	}
	for _, c := range w.children {
		if hit, ok := c.IntersectRay(ray); ok && (!found || hit.T < nearest.T) {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// IntersectSphere returns the overlap between the world-space sphere and the
// shapes of w and its visible descendants whose surface is nearest to the
// sphere center. Shapes containing the center rank ahead of shapes that are
// only touched, deeper first. Ties keep the widget visited first. Under
// non-uniform scaling the sphere radius is mapped with the smallest scale
// axis, so the test may report overlaps slightly beyond the true sphere but
// never misses one.
func (w *Widget) IntersectSphere(sph Sphere) (HitPoint, bool) {
	hit, _, ok := w.nearestSphereHit(sph)
	return hit, ok
}

// nearestSphereHit returns the best overlap in w's subtree together with its
// rank: the distance from the sphere center to the hit surface, negated when
// the center lies inside the shape.
func (w *Widget) nearestSphereHit(sph Sphere) (HitPoint, float32, bool) {
	if !w.hittable() {
		return HitPoint{}, 0, false
	}

	var nearest HitPoint
	var rank float32
	found := false
	if w.shape != nil {
		if _, ok := w.InvXform(); ok {
			local := Sphere{Pos: w.WorldToLocal(sph.Pos), Rad: sph.Rad}
			if s := w.minWorldScale(); s > geomEpsilon {
				local.Rad = sph.Rad / s
			}
			if hit, ok := w.shape.IntersectSphere(local); ok {
				nearest = w.hitToWorld(hit)
				rank = nearest.Pos.Sub(sph.Pos).Len()
				if w.shape.Contains(local.Pos) {
					rank = -rank
				}
				found = true
			}
		}
	}
	for _, c := range w.children {
		if hit, r, ok := c.nearestSphereHit(sph); ok && (!found || r < rank) {
			nearest, rank = hit, r
			found = true
		}
	}
	return nearest, rank, found
}

// --- UI ---

// UI owns a set of top-level widgets and answers hit queries over all of them.
// Insertion order is the traversal and draw order.
type UI struct {
	widgets []*Widget
}

// NewUI creates an empty container.
func NewUI() *UI {
	return &UI{}
}

// AddWidget appends w. Adding nil or a widget already held is a no-op. A
// widget that is the child of another widget, or held by another UI, is
// detached from there first, since the container takes ownership.
func (u *UI) AddWidget(w *Widget) {
	if w == nil {
		return
	}
	if globalDebug {
		debugCheckDisposed(w, "AddWidget")
	}
	if w.ui == u {
		return
	}
	w.RemoveFromParent()
	if w.ui != nil {
		w.ui.RemoveWidget(w)
	}
	w.ui = u
	u.widgets = append(u.widgets, w)
}

// RemoveWidget removes w without disposing it. Returns false if w was not held.
func (u *UI) RemoveWidget(w *Widget) bool {
	if w == nil || w.ui != u {
		return false
	}
	for i, o := range u.widgets {
		if o == w {
			copy(u.widgets[i:], u.widgets[i+1:])
			u.widgets[len(u.widgets)-1] = nil
			u.widgets = u.widgets[:len(u.widgets)-1]
			w.ui = nil
			return true
		}
	}
	return false
}

// UI returns the container holding w as a top-level widget, or nil.
func (w *Widget) UI() *UI {
	return w.ui
}

// NumWidgets returns the number of top-level widgets.
func (u *UI) NumWidgets() int {
	return len(u.widgets)
}

// Widgets returns the top-level widgets. The returned slice MUST NOT be mutated by the caller.
func (u *UI) Widgets() []*Widget {
	return u.widgets
}

// Contains reports whether any widget contains the world-space point. Stops at
// the first match.
func (u *UI) Contains(pt mgl32.Vec3) bool {
	for _, w := range u.widgets {
		if w.Contains(pt) {
			return true
		}
	}
	return false
}

// IntersectRay returns the hit with the smallest T over all widgets. The first
// widget wins ties.
func (u *UI) IntersectRay(ray Ray) (HitPoint, bool) {
	var nearest HitPoint
	found := false
	for _, w := range u.widgets {
		if hit, ok := w.IntersectRay(ray); ok && (!found || hit.T < nearest.T) {
			nearest = hit
			found = true
		}
	}
	return nearest, found
}

// IntersectSphere returns the overlap nearest to the sphere center over all
// widgets, ranked as in Widget.IntersectSphere. The first widget wins ties.
func (u *UI) IntersectSphere(sph Sphere) (HitPoint, bool) {
	var nearest HitPoint
	var rank float32
	found := false
	for _, w := range u.widgets {
		if hit, r, ok := w.nearestSphereHit(sph); ok && (!found || r < rank) {
			nearest, rank = hit, r
			found = true
		}
	}
	return nearest, found
}

// Draw draws every widget in insertion order. No depth sorting is done; the
// renderer is expected to resolve visibility.
func (u *UI) Draw(r Renderer) {
	for _, w := range u.widgets {
		w.Draw(r)
	}
}

// Update advances state transitions of all widgets by dt seconds.
func (u *UI) Update(dt float32) {
	for _, w := range u.widgets {
		w.Update(dt)
	}
}

// Dispose disposes every widget and empties the container.
func (u *UI) Dispose() {
	for _, w := range u.widgets {
		w.dispose()
	}
	u.widgets = nil
}
