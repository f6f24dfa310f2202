package vrtk

import "github.com/go-gl/mathgl/mgl32"

// PoseContext carries the pointer pose delivered to grab, drag, release and
// activate callbacks.
type PoseContext struct {
	Widget    *Widget
	Pos       mgl32.Vec3
	Rot       mgl32.Quat
	GrabPos   mgl32.Vec3
	GrabRot   mgl32.Quat
	Button    PointerButton
	Modifiers KeyModifiers
}

// KeyContext carries a keyboard event delivered to the focused widget.
type KeyContext struct {
	Widget    *Widget
	Key       int
	Modifiers KeyModifiers
}

// DrawFunc renders a widget in place of its shape. ctx is the value passed to
// SetDrawFunc.
type DrawFunc func(w *Widget, r Renderer, ctx any)

// widgetIDCounter is a plain counter (no atomic; vrtk is single-threaded).
var widgetIDCounter uint32

func nextWidgetID() uint32 {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is a node of the 3D interface tree. It owns its children and its
// shape; the parent link is a plain back-reference.
type Widget struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Widget
	children []*Widget
	ui       *UI // container holding w as a top-level widget, not owning

	// Transform (local)
	pos   mgl32.Vec3
	rot   mgl32.Quat
	scale mgl32.Vec3

	// Computed lazily, see transform.go
	xform      mgl32.Mat4
	invXform   mgl32.Mat4
	invValid   bool
	xformDirty bool

	shape Shape

	drawFunc DrawFunc
	drawCtx  any

	// Interaction state
	visible AnimBool
	focused AnimBool
	hover   AnimBool
	dragged AnimBool
	active  AnimBool

	grabPos mgl32.Vec3
	grabRot mgl32.Quat
	dragPos mgl32.Vec3
	dragRot mgl32.Quat

	// FocusOnActivate makes the dispatcher move keyboard focus to this widget
	// when it is activated.
	FocusOnActivate bool

	// Metadata
	Color    Color
	UserData any

	// Per-widget callbacks, run after the built-in state update (nil = no-op).
	OnInputFocus func(w *Widget, focused bool)
	OnKeyPress   func(KeyContext)
	OnKeyRelease func(KeyContext)
	OnHover      func(w *Widget, over bool)
	OnGrab       func(PoseContext)
	OnDrag       func(PoseContext)
	OnRelease    func(PoseContext)
	OnActivate   func(PoseContext)

	disposed bool
}

// NewWidget creates a widget at the origin with identity rotation, unit scale,
// no shape and no children.
func NewWidget(name string) *Widget {
	return &Widget{
		ID:         nextWidgetID(),
		Name:       name,
		rot:        mgl32.QuatIdent(),
		scale:      mgl32.Vec3{1, 1, 1},
		grabRot:    mgl32.QuatIdent(),
		dragRot:    mgl32.QuatIdent(),
		xformDirty: true,
		visible:    NewAnimBool(true),
		Color:      ColorWhite,
	}
}

// --- Tree manipulation ---

// Parent returns the widget's parent, or nil.
func (w *Widget) Parent() *Widget {
	return w.parent
}

// AddChild appends c to this widget's children. If c already has another
// parent, or is a top-level widget of a UI, it is removed from there first;
// adding an existing child again is a no-op. Panics if c is nil or is an ancestor of w.
func (w *Widget) AddChild(c *Widget) {
	if c == nil {
		panic("vrtk: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(w, "AddChild (parent)")
		debugCheckDisposed(c, "AddChild (child)")
	}
	if c.parent == w {
		return
	}
	if isAncestor(c, w) {
		panic("vrtk: adding child would create a cycle")
	}
	if c.parent != nil {
		c.parent.removeChildByPtr(c)
	}
	if c.ui != nil {
		c.ui.RemoveWidget(c)
	}
	c.parent = w
	w.children = append(w.children, c)
	markSubtreeDirty(c)
	if globalDebug {
		debugCheckTreeDepth(c)
		debugCheckChildCount(w)
	}
}

// RemoveChild detaches c from this widget without disposing it. Returns false
// if c is not a child of w.
func (w *Widget) RemoveChild(c *Widget) bool {
	if c == nil || c.parent != w {
		return false
	}
	if !w.removeChildByPtr(c) {
		return false
	}
	c.parent = nil
	markSubtreeDirty(c)
	return true
}

// RemoveFromParent detaches this widget from its parent, if any.
func (w *Widget) RemoveFromParent() {
	if w.parent != nil {
		w.parent.RemoveChild(w)
	}
}

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int {
	return len(w.children)
}

// ChildAt returns the child at idx, or nil if idx is out of range.
func (w *Widget) ChildAt(idx int) *Widget {
	if idx < 0 || idx >= len(w.children) {
		return nil
	}
	return w.children[idx]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (w *Widget) Children() []*Widget {
	return w.children
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Widget) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from w.children without clearing child.parent.
func (w *Widget) removeChildByPtr(child *Widget) bool {
	for i, c := range w.children {
		if c == child {
			copy(w.children[i:], w.children[i+1:])
			w.children[len(w.children)-1] = nil
			w.children = w.children[:len(w.children)-1]
			return true
		}
	}
	return false
}

// --- Shape ---

// SetShape gives s to this widget. The previous shape is detached. If s was
// shown by another widget, that widget loses it.
func (w *Widget) SetShape(s Shape) {
	if w.shape != nil && w.shape != s {
		w.shape.SetWidget(nil)
	}
	if s != nil {
		if prev := s.Widget(); prev != nil && prev != w {
			prev.shape = nil
		}
		s.SetWidget(w)
	}
	w.shape = s
}

// Shape returns the widget's shape, or nil.
func (w *Widget) Shape() Shape {
	return w.shape
}

// --- Drawing ---

// SetDrawFunc replaces the default draw behavior (drawing the shape) with fn.
// Passing nil restores the default.
func (w *Widget) SetDrawFunc(fn DrawFunc, ctx any) {
	w.drawFunc = fn
	w.drawCtx = ctx
}

// shown reports whether the widget is visible or still fading out.
func (w *Widget) shown() bool {
	return w.visible.Get() || w.visible.Value() > 0
}

// Draw renders the widget and then its children, each with its own world
// transform. Hidden subtrees are skipped.
func (w *Widget) Draw(r Renderer) {
	if !w.shown() {
		return
	}
	if w.drawFunc != nil {
		w.drawFunc(w, r, w.drawCtx)
	} else if w.shape != nil {
		w.shape.Draw(r, w.Xform())
	}
	for _, c := range w.children {
		c.Draw(r)
	}
}

// Update advances the state transitions of this widget and its subtree.
func (w *Widget) Update(dt float32) {
	w.visible.Advance(dt)
	w.focused.Advance(dt)
	w.hover.Advance(dt)
	w.dragged.Advance(dt)
	w.active.Advance(dt)
	for _, c := range w.children {
		c.Update(dt)
	}
}

// --- Interaction state ---

// Visible returns the visibility property. Invisible widgets are neither drawn
// nor hit.
func (w *Widget) Visible() *AnimBool { return &w.visible }

// Focused returns the keyboard-focus property.
func (w *Widget) Focused() *AnimBool { return &w.focused }

// Hover returns the pointer-hover property.
func (w *Widget) Hover() *AnimBool { return &w.hover }

// Dragged returns the grabbed/dragged property.
func (w *Widget) Dragged() *AnimBool { return &w.dragged }

// Active returns the activation property.
func (w *Widget) Active() *AnimBool { return &w.active }

// GrabPose returns the pointer pose recorded by the last grab.
func (w *Widget) GrabPose() (mgl32.Vec3, mgl32.Quat) {
	return w.grabPos, w.grabRot
}

// DragPose returns the most recent pointer pose seen while grabbed.
func (w *Widget) DragPose() (mgl32.Vec3, mgl32.Quat) {
	return w.dragPos, w.dragRot
}

// --- Event handlers ---
//
// Each handler applies the built-in state change and then runs the matching
// user callback, if any.

func (w *Widget) handleInputFocus(focused bool) {
	w.focused.Set(focused)
	if w.OnInputFocus != nil {
		w.OnInputFocus(w, focused)
	}
}

func (w *Widget) handleKeyPress(ctx KeyContext) {
	if w.OnKeyPress != nil {
		w.OnKeyPress(ctx)
	}
}

func (w *Widget) handleKeyRelease(ctx KeyContext) {
	if w.OnKeyRelease != nil {
		w.OnKeyRelease(ctx)
	}
}

func (w *Widget) handleHover(over bool) {
	w.hover.Set(over)
	if w.OnHover != nil {
		w.OnHover(w, over)
	}
}

func (w *Widget) handleGrab(ctx PoseContext) {
	w.grabPos, w.grabRot = ctx.Pos, ctx.Rot
	w.dragPos, w.dragRot = ctx.Pos, ctx.Rot
	w.dragged.Set(true)
	w.active.Set(false)
	if w.OnGrab != nil {
		w.OnGrab(ctx)
	}
}

func (w *Widget) handleDrag(ctx PoseContext) {
	w.dragPos, w.dragRot = ctx.Pos, ctx.Rot
	if w.OnDrag != nil {
		w.OnDrag(ctx)
	}
}

func (w *Widget) handleRelease(ctx PoseContext) {
	w.dragPos, w.dragRot = ctx.Pos, ctx.Rot
	w.dragged.Set(false)
	if w.OnRelease != nil {
		w.OnRelease(ctx)
	}
}

func (w *Widget) handleActivate(ctx PoseContext) {
	w.dragged.Set(false)
	w.active.Set(true)
	if w.OnActivate != nil {
		w.OnActivate(ctx)
	}
}

// --- Disposal ---

// Dispose removes the widget from its parent or container, then disposes it,
// its shape and all descendants.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.RemoveFromParent()
	if w.ui != nil {
		w.ui.RemoveWidget(w)
	}
	w.dispose()
}

func (w *Widget) dispose() {
	w.disposed = true
	w.ID = 0
	for _, c := range w.children {
		c.parent = nil
		c.dispose()
	}
	w.children = nil
	w.parent = nil
	w.ui = nil
	if w.shape != nil {
		w.shape.SetWidget(nil)
		w.shape = nil
	}
	w.drawFunc = nil
	w.drawCtx = nil
	w.UserData = nil
	w.OnInputFocus = nil
	w.OnKeyPress = nil
	w.OnKeyRelease = nil
	w.OnHover = nil
	w.OnGrab = nil
	w.OnDrag = nil
	w.OnRelease = nil
	w.OnActivate = nil
}

// IsDisposed returns true if the widget has been disposed.
func (w *Widget) IsDisposed() bool {
	return w.disposed
}
