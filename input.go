package vrtk

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Constants ---

const (
	// DefaultDragThreshold is the largest distance (world units) between the
	// grab pose and the release pose for which a release still activates.
	DefaultDragThreshold float32 = 0.05
	// DefaultPointerRadius is the radius of the sphere used to pick
	// widgets in 3D pointer mode.
	DefaultPointerRadius float32 = 0.02
)

// pointerForward is the direction a pointer with identity rotation points at.
var pointerForward = mgl32.Vec3{0, 0, -1}

// --- ECS bridge types ---

// EntityStore is the interface for optional ECS integration. When set on a
// Dispatcher, every interaction callback is mirrored as an InteractionEvent.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	WidgetID uint32
	Widget   *Widget
	// Pose fields (hover, grab, drag, release, activate)
	Pos mgl32.Vec3
	Rot mgl32.Quat
	// Key field (key press / release)
	Key       int
	Button    PointerButton
	Modifiers KeyModifiers
}

// DispatchState is the pointer interaction state.
type DispatchState uint8

const (
	StateIdle     DispatchState = iota // pointer over nothing
	StateHovering                      // pointer over a widget, no button held on it
	StateGrabbing                      // a widget is grabbed
)

// grabState tracks the widget held between a button press and its release.
type grabState struct {
	widget *Widget
	button PointerButton
	pos    mgl32.Vec3 // grab-origin pose
	rot    mgl32.Quat
	dist   float32 // ray mode: distance from the ray origin to the grab point
}

// Dispatcher turns raw pointer, button and keyboard input into widget
// callbacks. Hover, grab and keyboard focus are three independent slots; one
// widget may be hovered and focused at the same time.
//
// A Dispatcher is not safe for concurrent use. Callbacks must not feed input
// back into the dispatcher that is calling them; such events are dropped.
type Dispatcher struct {
	ui    *UI
	store EntityStore

	mode     PointerMode
	ray      Ray
	pos      mgl32.Vec3
	rot      mgl32.Quat
	buttons  [maxButtons]bool
	mods     KeyModifiers
	hover    *Widget
	hoverHit HitPoint
	focus    *Widget
	grab     grabState

	dragThreshold float32
	rotThreshold  float32
	pointerRadius float32

	dispatching bool
	focusing    bool
	injectQueue []syntheticEvent
}

// NewDispatcher creates a dispatcher picking widgets from ui (may be nil and
// set later with SetUI).
func NewDispatcher(ui *UI) *Dispatcher {
	return &Dispatcher{
		ui:            ui,
		rot:           mgl32.QuatIdent(),
		dragThreshold: DefaultDragThreshold,
		pointerRadius: DefaultPointerRadius,
	}
}

// --- Configuration ---

// SetUI sets the container used for hit testing.
func (d *Dispatcher) SetUI(ui *UI) {
	d.ui = ui
}

// UI returns the container used for hit testing.
func (d *Dispatcher) UI() *UI {
	return d.ui
}

// SetEntityStore sets the optional ECS bridge. Nil disables it.
func (d *Dispatcher) SetEntityStore(store EntityStore) {
	d.store = store
}

// SetDragThreshold sets the largest grab-to-release distance that still
// counts as a click.
func (d *Dispatcher) SetDragThreshold(dist float32) {
	d.dragThreshold = dist
}

// DragThreshold returns the current drag threshold.
func (d *Dispatcher) DragThreshold() float32 {
	return d.dragThreshold
}

// SetRotationThreshold sets the largest grab-to-release rotation (radians)
// that still counts as a click. Zero disables the rotational test.
func (d *Dispatcher) SetRotationThreshold(rad float32) {
	d.rotThreshold = rad
}

// RotationThreshold returns the rotational drag threshold in radians.
func (d *Dispatcher) RotationThreshold() float32 {
	return d.rotThreshold
}

// SetPointerRadius sets the radius of the 3D pointer sphere.
func (d *Dispatcher) SetPointerRadius(r float32) {
	d.pointerRadius = r
}

// PointerRadius returns the radius of the 3D pointer sphere.
func (d *Dispatcher) PointerRadius() float32 {
	return d.pointerRadius
}

// --- State queries ---

// Mode returns the mode of the last pointer update.
func (d *Dispatcher) Mode() PointerMode {
	return d.mode
}

// PointerRay returns the last ray passed to InputRayPointer.
func (d *Dispatcher) PointerRay() Ray {
	return d.ray
}

// PointerPose returns the current pointer pose. In ray mode the position is
// the point under the pointer (the hovered surface, or the grab distance along
// the ray while grabbing) and the rotation turns -Z onto the ray direction.
func (d *Dispatcher) PointerPose() (mgl32.Vec3, mgl32.Quat) {
	return d.currentPose()
}

// ButtonPressed reports the last known state of button bn.
func (d *Dispatcher) ButtonPressed(bn PointerButton) bool {
	if int(bn) >= maxButtons {
		return false
	}
	return d.buttons[bn]
}

// Modifiers returns the modifier keys currently held.
func (d *Dispatcher) Modifiers() KeyModifiers {
	return d.mods
}

// SetModifiers overrides the modifier state, for hosts that report modifiers
// separately from key events.
func (d *Dispatcher) SetModifiers(mods KeyModifiers) {
	d.mods = mods
}

// Hovered returns the widget under the pointer, or nil.
func (d *Dispatcher) Hovered() *Widget {
	return d.hover
}

// Grabbed returns the grabbed widget, or nil.
func (d *Dispatcher) Grabbed() *Widget {
	return d.grab.widget
}

// KeyboardFocus returns the widget receiving keyboard input, or nil.
func (d *Dispatcher) KeyboardFocus() *Widget {
	return d.focus
}

// State returns the pointer interaction state.
func (d *Dispatcher) State() DispatchState {
	switch {
	case d.grab.widget != nil:
		return StateGrabbing
	case d.hover != nil:
		return StateHovering
	}
	return StateIdle
}

// --- Re-entrancy guard ---

func (d *Dispatcher) enter(op string) bool {
	if d.dispatching {
		if globalDebug {
			debugWarn("%s dropped: called from inside a widget callback", op)
		}
		return false
	}
	d.dispatching = true
	d.forgetDisposed()
	return true
}

func (d *Dispatcher) leave() {
	d.dispatching = false
}

// forgetDisposed clears slots that point at disposed widgets, without
// callbacks.
func (d *Dispatcher) forgetDisposed() {
	if d.hover != nil && d.hover.disposed {
		d.hover = nil
		d.hoverHit = HitPoint{}
	}
	if d.grab.widget != nil && d.grab.widget.disposed {
		d.grab = grabState{}
	}
	if d.focus != nil && d.focus.disposed {
		d.focus = nil
	}
}

// --- Keyboard ---

// keyModifier maps a modifier key to its mask bit.
func keyModifier(key int) KeyModifiers {
	switch key {
	case KeyLShift, KeyRShift:
		return ModShift
	case KeyLCtrl, KeyRCtrl:
		return ModCtrl
	case KeyLAlt, KeyRAlt:
		return ModAlt
	}
	return 0
}

// SetKeyboardFocus moves keyboard focus to w (nil clears it). The previous
// holder is told it lost focus before w is told it gained it. Setting the
// current holder again does nothing.
func (d *Dispatcher) SetKeyboardFocus(w *Widget) {
	if w == d.focus {
		return
	}
	if d.focusing {
		if globalDebug {
			debugWarn("SetKeyboardFocus dropped: called from a focus callback")
		}
		return
	}
	d.focusing = true
	defer func() { d.focusing = false }()

	old := d.focus
	d.focus = w
	if old != nil && !old.disposed {
		old.handleInputFocus(false)
		d.emit(EventBlur, old, mgl32.Vec3{}, mgl32.QuatIdent(), 0, 0)
	}
	if w != nil {
		w.handleInputFocus(true)
		d.emit(EventFocus, w, mgl32.Vec3{}, mgl32.QuatIdent(), 0, 0)
	}
}

// InputKeyboard delivers a key event to the keyboard-focus widget. Modifier
// keys also update the modifier mask.
func (d *Dispatcher) InputKeyboard(key int, pressed bool) {
	if !d.enter("InputKeyboard") {
		return
	}
	defer d.leave()

	if m := keyModifier(key); m != 0 {
		if pressed {
			d.mods |= m
		} else {
			d.mods &^= m
		}
	}

	w := d.focus
	if w == nil {
		return
	}
	ctx := KeyContext{Widget: w, Key: key, Modifiers: d.mods}
	if pressed {
		w.handleKeyPress(ctx)
		d.emit(EventKeyPress, w, mgl32.Vec3{}, mgl32.QuatIdent(), key, 0)
	} else {
		w.handleKeyRelease(ctx)
		d.emit(EventKeyRelease, w, mgl32.Vec3{}, mgl32.QuatIdent(), key, 0)
	}
}

// --- Pointer ---

// InputRayPointer updates the pointer from a ray, typically unprojected from
// a mouse position.
func (d *Dispatcher) InputRayPointer(origin, dir mgl32.Vec3) {
	if !d.enter("InputRayPointer") {
		return
	}
	defer d.leave()

	d.mode = PointerRay
	d.ray = Ray{Origin: origin, Dir: dir}
	d.pointerMoved()
}

// Input3DPointer updates the pointer from a tracked 6DOF pose.
func (d *Dispatcher) Input3DPointer(pos mgl32.Vec3, rot mgl32.Quat) {
	if !d.enter("Input3DPointer") {
		return
	}
	defer d.leave()

	d.mode = Pointer3D
	d.pos = pos
	d.rot = rot
	d.pointerMoved()
}

// InputButton delivers a button state change. Pressing over the hovered widget
// grabs it. Releasing the grab button activates the widget if the pointer is
// within the drag threshold of the grab origin, and ends the drag otherwise.
func (d *Dispatcher) InputButton(bn PointerButton, pressed bool) {
	if !d.enter("InputButton") {
		return
	}
	defer d.leave()

	if int(bn) >= maxButtons {
		return
	}
	d.buttons[bn] = pressed

	if pressed {
		if d.grab.widget == nil && d.hover != nil {
			d.beginGrab(bn)
		}
		return
	}
	if d.grab.widget != nil && bn == d.grab.button {
		d.endGrab()
	}
}

func (d *Dispatcher) pointerMoved() {
	if d.grab.widget != nil {
		pos, rot := d.currentPose()
		d.dragTo(pos, rot)
		return
	}
	d.updateHover(d.pick())
}

// pick runs a hit test for the current pointer against the active container.
func (d *Dispatcher) pick() (*Widget, HitPoint) {
	if d.ui == nil {
		return nil, HitPoint{}
	}
	var hit HitPoint
	var ok bool
	switch d.mode {
	case Pointer3D:
		hit, ok = d.ui.IntersectSphere(Sphere{Pos: d.pos, Rad: d.pointerRadius})
	default:
		hit, ok = d.ui.IntersectRay(d.ray)
	}
	if !ok {
		return nil, HitPoint{}
	}
	return hit.Obj, hit
}

// updateHover moves the hover slot to target, firing leave on the old widget
// before enter on the new one.
func (d *Dispatcher) updateHover(target *Widget, hit HitPoint) {
	d.hoverHit = hit
	if target == d.hover {
		return
	}
	old := d.hover
	d.hover = target
	pos, rot := d.currentPose()
	if old != nil && !old.disposed {
		old.handleHover(false)
		d.emit(EventHoverLeave, old, pos, rot, 0, 0)
	}
	if target != nil {
		target.handleHover(true)
		d.emit(EventHoverEnter, target, pos, rot, 0, 0)
	}
}

func (d *Dispatcher) beginGrab(bn PointerButton) {
	w := d.hover
	pos, rot := d.currentPose()
	d.grab = grabState{widget: w, button: bn, pos: pos, rot: rot}
	if d.mode == PointerRay {
		d.grab.dist = d.hoverHit.T * d.ray.Dir.Len()
	}
	w.handleGrab(d.poseContext(w, pos, rot))
	d.emit(EventGrab, w, pos, rot, 0, bn)
}

// dragTo forwards every pointer update made while grabbing, whatever the
// distance from the grab origin.
func (d *Dispatcher) dragTo(pos mgl32.Vec3, rot mgl32.Quat) {
	w := d.grab.widget
	w.handleDrag(d.poseContext(w, pos, rot))
	d.emit(EventDrag, w, pos, rot, 0, d.grab.button)
}

func (d *Dispatcher) endGrab() {
	w := d.grab.widget
	bn := d.grab.button
	pos, rot := d.currentPose()
	ctx := d.poseContext(w, pos, rot)
	// Only the pose at release counts: a gesture that wandered off and came
	// back is still a click.
	activate := !d.exceedsThreshold(pos, rot)
	d.grab = grabState{}

	if activate {
		w.handleActivate(ctx)
		d.emit(EventActivate, w, pos, rot, 0, bn)
		if w.FocusOnActivate && !w.disposed {
			d.SetKeyboardFocus(w)
		}
	} else {
		w.handleRelease(ctx)
		d.emit(EventRelease, w, pos, rot, 0, bn)
	}

	d.forgetDisposed()
	d.updateHover(d.pick())
}

// exceedsThreshold compares pos/rot against the grab-origin pose.
func (d *Dispatcher) exceedsThreshold(pos mgl32.Vec3, rot mgl32.Quat) bool {
	if pos.Sub(d.grab.pos).Len() > d.dragThreshold {
		return true
	}
	return d.rotThreshold > 0 && quatAngle(d.grab.rot, rot) > d.rotThreshold
}

// quatAngle returns the angle in radians of the rotation taking a to b.
func quatAngle(a, b mgl32.Quat) float32 {
	dot := math32.Abs(a.Normalize().Dot(b.Normalize()))
	if dot > 1 {
		dot = 1
	}
	return 2 * math32.Acos(dot)
}

// currentPose returns the pointer pose used for callbacks.
func (d *Dispatcher) currentPose() (mgl32.Vec3, mgl32.Quat) {
	if d.mode == Pointer3D {
		return d.pos, d.rot
	}
	l := d.ray.Dir.Len()
	if l < geomEpsilon {
		return d.ray.Origin, mgl32.QuatIdent()
	}
	dir := d.ray.Dir.Mul(1 / l)
	rot := mgl32.QuatBetweenVectors(pointerForward, dir)
	switch {
	case d.grab.widget != nil:
		return d.ray.Origin.Add(dir.Mul(d.grab.dist)), rot
	case d.hover != nil:
		return d.hoverHit.Pos, rot
	}
	return d.ray.Origin, rot
}

func (d *Dispatcher) poseContext(w *Widget, pos mgl32.Vec3, rot mgl32.Quat) PoseContext {
	return PoseContext{
		Widget:    w,
		Pos:       pos,
		Rot:       rot,
		GrabPos:   d.grab.pos,
		GrabRot:   d.grab.rot,
		Button:    d.grab.button,
		Modifiers: d.mods,
	}
}

// --- ECS bridge ---

func (d *Dispatcher) emit(t EventType, w *Widget, pos mgl32.Vec3, rot mgl32.Quat, key int, bn PointerButton) {
	if d.store == nil || w == nil {
		return
	}
	d.store.EmitEvent(InteractionEvent{
		Type:      t,
		WidgetID:  w.ID,
		Widget:    w,
		Pos:       pos,
		Rot:       rot,
		Key:       key,
		Button:    bn,
		Modifiers: d.mods,
	})
}

// --- Process-wide dispatcher ---

var std = NewDispatcher(nil)

// Default returns the process-wide dispatcher used by the package-level input
// functions.
func Default() *Dispatcher { return std }

// SetActiveUI sets the container the process-wide dispatcher picks from.
func SetActiveUI(ui *UI) { std.SetUI(ui) }

// SetDragThreshold sets the drag threshold of the process-wide dispatcher.
func SetDragThreshold(dist float32) { std.SetDragThreshold(dist) }

// DragThreshold returns the drag threshold of the process-wide dispatcher.
func DragThreshold() float32 { return std.DragThreshold() }

// SetKeyboardFocus moves keyboard focus on the process-wide dispatcher.
func SetKeyboardFocus(w *Widget) { std.SetKeyboardFocus(w) }

// KeyboardFocus returns the keyboard-focus widget of the process-wide dispatcher.
func KeyboardFocus() *Widget { return std.KeyboardFocus() }

// InputKeyboard feeds a key event to the process-wide dispatcher.
func InputKeyboard(key int, pressed bool) { std.InputKeyboard(key, pressed) }

// InputRayPointer feeds a ray pointer update to the process-wide dispatcher.
func InputRayPointer(origin, dir mgl32.Vec3) { std.InputRayPointer(origin, dir) }

// Input3DPointer feeds a 6DOF pointer update to the process-wide dispatcher.
func Input3DPointer(pos mgl32.Vec3, rot mgl32.Quat) { std.Input3DPointer(pos, rot) }

// InputButton feeds a button event to the process-wide dispatcher.
func InputButton(bn PointerButton, pressed bool) { std.InputButton(bn, pressed) }
