package vrtk

import "github.com/go-gl/mathgl/mgl32"

type syntheticKind uint8

const (
	synthRay syntheticKind = iota
	synthPose
	synthButton
	synthKey
)

// syntheticEvent represents a single injected input event. Pointer events
// carry world-space data so scripts exercise exactly the same code path as a
// host feeding real device input.
type syntheticEvent struct {
	kind    syntheticKind
	origin  mgl32.Vec3 // ray origin, or 3D pointer position
	dir     mgl32.Vec3
	rot     mgl32.Quat
	button  PointerButton
	key     int
	pressed bool
}

// InjectRay queues a ray pointer update.
func (d *Dispatcher) InjectRay(origin, dir mgl32.Vec3) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthRay, origin: origin, dir: dir})
}

// InjectPose queues a 3D pointer update.
func (d *Dispatcher) InjectPose(pos mgl32.Vec3, rot mgl32.Quat) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthPose, origin: pos, rot: rot})
}

// InjectPress queues a button press.
func (d *Dispatcher) InjectPress(bn PointerButton) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthButton, button: bn, pressed: true})
}

// InjectRelease queues a button release.
func (d *Dispatcher) InjectRelease(bn PointerButton) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthButton, button: bn})
}

// InjectKey queues a key press or release.
func (d *Dispatcher) InjectKey(key int, pressed bool) {
	d.injectQueue = append(d.injectQueue, syntheticEvent{kind: synthKey, key: key, pressed: pressed})
}

// InjectClick is a convenience that queues a ray update followed by a press
// and a release of the primary button. Consumes three frames.
func (d *Dispatcher) InjectClick(origin, dir mgl32.Vec3) {
	d.InjectRay(origin, dir)
	d.InjectPress(ButtonPrimary)
	d.InjectRelease(ButtonPrimary)
}

// InjectDrag queues a full ray-mode drag: a ray update at the start ray, a
// press, frames-2 linearly interpolated ray updates and a release after a
// final update at the end ray. Minimum frames is 2.
func (d *Dispatcher) InjectDrag(fromOrigin, fromDir, toOrigin, toDir mgl32.Vec3, frames int) {
	if frames < 2 {
		frames = 2
	}
	d.InjectRay(fromOrigin, fromDir)
	d.InjectPress(ButtonPrimary)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps+1)
		d.InjectRay(lerpVec3(fromOrigin, toOrigin, t), lerpVec3(fromDir, toDir, t))
	}
	d.InjectRay(toOrigin, toDir)
	d.InjectRelease(ButtonPrimary)
}

// Pending returns the number of queued synthetic events.
func (d *Dispatcher) Pending() int {
	return len(d.injectQueue)
}

// ProcessInjected pops one event from the inject queue and feeds it through
// the regular input entry points. Returns true if an event was consumed, in
// which case the host should skip real device input for this frame.
func (d *Dispatcher) ProcessInjected() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	switch evt.kind {
	case synthRay:
		d.InputRayPointer(evt.origin, evt.dir)
	case synthPose:
		d.Input3DPointer(evt.origin, evt.rot)
	case synthButton:
		d.InputButton(evt.button, evt.pressed)
	case synthKey:
		d.InputKeyboard(evt.key, evt.pressed)
	}
	return true
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
