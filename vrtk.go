package vrtk

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default widget tint.
var ColorWhite = Color{1, 1, 1, 1}

// Lerp blends c toward o by f in [0, 1].
func (c Color) Lerp(o Color, f float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*f,
		G: c.G + (o.G-c.G)*f,
		B: c.B + (o.B-c.B)*f,
		A: c.A + (o.A-c.A)*f,
	}
}

// Ray is a half-line starting at Origin and extending along Dir.
// Dir does not have to be normalized; hit parameters are expressed in units
// of Dir, so a hit at t lies at Origin + Dir*t.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Transform returns the ray mapped through the affine matrix m. The direction
// is not renormalized, which keeps hit parameters identical in both spaces.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin: mgl32.TransformCoordinate(r.Origin, m),
		Dir:    mgl32.TransformNormal(r.Dir, m),
	}
}

// InvalidT is the ray parameter reported by queries that are not ray queries
// (sphere/sphere, sphere/capsule).
const InvalidT float32 = -1

// HitPoint is the result of an intersection query. Obj identifies the widget
// that was hit and is nil when the hit came from a shape that is not attached
// to any widget.
type HitPoint struct {
	T    float32
	Pos  mgl32.Vec3
	Norm mgl32.Vec3
	Obj  *Widget
}

// ShapeType discriminates concrete Shape implementations.
type ShapeType uint8

const (
	ShapeUnknown   ShapeType = iota // custom or base shape
	ShapeCapsuloid                  // swept sphere between two endpoints
	ShapeMesh                       // triangle soup
)

// String returns a human readable shape type name.
func (t ShapeType) String() string {
	switch t {
	case ShapeCapsuloid:
		return "capsuloid"
	case ShapeMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// PointerMode selects how the pointer is interpreted by the dispatcher.
type PointerMode uint8

const (
	PointerRay PointerMode = iota // ray unprojected from a 2D screen position
	Pointer3D                     // tracked 6DOF pose
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter EventType = iota // pointer started overlapping a widget
	EventHoverLeave                  // pointer stopped overlapping a widget
	EventGrab                        // button pressed over the hovered widget
	EventDrag                        // grabbed widget followed the pointer
	EventRelease                     // drag gesture ended
	EventActivate                    // grab released within the drag threshold
	EventFocus                       // widget gained keyboard focus
	EventBlur                        // widget lost keyboard focus
	EventKeyPress                    // key pressed while the widget had focus
	EventKeyRelease                  // key released while the widget had focus
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventGrab:
		return "grab"
	case EventDrag:
		return "drag"
	case EventRelease:
		return "release"
	case EventActivate:
		return "activate"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	}
	return "unknown"
}

// PointerButton identifies a pointer or controller button.
type PointerButton uint8

const (
	ButtonPrimary   PointerButton = iota // trigger / left mouse button
	ButtonSecondary                      // grip / right mouse button
	ButtonTertiary                       // middle mouse button
)

// maxButtons is the number of button slots tracked by the dispatcher.
const maxButtons = 8

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key codes. Values match X keysyms; printable keys use their character code.
const (
	KeyBackspace = '\b'
	KeyEnter     = '\r'
	KeyEsc       = 27
	KeyDelete    = 127
	KeyHome      = 0xff50
	KeyLeft      = 0xff51
	KeyUp        = 0xff52
	KeyRight     = 0xff53
	KeyDown      = 0xff54
	KeyPgUp      = 0xff55
	KeyPgDown    = 0xff56
	KeyEnd       = 0xff57

	KeyLShift = 0xffe1
	KeyRShift = 0xffe2
	KeyLCtrl  = 0xffe3
	KeyRCtrl  = 0xffe4
	KeyLAlt   = 0xffe9
	KeyRAlt   = 0xffea
)
