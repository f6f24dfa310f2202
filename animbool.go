package vrtk

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var (
	// DefaultTransition is the time in seconds a property takes to go fully
	// from off to on (or back) unless overridden with SetTransition.
	DefaultTransition float32 = 0.15
	// DefaultEasing is the interpolation curve used for property transitions.
	DefaultEasing ease.TweenFunc = ease.OutQuad
)

// SetTransitionDefaults changes the duration and easing used by every
// AnimBool that has no explicit transition of its own. Transitions already in
// flight keep their settings.
func SetTransitionDefaults(duration float32, fn ease.TweenFunc) {
	DefaultTransition = duration
	if fn != nil {
		DefaultEasing = fn
	}
}

// AnimBool is a boolean with a smoothed visual counterpart. The logical state
// changes immediately on Set; Value eases toward 1 (on) or 0 (off) as Advance
// is called each frame.
//
// There is no global animation manager; the owner calls Advance itself
// (Widget.Update does this for the widget state properties).
type AnimBool struct {
	target bool
	value  float32
	tween  *gween.Tween

	custom   bool
	duration float32
	easing   ease.TweenFunc
}

// NewAnimBool returns a property settled at v.
func NewAnimBool(v bool) AnimBool {
	a := AnimBool{target: v}
	if v {
		a.value = 1
	}
	return a
}

// Get returns the logical state.
func (a *AnimBool) Get() bool {
	return a.target
}

// Value returns the transition factor in [0, 1].
func (a *AnimBool) Value() float32 {
	return a.value
}

// Animating reports whether a transition is in progress.
func (a *AnimBool) Animating() bool {
	return a.tween != nil
}

// SetTransition overrides the transition duration and easing for this
// property. A nil easing keeps the package default.
func (a *AnimBool) SetTransition(duration float32, fn ease.TweenFunc) {
	a.custom = true
	a.duration = duration
	a.easing = fn
}

func (a *AnimBool) transition() (float32, ease.TweenFunc) {
	d, fn := DefaultTransition, DefaultEasing
	if a.custom {
		d = a.duration
		if a.easing != nil {
			fn = a.easing
		}
	}
	return d, fn
}

// Set changes the logical state. A transition starts from the current value,
// scaled so that reversing halfway takes half the full duration. A
// non-positive duration snaps immediately.
func (a *AnimBool) Set(v bool) {
	if v == a.target {
		return
	}
	a.target = v

	var to float32
	if v {
		to = 1
	}
	dist := to - a.value
	if dist < 0 {
		dist = -dist
	}

	d, fn := a.transition()
	if d <= 0 || dist == 0 {
		a.value = to
		a.tween = nil
		return
	}
	a.tween = gween.New(a.value, to, d*dist, fn)
}

// Snap sets the logical state and jumps straight to its settled value.
func (a *AnimBool) Snap(v bool) {
	a.target = v
	a.tween = nil
	a.value = 0
	if v {
		a.value = 1
	}
}

// Advance moves the transition forward by dt seconds.
func (a *AnimBool) Advance(dt float32) {
	if a.tween == nil {
		return
	}
	val, finished := a.tween.Update(dt)
	a.value = val
	if finished {
		a.tween = nil
		a.value = 0
		if a.target {
			a.value = 1
		}
	}
}
