package vrtk

import "github.com/go-gl/mathgl/mgl32"

// Default button geometry: a capsule along the local X axis.
const (
	buttonHalfLength float32 = 1
	buttonRadius     float32 = 0.5
)

// NewButton creates a capsule-shaped widget that reacts to hover, grab and
// activation. Attach behavior through OnActivate.
func NewButton(name string) *Widget {
	w := NewWidget(name)
	w.SetShape(NewCapsule(
		mgl32.Vec3{-buttonHalfLength, 0, 0},
		mgl32.Vec3{buttonHalfLength, 0, 0},
		buttonRadius,
	))
	return w
}
