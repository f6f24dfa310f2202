package ebitenhost

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minOrbitDist float32 = 0.5
	maxOrbitPhi  float32 = 1.5 // just under pi/2
)

// OrbitCamera circles a target point. Theta is the azimuth around +Y and Phi
// the elevation, both in radians.
type OrbitCamera struct {
	Target mgl32.Vec3
	Dist   float32
	Theta  float32
	Phi    float32

	FovY      float32 // vertical field of view in radians
	Near, Far float32
}

// NewOrbitCamera returns a camera looking at the origin from dist units
// along +Z.
func NewOrbitCamera(dist float32) *OrbitCamera {
	return &OrbitCamera{
		Dist: dist,
		FovY: mgl32.DegToRad(50),
		Near: 0.1,
		Far:  100,
	}
}

// Eye returns the camera position.
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	sp, cp := math32.Sin(c.Phi), math32.Cos(c.Phi)
	st, ct := math32.Sin(c.Theta), math32.Cos(c.Theta)
	return c.Target.Add(mgl32.Vec3{st * cp, sp, ct * cp}.Mul(c.Dist))
}

// Orbit rotates the camera around its target. Elevation is clamped so the
// camera never flips over the pole.
func (c *OrbitCamera) Orbit(dTheta, dPhi float32) {
	c.Theta += dTheta
	c.Phi = mgl32.Clamp(c.Phi+dPhi, -maxOrbitPhi, maxOrbitPhi)
}

// Zoom scales the orbit distance by factor.
func (c *OrbitCamera) Zoom(factor float32) {
	c.Dist = max(c.Dist*factor, minOrbitDist)
}

// View returns the world-to-camera matrix.
func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the given viewport size.
func (c *OrbitCamera) Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ScreenRay returns the world-space ray through screen pixel (x, y), with y
// growing downward. The direction is normalized.
func (c *OrbitCamera) ScreenRay(x, y float32, width, height int) (origin, dir mgl32.Vec3) {
	view, proj := c.View(), c.Projection(width, height)
	wy := float32(height) - y
	near, err := mgl32.UnProject(mgl32.Vec3{x, wy, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return c.Eye(), c.Target.Sub(c.Eye()).Normalize()
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, wy, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return c.Eye(), c.Target.Sub(c.Eye()).Normalize()
	}
	return near, far.Sub(near).Normalize()
}
