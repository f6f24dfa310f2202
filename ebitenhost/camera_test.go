package ebitenhost

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-3

func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < epsilon
}

func TestOrbitCameraEye(t *testing.T) {
	tests := []struct {
		name       string
		theta, phi float32
		want       mgl32.Vec3
	}{
		{"front", 0, 0, mgl32.Vec3{0, 0, 5}},
		{"right", math32.Pi / 2, 0, mgl32.Vec3{5, 0, 0}},
		{"above", 0, math32.Pi / 2, mgl32.Vec3{0, 5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera(5)
			c.Theta, c.Phi = tt.theta, tt.phi
			if got := c.Eye(); !vecNear(got, tt.want) {
				t.Errorf("Eye() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrbitCameraOrbitClampsElevation(t *testing.T) {
	c := NewOrbitCamera(5)
	c.Orbit(0.5, 10)
	if c.Phi != maxOrbitPhi {
		t.Errorf("Phi = %v, want %v", c.Phi, maxOrbitPhi)
	}
	if c.Theta != 0.5 {
		t.Errorf("Theta = %v, want 0.5", c.Theta)
	}
	c.Orbit(0, -20)
	if c.Phi != -maxOrbitPhi {
		t.Errorf("Phi = %v, want %v", c.Phi, -maxOrbitPhi)
	}
}

func TestOrbitCameraZoomFloor(t *testing.T) {
	c := NewOrbitCamera(1)
	c.Zoom(0.01)
	if c.Dist != minOrbitDist {
		t.Errorf("Dist = %v, want %v", c.Dist, minOrbitDist)
	}
	c.Zoom(4)
	if c.Dist != 4*minOrbitDist {
		t.Errorf("Dist = %v, want %v", c.Dist, 4*minOrbitDist)
	}
}

func TestScreenRayCenterHitsTarget(t *testing.T) {
	c := NewOrbitCamera(5)
	origin, dir := c.ScreenRay(400, 300, 800, 600)
	if !vecNear(dir, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("dir = %v, want (0,0,-1)", dir)
	}
	if origin.X() > epsilon || origin.Y() > epsilon || origin.X() < -epsilon || origin.Y() < -epsilon {
		t.Errorf("origin = %v, want on the Z axis", origin)
	}
	if origin.Z() <= 0 || origin.Z() > 5 {
		t.Errorf("origin.Z = %v, want between target and eye", origin.Z())
	}
}

func TestScreenRayTopLeftPointsUpLeft(t *testing.T) {
	c := NewOrbitCamera(5)
	_, dir := c.ScreenRay(0, 0, 800, 600)
	if dir.X() >= 0 || dir.Y() <= 0 {
		t.Errorf("dir = %v, want up and to the left", dir)
	}
}

func TestScreenRayRoundTrip(t *testing.T) {
	c := NewOrbitCamera(6)
	c.Orbit(0.4, 0.3)
	mvp := c.Projection(800, 600).Mul4(c.View())

	origin, dir := c.ScreenRay(250, 420, 800, 600)
	p := origin.Add(dir.Mul(3))
	sp, ok := projectToScreen(mvp, p, 800, 600)
	if !ok {
		t.Fatal("point on the ray projected behind the camera")
	}
	if math32.Abs(sp.X()-250) > 0.5 || math32.Abs(sp.Y()-420) > 0.5 {
		t.Errorf("projected = %v, want (250, 420)", sp)
	}
}
