package vrtk

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const testEpsilon = 1e-4

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math32.Abs(got-want) > testEpsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	if got.Sub(want).Len() > testEpsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- Ray / sphere ---

func TestIntersectRaySphere(t *testing.T) {
	unit := Sphere{Rad: 1}
	tests := []struct {
		name    string
		ray     Ray
		sph     Sphere
		wantOK  bool
		wantT   float32
		wantPos mgl32.Vec3
		wantN   mgl32.Vec3
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, unit, true, 4, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
		{"unnormalized dir", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -2}}, unit, true, 2, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
		{"inside reports exit", Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, unit, true, 1, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"offset sphere", Ray{mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0, 0, 1}}, Sphere{mgl32.Vec3{3, 0, 5}, 2}, true, 3, mgl32.Vec3{3, 0, 3}, mgl32.Vec3{0, 0, -1}},
		{"miss", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}}, unit, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, unit, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"zero direction", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}}, unit, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"zero radius", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, Sphere{}, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectRaySphere(tt.ray, tt.sph)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			assertNear(t, "T", hit.T, tt.wantT)
			assertVec(t, "Pos", hit.Pos, tt.wantPos)
			assertVec(t, "Norm", hit.Norm, tt.wantN)
			if hit.Obj != nil {
				t.Error("Obj should be nil for a bare geometry query")
			}
		})
	}
}

func TestIntersectRaySpherePosMatchesT(t *testing.T) {
	ray := Ray{mgl32.Vec3{-2, 1, 4}, mgl32.Vec3{0.5, -0.2, -1.5}}
	hit, ok := IntersectRaySphere(ray, Sphere{mgl32.Vec3{-1, 0.5, 0}, 1.2})
	if !ok {
		t.Fatal("expected hit")
	}
	assertVec(t, "Pos", hit.Pos, ray.At(hit.T))
	assertNear(t, "|Norm|", hit.Norm.Len(), 1)
}

// --- Sphere / sphere ---

func TestIntersectSpheres(t *testing.T) {
	tests := []struct {
		name    string
		s1, s2  Sphere
		wantOK  bool
		wantPos mgl32.Vec3
		wantN   mgl32.Vec3
	}{
		{"overlap", Sphere{mgl32.Vec3{}, 1}, Sphere{mgl32.Vec3{1.5, 0, 0}, 1}, true, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}},
		{"touching", Sphere{mgl32.Vec3{}, 1}, Sphere{mgl32.Vec3{0, 0, 2}, 1}, true, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
		{"disjoint", Sphere{mgl32.Vec3{}, 1}, Sphere{mgl32.Vec3{3, 0, 0}, 1}, false, mgl32.Vec3{}, mgl32.Vec3{}},
		{"coincident centers", Sphere{mgl32.Vec3{1, 1, 1}, 2}, Sphere{mgl32.Vec3{1, 1, 1}, 1}, true, mgl32.Vec3{1, 3, 1}, mgl32.Vec3{0, 1, 0}},
		{"zero radius", Sphere{mgl32.Vec3{}, 0}, Sphere{mgl32.Vec3{}, 1}, false, mgl32.Vec3{}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectSpheres(tt.s1, tt.s2)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if hit.T != InvalidT {
				t.Errorf("T = %v, want InvalidT", hit.T)
			}
			assertVec(t, "Pos", hit.Pos, tt.wantPos)
			assertVec(t, "Norm", hit.Norm, tt.wantN)
		})
	}
}

func TestIntersectSpheresSymmetric(t *testing.T) {
	a := Sphere{mgl32.Vec3{0.3, -1, 2}, 0.8}
	b := Sphere{mgl32.Vec3{1, -0.5, 2.5}, 0.6}
	_, ok1 := IntersectSpheres(a, b)
	_, ok2 := IntersectSpheres(b, a)
	if ok1 != ok2 {
		t.Errorf("IntersectSpheres not symmetric: %v vs %v", ok1, ok2)
	}
}

// --- Ray / cylinder ---

func TestIntersectRayCylinder(t *testing.T) {
	upright := Cylinder{End: [2]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}}, Rad: 1}
	lying := Cylinder{End: [2]mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}}, Rad: 0.5}
	tests := []struct {
		name    string
		ray     Ray
		cyl     Cylinder
		wantOK  bool
		wantT   float32
		wantPos mgl32.Vec3
		wantN   mgl32.Vec3
	}{
		{"side", Ray{mgl32.Vec3{0, 0.5, 5}, mgl32.Vec3{0, 0, -1}}, upright, true, 4, mgl32.Vec3{0, 0.5, 1}, mgl32.Vec3{0, 0, 1}},
		{"x axis", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, lying, true, 4.5, mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 0, 1}},
		{"from inside", Ray{mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 0, 0}}, upright, true, 1, mgl32.Vec3{1, 0.5, 0}, mgl32.Vec3{1, 0, 0}},
		{"above top", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}}, upright, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"below bottom", Ray{mgl32.Vec3{0, -0.1, 5}, mgl32.Vec3{0, 0, -1}}, upright, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"parallel to axis", Ray{mgl32.Vec3{0, -5, 0}, mgl32.Vec3{0, 1, 0}}, upright, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"miss", Ray{mgl32.Vec3{3, 0.5, 5}, mgl32.Vec3{0, 0, -1}}, upright, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
		{"degenerate", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, Cylinder{Rad: 1}, false, 0, mgl32.Vec3{}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectRayCylinder(tt.ray, tt.cyl)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			assertNear(t, "T", hit.T, tt.wantT)
			assertVec(t, "Pos", hit.Pos, tt.wantPos)
			assertVec(t, "Norm", hit.Norm, tt.wantN)
		})
	}
}

func TestCylinderBasisOrthonormal(t *testing.T) {
	axes := []mgl32.Vec3{
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, -1},
		mgl32.Vec3{1, 2, 3}.Normalize(),
	}
	for _, axis := range axes {
		m := cylinderBasis(axis)
		assertVec(t, "Y column", m.Col(1), axis)
		for i := 0; i < 3; i++ {
			assertNear(t, "column length", m.Col(i).Len(), 1)
			for j := i + 1; j < 3; j++ {
				assertNear(t, "column dot", m.Col(i).Dot(m.Col(j)), 0)
			}
		}
	}
}

// --- Ray / box ---

func TestIntersectRayBox(t *testing.T) {
	box := AABox{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	tests := []struct {
		name   string
		ray    Ray
		wantOK bool
		wantT  float32
		wantN  mgl32.Vec3
	}{
		{"front face", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4, mgl32.Vec3{0, 0, 1}},
		{"left face", Ray{mgl32.Vec3{-3, 0.2, 0.1}, mgl32.Vec3{1, 0, 0}}, true, 2, mgl32.Vec3{-1, 0, 0}},
		{"from inside", Ray{mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}}, true, 1, mgl32.Vec3{0, 1, 0}},
		{"miss", Ray{mgl32.Vec3{0, 3, 5}, mgl32.Vec3{0, 0, -1}}, false, 0, mgl32.Vec3{}},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0, mgl32.Vec3{}},
		{"zero direction", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}}, false, 0, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := IntersectRayBox(tt.ray, box)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			assertNear(t, "T", hit.T, tt.wantT)
			assertVec(t, "Pos", hit.Pos, tt.ray.At(tt.wantT))
			assertVec(t, "Norm", hit.Norm, tt.wantN)
		})
	}
}

// --- Projection ---

func TestProjPointLineParam(t *testing.T) {
	tests := []struct {
		name string
		pt   mgl32.Vec3
		ray  Ray
		want float32
	}{
		{"on origin", mgl32.Vec3{}, Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, 0},
		{"at dir tip", mgl32.Vec3{2, 0, 0}, Ray{mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}}, 1},
		{"off line", mgl32.Vec3{3, 4, 0}, Ray{mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}}, 1.5},
		{"behind origin", mgl32.Vec3{-1, 1, 0}, Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, -1},
		{"offset origin", mgl32.Vec3{1, 5, 0}, Ray{mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, 2, 0}}, 2},
		{"zero direction", mgl32.Vec3{1, 2, 3}, Ray{mgl32.Vec3{}, mgl32.Vec3{}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "ProjPointLineParam", ProjPointLineParam(tt.pt, tt.ray), tt.want)
		})
	}
}

func TestClosestPointSegment(t *testing.T) {
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 0, 0}
	assertVec(t, "middle", closestPointSegment(mgl32.Vec3{1, 3, 0}, a, b), mgl32.Vec3{1, 0, 0})
	assertVec(t, "before a", closestPointSegment(mgl32.Vec3{-4, 1, 0}, a, b), a)
	assertVec(t, "past b", closestPointSegment(mgl32.Vec3{9, 0, 1}, a, b), b)
}

func TestRayTowardSphereCenterFacesRay(t *testing.T) {
	spheres := []Sphere{
		{mgl32.Vec3{}, 1},
		{mgl32.Vec3{3, -2, 1}, 0.5},
		{mgl32.Vec3{-10, 4, 7}, 3},
	}
	starts := []mgl32.Vec3{{0, 0, 20}, {15, 2, -3}, {-1, -9, 0.5}}
	for _, sph := range spheres {
		for _, start := range starts {
			ray := Ray{Origin: start, Dir: sph.Pos.Sub(start)}
			hit, ok := IntersectRaySphere(ray, sph)
			if !ok {
				t.Fatalf("ray from %v toward %v missed", start, sph.Pos)
			}
			if hit.T <= 0 {
				t.Errorf("T = %v, want > 0", hit.T)
			}
			if hit.Norm.Dot(ray.Dir) >= 0 {
				t.Errorf("normal %v does not face ray direction %v", hit.Norm, ray.Dir)
			}
		}
	}
}
