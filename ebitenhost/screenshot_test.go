package ebitenhost

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/vrtk"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-click", "after-click"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"a b/c", "a_b_c"},
		{"v1.2", "v1.2"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	}, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix[:12], want)
		}
	}
}

func TestScriptScreenshotQueues(t *testing.T) {
	g, err := NewGame(vrtk.NewUI(), RunConfig{
		Script:        []byte(`{"steps": [{"action": "screenshot", "label": "start"}]}`),
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.runner.Step(g.dispatcher)
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "start" {
		t.Errorf("screenshotQueue = %v, want [start]", g.screenshotQueue)
	}
}

func TestOverlayText(t *testing.T) {
	ui := vrtk.NewUI()
	b := vrtk.NewButton("ok")
	ui.AddWidget(b)
	d := vrtk.NewDispatcher(ui)
	d.InputRayPointer(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})

	text := overlayText(60, 60, d)
	for _, want := range []string{"FPS: 60.0", "hover: ok", "grab: -", "focus: -"} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay %q missing %q", text, want)
		}
	}
}
