package vrtk

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "ray", "origin": [0, 0, 10], "dir": [0, 0, -1]},
			{"action": "pose", "pos": [1, 2, 3], "rot": [0, 0, 0, 1]},
			{"action": "press", "button": 1},
			{"action": "key", "key": 65, "pressed": true},
			{"action": "wait", "frames": 3}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "ray" || vec3(runner.steps[0].Origin) != (mgl32.Vec3{0, 0, 10}) {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Rot == nil || quat(runner.steps[1].Rot) != mgl32.QuatIdent() {
		t.Error("step 1 rotation mismatch")
	}
	if runner.steps[2].Button != 1 || runner.steps[3].Key != 65 || !runner.steps[3].Pressed {
		t.Error("step 2/3 mismatch")
	}
	if runner.steps[4].Frames != 3 {
		t.Error("step 4 mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "teleport"}]}`, `unknown action "teleport"`},
		{"button range", `{"steps": [{"action": "press", "button": 8}]}`, "out of range"},
		{"negative button", `{"steps": [{"action": "press", "button": -1}]}`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestQuatDefaultsToIdentity(t *testing.T) {
	if quat(nil) != mgl32.QuatIdent() {
		t.Error("missing rotation should be identity")
	}
	q := quat(&[4]float32{1, 2, 3, 4})
	if q.W != 4 || q.V != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("quat = %v, want w=4 v=(1,2,3)", q)
	}
}

func TestRunnerStepClick(t *testing.T) {
	d, _, a, _ := newTestDispatcher()
	activated := false
	a.OnActivate = func(ctx PoseContext) { activated = true }

	runner, err := LoadScript([]byte(`{"steps": [{"action": "click", "origin": [0, 0, 10], "dir": [0, 0, -1]}]}`))
	if err != nil {
		t.Fatal(err)
	}

	// First step call: click queues ray+press+release.
	runner.Step(d)
	if d.Pending() != 3 {
		t.Fatalf("expected 3 queued events, got %d", d.Pending())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	// Pending injections hold the runner.
	runner.Step(d)
	if d.Pending() != 3 {
		t.Fatal("runner should not queue while events are pending")
	}

	for d.ProcessInjected() {
	}
	if !activated {
		t.Error("scripted click should activate the widget")
	}

	runner.Step(d)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStepWait(t *testing.T) {
	d := NewDispatcher(nil)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	frames := 0
	for !runner.Done() && frames < 10 {
		runner.Step(d)
		frames++
	}
	if frames != 4 {
		t.Errorf("wait 3 took %d Step calls to finish, want 4", frames)
	}
}

func TestRunnerFrameLoop(t *testing.T) {
	d, store, _, _ := newTestDispatcher()
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "ray", "origin": [0, 0, 10], "dir": [0, 0, -1]},
		{"action": "press"},
		{"action": "ray", "origin": [1, 0, 10], "dir": [0, 0, -1]},
		{"action": "release"},
		{"action": "ray", "origin": [0, 3, 10], "dir": [0, 0, -1]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// The host loop: Step then ProcessInjected, once per frame.
	for i := 0; i < 50 && !runner.Done(); i++ {
		runner.Step(d)
		d.ProcessInjected()
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	assertLog(t, store.log,
		"hover-enter:a", "grab:a", "drag:a", "release:a",
		"hover-leave:a", "hover-enter:b")
}

func TestRunnerScreenshotHook(t *testing.T) {
	d := NewDispatcher(nil)
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "before"},
		{"action": "wait", "frames": 1},
		{"action": "screenshot", "label": "after"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	runner.OnScreenshot = func(label string) { labels = append(labels, label) }
	for i := 0; i < 10 && !runner.Done(); i++ {
		runner.Step(d)
	}
	if len(labels) != 2 || labels[0] != "before" || labels[1] != "after" {
		t.Errorf("labels = %v, want [before after]", labels)
	}
}
