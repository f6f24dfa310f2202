package vrtk

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action  string      `json:"action"`
	Origin  [3]float32  `json:"origin,omitempty"`
	Dir     [3]float32  `json:"dir,omitempty"`
	Pos     [3]float32  `json:"pos,omitempty"`
	Rot     *[4]float32 `json:"rot,omitempty"` // x, y, z, w
	Button  int         `json:"button,omitempty"`
	Key     int         `json:"key,omitempty"`
	Pressed bool        `json:"pressed,omitempty"`
	Frames  int         `json:"frames,omitempty"`
	Label   string      `json:"label,omitempty"`
}

// script is the top-level JSON structure for an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input events across frames for automated
// interaction testing. Call Step once per frame, before
// Dispatcher.ProcessInjected.
type ScriptRunner struct {
	// OnScreenshot is called for "screenshot" steps. Hosts that can capture
	// frames set it; without it the step only consumes a frame.
	OnScreenshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
//
//	{"steps": [
//	  {"action": "ray", "origin": [0, 0, 5], "dir": [0, 0, -1]},
//	  {"action": "click", "origin": [0, 0, 5], "dir": [0, 0, -1]},
//	  {"action": "key", "key": 65, "pressed": true},
//	  {"action": "wait", "frames": 10},
//	  {"action": "screenshot", "label": "after-click"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "ray", "pose", "press", "release", "key", "click", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Button < 0 || st.Button >= maxButtons {
			return nil, fmt.Errorf("parse script: step %d: button %d out of range", i, st.Button)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, queueing the next step's events on d.
func (r *ScriptRunner) Step(d *Dispatcher) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if d.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "ray":
		d.InjectRay(vec3(st.Origin), vec3(st.Dir))
	case "pose":
		d.InjectPose(vec3(st.Pos), quat(st.Rot))
	case "press":
		d.InjectPress(PointerButton(st.Button))
	case "release":
		d.InjectRelease(PointerButton(st.Button))
	case "key":
		d.InjectKey(st.Key, st.Pressed)
	case "click":
		d.InjectClick(vec3(st.Origin), vec3(st.Dir))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if r.OnScreenshot != nil {
			r.OnScreenshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && d.Pending() == 0 {
		r.done = true
	}
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func quat(q *[4]float32) mgl32.Quat {
	if q == nil {
		return mgl32.QuatIdent()
	}
	return mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
}
