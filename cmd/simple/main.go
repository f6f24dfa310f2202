// Simple shows a button, a draggable handle and a text field in an orbiting
// 3D view. Click the button to toggle its color, drag the handle to move it,
// click the text field and type. Middle-drag orbits the camera, the wheel
// zooms.
//
// Pass a JSON interaction script path as the only argument to replay it.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/vrtk"
	"github.com/phanxgames/vrtk/ebitenhost"
)

const (
	windowTitle = "vrtk simple"
	screenW     = 1024
	screenH     = 768
)

func main() {
	ui := vrtk.NewUI()

	ui.AddWidget(makeButton())
	ui.AddWidget(makeHandle())
	ui.AddWidget(makeTextField())

	cfg := ebitenhost.RunConfig{
		Title:  windowTitle,
		Width:  screenW,
		Height: screenH,
		Camera: ebitenhost.NewOrbitCamera(10),

		ShowOverlay: true,
	}
	if len(os.Args) > 1 {
		script, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		cfg.Script = script
	}
	if err := ebitenhost.Run(ui, cfg); err != nil {
		log.Fatal(err)
	}
}

// makeButton creates a button that toggles between two colors on activation.
func makeButton() *vrtk.Widget {
	primary := vrtk.Color{R: 0.9, G: 0.3, B: 0.3, A: 1}
	alt := vrtk.Color{R: 0.3, G: 0.7, B: 0.9, A: 1}

	bn := vrtk.NewButton("button")
	bn.Color = primary
	bn.SetPosition(mgl32.Vec3{0, 1.5, 0})

	toggled := false
	bn.OnActivate = func(ctx vrtk.PoseContext) {
		toggled = !toggled
		if toggled {
			bn.Color = alt
		} else {
			bn.Color = primary
		}
		fmt.Println("button activated")
	}
	return bn
}

// makeHandle creates a small capsule that follows the pointer while dragged.
func makeHandle() *vrtk.Widget {
	handle := vrtk.NewWidget("handle")
	handle.SetShape(vrtk.NewCapsule(mgl32.Vec3{0, -0.4, 0}, mgl32.Vec3{0, 0.4, 0}, 0.3))
	handle.Color = vrtk.Color{R: 0.3, G: 0.9, B: 0.5, A: 1}
	handle.SetPosition(mgl32.Vec3{-3, 0, 0})

	var start mgl32.Vec3
	handle.OnGrab = func(ctx vrtk.PoseContext) {
		start = handle.Position()
	}
	handle.OnDrag = func(ctx vrtk.PoseContext) {
		handle.SetPosition(start.Add(ctx.Pos.Sub(ctx.GrabPos)))
	}
	return handle
}

// makeTextField creates a text field that prints its contents on Enter.
func makeTextField() *vrtk.Widget {
	tf, w := vrtk.NewTextField("text")
	w.Color = vrtk.Color{R: 0.85, G: 0.85, B: 0.85, A: 1}
	w.SetPosition(mgl32.Vec3{0, -1.5, 0})

	tf.OnChange = func(tf *vrtk.TextField) {
		fmt.Printf("text: %q\n", tf.Text())
	}
	tf.OnSubmit = func(tf *vrtk.TextField) {
		fmt.Printf("submitted: %q\n", tf.Text())
		tf.SetText("")
	}
	return w
}
