package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/vrtk"
)

// Camera control sensitivity.
const (
	orbitSpeed float32 = 0.01 // radians per pixel
	zoomStep   float32 = 0.9  // distance factor per wheel notch
)

// keyMap translates ebiten keys to vrtk key codes. Printable characters are
// delivered separately through ebiten.AppendInputChars.
var keyMap = map[ebiten.Key]int{
	ebiten.KeyBackspace:    vrtk.KeyBackspace,
	ebiten.KeyEnter:        vrtk.KeyEnter,
	ebiten.KeyNumpadEnter:  vrtk.KeyEnter,
	ebiten.KeyEscape:       vrtk.KeyEsc,
	ebiten.KeyDelete:       vrtk.KeyDelete,
	ebiten.KeyHome:         vrtk.KeyHome,
	ebiten.KeyEnd:          vrtk.KeyEnd,
	ebiten.KeyArrowLeft:    vrtk.KeyLeft,
	ebiten.KeyArrowUp:      vrtk.KeyUp,
	ebiten.KeyArrowRight:   vrtk.KeyRight,
	ebiten.KeyArrowDown:    vrtk.KeyDown,
	ebiten.KeyPageUp:       vrtk.KeyPgUp,
	ebiten.KeyPageDown:     vrtk.KeyPgDown,
	ebiten.KeyShiftLeft:    vrtk.KeyLShift,
	ebiten.KeyShiftRight:   vrtk.KeyRShift,
	ebiten.KeyControlLeft:  vrtk.KeyLCtrl,
	ebiten.KeyControlRight: vrtk.KeyRCtrl,
	ebiten.KeyAltLeft:      vrtk.KeyLAlt,
	ebiten.KeyAltRight:     vrtk.KeyRAlt,
}

// mapKey returns the vrtk key code for k.
func mapKey(k ebiten.Key) (int, bool) {
	code, ok := keyMap[k]
	return code, ok
}

// mouseButtons lists the mouse buttons forwarded to the dispatcher. The
// middle button orbits the camera instead.
var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	bn vrtk.PointerButton
}{
	{ebiten.MouseButtonLeft, vrtk.ButtonPrimary},
	{ebiten.MouseButtonRight, vrtk.ButtonSecondary},
}

// currentModifiers reads the held modifier keys, matching the checks
// ebiten offers for either side of the keyboard.
func currentModifiers() vrtk.KeyModifiers {
	var mods vrtk.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= vrtk.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= vrtk.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= vrtk.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= vrtk.ModMeta
	}
	return mods
}

// poller feeds ebiten's mouse and keyboard state into a dispatcher once per
// frame.
type poller struct {
	keys  []ebiten.Key
	chars []rune

	orbiting     bool
	lastX, lastY int
}

func (p *poller) poll(d *vrtk.Dispatcher, cam *OrbitCamera, width, height int) {
	mx, my := ebiten.CursorPosition()
	p.pollCamera(cam, mx, my)

	origin, dir := cam.ScreenRay(float32(mx), float32(my), width, height)
	d.InputRayPointer(origin, dir)

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			d.InputButton(b.bn, true)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			d.InputButton(b.bn, false)
		}
	}

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if code, ok := mapKey(k); ok {
			d.InputKeyboard(code, true)
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if code, ok := mapKey(k); ok {
			d.InputKeyboard(code, false)
		}
	}
	d.SetModifiers(currentModifiers())

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, r := range p.chars {
		d.InputKeyboard(int(r), true)
		d.InputKeyboard(int(r), false)
	}
}

func (p *poller) pollCamera(cam *OrbitCamera, mx, my int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		p.orbiting = true
		p.lastX, p.lastY = mx, my
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		p.orbiting = false
	}
	if p.orbiting {
		cam.Orbit(-float32(mx-p.lastX)*orbitSpeed, float32(my-p.lastY)*orbitSpeed)
		p.lastX, p.lastY = mx, my
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		cam.Zoom(zoomStep)
	} else if wy < 0 {
		cam.Zoom(1 / zoomStep)
	}
}
