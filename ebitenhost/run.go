package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/vrtk"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window size. Defaults to 800x600 if zero.
	Width, Height int
	// Script is an optional JSON interaction script (see vrtk.LoadScript)
	// replayed through synthetic input.
	Script []byte
	// Camera overrides the default orbit camera.
	Camera *OrbitCamera
	// Background is the clear color. Defaults to a dark grey.
	Background color.Color
	// ShowOverlay prints frame rate and hover/grab/focus state on screen.
	ShowOverlay bool
	// ScreenshotDir receives PNGs from Screenshot and "screenshot" script
	// steps. Defaults to "screenshots".
	ScreenshotDir string
}

const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultDist   = 8
)

var defaultBackground = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}

// Game adapts a vrtk.UI to ebiten.Game. Each frame it replays queued
// synthetic input or polls the mouse and keyboard, advances animations and
// draws the widget tree.
type Game struct {
	ui         *vrtk.UI
	dispatcher *vrtk.Dispatcher
	camera     *OrbitCamera
	renderer   *Renderer
	runner     *vrtk.ScriptRunner
	input      poller
	background color.Color
	overlay    *overlay

	screenshotDir   string
	screenshotQueue []string

	width, height int
}

// NewGame creates a Game for ui. An invalid cfg.Script is reported as an error.
func NewGame(ui *vrtk.UI, cfg RunConfig) (*Game, error) {
	g := &Game{
		ui:         ui,
		dispatcher: vrtk.NewDispatcher(ui),
		camera:     cfg.Camera,
		renderer:   NewRenderer(),
		background: cfg.Background,
		width:      cfg.Width,
		height:     cfg.Height,

		screenshotDir: cfg.ScreenshotDir,
	}
	if cfg.ShowOverlay {
		g.overlay = &overlay{}
	}
	if g.screenshotDir == "" {
		g.screenshotDir = defaultScreenshotDir
	}
	if g.camera == nil {
		g.camera = NewOrbitCamera(defaultDist)
	}
	if g.background == nil {
		g.background = defaultBackground
	}
	if g.width <= 0 {
		g.width = defaultWidth
	}
	if g.height <= 0 {
		g.height = defaultHeight
	}
	if len(cfg.Script) > 0 {
		runner, err := vrtk.LoadScript(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("ebitenhost: %w", err)
		}
		runner.OnScreenshot = g.Screenshot
		g.runner = runner
	}
	return g, nil
}

// Dispatcher returns the dispatcher fed by the game's input.
func (g *Game) Dispatcher() *vrtk.Dispatcher {
	return g.dispatcher
}

// Camera returns the game's camera.
func (g *Game) Camera() *OrbitCamera {
	return g.camera
}

// ScriptDone reports whether the interaction script, if any, has finished.
func (g *Game) ScriptDone() bool {
	return g.runner == nil || g.runner.Done()
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if g.runner != nil {
		g.runner.Step(g.dispatcher)
	}
	if !g.dispatcher.ProcessInjected() {
		g.input.poll(g.dispatcher, g.camera, g.width, g.height)
	}
	g.ui.Update(dt)
	if g.overlay != nil {
		g.overlay.update(g.dispatcher)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.renderer.Begin(g.camera, g.width, g.height)
	g.ui.Draw(g.renderer)
	g.renderer.Flush(screen)
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens a window and runs ui until the window is closed.
func Run(ui *vrtk.UI, cfg RunConfig) error {
	g, err := NewGame(ui, cfg)
	if err != nil {
		return err
	}
	title := cfg.Title
	if title == "" {
		title = "vrtk"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
