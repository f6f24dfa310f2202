package ebitenhost

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/vrtk"
)

// overlayInterval is how often, in ticks, the overlay text is rebuilt.
const overlayInterval = 30

// overlay prints frame rate and dispatcher state in the top-left corner.
type overlay struct {
	text  string
	ticks int
}

func (o *overlay) update(d *vrtk.Dispatcher) {
	if o.ticks > 0 {
		o.ticks--
		return
	}
	o.ticks = overlayInterval
	o.text = overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), d)
}

func (o *overlay) draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, o.text)
}

func overlayText(fps, tps float64, d *vrtk.Dispatcher) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f\n", fps, tps)
	fmt.Fprintf(&b, "hover: %s\n", widgetName(d.Hovered()))
	fmt.Fprintf(&b, "grab: %s\n", widgetName(d.Grabbed()))
	fmt.Fprintf(&b, "focus: %s", widgetName(d.KeyboardFocus()))
	return b.String()
}

func widgetName(w *vrtk.Widget) string {
	if w == nil {
		return "-"
	}
	return w.Name
}
