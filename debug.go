package vrtk

import (
	"fmt"
	"os"
)

// globalDebug enables invariant checks and stderr diagnostics. vrtk has no
// owning scene object, so the switch is package wide.
var globalDebug bool

// SetDebugMode enables or disables debug checks. In debug mode, tree
// operations on disposed widgets panic, suspicious tree shapes and dropped
// re-entrant input are reported on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return globalDebug
}

// debugWarn prints a warning line to stderr.
func debugWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[vrtk] warning: "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed widget is
// used in a tree operation.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("vrtk debug: %s on disposed widget %q", op, w.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(w *Widget) {
	depth := 0
	for p := w; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarn("tree depth %d exceeds %d (widget %q)", depth, debugMaxTreeDepth, w.Name)
	}
}

// debugCheckChildCount warns if a widget has more than debugMaxChildCount children.
const debugMaxChildCount = 1000

func debugCheckChildCount(w *Widget) {
	if len(w.children) > debugMaxChildCount {
		debugWarn("widget %q has %d children (threshold %d)",
			w.Name, len(w.children), debugMaxChildCount)
	}
}
