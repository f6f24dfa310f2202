// Package ebitenhost runs a vrtk user interface in a desktop window using
// [Ebitengine].
//
// The mouse cursor is unprojected into a pointer ray through an orbiting
// camera; the left and right buttons map to the primary and secondary
// pointer buttons, the middle button orbits the camera and the wheel zooms.
// Widgets are drawn as flat-shaded triangles sorted back to front.
//
//	ui := vrtk.NewUI()
//	ui.AddWidget(vrtk.NewButton("ok"))
//	if err := ebitenhost.Run(ui, ebitenhost.RunConfig{Title: "demo"}); err != nil {
//		log.Fatal(err)
//	}
//
// RunConfig.Script replays a JSON interaction script instead of live input;
// its "screenshot" steps write PNGs to RunConfig.ScreenshotDir.
// RunConfig.ShowOverlay prints the frame rate and the hovered, grabbed and
// focused widgets.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
