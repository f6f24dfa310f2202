// Package vrtk is a retained-mode toolkit for 3D user interfaces in virtual
// and augmented reality.
//
// vrtk provides the widget tree, hit-testing shapes, animated interaction
// state and an input dispatcher that turns pointer rays or tracked 6DOF
// poses into hover, grab, drag and activate callbacks. Rendering is left to
// the host through the [Renderer] interface; package ebitenhost is a ready
// made host for desktop testing.
//
// # Quick start
//
//	ui := vrtk.NewUI()
//	btn := vrtk.NewButton("ok")
//	btn.OnActivate = func(ctx vrtk.PoseContext) { fmt.Println("pressed") }
//	ui.AddWidget(btn)
//
//	d := vrtk.NewDispatcher(ui)
//	// each frame:
//	d.InputRayPointer(origin, dir)
//	d.InputButton(vrtk.ButtonPrimary, pressed)
//	ui.Update(dt)
//	ui.Draw(renderer)
//
// The package-level input functions ([InputRayPointer], [InputButton],
// [InputKeyboard], ...) drive a process-wide dispatcher returned by
// [Default]; select its container with [SetActiveUI].
//
// # Widgets
//
// Every interactive element is a [Widget]. Widgets form trees; a child's
// position, rotation and scale are relative to its parent. A widget is hit
// through its [Shape] ([Capsule] or [MeshShape]), and a hit test on a widget
// covers its whole visible subtree.
//
// # Interaction
//
// The [Dispatcher] keeps three independent slots: the hovered widget, the
// grabbed widget and the keyboard focus. Pressing a button over a hovered
// widget grabs it, and every pointer move until the release is delivered as a
// drag. On release the widget is activated when the pointer is back within
// [DefaultDragThreshold] of where the grab started, and released otherwise.
//
// Widget state (visible, focused, hover, dragged, active) is exposed as
// [AnimBool] values that ease between 0 and 1 (via [gween]) so renderers can
// animate highlights.
//
// # ECS
//
// Set an [EntityStore] on the dispatcher to mirror every interaction as an
// [InteractionEvent]. Package vrtk/ecs adapts this to a [Donburi] world.
//
// # Automated testing
//
// [Dispatcher.InjectRay], [Dispatcher.InjectClick] and friends queue
// synthetic input consumed one event per frame by
// [Dispatcher.ProcessInjected]. [LoadScript] reads a JSON script of such
// steps.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package vrtk
