// Package ecs provides ECS adapters for vrtk.
package ecs

import (
	"github.com/phanxgames/vrtk"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries every event a vrtk Dispatcher emits: hover
// transitions, grab, drag, release and activate gestures from the ray or 3D
// pointer, and focus and key events for the focused widget. Events queue in
// the world until ProcessEvents runs, usually once per frame after the
// dispatcher has consumed that frame's input.
var InteractionEventType = events.NewEventType[vrtk.InteractionEvent]()

// donburiStore publishes dispatcher events into a world.
type donburiStore struct {
	world donburi.World
}

// NewDonburiStore returns an EntityStore for Dispatcher.SetEntityStore that
// publishes to InteractionEventType in world. The event's Widget pointer is
// forwarded as is; systems that only hold entity data should match on
// WidgetID instead.
func NewDonburiStore(world donburi.World) vrtk.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event vrtk.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// SubscribeWidget calls fn for events targeting the widget with ID widgetID.
// Every event has a target: key events go to the focused widget and are not
// emitted at all while nothing has focus.
func SubscribeWidget(world donburi.World, widgetID uint32, fn func(donburi.World, vrtk.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e vrtk.InteractionEvent) {
		if e.WidgetID == widgetID {
			fn(w, e)
		}
	})
}

// SubscribeGesture calls fn only for events whose Type is one of types, e.g.
// EventActivate and EventRelease to observe how grabs end.
func SubscribeGesture(world donburi.World, fn func(donburi.World, vrtk.InteractionEvent), types ...vrtk.EventType) {
	var mask uint32
	for _, t := range types {
		mask |= 1 << t
	}
	InteractionEventType.Subscribe(world, func(w donburi.World, e vrtk.InteractionEvent) {
		if mask&(1<<e.Type) != 0 {
			fn(w, e)
		}
	})
}
