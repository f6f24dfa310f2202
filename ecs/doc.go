// Package ecs provides ECS adapters for vrtk's interaction event system.
//
// The primary adapter is [NewDonburiStore], which bridges vrtk interaction
// events (hover, grab, drag, activate, focus, keys) into a [Donburi] world as
// typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	dispatcher.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
