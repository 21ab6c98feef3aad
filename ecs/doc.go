// Package ecs forwards bramble interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every resolved tap, drag and key event as an
// [InteractionEventType] event. Subscribe to it in your ECS systems:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
