package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for bramble interaction
// events. Events are queued until ProcessEvents runs.
var InteractionEventType = events.NewEventType[bramble.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
func NewDonburiStore(world donburi.World) bramble.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bramble.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
