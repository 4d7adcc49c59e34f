package ecs

import (
	"github.com/phanxgames/shatter"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SequenceEventType is the Donburi event type for shatter sequence events.
var SequenceEventType = events.NewEventType[shatter.SequenceEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SequenceEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) shatter.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event shatter.SequenceEvent) {
	SequenceEventType.Publish(s.world, event)
}
