package ecs

import (
	"github.com/phanxgames/engine2000"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SensorEventType is the Donburi event type for physics sensor events.
// Subscribe to it in your ECS systems to observe every overlap the physics
// world dispatches, including begins suppressed by immunity.
var SensorEventType = events.NewEventType[engine2000.SensorEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Sensor
// events are published to SensorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) engine2000.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSensorEvent(event engine2000.SensorEvent) {
	SensorEventType.Publish(s.world, event)
}

// Attach routes level's sensor events into world.
func Attach(level *engine2000.Level, world donburi.World) {
	level.PhysicsWorld().SetEventSink(NewDonburiSink(world))
}
