// Package ecs provides ECS adapters for engine2000's physics event stream.
//
// The primary adapter is [NewDonburiSink], which bridges sensor begin and
// end events from a level's physics world into a [Donburi] world as typed
// events. Subscribe to [SensorEventType] in your ECS systems to receive them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.Attach(level, world)
//	ecs.SensorEventType.Subscribe(world, onSensor)
//	// once per frame, after level.Update:
//	ecs.SensorEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
