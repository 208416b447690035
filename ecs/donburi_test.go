package ecs

import (
	"testing"

	"github.com/phanxgames/engine2000"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitSensorEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []engine2000.SensorEvent
	SensorEventType.Subscribe(world, func(w donburi.World, e engine2000.SensorEvent) {
		received = append(received, e)
	})

	sink.EmitSensorEvent(engine2000.SensorEvent{
		Kind:         engine2000.SensorBegin,
		SensorLayer:  "Trigger",
		VisitorLayer: "Player",
	})
	sink.EmitSensorEvent(engine2000.SensorEvent{
		Kind:       engine2000.SensorEnd,
		Suppressed: true,
	})

	// Events are queued until ProcessEvents.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	SensorEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Kind != engine2000.SensorBegin || e0.SensorLayer != "Trigger" || e0.VisitorLayer != "Player" {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Kind != engine2000.SensorEnd || !e1.Suppressed {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestAttachRoutesLevelEvents(t *testing.T) {
	level, err := engine2000.NewLevel(engine2000.NewInputState(), engine2000.NewLayerTable(), 640, 480, engine2000.DefaultPhysicsConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer level.Destroy()

	world := donburi.NewWorld()
	Attach(level, world)

	var received []engine2000.SensorEvent
	SensorEventType.Subscribe(world, func(w donburi.World, e engine2000.SensorEvent) {
		received = append(received, e)
	})

	box := func(x, y float64, kind engine2000.BodyKind, sensor bool) engine2000.Prefab {
		return engine2000.PrefabFunc(func(e *engine2000.Entity) {
			e.Transform().SetPosition(x, y)
			p := engine2000.AddComponent[engine2000.PhysicsComponent](e)
			p.CreateBody(e.Level().PhysicsWorld(), kind)
			if sensor {
				p.CreateSensorShape(40, 40)
			} else {
				p.CreateCollisionShape(10, 10)
			}
		})
	}
	trigger := level.CreateEntity(engine2000.LayerGame, box(0, 0, engine2000.BodyStatic, true))
	visitor := level.CreateEntity(engine2000.LayerGame, box(5, 5, engine2000.BodyDynamic, false))

	level.Update(1.0 / 60)
	SensorEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	if received[0].Sensor != trigger || received[0].Visitor != visitor {
		t.Errorf("event entities = %v, %v", received[0].Sensor, received[0].Visitor)
	}
}
