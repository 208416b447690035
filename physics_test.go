package engine2000

import (
	"errors"
	"math"
	"testing"
)

func newTestWorld(t testing.TB) *PhysicsWorld {
	t.Helper()
	w, err := NewPhysicsWorld(DefaultPhysicsConfig(), NewLayerTable())
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPhysicsConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*PhysicsConfig)
	}{
		{"zero step", func(c *PhysicsConfig) { c.TimeStep = 0 }},
		{"nan step", func(c *PhysicsConfig) { c.TimeStep = math.NaN() }},
		{"inf step", func(c *PhysicsConfig) { c.TimeStep = math.Inf(1) }},
		{"zero substeps", func(c *PhysicsConfig) { c.SubSteps = 0 }},
		{"zero scale", func(c *PhysicsConfig) { c.VelocityScale = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPhysicsConfig()
			tt.mod(&cfg)
			if _, err := NewPhysicsWorld(cfg, NewLayerTable()); !errors.Is(err, ErrInvalidPhysicsConfig) {
				t.Errorf("err = %v, want ErrInvalidPhysicsConfig", err)
			}
		})
	}
	if _, err := NewPhysicsWorld(DefaultPhysicsConfig(), nil); !errors.Is(err, ErrInvalidPhysicsConfig) {
		t.Errorf("nil layers err = %v, want ErrInvalidPhysicsConfig", err)
	}
}

func TestBodyHandlesGoStale(t *testing.T) {
	w := newTestWorld(t)
	b := w.CreateBody(BodyDynamic, Vec2{10, 20}, nil)
	s := w.CreateBoxShape(b, ShapeOptions{Width: 4, Height: 4})
	if !w.IsBodyValid(b) || !w.IsShapeValid(s) {
		t.Fatal("fresh handles invalid")
	}
	if kind, ok := w.BodyKindOf(b); !ok || kind != BodyDynamic {
		t.Errorf("BodyKindOf = %v, %v, want Dynamic, true", kind, ok)
	}

	w.DestroyBody(b)
	if w.IsBodyValid(b) || w.IsShapeValid(s) {
		t.Error("handles valid after DestroyBody")
	}
	if w.BodyCount() != 0 || w.ShapeCount() != 0 {
		t.Errorf("counts = %d, %d, want 0, 0", w.BodyCount(), w.ShapeCount())
	}

	// The slot is reused with a new generation.
	b2 := w.CreateBody(BodyStatic, Vec2{}, nil)
	if w.IsBodyValid(b) {
		t.Error("stale handle valid after slot reuse")
	}
	if b2.index != b.index || b2.generation == b.generation {
		t.Errorf("reused handle = %v, old = %v", b2, b)
	}
	w.DestroyBody(b)
	if !w.IsBodyValid(b2) {
		t.Error("destroying a stale handle removed the live body")
	}
	if !(BodyHandle{}).IsZero() {
		t.Error("zero handle not IsZero")
	}
}

func TestShapeAABBAndLayer(t *testing.T) {
	w := newTestWorld(t)
	b := w.CreateBody(BodyKinematic, Vec2{5, 6}, nil)
	s := w.CreateBoxShape(b, ShapeOptions{Width: 10, Height: 20, Layer: PhysicsLayerEnemy})
	box, ok := w.ShapeAABB(s)
	if !ok || box != (Rect{5, 6, 10, 20}) {
		t.Errorf("ShapeAABB = %v, %v, want {5 6 10 20}, true", box, ok)
	}
	if !w.SetShapeLayer(s, PhysicsLayerPlayer) {
		t.Error("SetShapeLayer(Player) = false")
	}
	if w.SetShapeLayer(s, "Nope") {
		t.Error("SetShapeLayer accepted an unknown layer")
	}
	w.DestroyShape(s)
	if _, ok := w.ShapeAABB(s); ok {
		t.Error("ShapeAABB ok after DestroyShape")
	}
	if !w.IsBodyValid(b) {
		t.Error("DestroyShape removed the body")
	}
}

func TestVelocityScaling(t *testing.T) {
	w := newTestWorld(t)
	b := w.CreateBody(BodyDynamic, Vec2{0, 0}, nil)
	w.CreateBoxShape(b, ShapeOptions{Width: 1, Height: 1})
	w.SetBodyVelocity(b, Vec2{1, -0.5})

	if v := w.BodyVelocity(b); !approx(v.X, 60) || !approx(v.Y, -30) {
		t.Errorf("BodyVelocity = %v, want {60 -30}", v)
	}
	w.Step()
	if p := w.BodyPosition(b); !approx(p.X, 2) || !approx(p.Y, -1) {
		t.Errorf("position after one step = %v, want {2 -1}", p)
	}
	if w.Steps() != 1 {
		t.Errorf("Steps = %d, want 1", w.Steps())
	}
}

func TestStaticBodyIgnoresVelocity(t *testing.T) {
	w := newTestWorld(t)
	b := w.CreateBody(BodyStatic, Vec2{3, 3}, nil)
	w.SetBodyVelocity(b, Vec2{5, 5})
	w.Step()
	if p := w.BodyPosition(b); p != (Vec2{3, 3}) {
		t.Errorf("static body moved to %v", p)
	}
	w.SetBodyPosition(b, Vec2{7, 8})
	if p := w.BodyPosition(b); p != (Vec2{7, 8}) {
		t.Errorf("SetBodyPosition = %v, want {7 8}", p)
	}
}

func TestGravityAffectsDynamicBodies(t *testing.T) {
	w := newTestWorld(t)
	w.SetGravity(Vec2{0, 100})
	b := w.CreateBody(BodyDynamic, Vec2{}, nil)
	w.CreateBoxShape(b, ShapeOptions{Width: 1, Height: 1})
	w.Step()
	if v := w.BodyVelocity(b); v.Y <= 0 {
		t.Errorf("velocity after gravity step = %v, want positive Y", v)
	}
	if w.Gravity() != (Vec2{0, 100}) {
		t.Errorf("Gravity = %v", w.Gravity())
	}
}

func TestWorldDestroyInvalidatesHandles(t *testing.T) {
	w := newTestWorld(t)
	b := w.CreateBody(BodyDynamic, Vec2{}, nil)
	s := w.CreateBoxShape(b, ShapeOptions{Width: 1, Height: 1})
	w.Destroy()
	w.Destroy()
	if w.IsBodyValid(b) || w.IsShapeValid(s) {
		t.Error("handles valid after world Destroy")
	}
	w.Step()
	if h := w.CreateBody(BodyDynamic, Vec2{}, nil); !h.IsZero() {
		t.Error("CreateBody on destroyed world returned a live handle")
	}
}

// --- component ---

type sensorLog struct {
	begins, ends []*Entity
}

func (l *sensorLog) OnSensorBegin(other *Entity) { l.begins = append(l.begins, other) }
func (l *sensorLog) OnSensorEnd(other *Entity)   { l.ends = append(l.ends, other) }

func physicsEntity(l *Level, layer RenderLayer, pos Vec2, kind BodyKind, setup func(p *PhysicsComponent)) *Entity {
	return l.CreateEntity(layer, PrefabFunc(func(e *Entity) {
		e.Transform().SetPosition(pos.X, pos.Y)
		p := AddComponent[PhysicsComponent](e)
		p.CreateBody(e.Level().PhysicsWorld(), kind)
		setup(p)
	}))
}

func TestPhysicsComponentSensorBeginAndEnd(t *testing.T) {
	l := newTestLevel(t)
	listener := &sensorLog{}
	sensor := physicsEntity(l, LayerGame, Vec2{100, 100}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateSensorShape(50, 50)
		p.SetSensorListener(listener)
	})
	visitor := physicsEntity(l, LayerGame, Vec2{110, 110}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(10, 10)
	})

	l.Update(1.0 / 60)
	if len(listener.begins) != 1 || listener.begins[0] != visitor {
		t.Fatalf("begins = %v, want [visitor]", listener.begins)
	}
	sp := GetComponent[PhysicsComponent](sensor)
	if !sp.Overlapping() {
		t.Error("Overlapping = false after begin")
	}

	l.Update(1.0 / 60)
	if len(listener.begins) != 1 {
		t.Errorf("begins = %d after a second step, want 1", len(listener.begins))
	}

	GetComponent[PhysicsComponent](visitor).SetPosition(Vec2{400, 400})
	l.Update(1.0 / 60)
	if len(listener.ends) != 1 || listener.ends[0] != visitor {
		t.Errorf("ends = %v, want [visitor]", listener.ends)
	}
	if sp.Overlapping() {
		t.Error("Overlapping = true after end")
	}
}

func TestPhysicsComponentSensorEventsDisabled(t *testing.T) {
	l := newTestLevel(t)
	listener := &sensorLog{}
	physicsEntity(l, LayerGame, Vec2{0, 0}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateSensorShape(50, 50)
		p.SetLayer(PhysicsLayerTrigger)
		p.SetSensorListener(listener)
		p.DisableSensorEvents()
	})
	physicsEntity(l, LayerGame, Vec2{10, 10}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(10, 10)
	})
	l.Update(1.0 / 60)
	if len(listener.begins) != 0 {
		t.Errorf("begins = %d with events disabled on a Trigger sensor, want 0", len(listener.begins))
	}
}

func TestPhysicsComponentSensorEventsCrossMatrix(t *testing.T) {
	l := newTestLevel(t)
	listener := &sensorLog{}
	physicsEntity(l, LayerGame, Vec2{0, 0}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateSensorShape(50, 50)
		p.SetLayer(PhysicsLayerTrigger)
		p.SetSensorListener(listener)
	})
	physicsEntity(l, LayerGame, Vec2{10, 10}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(10, 10)
		p.SetLayer(PhysicsLayerPlayer)
	})
	l.Update(1.0 / 60)
	if len(listener.begins) != 1 {
		t.Errorf("begins = %d, want 1: sensor events bypass the layer matrix", len(listener.begins))
	}
}

func TestPhysicsComponentSensorPairsIgnored(t *testing.T) {
	l := newTestLevel(t)
	a, b := &sensorLog{}, &sensorLog{}
	physicsEntity(l, LayerGame, Vec2{0, 0}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateSensorShape(50, 50)
		p.SetSensorListener(a)
	})
	physicsEntity(l, LayerGame, Vec2{10, 10}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateSensorShape(10, 10)
		p.SetSensorListener(b)
	})
	l.Update(1.0 / 60)
	if len(a.begins)+len(b.begins) != 0 {
		t.Errorf("sensor-sensor begins = %d, %d, want 0, 0", len(a.begins), len(b.begins))
	}
}

func TestPhysicsComponentDuplicates(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
		p.CreateSensorShape(8, 8)
	})
	p := GetComponent[PhysicsComponent](e)
	body, collision, sensor := p.Body(), p.CollisionShape(), p.SensorShape()

	p.CreateBody(l.PhysicsWorld(), BodyStatic)
	p.CreateCollisionShape(16, 16)
	p.CreateSensorShape(16, 16)

	if p.Body() != body || p.CollisionShape() != collision || p.SensorShape() != sensor {
		t.Error("duplicate create replaced a handle")
	}
	if p.BodyKind() != BodyDynamic {
		t.Errorf("BodyKind = %v, want Dynamic", p.BodyKind())
	}
	if n := l.PhysicsWorld().ShapeCount(); n != 2 {
		t.Errorf("ShapeCount = %d, want 2", n)
	}
}

func TestPhysicsComponentSetLayer(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
	})
	p := GetComponent[PhysicsComponent](e)
	if p.Layer() != PhysicsLayerDefault {
		t.Errorf("default layer = %q, want Default", p.Layer())
	}
	p.SetLayer(PhysicsLayerEnemy)
	if p.Layer() != PhysicsLayerEnemy {
		t.Errorf("Layer = %q, want Enemy", p.Layer())
	}
	p.SetLayer("NotALayer")
	if p.Layer() != PhysicsLayerEnemy {
		t.Errorf("invalid SetLayer changed layer to %q", p.Layer())
	}
}

func TestPhysicsComponentVelocityRoundTrip(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
	})
	p := GetComponent[PhysicsComponent](e)
	p.SetVelocity(Vec2{1.5, -2})
	if v := p.Velocity(); !approx(v.X, 1.5) || !approx(v.Y, -2) {
		t.Errorf("Velocity = %v, want {1.5 -2}", v)
	}
}

func TestPhysicsComponentSyncsTransform(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{10, 10}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
		p.SetVelocity(Vec2{1, 0})
	})
	l.Update(1.0 / 60)
	if x := e.Position().X; !approx(x, 12) {
		t.Errorf("transform x = %v, want 12", x)
	}
}

func TestPhysicsComponentFromSprite(t *testing.T) {
	l := newTestLevel(t)
	e := l.CreateEntity(LayerGame, PrefabFunc(func(e *Entity) {
		AddComponent[Sprite](e).SetTexture(NewSolidTexture("s", 20, 10, ColorWhite))
		e.Transform().SetScale(2, 2)
		p := AddComponent[PhysicsComponent](e)
		p.CreateBody(e.Level().PhysicsWorld(), BodyKinematic)
		p.CreateCollisionShapeFromSprite()
		p.CreateSensorShapeFromSprite(0.5, nil)
	}))
	p := GetComponent[PhysicsComponent](e)
	w := l.PhysicsWorld()
	if box, _ := w.ShapeAABB(p.CollisionShape()); box.Width != 40 || box.Height != 20 {
		t.Errorf("collision box = %v, want 40x20", box)
	}
	if box, _ := w.ShapeAABB(p.SensorShape()); box.Width != 20 || box.Height != 10 {
		t.Errorf("sensor box = %v, want 20x10", box)
	}
	if !p.SensorEventsEnabled() {
		t.Error("sensor events not enabled")
	}
}

func TestPhysicsComponentFromSpriteWithoutSprite(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShapeFromSprite()
	})
	p := GetComponent[PhysicsComponent](e)
	if box, ok := l.PhysicsWorld().ShapeAABB(p.CollisionShape()); !ok || box.Width != 1 || box.Height != 1 {
		t.Errorf("fallback box = %v, %v, want 1x1", box, ok)
	}
}

func TestPhysicsComponentImmunityExpires(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
		p.SetImmunity(0.05)
	})
	p := GetComponent[PhysicsComponent](e)
	l.Update(0.03)
	if !p.Immune() {
		t.Error("immunity expired after 0.03s")
	}
	l.Update(0.03)
	if p.Immune() {
		t.Error("immunity still active after 0.06s")
	}
}

func TestPhysicsComponentDebugDraw(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{3, 4}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(10, 10)
	})
	p := GetComponent[PhysicsComponent](e)
	r := NewRecordingRenderer()

	p.Draw(r)
	if len(r.Pending()) != 0 {
		t.Fatal("debug overlay drawn while disabled")
	}
	p.SetDebugDraw(true)
	p.Draw(r)
	cmds := r.Pending()
	if len(cmds) != 2 || cmds[0].Type != CommandFillRect || cmds[1].Type != CommandDrawRect {
		t.Fatalf("commands = %+v, want fill then outline", cmds)
	}
	if cmds[0].Dst != (Rect{3, 4, 10, 10}) {
		t.Errorf("overlay rect = %v, want {3 4 10 10}", cmds[0].Dst)
	}
	if want := DebugGreen.Color(); cmds[1].Color != want {
		t.Errorf("outline = %v, want %v", cmds[1].Color, want)
	}
	if a := cmds[0].Color.A; !approx(a, 127.0/255) {
		t.Errorf("fill alpha = %v, want 127/255", a)
	}
}

func TestPhysicsComponentDestroyReleasesBody(t *testing.T) {
	l := newTestLevel(t)
	e := physicsEntity(l, LayerGame, Vec2{}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(4, 4)
		p.CreateSensorShape(8, 8)
	})
	p := GetComponent[PhysicsComponent](e)
	body := p.Body()
	l.Update(0)
	l.RemoveEntity(e)
	l.Update(0)
	if l.PhysicsWorld().IsBodyValid(body) {
		t.Error("body valid after entity removal")
	}
	if n := l.PhysicsWorld().ShapeCount(); n != 0 {
		t.Errorf("ShapeCount = %d, want 0", n)
	}
}

func BenchmarkPhysicsStep(b *testing.B) {
	w := newTestWorld(b)
	for i := range 100 {
		h := w.CreateBody(BodyDynamic, Vec2{float64(i * 12), 0}, nil)
		w.CreateBoxShape(h, ShapeOptions{Width: 10, Height: 10})
		w.SetBodyVelocity(h, Vec2{0, 1})
	}
	for b.Loop() {
		w.Step()
	}
}

func TestKinematicSolidsDoNotResolve(t *testing.T) {
	l := newTestLevel(t)
	a := physicsEntity(l, LayerGame, Vec2{0, 0}, BodyKinematic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(20, 20)
		p.SetVelocity(Vec2{1, 0})
	})
	b := physicsEntity(l, LayerGame, Vec2{10, 0}, BodyKinematic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(20, 20)
		p.SetVelocity(Vec2{-1, 0})
	})
	for range 3 {
		l.Update(1.0 / 60)
	}
	for _, tc := range []struct {
		e    *Entity
		want Vec2
	}{{a, Vec2{1, 0}}, {b, Vec2{-1, 0}}} {
		v := GetComponent[PhysicsComponent](tc.e).Velocity()
		if !approx(v.X, tc.want.X) || !approx(v.Y, tc.want.Y) {
			t.Errorf("entity %d Velocity = %v, want %v", tc.e.ID, v, tc.want)
		}
	}
}

func TestSuppressedBeginHasNoEnd(t *testing.T) {
	l := newTestLevel(t)
	sink := &sinkRecorder{}
	l.PhysicsWorld().SetEventSink(sink)
	listener := &sensorLog{}
	physicsEntity(l, LayerGame, Vec2{100, 100}, BodyStatic, func(p *PhysicsComponent) {
		p.CreateSensorShape(50, 50)
		p.SetSensorListener(listener)
	})
	visitor := physicsEntity(l, LayerGame, Vec2{110, 110}, BodyDynamic, func(p *PhysicsComponent) {
		p.CreateCollisionShape(10, 10)
		p.SetImmunity(10)
	})
	vp := GetComponent[PhysicsComponent](visitor)

	l.Update(1.0 / 60)
	vp.SetPosition(Vec2{400, 400})
	l.Update(1.0 / 60)
	if len(listener.begins) != 0 || len(listener.ends) != 0 {
		t.Fatalf("begins, ends = %d, %d while immune, want 0, 0", len(listener.begins), len(listener.ends))
	}

	vp.SetImmunity(0)
	vp.SetPosition(Vec2{110, 110})
	l.Update(1.0 / 60)
	vp.SetPosition(Vec2{400, 400})
	l.Update(1.0 / 60)
	if len(listener.begins) != 1 || len(listener.ends) != 1 {
		t.Errorf("begins, ends = %d, %d after immunity, want 1, 1", len(listener.begins), len(listener.ends))
	}

	want := []struct {
		kind       SensorEventKind
		suppressed bool
	}{{SensorBegin, true}, {SensorEnd, true}, {SensorBegin, false}, {SensorEnd, false}}
	if len(sink.events) != len(want) {
		t.Fatalf("sink events = %d, want %d", len(sink.events), len(want))
	}
	for i, w := range want {
		if ev := sink.events[i]; ev.Kind != w.kind || ev.Suppressed != w.suppressed {
			t.Errorf("event %d = %v suppressed=%v, want %v suppressed=%v", i, ev.Kind, ev.Suppressed, w.kind, w.suppressed)
		}
	}
}
