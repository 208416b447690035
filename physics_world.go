package engine2000

import (
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"
)

// BodyKind selects how the simulator moves a body.
type BodyKind uint8

const (
	BodyDynamic   BodyKind = iota // integrated by the simulator, affected by gravity
	BodyKinematic                 // moved only by the velocity gameplay sets
	BodyStatic                    // never moves on its own
)

func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	case BodyStatic:
		return "static"
	}
	return fmt.Sprintf("BodyKind(%d)", uint8(k))
}

// Physics defaults.
const (
	DefaultTimeStep      = 1.0 / 30.0
	DefaultSubSteps      = 4
	DefaultVelocityScale = 60.0
)

// shapeCollisionType is shared by every shape so a single handler sees every
// pair.
const shapeCollisionType cp.CollisionType = 1

// PhysicsConfig configures a PhysicsWorld.
type PhysicsConfig struct {
	// TimeStep is the simulated time advanced by one Step, in seconds.
	TimeStep float64 `yaml:"time_step"`
	// SubSteps splits each Step into equal simulator steps.
	SubSteps int `yaml:"sub_steps"`
	// Gravity applies to dynamic bodies, in units per second squared.
	Gravity Vec2 `yaml:"gravity"`
	// VelocityScale converts gameplay velocities (units per frame at 60 Hz)
	// into simulator velocities (units per second).
	VelocityScale float64 `yaml:"velocity_scale"`
}

// DefaultPhysicsConfig returns a 1/30 s step split into 4 substeps, no
// gravity and a velocity scale of 60.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		TimeStep:      DefaultTimeStep,
		SubSteps:      DefaultSubSteps,
		VelocityScale: DefaultVelocityScale,
	}
}

func (c PhysicsConfig) validate() error {
	switch {
	case !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0):
		return fmt.Errorf("%w: time step %v", ErrInvalidPhysicsConfig, c.TimeStep)
	case c.SubSteps < 1:
		return fmt.Errorf("%w: sub steps %d", ErrInvalidPhysicsConfig, c.SubSteps)
	case !(c.VelocityScale > 0):
		return fmt.Errorf("%w: velocity scale %v", ErrInvalidPhysicsConfig, c.VelocityScale)
	}
	return nil
}

// SensorEventKind distinguishes the start and end of a sensor overlap.
type SensorEventKind uint8

const (
	SensorBegin SensorEventKind = iota
	SensorEnd
)

func (k SensorEventKind) String() string {
	if k == SensorEnd {
		return "end"
	}
	return "begin"
}

// SensorEvent describes one dispatched sensor overlap. Sensor is the entity
// owning the sensor shape, Visitor the entity whose shape entered or left it.
type SensorEvent struct {
	Kind         SensorEventKind
	Sensor       *Entity
	Visitor      *Entity
	SensorLayer  string
	VisitorLayer string
	// Suppressed is set when immunity on either side blocked the begin
	// callbacks, and on the matching end, which is not delivered either.
	Suppressed bool
}

// EventSink receives a copy of every dispatched sensor event. The ecs package
// provides a Donburi-backed sink.
type EventSink interface {
	EmitSensorEvent(event SensorEvent)
}

type bodySlot struct {
	body   *cp.Body
	kind   BodyKind
	owner  *PhysicsComponent
	shapes []ShapeHandle
}

type shapeSlot struct {
	shape        *cp.Shape
	body         BodyHandle
	box          Rect // local box; the body position is its top-left corner
	sensor       bool
	sensorEvents bool
	layer        int
}

type pairKey struct {
	sensor, visitor ShapeHandle
}

type pendingSensorEvent struct {
	kind            SensorEventKind
	sensor, visitor ShapeHandle
}

// PhysicsWorld wraps the rigid-body simulator (Chipmunk2D via
// github.com/jakecoffman/cp). Bodies and shapes are referenced through
// generation-tagged handles; the rest of the engine never touches simulator
// objects directly. The world steps at a fixed rate independent of frame
// time and dispatches sensor events synchronously after each step.
type PhysicsWorld struct {
	space  *cp.Space
	config PhysicsConfig
	layers *LayerTable

	bodies slotTable[bodySlot]
	shapes slotTable[shapeSlot]

	pending  []pendingSensorEvent
	touching map[pairKey]struct{}
	muted    map[pairKey]struct{} // touching pairs whose begin immunity suppressed
	sink     EventSink

	width, height float64
	steps         int
	lastStep      time.Duration
	destroyed     bool
}

// NewPhysicsWorld creates a simulation world filtered by the layer matrix in
// layers.
func NewPhysicsWorld(cfg PhysicsConfig, layers *LayerTable) (*PhysicsWorld, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if layers == nil {
		return nil, fmt.Errorf("%w: nil layer table", ErrInvalidPhysicsConfig)
	}
	w := &PhysicsWorld{
		space:    cp.NewSpace(),
		config:   cfg,
		layers:   layers,
		touching: make(map[pairKey]struct{}),
		muted:    make(map[pairKey]struct{}),
	}
	w.space.SetGravity(cp.Vector{X: cfg.Gravity.X, Y: cfg.Gravity.Y})

	handler := w.space.NewCollisionHandler(shapeCollisionType, shapeCollisionType)
	handler.BeginFunc = w.beginContact
	handler.SeparateFunc = w.endContact

	logger.Debug("physics world created",
		"timestep", cfg.TimeStep, "substeps", cfg.SubSteps, "gravity", cfg.Gravity)
	return w, nil
}

// SetBounds records the world size (the level's screen size).
func (w *PhysicsWorld) SetBounds(width, height float64) {
	w.width, w.height = width, height
}

// Bounds returns the world size.
func (w *PhysicsWorld) Bounds() (width, height float64) { return w.width, w.height }

// Layers returns the layer table the world filters with.
func (w *PhysicsWorld) Layers() *LayerTable { return w.layers }

// Config returns the world configuration.
func (w *PhysicsWorld) Config() PhysicsConfig { return w.config }

// TimeStep returns the fixed step in seconds.
func (w *PhysicsWorld) TimeStep() float64 { return w.config.TimeStep }

// SubSteps returns the number of simulator steps per Step.
func (w *PhysicsWorld) SubSteps() int { return w.config.SubSteps }

// VelocityScale returns the gameplay-to-simulator velocity factor.
func (w *PhysicsWorld) VelocityScale() float64 { return w.config.VelocityScale }

// Gravity returns the world gravity.
func (w *PhysicsWorld) Gravity() Vec2 { return w.config.Gravity }

// SetGravity changes the gravity applied to dynamic bodies.
func (w *PhysicsWorld) SetGravity(g Vec2) {
	w.config.Gravity = g
	if w.space != nil {
		w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
	}
}

// SetEventSink mirrors every dispatched sensor event to sink. Pass nil to
// stop.
func (w *PhysicsWorld) SetEventSink(sink EventSink) { w.sink = sink }

// Steps returns the number of completed steps.
func (w *PhysicsWorld) Steps() int { return w.steps }

// LastStepDuration returns the wall time the last Step took.
func (w *PhysicsWorld) LastStepDuration() time.Duration { return w.lastStep }

// BodyCount returns the number of live bodies.
func (w *PhysicsWorld) BodyCount() int { return w.bodies.count }

// ShapeCount returns the number of live shapes.
func (w *PhysicsWorld) ShapeCount() int { return w.shapes.count }

// Step advances the simulation by one fixed time step, split into the
// configured substeps, then dispatches the sensor events the step produced.
func (w *PhysicsWorld) Step() {
	if w.space == nil {
		return
	}
	start := time.Now()
	dt := w.config.TimeStep / float64(w.config.SubSteps)
	for i := 0; i < w.config.SubSteps; i++ {
		w.space.Step(dt)
	}
	w.steps++
	w.processSensors()
	w.lastStep = time.Since(start)
}

// --- bodies ---

// CreateBody adds a body at position (the top-left of its shapes). owner may
// be nil for bodies not attached to an entity.
func (w *PhysicsWorld) CreateBody(kind BodyKind, position Vec2, owner *PhysicsComponent) BodyHandle {
	if w.space == nil {
		return BodyHandle{}
	}
	var body *cp.Body
	switch kind {
	case BodyKinematic:
		body = cp.NewKinematicBody()
	case BodyStatic:
		body = cp.NewStaticBody()
	default:
		kind = BodyDynamic
		body = cp.NewBody(1, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: position.X, Y: position.Y})
	body.UserData = owner
	w.space.AddBody(body)

	idx, gen := w.bodies.alloc(bodySlot{body: body, kind: kind, owner: owner})
	return BodyHandle{index: idx, generation: gen}
}

// IsBodyValid reports whether h refers to a live body.
func (w *PhysicsWorld) IsBodyValid(h BodyHandle) bool {
	_, ok := w.bodies.get(h.index, h.generation)
	return ok
}

func (w *PhysicsWorld) bodySlot(h BodyHandle) *bodySlot {
	if _, ok := w.bodies.get(h.index, h.generation); !ok {
		return nil
	}
	return &w.bodies.items[h.index]
}

// BodyKindOf returns the kind of body h.
func (w *PhysicsWorld) BodyKindOf(h BodyHandle) (BodyKind, bool) {
	s := w.bodySlot(h)
	if s == nil {
		return 0, false
	}
	return s.kind, true
}

// BodyOwner returns the component that owns body h.
func (w *PhysicsWorld) BodyOwner(h BodyHandle) *PhysicsComponent {
	if s := w.bodySlot(h); s != nil {
		return s.owner
	}
	return nil
}

// DestroyBody removes body h and every shape attached to it.
func (w *PhysicsWorld) DestroyBody(h BodyHandle) {
	s := w.bodySlot(h)
	if s == nil {
		return
	}
	for _, sh := range append([]ShapeHandle(nil), s.shapes...) {
		w.DestroyShape(sh)
	}
	body := s.body
	body.UserData = nil
	if w.space != nil {
		w.space.RemoveBody(body)
	}
	w.bodies.release(h.index, h.generation)
}

// BodyPosition returns the top-left position of body h.
func (w *PhysicsWorld) BodyPosition(h BodyHandle) Vec2 {
	s := w.bodySlot(h)
	if s == nil {
		return Vec2{}
	}
	p := s.body.Position()
	return Vec2{p.X, p.Y}
}

// SetBodyPosition teleports body h.
func (w *PhysicsWorld) SetBodyPosition(h BodyHandle, pos Vec2) {
	s := w.bodySlot(h)
	if s == nil {
		return
	}
	s.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	if s.kind == BodyStatic && w.space != nil {
		w.space.ReindexShapesForBody(s.body)
	}
}

// BodyVelocity returns the simulator velocity of body h in units per second.
func (w *PhysicsWorld) BodyVelocity(h BodyHandle) Vec2 {
	s := w.bodySlot(h)
	if s == nil {
		return Vec2{}
	}
	v := s.body.Velocity()
	return Vec2{v.X, v.Y}
}

// SetBodyVelocity sets the velocity of body h from a gameplay velocity,
// multiplying it by the velocity scale. Static bodies ignore it.
func (w *PhysicsWorld) SetBodyVelocity(h BodyHandle, v Vec2) {
	s := w.bodySlot(h)
	if s == nil || s.kind == BodyStatic {
		return
	}
	scaled := v.Scale(w.config.VelocityScale)
	s.body.SetVelocity(scaled.X, scaled.Y)
}

// --- shapes ---

// ShapeOptions describe a box shape.
type ShapeOptions struct {
	Width, Height float64
	Sensor        bool
	SensorEvents  bool
	Layer         string
}

// CreateBoxShape attaches a box of the given size to body h. The body
// position is the box's top-left corner.
func (w *PhysicsWorld) CreateBoxShape(h BodyHandle, opts ShapeOptions) ShapeHandle {
	bs := w.bodySlot(h)
	if bs == nil || w.space == nil {
		return ShapeHandle{}
	}
	layer, ok := w.layers.LayerIndex(opts.Layer)
	if !ok {
		logger.Warn("create shape: unknown physics layer, using Default", "layer", opts.Layer)
		layer, _ = w.layers.LayerIndex(PhysicsLayerDefault)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	shape := cp.NewBox2(bs.body, cp.BB{L: 0, B: 0, R: width, T: height}, 0)
	shape.SetSensor(opts.Sensor)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(shapeCollisionType)

	idx, gen := w.shapes.alloc(shapeSlot{
		shape:        shape,
		body:         h,
		box:          Rect{0, 0, width, height},
		sensor:       opts.Sensor,
		sensorEvents: opts.Sensor && opts.SensorEvents,
		layer:        layer,
	})
	sh := ShapeHandle{index: idx, generation: gen}
	shape.UserData = sh
	w.space.AddShape(shape)
	bs.shapes = append(bs.shapes, sh)
	return sh
}

// IsShapeValid reports whether h refers to a live shape.
func (w *PhysicsWorld) IsShapeValid(h ShapeHandle) bool {
	_, ok := w.shapes.get(h.index, h.generation)
	return ok
}

func (w *PhysicsWorld) shapeSlot(h ShapeHandle) *shapeSlot {
	if _, ok := w.shapes.get(h.index, h.generation); !ok {
		return nil
	}
	return &w.shapes.items[h.index]
}

// DestroyShape removes shape h. Overlaps it was part of end silently.
func (w *PhysicsWorld) DestroyShape(h ShapeHandle) {
	s := w.shapeSlot(h)
	if s == nil {
		return
	}
	for key := range w.touching {
		if key.sensor == h || key.visitor == h {
			delete(w.touching, key)
			delete(w.muted, key)
		}
	}
	if bs := w.bodySlot(s.body); bs != nil {
		for i, other := range bs.shapes {
			if other == h {
				bs.shapes = append(bs.shapes[:i], bs.shapes[i+1:]...)
				break
			}
		}
	}
	shape := s.shape
	if w.space != nil {
		w.space.RemoveShape(shape)
	}
	shape.UserData = nil
	w.shapes.release(h.index, h.generation)
}

// ShapeAABB returns the world-space bounding box of shape h.
func (w *PhysicsWorld) ShapeAABB(h ShapeHandle) (Rect, bool) {
	s := w.shapeSlot(h)
	if s == nil {
		return Rect{}, false
	}
	p := w.BodyPosition(s.body)
	return Rect{X: p.X + s.box.X, Y: p.Y + s.box.Y, Width: s.box.Width, Height: s.box.Height}, true
}

// SetShapeLayer moves shape h to the named physics layer. Unknown names are
// rejected with a warning.
func (w *PhysicsWorld) SetShapeLayer(h ShapeHandle, layer string) bool {
	s := w.shapeSlot(h)
	if s == nil {
		return false
	}
	idx, ok := w.layers.LayerIndex(layer)
	if !ok {
		logger.Warn("set shape layer: unknown physics layer", "layer", layer)
		return false
	}
	s.layer = idx
	return true
}

// SetShapeSensorEvents enables or disables sensor events for sensor shape h.
func (w *PhysicsWorld) SetShapeSensorEvents(h ShapeHandle, enabled bool) {
	s := w.shapeSlot(h)
	if s == nil || !s.sensor {
		return
	}
	s.sensorEvents = enabled
}

// ShapeOwner returns the component owning the body shape h is attached to.
func (w *PhysicsWorld) ShapeOwner(h ShapeHandle) *PhysicsComponent {
	s := w.shapeSlot(h)
	if s == nil {
		return nil
	}
	return w.BodyOwner(s.body)
}

// shapeHandleOf resolves a simulator shape back to its slot.
func (w *PhysicsWorld) shapeHandleOf(shape *cp.Shape) (ShapeHandle, *shapeSlot) {
	if shape == nil {
		return ShapeHandle{}, nil
	}
	h, ok := shape.UserData.(ShapeHandle)
	if !ok {
		return ShapeHandle{}, nil
	}
	return h, w.shapeSlot(h)
}

// --- pair filtering and sensor events ---

// pairAllowed applies the layer matrix, letting any pair through when either
// shape has sensor events enabled.
func (w *PhysicsWorld) pairAllowed(a, b *shapeSlot) bool {
	if w.layers.CollideIndices(a.layer, b.layer) {
		return true
	}
	return a.sensorEvents || b.sensorEvents
}

func (w *PhysicsWorld) beginContact(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, sa := w.shapeHandleOf(a)
	hb, sb := w.shapeHandleOf(b)
	if sa == nil || sb == nil {
		return false
	}
	if sa.sensor && sb.sensor {
		return false
	}
	if !w.pairAllowed(sa, sb) {
		return false
	}
	switch {
	case sa.sensor && sa.sensorEvents:
		w.queueBegin(ha, hb)
	case sb.sensor && sb.sensorEvents:
		w.queueBegin(hb, ha)
	}
	if !sa.sensor && !sb.sensor && !w.anyDynamic(sa.body, sb.body) {
		// two infinite-mass bodies have nothing to resolve
		return false
	}
	return true
}

func (w *PhysicsWorld) anyDynamic(a, b BodyHandle) bool {
	for _, h := range [2]BodyHandle{a, b} {
		if s := w.bodySlot(h); s != nil && s.kind == BodyDynamic {
			return true
		}
	}
	return false
}

func (w *PhysicsWorld) endContact(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	ha, _ := w.shapeHandleOf(a)
	hb, _ := w.shapeHandleOf(b)
	for _, key := range [2]pairKey{{ha, hb}, {hb, ha}} {
		if _, ok := w.touching[key]; ok {
			delete(w.touching, key)
			w.pending = append(w.pending, pendingSensorEvent{kind: SensorEnd, sensor: key.sensor, visitor: key.visitor})
		}
	}
}

func (w *PhysicsWorld) queueBegin(sensor, visitor ShapeHandle) {
	key := pairKey{sensor, visitor}
	if _, ok := w.touching[key]; ok {
		return
	}
	w.touching[key] = struct{}{}
	w.pending = append(w.pending, pendingSensorEvent{kind: SensorBegin, sensor: sensor, visitor: visitor})
}

// processSensors dispatches queued sensor events to both owning components.
// An end is delivered only if its begin was; a pair whose begin immunity
// suppressed ends silently.
func (w *PhysicsWorld) processSensors() {
	for i := 0; i < len(w.pending); i++ {
		ev := w.pending[i]
		key := pairKey{ev.sensor, ev.visitor}
		sc := w.ShapeOwner(ev.sensor)
		vc := w.ShapeOwner(ev.visitor)
		if sc == nil || vc == nil {
			if ev.kind == SensorBegin {
				logger.Debug("sensor event without owning components", "sensor", ev.sensor, "visitor", ev.visitor)
			}
			continue
		}
		se, ve := sc.Entity(), vc.Entity()
		if se == nil || ve == nil || se.Destroyed() || ve.Destroyed() {
			continue
		}
		out := SensorEvent{
			Kind:         ev.kind,
			Sensor:       se,
			Visitor:      ve,
			SensorLayer:  sc.Layer(),
			VisitorLayer: vc.Layer(),
		}
		switch ev.kind {
		case SensorBegin:
			out.Suppressed = sc.Immune() || vc.Immune()
			if out.Suppressed {
				w.muted[key] = struct{}{}
			}
			sc.HandleSensorBegin(ve)
			vc.HandleSensorBegin(se)
		case SensorEnd:
			if _, ok := w.muted[key]; ok {
				delete(w.muted, key)
				out.Suppressed = true
				break
			}
			sc.HandleSensorEnd(ve)
			vc.HandleSensorEnd(se)
		}
		if w.sink != nil {
			w.sink.EmitSensorEvent(out)
		}
	}
	w.pending = w.pending[:0]
}

// Destroy releases every body and shape. The world cannot be stepped
// afterwards. Components still holding handles see them as invalid.
func (w *PhysicsWorld) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	var bodies []BodyHandle
	w.bodies.each(func(index, generation uint32, _ bodySlot) {
		bodies = append(bodies, BodyHandle{index: index, generation: generation})
	})
	for _, h := range bodies {
		w.DestroyBody(h)
	}
	w.pending = nil
	w.touching = nil
	w.muted = nil
	w.space = nil
	logger.Debug("physics world destroyed", "steps", w.steps)
}
