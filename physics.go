package engine2000

// DebugColor selects the color of a physics debug overlay.
type DebugColor uint8

const (
	DebugGreen DebugColor = iota
	DebugRed
	DebugBlue
	DebugYellow
)

// Color returns the overlay color at full alpha.
func (c DebugColor) Color() Color {
	switch c {
	case DebugRed:
		return RGBA(0xDC, 0x31, 0x32, 0xFF)
	case DebugBlue:
		return RGBA(0x30, 0xAE, 0xBF, 0xFF)
	case DebugYellow:
		return RGBA(0xFF, 0xEE, 0x8C, 0xFF)
	default:
		return RGBA(0x8C, 0xC9, 0x24, 0xFF)
	}
}

// PhysicsComponent gives an entity a simulation body with up to one solid
// collision shape and up to one overlap-only sensor shape. After each step
// the body position is copied to the entity's transform.
type PhysicsComponent struct {
	BaseComponent

	world     *PhysicsWorld
	body      BodyHandle
	kind      BodyKind
	collision ShapeHandle
	sensor    ShapeHandle
	layer     string

	listener     SensorListener
	sensorEvents bool

	immunity    float64
	immuneTimer float64
	immune      bool

	overlapping  bool
	debugDraw    bool
	debugColor   DebugColor
	overlapColor DebugColor
}

// Kind implements Component.
func (*PhysicsComponent) Kind() ComponentKind { return KindPhysics }

func (p *PhysicsComponent) setDefaults() {
	p.layer = PhysicsLayerDefault
	p.debugColor = DebugGreen
	p.overlapColor = DebugRed
}

// CreateBody adds a body of the given kind to world, positioned at the
// entity's transform. A second call logs a warning and does nothing.
func (p *PhysicsComponent) CreateBody(world *PhysicsWorld, kind BodyKind) {
	if p.world != nil && p.world.IsBodyValid(p.body) {
		logger.Warn("body already exists for this component", "entity", p.entityID())
		return
	}
	if world == nil {
		logger.Error("create body: nil physics world", "entity", p.entityID())
		return
	}
	var pos Vec2
	if e := p.Entity(); e != nil {
		pos = e.Position()
	}
	p.world = world
	p.kind = kind
	p.body = world.CreateBody(kind, pos, p)
	if e := p.Entity(); e != nil && p.body.generation != 0 {
		e.transform.Position = world.BodyPosition(p.body)
	}
}

func (p *PhysicsComponent) entityID() uint32 {
	if e := p.Entity(); e != nil {
		return e.ID
	}
	return 0
}

// World returns the physics world the body lives in, or nil.
func (p *PhysicsComponent) World() *PhysicsWorld { return p.world }

// Body returns the body handle. It is the zero handle before CreateBody.
func (p *PhysicsComponent) Body() BodyHandle { return p.body }

// BodyKind returns the kind the body was created with.
func (p *PhysicsComponent) BodyKind() BodyKind { return p.kind }

// CollisionShape returns the solid shape handle, or the zero handle.
func (p *PhysicsComponent) CollisionShape() ShapeHandle { return p.collision }

// SensorShape returns the sensor shape handle, or the zero handle.
func (p *PhysicsComponent) SensorShape() ShapeHandle { return p.sensor }

func (p *PhysicsComponent) hasBody() bool {
	return p.world != nil && p.world.IsBodyValid(p.body)
}

// SetLayer moves the component, and both of its shapes, to the named physics
// layer. Unknown names log a warning and keep the current layer.
func (p *PhysicsComponent) SetLayer(name string) {
	layers := p.layerTable()
	if layers == nil {
		p.layer = name
		return
	}
	if _, ok := layers.LayerIndex(name); !ok {
		logger.Warn("attempted to set invalid physics layer", "layer", name, "entity", p.entityID())
		return
	}
	p.layer = name
	if p.world != nil {
		p.world.SetShapeLayer(p.collision, name)
		p.world.SetShapeLayer(p.sensor, name)
	}
}

func (p *PhysicsComponent) layerTable() *LayerTable {
	if p.world != nil {
		return p.world.Layers()
	}
	if l := p.Level(); l != nil {
		return l.LayerTable()
	}
	return nil
}

// Layer returns the physics layer name.
func (p *PhysicsComponent) Layer() string { return p.layer }

// CreateCollisionShape attaches a solid w×h box. A second solid shape is
// rejected with a warning.
func (p *PhysicsComponent) CreateCollisionShape(w, h float64) {
	if !p.hasBody() {
		logger.Warn("create collision shape: no body", "entity", p.entityID())
		return
	}
	if p.world.IsShapeValid(p.collision) {
		logger.Warn("collision shape already exists", "entity", p.entityID())
		return
	}
	p.collision = p.world.CreateBoxShape(p.body, ShapeOptions{Width: w, Height: h, Layer: p.layer})
}

// CreateSensorShape attaches an overlap-only w×h box that reports sensor
// events. A second sensor is rejected with a warning.
func (p *PhysicsComponent) CreateSensorShape(w, h float64) {
	if !p.hasBody() {
		logger.Warn("create sensor shape: no body", "entity", p.entityID())
		return
	}
	if p.world.IsShapeValid(p.sensor) {
		logger.Warn("sensor shape already exists", "entity", p.entityID())
		return
	}
	p.sensor = p.world.CreateBoxShape(p.body, ShapeOptions{
		Width:        w,
		Height:       h,
		Sensor:       true,
		SensorEvents: true,
		Layer:        p.layer,
	})
}

// visualSize returns the entity's Sizer size, or 1×1 with a warning.
func (p *PhysicsComponent) visualSize() (float64, float64) {
	w, h, ok := p.Entity().Size()
	if !ok {
		logger.Warn("no sprite found for physics component, using a 1x1 box", "entity", p.entityID())
		return 1, 1
	}
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// CreateCollisionShapeFromSprite sizes the solid shape from the entity's
// visual size.
func (p *PhysicsComponent) CreateCollisionShapeFromSprite() {
	if p.hasBody() && p.world.IsShapeValid(p.collision) {
		logger.Warn("collision shape already exists", "entity", p.entityID())
		return
	}
	w, h := p.visualSize()
	p.CreateCollisionShape(w, h)
}

// CreateSensorShapeFromSprite sizes the sensor from the entity's visual size
// times scale, enables sensor events and registers listener if non-nil.
func (p *PhysicsComponent) CreateSensorShapeFromSprite(scale float64, listener SensorListener) {
	if p.hasBody() && p.world.IsShapeValid(p.sensor) {
		logger.Warn("sensor shape already exists", "entity", p.entityID())
		return
	}
	w, h := p.visualSize()
	p.CreateSensorShape(w*scale, h*scale)
	p.sensorEvents = true
	if listener != nil {
		p.listener = listener
	}
}

// EnableSensorEvents turns on overlap reporting for the sensor shape.
func (p *PhysicsComponent) EnableSensorEvents() {
	p.sensorEvents = true
	if p.world != nil {
		p.world.SetShapeSensorEvents(p.sensor, true)
	}
}

// DisableSensorEvents turns off overlap reporting for the sensor shape.
func (p *PhysicsComponent) DisableSensorEvents() {
	p.sensorEvents = false
	if p.world != nil {
		p.world.SetShapeSensorEvents(p.sensor, false)
	}
}

// SensorEventsEnabled reports whether sensor events are on.
func (p *PhysicsComponent) SensorEventsEnabled() bool { return p.sensorEvents }

// SetSensorListener registers the listener sensor begins are forwarded to.
// Without one, the entity's SensorListener capability is used.
func (p *PhysicsComponent) SetSensorListener(l SensorListener) { p.listener = l }

func (p *PhysicsComponent) sensorListener() SensorListener {
	if p.listener != nil {
		return p.listener
	}
	l, _ := Capability[SensorListener](p.Entity())
	return l
}

// HandleSensorBegin is called by the physics world when an overlap involving
// this component starts. It does nothing while either side is immune.
func (p *PhysicsComponent) HandleSensorBegin(other *Entity) {
	if p.Immune() {
		return
	}
	if op := GetComponent[PhysicsComponent](other); op != nil && op.Immune() {
		return
	}
	l := p.sensorListener()
	if l == nil {
		return
	}
	l.OnSensorBegin(other)
	p.overlapping = true
}

// HandleSensorEnd is called by the physics world when an overlap ends.
func (p *PhysicsComponent) HandleSensorEnd(other *Entity) {
	l := p.sensorListener()
	if l == nil {
		return
	}
	p.overlapping = false
	if el, ok := l.(SensorEndListener); ok {
		el.OnSensorEnd(other)
		return
	}
	if el, ok := Capability[SensorEndListener](p.Entity()); ok {
		el.OnSensorEnd(other)
	}
}

// Overlapping reports whether a sensor begin was delivered and not yet ended.
func (p *PhysicsComponent) Overlapping() bool { return p.overlapping }

// SetPosition teleports the body and the transform.
func (p *PhysicsComponent) SetPosition(pos Vec2) {
	if !p.hasBody() {
		return
	}
	p.world.SetBodyPosition(p.body, pos)
	if e := p.Entity(); e != nil {
		e.transform.Position = pos
	}
}

// Position returns the body position, or the transform position without a
// body.
func (p *PhysicsComponent) Position() Vec2 {
	if p.hasBody() {
		return p.world.BodyPosition(p.body)
	}
	if e := p.Entity(); e != nil {
		return e.Position()
	}
	return Vec2{}
}

// SetVelocity sets the body velocity in units per frame; the world scales
// it to units per second.
func (p *PhysicsComponent) SetVelocity(v Vec2) {
	if !p.hasBody() {
		return
	}
	p.world.SetBodyVelocity(p.body, v)
}

// Velocity returns the body velocity in the units SetVelocity takes.
func (p *PhysicsComponent) Velocity() Vec2 {
	if !p.hasBody() {
		return Vec2{}
	}
	v := p.world.BodyVelocity(p.body)
	if s := p.world.VelocityScale(); s != 0 {
		v = v.Scale(1 / s)
	}
	return v
}

// SetImmunity suppresses sensor begins involving this component for d
// seconds.
func (p *PhysicsComponent) SetImmunity(d float64) {
	p.immunity = d
	p.immuneTimer = d
	p.immune = d > 0
}

// Immune reports whether immunity is active.
func (p *PhysicsComponent) Immune() bool { return p.immune }

// SetDebugDraw toggles the shape overlay.
func (p *PhysicsComponent) SetDebugDraw(enable bool) { p.debugDraw = enable }

// DebugDraw reports whether the overlay is on.
func (p *PhysicsComponent) DebugDraw() bool { return p.debugDraw }

// SetDebugColor sets the overlay color used while not overlapping.
func (p *PhysicsComponent) SetDebugColor(c DebugColor) { p.debugColor = c }

// Update ticks immunity and copies the body position to the transform.
func (p *PhysicsComponent) Update(dt float64) {
	if !p.hasBody() {
		return
	}
	if p.immune {
		p.immuneTimer -= dt
		if p.immuneTimer <= 0 {
			p.immune = false
		}
	}
	p.Entity().transform.Position = p.world.BodyPosition(p.body)
}

// Draw renders the debug overlay: the shape box filled at half alpha with an
// opaque outline, red while overlapping.
func (p *PhysicsComponent) Draw(r Renderer) {
	if !p.debugDraw || p.world == nil {
		return
	}
	box, ok := p.world.ShapeAABB(p.collision)
	if !ok {
		if box, ok = p.world.ShapeAABB(p.sensor); !ok {
			return
		}
	}
	c := p.debugColor.Color()
	if p.overlapping {
		c = p.overlapColor.Color()
	}
	r.FillRect(box, c.WithAlpha(127.0/255))
	r.DrawRect(box, c)
}

// Destroy removes the body and its shapes from the world.
func (p *PhysicsComponent) Destroy() {
	if p.world != nil {
		p.world.DestroyBody(p.body)
	}
	p.body = BodyHandle{}
	p.collision = ShapeHandle{}
	p.sensor = ShapeHandle{}
	p.listener = nil
}
