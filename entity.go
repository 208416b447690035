package engine2000

// entityIDCounter is a plain counter (no atomic - the engine is single-threaded).
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// Prefab composes an entity. Level.CreateEntity calls Build on a fresh entity
// before the entity is initialized. A prefab is typically the gameplay object
// itself (a player, an enemy); it stays attached to the entity and is
// consulted by Capability, so implementing SensorListener or BoundsResponder
// on the prefab is enough to receive those callbacks. A prefab may also
// implement Initializer, Updater, Drawer and Destroyer; those hooks run after
// the entity's components.
type Prefab interface {
	Build(e *Entity)
}

// PrefabFunc adapts a plain function to the Prefab interface.
type PrefabFunc func(e *Entity)

// Build calls f(e).
func (f PrefabFunc) Build(e *Entity) { f(e) }

// Entity is one game object: an ordered set of components plus a transform.
// Entities are created with Level.CreateEntity and destroyed by the level,
// either through RemoveEntity or when the level itself is destroyed.
type Entity struct {
	// Identity
	ID   uint32
	Name string

	components []Component
	byKind     [MaxComponentKinds]Component
	transform  *Transform

	level  *Level
	layer  RenderLayer
	prefab Prefab

	initStarted bool
	initCount   int // components whose Init has run
	destroyed   bool
}

// newEntity creates an entity with its implicit Transform.
func newEntity(name string) *Entity {
	e := &Entity{ID: nextEntityID(), Name: name}
	e.transform = AddComponent[Transform](e)
	return e
}

// Attach binds an already constructed component to e. It reports false and
// logs an error when a component of the same kind is already attached.
func (e *Entity) Attach(c Component) bool {
	if c == nil {
		return false
	}
	k := c.Kind()
	if int(k) >= MaxComponentKinds {
		logger.Error("component kind out of range", "kind", k, "entity", e.ID)
		return false
	}
	if e.destroyed {
		logger.Warn("attach on destroyed entity", "kind", k, "entity", e.ID)
		return false
	}
	if e.byKind[k] != nil {
		logger.Error("duplicate component rejected", "kind", k, "entity", e.ID, "name", e.Name)
		return false
	}
	c.bind(e)
	e.components = append(e.components, c)
	e.byKind[k] = c
	if e.initStarted {
		e.initPending()
	}
	return true
}

// Components returns the attached components in attachment order. The slice
// must not be modified.
func (e *Entity) Components() []Component {
	return e.components
}

// Has reports whether a component of kind k is attached.
func (e *Entity) Has(k ComponentKind) bool {
	return int(k) < MaxComponentKinds && e.byKind[k] != nil
}

// Transform returns the entity's transform. Every entity has exactly one.
func (e *Entity) Transform() *Transform {
	return e.transform
}

// Position is shorthand for e.Transform().Position.
func (e *Entity) Position() Vec2 {
	return e.transform.Position
}

// Level returns the level this entity belongs to, or nil.
func (e *Entity) Level() *Level {
	return e.level
}

// Layer returns the render layer the entity was created on.
func (e *Entity) Layer() RenderLayer {
	return e.layer
}

// Prefab returns the prefab that built this entity, or nil.
func (e *Entity) Prefab() Prefab {
	return e.prefab
}

// Initialized reports whether Init has run.
func (e *Entity) Initialized() bool {
	return e.initStarted
}

// Alive reports whether the entity has not been destroyed.
func (e *Entity) Alive() bool {
	return !e.destroyed
}

// Destroyed reports whether the entity has been destroyed.
func (e *Entity) Destroyed() bool {
	return e.destroyed
}

// Size returns the entity's visual size from its Sizer capability.
func (e *Entity) Size() (w, h float64, ok bool) {
	s, ok := Capability[Sizer](e)
	if !ok {
		return 0, 0, false
	}
	w, h = s.Size()
	return w, h, true
}

// Init runs every component's Init in attachment order, then the prefab's.
// Only the first call has an effect. Components attached afterwards are
// initialized as they are attached.
func (e *Entity) Init() {
	if e.initStarted || e.destroyed {
		return
	}
	e.initStarted = true
	e.initPending()
	if in, ok := e.prefab.(Initializer); ok {
		in.Init()
	}
}

func (e *Entity) initPending() {
	for e.initCount < len(e.components) {
		c := e.components[e.initCount]
		e.initCount++
		if in, ok := c.(Initializer); ok {
			in.Init()
		}
	}
}

// Update forwards dt to every component in attachment order, then to the
// prefab.
func (e *Entity) Update(dt float64) {
	if e.destroyed {
		return
	}
	for _, c := range e.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
		if e.destroyed {
			return
		}
	}
	if u, ok := e.prefab.(Updater); ok {
		u.Update(dt)
	}
}

// Render forwards the renderer to every drawing component in attachment
// order, then to the prefab.
func (e *Entity) Render(r Renderer) {
	if e.destroyed {
		return
	}
	for _, c := range e.components {
		if d, ok := c.(Drawer); ok {
			d.Draw(r)
		}
	}
	if d, ok := e.prefab.(Drawer); ok {
		d.Draw(r)
	}
}

// Destroy releases the entity and its components. Only the first call has an
// effect. Components are destroyed in a single forward pass and must not
// reference siblings from their Destroy hook.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if d, ok := e.prefab.(Destroyer); ok {
		d.Destroy()
	}
	for i, c := range e.components {
		if d, ok := c.(Destroyer); ok {
			d.Destroy()
		}
		e.components[i] = nil
	}
	e.components = nil
	e.byKind = [MaxComponentKinds]Component{}
	logger.Debug("entity destroyed", "entity", e.ID, "name", e.Name)
}
