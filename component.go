package engine2000

import "fmt"

// ComponentKind tags a concrete component type. Each component type reports a
// single kind from its Kind method, which must be callable on a nil receiver.
// Entities index their components by kind, so lookups are O(1).
type ComponentKind uint8

// MaxComponentKinds is the number of distinct component kinds a program may use.
const MaxComponentKinds = 32

// Built-in component kinds.
const (
	KindTransform ComponentKind = iota
	KindSprite
	KindPhysics
	KindScreenBounds
	KindHealthBar
	KindUIElement
	KindTween
	numBuiltinKinds
)

var kindNames = [MaxComponentKinds]string{
	KindTransform:    "Transform",
	KindSprite:       "Sprite",
	KindPhysics:      "Physics",
	KindScreenBounds: "ScreenBounds",
	KindHealthBar:    "HealthBar",
	KindUIElement:    "UIElement",
	KindTween:        "Tween",
}

// nextKind is a plain counter (no atomic - kinds are registered from package
// init on a single goroutine).
var nextKind = numBuiltinKinds

// RegisterComponentKind allocates a kind for a component type defined outside
// this package. Call it once per type, typically from a package-level var.
// It panics when all MaxComponentKinds slots are taken.
func RegisterComponentKind(name string) ComponentKind {
	if int(nextKind) >= MaxComponentKinds {
		panic(fmt.Sprintf("engine2000: cannot register component kind %q: all %d kinds in use", name, MaxComponentKinds))
	}
	k := nextKind
	nextKind++
	kindNames[k] = name
	return k
}

// String returns the registered name of the kind.
func (k ComponentKind) String() string {
	if int(k) < MaxComponentKinds && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("ComponentKind(%d)", uint8(k))
}

// Component is a unit of behavior owned by exactly one Entity. Concrete
// components embed BaseComponent and implement Kind. Lifecycle hooks are
// optional: see Initializer, Updater, Drawer and Destroyer.
type Component interface {
	Kind() ComponentKind
	Entity() *Entity
	bind(e *Entity)
}

// Initializer is implemented by components (and prefabs) that need setup once
// their entity belongs to a Level.
type Initializer interface {
	Init()
}

// Updater is implemented by components (and prefabs) that advance each frame.
type Updater interface {
	Update(dt float64)
}

// Drawer is implemented by components (and prefabs) that issue draw calls.
type Drawer interface {
	Draw(r Renderer)
}

// Destroyer is implemented by components (and prefabs) that release resources
// when their entity is destroyed. Destroy must not touch sibling components.
type Destroyer interface {
	Destroy()
}

// defaulter lets built-in components set non-zero defaults on construction.
type defaulter interface {
	setDefaults()
}

// BaseComponent carries the back-reference to the owning entity. Embed it in
// every component type.
type BaseComponent struct {
	entity *Entity
}

// Entity returns the owning entity, or nil before the component is attached.
func (c *BaseComponent) Entity() *Entity { return c.entity }

// Level returns the owning entity's level, or nil.
func (c *BaseComponent) Level() *Level {
	if c.entity == nil {
		return nil
	}
	return c.entity.level
}

func (c *BaseComponent) bind(e *Entity) { c.entity = e }

// AddComponent constructs a component of type T, attaches it to e and returns
// it. If e already has a component of the same kind, the duplicate is
// rejected: an error is logged, nil is returned and the existing component is
// left untouched. The component's Init runs later with the entity's Init
// (immediately if the entity is already initialized).
//
//	sprite := engine2000.AddComponent[engine2000.Sprite](e)
func AddComponent[T any, P interface {
	*T
	Component
}](e *Entity) P {
	if e == nil {
		return nil
	}
	p := P(new(T))
	if d, ok := any(p).(defaulter); ok {
		d.setDefaults()
	}
	if !e.Attach(p) {
		return nil
	}
	return p
}

// GetComponent returns e's component of type T, or nil if none is attached.
func GetComponent[T any, P interface {
	*T
	Component
}](e *Entity) P {
	if e == nil {
		return nil
	}
	var zero P
	k := zero.Kind()
	if int(k) >= MaxComponentKinds {
		return nil
	}
	p, _ := e.byKind[k].(P)
	return p
}

// QueryComponent returns the first component, in attachment order, that
// implements I.
func QueryComponent[I any](e *Entity) (I, bool) {
	var zero I
	if e == nil {
		return zero, false
	}
	for _, c := range e.components {
		if v, ok := c.(I); ok {
			return v, true
		}
	}
	return zero, false
}

// Capability reports whether e provides capability C (SensorListener,
// BoundsResponder, Sizer, or any gameplay interface). The entity's prefab is
// consulted first, then its components in attachment order.
func Capability[C any](e *Entity) (C, bool) {
	var zero C
	if e == nil {
		return zero, false
	}
	if e.prefab != nil {
		if v, ok := e.prefab.(C); ok {
			return v, true
		}
	}
	return QueryComponent[C](e)
}
