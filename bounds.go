package engine2000

// BoundsBehavior selects what happens when an entity leaves the screen.
type BoundsBehavior uint8

const (
	BoundsDestroy BoundsBehavior = iota // remove the entity from its level
	BoundsSleep                         // stop the body until the entity re-enters
	BoundsIgnore                        // only track the out-of-bounds flag
)

func (b BoundsBehavior) String() string {
	switch b {
	case BoundsDestroy:
		return "Destroy"
	case BoundsSleep:
		return "Sleep"
	case BoundsIgnore:
		return "Ignore"
	default:
		return "BoundsBehavior(?)"
	}
}

// BoundsEdges selects which screen edges are checked.
type BoundsEdges struct {
	Top, Bottom, Left, Right bool
}

// AllEdges checks every edge.
var AllEdges = BoundsEdges{Top: true, Bottom: true, Left: true, Right: true}

// ScreenBounds watches the entity's box against the level's screen size. An
// entity is out of bounds once its box lies entirely past an enabled edge,
// extended by the margin.
type ScreenBounds struct {
	BaseComponent

	behavior    BoundsBehavior
	edges       BoundsEdges
	margin      float64
	outOfBounds bool
	sleeping    bool
	responder   BoundsResponder
}

// Kind implements Component.
func (*ScreenBounds) Kind() ComponentKind { return KindScreenBounds }

func (b *ScreenBounds) setDefaults() {
	b.behavior = BoundsDestroy
	b.edges = AllEdges
}

func (b *ScreenBounds) SetBehavior(behavior BoundsBehavior) { b.behavior = behavior }
func (b *ScreenBounds) Behavior() BoundsBehavior { return b.behavior }
func (b *ScreenBounds) SetEdges(edges BoundsEdges) { b.edges = edges }
func (b *ScreenBounds) Edges() BoundsEdges { return b.edges }
func (b *ScreenBounds) SetMargin(m float64) { b.margin = m }

// OutOfBounds reports the result of the last check.
func (b *ScreenBounds) OutOfBounds() bool { return b.outOfBounds }

// Sleeping reports whether a BoundsSleep entity is waiting to re-enter.
func (b *ScreenBounds) Sleeping() bool { return b.sleeping }

// Init resolves the entity's BoundsResponder capability.
func (b *ScreenBounds) Init() {
	b.responder, _ = Capability[BoundsResponder](b.Entity())
}

// Update checks the edges and applies the behavior.
func (b *ScreenBounds) Update(float64) {
	if b.sleeping {
		if !b.check() {
			b.wake()
		}
		return
	}
	if b.check() {
		b.handleOut()
	}
}

func (b *ScreenBounds) check() bool {
	e := b.Entity()
	if e == nil || e.level == nil {
		return false
	}
	pos := e.Position()
	w, h, _ := e.Size()
	sw, sh := float64(e.level.ScreenWidth()), float64(e.level.ScreenHeight())
	m := b.margin

	out := false
	if b.edges.Top {
		out = out || pos.Y+h < -m
	}
	if b.edges.Bottom {
		out = out || pos.Y > sh+m
	}
	if b.edges.Left {
		out = out || pos.X+w < -m
	}
	if b.edges.Right {
		out = out || pos.X > sw+m
	}
	b.outOfBounds = out
	return out
}

func (b *ScreenBounds) handleOut() {
	e := b.Entity()
	switch b.behavior {
	case BoundsDestroy:
		if b.responder != nil {
			b.responder.OnBoundsDestroy()
		}
		if e.level != nil {
			e.level.RemoveEntity(e)
		}
	case BoundsSleep:
		if b.sleeping {
			return
		}
		b.sleeping = true
		if p := GetComponent[PhysicsComponent](e); p != nil {
			p.SetVelocity(Vec2{})
		}
		if b.responder != nil {
			b.responder.OnBoundsSleep()
		}
	case BoundsIgnore:
	}
}

func (b *ScreenBounds) wake() {
	b.sleeping = false
	b.outOfBounds = false
	if b.responder != nil {
		b.responder.OnBoundsWakeup()
	}
}
