package engine2000

// Transform holds an entity's position and scale. Position is the top-left
// corner of the entity's box in screen coordinates. Physics writes it back
// from the body each frame; gameplay and UI layout code may set it directly.
type Transform struct {
	BaseComponent

	Position Vec2
	Scale    Vec2
}

// Kind implements Component.
func (*Transform) Kind() ComponentKind { return KindTransform }

func (t *Transform) setDefaults() {
	t.Scale = Vec2{1, 1}
}

// SetPosition sets the position.
func (t *Transform) SetPosition(x, y float64) {
	t.Position = Vec2{x, y}
}

// Translate moves the position by (dx, dy).
func (t *Transform) Translate(dx, dy float64) {
	t.Position.X += dx
	t.Position.Y += dy
}

// SetScale sets the scale on both axes.
func (t *Transform) SetScale(sx, sy float64) {
	t.Scale = Vec2{sx, sy}
}
