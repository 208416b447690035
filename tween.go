package engine2000

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of an entity simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenTint) and either call Update(dt) each frame or hand it to
// a TweenComponent. If the target entity is destroyed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Entity
	Done   bool

	// OnDone, if set, runs once when the group finishes.
	OnDone func()
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target entity has been destroyed, Done is set and no writes
// occur.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.Destroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// TweenPosition animates the entity's transform position. Physics bodies
// overwrite the transform every frame, so position tweens suit entities
// without a body (HUD text, popups).
func TweenPosition(e *Entity, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := e.Transform()
	g := &TweenGroup{count: 2, target: e}
	g.tweens[0] = gween.New(float32(t.Position.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(t.Position.Y), float32(toY), duration, fn)
	g.fields[0] = &t.Position.X
	g.fields[1] = &t.Position.Y
	return g
}

// TweenScale animates the entity's transform scale.
func TweenScale(e *Entity, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := e.Transform()
	g := &TweenGroup{count: 2, target: e}
	g.tweens[0] = gween.New(float32(t.Scale.X), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(t.Scale.Y), float32(toSY), duration, fn)
	g.fields[0] = &t.Scale.X
	g.fields[1] = &t.Scale.Y
	return g
}

// TweenAlpha animates the sprite tint's alpha.
func TweenAlpha(s *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: s.Entity()}
	g.tweens[0] = gween.New(float32(s.tint.A), float32(to), duration, fn)
	g.fields[0] = &s.tint.A
	return g
}

// TweenTint animates all four components of the sprite tint.
func TweenTint(s *Sprite, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: s.Entity()}
	g.tweens[0] = gween.New(float32(s.tint.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(s.tint.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(s.tint.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(s.tint.A), float32(to.A), duration, fn)
	g.fields[0] = &s.tint.R
	g.fields[1] = &s.tint.G
	g.fields[2] = &s.tint.B
	g.fields[3] = &s.tint.A
	return g
}

// TweenValue animates an arbitrary field owned by e, such as a label color's
// alpha.
func TweenValue(e *Entity, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: e}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenComponent runs tween groups as part of the entity's update.
// Finished groups are dropped.
type TweenComponent struct {
	BaseComponent

	groups []*TweenGroup
}

// Kind implements Component.
func (*TweenComponent) Kind() ComponentKind { return KindTween }

// Add starts running g.
func (c *TweenComponent) Add(g *TweenGroup) {
	if g != nil {
		c.groups = append(c.groups, g)
	}
}

// Active returns the number of unfinished groups.
func (c *TweenComponent) Active() int { return len(c.groups) }

// Update advances every group.
func (c *TweenComponent) Update(dt float64) {
	n := 0
	for _, g := range c.groups {
		g.Update(dt)
		if !g.Done {
			c.groups[n] = g
			n++
		}
	}
	clear(c.groups[n:])
	c.groups = c.groups[:n]
}

// Destroy drops the groups without finishing them.
func (c *TweenComponent) Destroy() {
	c.groups = nil
}
