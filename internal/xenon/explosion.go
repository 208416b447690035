package xenon

import "github.com/phanxgames/engine2000"

const (
	explosionDuration = 0.6
	explosionFrames   = 10
)

// Explosion plays a ten-frame sheet once over explosionDuration and removes
// itself.
type Explosion struct {
	// Pos is the top-left corner.
	Pos   engine2000.Vec2
	Scale float64
	Sheet string

	art     *art
	entity  *engine2000.Entity
	sprite  *engine2000.Sprite
	elapsed float64
}

// Build implements engine2000.Prefab.
func (x *Explosion) Build(e *engine2000.Entity) {
	e.Name = "explosion"
	x.entity = e
	if x.Sheet == "" {
		x.Sheet = TexExplosion
	}
	if x.Scale <= 0 {
		x.Scale = 1
	}
	e.Transform().SetPosition(x.Pos.X, x.Pos.Y)
	e.Transform().SetScale(x.Scale, x.Scale)

	x.sprite = engine2000.AddComponent[engine2000.Sprite](e)
	x.art.applySheet(x.sprite, x.Sheet)
	x.sprite.SetAnimationMode(engine2000.AnimControlled)
	x.sprite.SetFrameDelay(explosionDuration / explosionFrames)
	x.sprite.SetCurrentFrame(0)
}

// Update advances the frame from the elapsed time.
func (x *Explosion) Update(dt float64) {
	x.elapsed += dt
	frame := int(x.elapsed / explosionDuration * explosionFrames)
	if frame >= explosionFrames {
		x.entity.Level().RemoveEntity(x.entity)
		return
	}
	x.sprite.SetCurrentFrame(frame)
}

// explode spawns a full-size explosion sheet at pos.
func (g *Game) explode(pos engine2000.Vec2, scale float64) {
	g.level.CreateEntity(engine2000.LayerForeground, &Explosion{Pos: pos, Scale: scale, art: g.art})
}

// spark spawns the small impact explosion at pos.
func (g *Game) spark(pos engine2000.Vec2) {
	g.level.CreateEntity(engine2000.LayerForeground, &Explosion{Pos: pos, Scale: 1, Sheet: TexExplosionSmall, art: g.art})
}
