package xenon

import "github.com/phanxgames/engine2000"

// EnemyProjectileDamage is what one enemy shot deals.
const EnemyProjectileDamage = 25.0

// projectile holds what both shot types share: a body moving at a fixed
// speed along a direction, removed once it leaves the screen.
type projectile struct {
	game    *Game
	entity  *engine2000.Entity
	sprite  *engine2000.Sprite
	physics *engine2000.PhysicsComponent
	dir     engine2000.Vec2
	speed   float64
	active  bool
}

func (p *projectile) build(e *engine2000.Entity, pos engine2000.Vec2, layer string) {
	p.entity = e
	p.active = true
	e.Transform().SetPosition(pos.X, pos.Y)
	p.sprite = engine2000.AddComponent[engine2000.Sprite](e)
	p.physics = engine2000.AddComponent[engine2000.PhysicsComponent](e)
	p.physics.SetLayer(layer)
	p.physics.CreateBody(e.Level().PhysicsWorld(), engine2000.BodyDynamic)
	p.physics.SetDebugDraw(p.game.opts.DebugDraw)
	p.physics.SetDebugColor(engine2000.DebugYellow)
	engine2000.AddComponent[engine2000.ScreenBounds](e)
}

// Update keeps the shot at its speed.
func (p *projectile) Update(float64) {
	if !p.active {
		return
	}
	p.physics.SetVelocity(p.dir.Scale(p.speed))
}

// remove deactivates the shot and queues its removal. It reports false when
// the shot was already spent.
func (p *projectile) remove() bool {
	if !p.active {
		return false
	}
	p.active = false
	p.entity.Level().RemoveEntity(p.entity)
	return true
}

// Active reports whether the shot has not hit anything yet.
func (p *projectile) Active() bool { return p.active }

// PlayerProjectile is a missile fired by the player.
type PlayerProjectile struct {
	projectile
	engine2000.BaseBoundsResponder

	Pos    engine2000.Vec2
	Speed  float64
	Weapon WeaponLevel
}

// Build implements engine2000.Prefab.
func (p *PlayerProjectile) Build(e *engine2000.Entity) {
	e.Name = "player-projectile"
	p.dir = engine2000.Vec2{Y: -1}
	p.speed = p.Speed
	p.build(e, p.Pos, LayerPlayerProjectile)

	p.game.art.applySheet(p.sprite, TexMissile)
	p.sprite.SetFrameRange(p.Weapon.frames())

	p.physics.CreateSensorShapeFromSprite(1, p)
	p.physics.SetImmunity(shotImmunity)
	p.physics.SetVelocity(p.dir.Scale(p.speed))
}

// Damage returns the damage the missile deals.
func (p *PlayerProjectile) Damage() float64 { return p.Weapon.Damage() }

// OnSensorBegin damages anything damageable except the player. Metal
// asteroids absorb the missile.
func (p *PlayerProjectile) OnSensorBegin(other *engine2000.Entity) {
	if !p.active {
		return
	}
	if damage(other, p.Damage(), layerPlayer) || physicsLayer(other) == LayerMetalAsteroid {
		p.game.spark(p.entity.Position())
		p.remove()
	}
}

// OnBoundsDestroy implements engine2000.BoundsResponder.
func (p *PlayerProjectile) OnBoundsDestroy() { p.active = false }

// EnemyProjectile is a shot fired by a Loner. The player can shoot it down.
type EnemyProjectile struct {
	projectile
	engine2000.BaseBoundsResponder

	Pos   engine2000.Vec2
	Speed float64
}

// Build implements engine2000.Prefab.
func (p *EnemyProjectile) Build(e *engine2000.Entity) {
	e.Name = "enemy-projectile"
	p.dir = engine2000.Vec2{Y: 1}
	p.speed = p.Speed
	p.build(e, p.Pos, LayerEnemyProjectile)

	p.game.art.applySheet(p.sprite, TexEnemyShot)
	p.sprite.SetFrameDelay(0.1)

	p.physics.CreateCollisionShapeFromSprite()
	p.physics.CreateSensorShapeFromSprite(1, p)
	p.physics.SetVelocity(p.dir.Scale(p.speed))
}

// OnSensorBegin damages anything damageable that is not hostile.
func (p *EnemyProjectile) OnSensorBegin(other *engine2000.Entity) {
	if !p.active {
		return
	}
	pos := p.entity.Position()
	if enemyContact(other, EnemyProjectileDamage) {
		p.game.spark(pos)
		p.remove()
	}
}

// TakeDamage implements Damageable: any hit destroys the shot.
func (p *EnemyProjectile) TakeDamage(float64) {
	if !p.active {
		return
	}
	p.game.explode(p.entity.Position(), 0.3)
	p.remove()
}

// OnBoundsDestroy implements engine2000.BoundsResponder.
func (p *EnemyProjectile) OnBoundsDestroy() { p.active = false }
