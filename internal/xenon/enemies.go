package xenon

import "github.com/phanxgames/engine2000"

// Enemy tuning.
const (
	EnemyContactDamage = 25.0
	EnemyScore         = 10000

	LonerHealth    = 50.0
	LonerSpeed     = 0.5
	LonerFireDelay = 1.0
	LonerShotSpeed = 1.0

	RusherHealth = 75.0
	RusherSpeed  = 0.5

	enemyFlashTime = 0.1
)

// enemy is the health, contact damage and death handling shared by every
// destructible enemy.
type enemy struct {
	game    *Game
	entity  *engine2000.Entity
	sprite  *engine2000.Sprite
	physics *engine2000.PhysicsComponent

	health         float64
	maxHealth      float64
	contactDamage  float64
	score          int
	explosionScale float64
	alive          bool
	flashTimer     float64
}

// build attaches the sprite sheet, body and shapes at pos.
func (en *enemy) build(e *engine2000.Entity, sheet string, pos engine2000.Vec2, kind engine2000.BodyKind, layer string) {
	en.entity = e
	en.alive = true
	en.health = en.maxHealth
	e.Transform().SetPosition(pos.X, pos.Y)

	en.sprite = engine2000.AddComponent[engine2000.Sprite](e)
	en.game.art.applySheet(en.sprite, sheet)
	en.sprite.SetFrameDelay(0.1)

	engine2000.AddComponent[engine2000.ScreenBounds](e)

	en.physics = engine2000.AddComponent[engine2000.PhysicsComponent](e)
	en.physics.SetLayer(layer)
	en.physics.CreateBody(e.Level().PhysicsWorld(), kind)
	en.physics.CreateCollisionShapeFromSprite()
	en.physics.CreateSensorShapeFromSprite(1, nil)
	en.physics.SetDebugDraw(en.game.opts.DebugDraw)
	en.physics.SetDebugColor(engine2000.DebugBlue)
}

func (en *enemy) Health() float64 { return en.health }
func (en *enemy) Alive() bool { return en.alive }

// OnSensorBegin deals contact damage.
func (en *enemy) OnSensorBegin(other *engine2000.Entity) {
	if !en.alive {
		return
	}
	enemyContact(other, en.contactDamage)
}

// TakeDamage implements Damageable. At zero health the enemy explodes,
// scores and removes itself.
func (en *enemy) TakeDamage(amount float64) {
	if !en.hit(amount) {
		return
	}
	pos := en.entity.Position()
	en.game.explode(pos, en.explosionScale)
	en.die(pos)
}

// hit subtracts amount and reports whether it was the killing blow. A hit
// that leaves the enemy alive flashes its sprite.
func (en *enemy) hit(amount float64) bool {
	if !en.alive {
		return false
	}
	en.health = max(0, en.health-amount)
	if en.health > 0 {
		en.sprite.SetVisible(false)
		en.flashTimer = enemyFlashTime
		return false
	}
	en.alive = false
	return true
}

// die awards the score with a popup at pos and removes the enemy.
func (en *enemy) die(pos engine2000.Vec2) {
	en.game.scored(pos, en.score)
	en.entity.Level().RemoveEntity(en.entity)
}

func (en *enemy) updateFlash(dt float64) {
	if en.flashTimer <= 0 {
		return
	}
	en.flashTimer -= dt
	if en.flashTimer <= 0 {
		en.sprite.SetVisible(true)
	}
}

// Loner crosses the screen horizontally and fires down at a fixed rate.
type Loner struct {
	enemy

	Pos engine2000.Vec2
	// FromRight makes the Loner travel leftwards.
	FromRight bool

	fireTimer float64
}

func newLoner(g *Game) *Loner {
	return &Loner{enemy: enemy{
		game:           g,
		maxHealth:      LonerHealth,
		contactDamage:  EnemyContactDamage,
		score:          EnemyScore,
		explosionScale: 1,
	}}
}

// Build implements engine2000.Prefab.
func (l *Loner) Build(e *engine2000.Entity) {
	e.Name = "loner"
	l.build(e, TexLoner, l.Pos, engine2000.BodyDynamic, layerEnemy)
	l.physics.SetVelocity(l.velocity())
}

func (l *Loner) velocity() engine2000.Vec2 {
	if l.FromRight {
		return engine2000.Vec2{X: -LonerSpeed}
	}
	return engine2000.Vec2{X: LonerSpeed}
}

// Update fires on the fire delay.
func (l *Loner) Update(dt float64) {
	if !l.alive {
		return
	}
	l.updateFlash(dt)
	l.physics.SetVelocity(l.velocity())
	l.fireTimer += dt
	if l.fireTimer >= LonerFireDelay {
		l.fireTimer = 0
		l.shoot()
	}
}

func (l *Loner) shoot() {
	pos := l.entity.Position()
	shot := &EnemyProjectile{
		projectile: projectile{game: l.game},
		Pos:        engine2000.Vec2{X: pos.X + float64(l.sprite.FrameWidth())*0.5, Y: pos.Y + float64(l.sprite.FrameHeight())},
		Speed:      LonerShotSpeed,
	}
	l.entity.Level().CreateEntity(engine2000.LayerGame, shot)
	shot.physics.SetImmunity(shotImmunity)
}

// Rusher charges vertically through the screen.
type Rusher struct {
	enemy

	Pos engine2000.Vec2
	// FromBottom makes the Rusher travel upwards.
	FromBottom bool
}

func newRusher(g *Game) *Rusher {
	return &Rusher{enemy: enemy{
		game:           g,
		maxHealth:      RusherHealth,
		contactDamage:  EnemyContactDamage,
		score:          EnemyScore,
		explosionScale: 0.8,
	}}
}

// Build implements engine2000.Prefab.
func (r *Rusher) Build(e *engine2000.Entity) {
	e.Name = "rusher"
	r.build(e, TexRusher, r.Pos, engine2000.BodyDynamic, layerEnemy)
	r.physics.SetVelocity(r.velocity())
}

func (r *Rusher) velocity() engine2000.Vec2 {
	if r.FromBottom {
		return engine2000.Vec2{Y: -RusherSpeed}
	}
	return engine2000.Vec2{Y: RusherSpeed}
}

// Update holds the charge speed.
func (r *Rusher) Update(dt float64) {
	if !r.alive {
		return
	}
	r.updateFlash(dt)
	r.physics.SetVelocity(r.velocity())
}
