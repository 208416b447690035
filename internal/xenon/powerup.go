package xenon

import "github.com/phanxgames/engine2000"

// PowerUpKind selects what a power-up grants.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpWeapon
)

func (k PowerUpKind) String() string {
	if k == PowerUpWeapon {
		return "weapon"
	}
	return "shield"
}

// Power-up tuning.
const (
	PowerUpSpeed    = 0.3
	PowerUpLifetime = 30.0
	ShieldHealth    = 50.0
)

// PowerUp falls down the screen until the player collects it, it leaves
// through the bottom edge or its lifetime runs out.
type PowerUp struct {
	Kind PowerUpKind
	Pos  engine2000.Vec2

	game      *Game
	entity    *engine2000.Entity
	physics   *engine2000.PhysicsComponent
	remaining float64
	collected bool
}

func newPowerUp(g *Game, kind PowerUpKind) *PowerUp {
	return &PowerUp{game: g, Kind: kind}
}

// Build implements engine2000.Prefab.
func (p *PowerUp) Build(e *engine2000.Entity) {
	e.Name = "powerup-" + p.Kind.String()
	p.entity = e
	p.remaining = PowerUpLifetime
	e.Transform().SetPosition(p.Pos.X, p.Pos.Y)

	sprite := engine2000.AddComponent[engine2000.Sprite](e)
	sheet := TexShieldPowerUp
	if p.Kind == PowerUpWeapon {
		sheet = TexWeaponPowerUp
	}
	p.game.art.applySheet(sprite, sheet)

	bounds := engine2000.AddComponent[engine2000.ScreenBounds](e)
	bounds.SetEdges(engine2000.BoundsEdges{Bottom: true})
	bounds.SetBehavior(engine2000.BoundsDestroy)

	p.physics = engine2000.AddComponent[engine2000.PhysicsComponent](e)
	p.physics.SetLayer(LayerPowerUp)
	p.physics.CreateBody(e.Level().PhysicsWorld(), engine2000.BodyDynamic)
	p.physics.CreateSensorShapeFromSprite(1, p)
	p.physics.SetDebugDraw(p.game.opts.DebugDraw)
	p.physics.SetDebugColor(engine2000.DebugYellow)
	p.physics.SetVelocity(engine2000.Vec2{Y: PowerUpSpeed})
}

// Remaining returns the seconds left before the power-up expires.
func (p *PowerUp) Remaining() float64 { return p.remaining }

// Update counts down the lifetime.
func (p *PowerUp) Update(dt float64) {
	p.remaining -= dt
	if p.remaining <= 0 {
		p.entity.Level().RemoveEntity(p.entity)
	}
}

// OnSensorBegin applies the effect when the player touches it.
func (p *PowerUp) OnSensorBegin(other *engine2000.Entity) {
	if p.collected || physicsLayer(other) != layerPlayer {
		return
	}
	player, ok := other.Prefab().(*Player)
	if !ok {
		return
	}
	p.collected = true
	switch p.Kind {
	case PowerUpShield:
		player.GainHealth(ShieldHealth)
	case PowerUpWeapon:
		player.UpgradeWeapon()
	}
	logger.Debug("power-up collected", "kind", p.Kind)
	p.entity.Level().RemoveEntity(p.entity)
}
