package xenon

import "github.com/phanxgames/engine2000"

// AsteroidSize is the size class of an asteroid.
type AsteroidSize int

const (
	AsteroidLarge AsteroidSize = iota
	AsteroidMedium
	AsteroidSmall
)

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidLarge:
		return "large"
	case AsteroidMedium:
		return "medium"
	default:
		return "small"
	}
}

type asteroidStats struct {
	health float64
	speed  float64
	score  int
	rock   string
	metal  string
}

var asteroidTable = [...]asteroidStats{
	AsteroidLarge:  {health: 100, speed: 0.1, score: 10000, rock: TexAsteroidLarge, metal: TexMetalLarge},
	AsteroidMedium: {health: 50, speed: 0.25, score: 7500, rock: TexAsteroidMedium, metal: TexMetalMedium},
	AsteroidSmall:  {health: 25, speed: 0.5, score: 5000, rock: TexAsteroidSmall, metal: TexMetalSmall},
}

func (s AsteroidSize) stats() asteroidStats {
	if s < AsteroidLarge || s > AsteroidSmall {
		s = AsteroidSmall
	}
	return asteroidTable[s]
}

// Asteroid tuning.
const (
	AsteroidDamage      = 25.0
	MetalAsteroidDamage = 100.0
	MetalAsteroidSpeed  = 0.3

	splitSpread = 40.0
	splitDrift  = 0.1
)

// Asteroid drifts down the screen and breaks into three smaller asteroids
// when destroyed, down to AsteroidSmall.
type Asteroid struct {
	enemy

	Size AsteroidSize
	Pos  engine2000.Vec2
	// DriftX is the horizontal velocity; the vertical one comes from Size.
	DriftX float64
}

func newAsteroid(g *Game, size AsteroidSize) *Asteroid {
	st := size.stats()
	return &Asteroid{
		Size: size,
		enemy: enemy{
			game:           g,
			maxHealth:      st.health,
			contactDamage:  AsteroidDamage,
			score:          st.score,
			explosionScale: 1,
		},
	}
}

// Build implements engine2000.Prefab.
func (a *Asteroid) Build(e *engine2000.Entity) {
	e.Name = "asteroid-" + a.Size.String()
	a.build(e, a.Size.stats().rock, a.Pos, engine2000.BodyDynamic, layerEnemy)
	a.sprite.SetCurrentFrame(a.game.rng.IntN(a.sprite.TotalFrames()))
	a.physics.SetVelocity(a.velocity())
}

func (a *Asteroid) velocity() engine2000.Vec2 {
	return engine2000.Vec2{X: a.DriftX, Y: a.Size.stats().speed}
}

// Update holds the drift.
func (a *Asteroid) Update(dt float64) {
	if !a.alive {
		return
	}
	a.updateFlash(dt)
	a.physics.SetVelocity(a.velocity())
}

// TakeDamage implements Damageable.
func (a *Asteroid) TakeDamage(amount float64) {
	if !a.hit(amount) {
		return
	}
	pos := a.entity.Position()
	if a.Size != AsteroidSmall {
		a.split()
	}
	a.die(pos)
}

// split spawns three asteroids of the next size around the center, the
// outer two drifting apart.
func (a *Asteroid) split() {
	c := center(a.entity)
	next := a.Size + 1
	st := next.stats()
	s := sheetByName[st.rock]
	w, h := float64(s.FrameW), float64(s.FrameH)
	for i, dx := range [3]float64{-splitSpread, 0, splitSpread} {
		child := newAsteroid(a.game, next)
		child.Pos = engine2000.Vec2{X: c.X + dx - w/2, Y: c.Y - h/2}
		child.DriftX = float64(i-1) * splitDrift
		a.game.level.CreateEntity(engine2000.LayerGame, child)
	}
	logger.Debug("asteroid split", "size", next)
}

// MetalAsteroid is an indestructible obstacle that pushes the player and
// hurts only the player.
type MetalAsteroid struct {
	engine2000.BaseBoundsResponder

	Size AsteroidSize
	Pos  engine2000.Vec2

	game    *Game
	entity  *engine2000.Entity
	sprite  *engine2000.Sprite
	physics *engine2000.PhysicsComponent
}

func newMetalAsteroid(g *Game, size AsteroidSize) *MetalAsteroid {
	return &MetalAsteroid{game: g, Size: size}
}

// Build implements engine2000.Prefab.
func (m *MetalAsteroid) Build(e *engine2000.Entity) {
	e.Name = "metal-asteroid-" + m.Size.String()
	m.entity = e
	e.Transform().SetPosition(m.Pos.X, m.Pos.Y)

	m.sprite = engine2000.AddComponent[engine2000.Sprite](e)
	m.game.art.applySheet(m.sprite, m.Size.stats().metal)
	m.sprite.SetFrameDelay(0.1)
	m.sprite.SetCurrentFrame(m.game.rng.IntN(m.sprite.TotalFrames()))

	engine2000.AddComponent[engine2000.ScreenBounds](e)

	m.physics = engine2000.AddComponent[engine2000.PhysicsComponent](e)
	m.physics.SetLayer(LayerMetalAsteroid)
	m.physics.CreateBody(e.Level().PhysicsWorld(), engine2000.BodyKinematic)
	m.physics.CreateCollisionShapeFromSprite()
	m.physics.CreateSensorShapeFromSprite(1, m)
	m.physics.SetDebugDraw(m.game.opts.DebugDraw)
	m.physics.SetVelocity(engine2000.Vec2{Y: MetalAsteroidSpeed})
}

// OnSensorBegin damages the player.
func (m *MetalAsteroid) OnSensorBegin(other *engine2000.Entity) {
	if physicsLayer(other) != layerPlayer {
		return
	}
	damage(other, MetalAsteroidDamage)
}
