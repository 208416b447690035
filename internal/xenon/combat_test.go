package xenon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/engine2000"
)

func newShot(g *Game, pos engine2000.Vec2, weapon WeaponLevel) *PlayerProjectile {
	return &PlayerProjectile{
		projectile: projectile{game: g},
		Pos:        pos,
		Speed:      PlayerProjectileSpeed,
		Weapon:     weapon,
	}
}

func TestPlayerProjectileHitsLoner(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	loner := newLoner(g)
	loner.Pos = engine2000.Vec2{X: 200, Y: 100}
	level.CreateEntity(engine2000.LayerGame, loner)
	shot := newShot(g, engine2000.Vec2{X: 220, Y: 200}, WeaponLight)
	shotEntity := level.CreateEntity(engine2000.LayerGame, shot)

	step(level, input, 30)

	assert.Equal(t, LonerHealth-WeaponLight.Damage(), loner.Health())
	assert.True(t, loner.Alive())
	assert.False(t, shot.Active())
	assert.True(t, shotEntity.Destroyed())
	assert.Zero(t, g.Score())

	stats := g.Stats()
	assert.GreaterOrEqual(t, stats.Contacts, 1)
	assert.GreaterOrEqual(t, stats.Pairs[LayerPlayerProjectile+">"+layerEnemy], 1)
}

func TestPlayerProjectileKillsLoner(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	loner := newLoner(g)
	loner.Pos = engine2000.Vec2{X: 200, Y: 100}
	lonerEntity := level.CreateEntity(engine2000.LayerGame, loner)
	level.CreateEntity(engine2000.LayerGame, newShot(g, engine2000.Vec2{X: 220, Y: 200}, WeaponHeavy))

	step(level, input, 30)

	assert.False(t, loner.Alive())
	assert.True(t, lonerEntity.Destroyed())
	assert.Equal(t, EnemyScore, g.Score())
	assert.Equal(t, 1, g.Stats().Kills)
	assert.Equal(t, EnemyScore, g.Stats().Score)
	assert.Len(t, named(level, "score-popup"), 1)
	// The impact spark and the Loner's explosion.
	assert.Len(t, named(level, "explosion"), 2)
}

func TestEnemyProjectileHitsPlayer(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})
	pos := g.Player().Entity().Position()

	shot := &EnemyProjectile{
		projectile: projectile{game: g},
		Pos:        engine2000.Vec2{X: pos.X + 24, Y: pos.Y - 40},
		Speed:      LonerShotSpeed,
	}
	level.CreateEntity(engine2000.LayerGame, shot)

	step(level, input, 30)
	assert.Equal(t, PlayerMaxHealth-EnemyProjectileDamage, g.Player().Health())
	assert.False(t, shot.Active())
}

func TestEnemyProjectileShotDown(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	shot := &EnemyProjectile{
		projectile: projectile{game: g},
		Pos:        engine2000.Vec2{X: 100, Y: 100},
		Speed:      LonerShotSpeed,
	}
	e := level.CreateEntity(engine2000.LayerGame, shot)
	step(level, input, 1)

	shot.TakeDamage(WeaponLight.Damage())
	assert.False(t, shot.Active())
	_, removes := level.PendingCount()
	assert.Equal(t, 1, removes)

	step(level, input, 1)
	assert.True(t, e.Destroyed())
	assert.Len(t, named(level, "explosion"), 1)
}

func TestLonerFires(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	loner := newLoner(g)
	loner.Pos = engine2000.Vec2{X: 0, Y: 20}
	level.CreateEntity(engine2000.LayerGame, loner)

	step(level, input, 70)
	assert.Len(t, named(level, "enemy-projectile"), 1)
}

func TestRusherContact(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})
	pos := g.Player().Entity().Position()

	rusher := newRusher(g)
	rusher.Pos = engine2000.Vec2{X: pos.X, Y: pos.Y - 40}
	level.CreateEntity(engine2000.LayerGame, rusher)

	step(level, input, 30)
	assert.Equal(t, PlayerMaxHealth-EnemyContactDamage, g.Player().Health())
	assert.True(t, rusher.Alive())
}

func TestAsteroidSplit(t *testing.T) {
	tests := []struct {
		size     AsteroidSize
		adds     int
		score    int
		children string
	}{
		{AsteroidLarge, 4, 10000, "asteroid-medium"},
		{AsteroidMedium, 4, 7500, "asteroid-small"},
		{AsteroidSmall, 1, 5000, ""},
	}
	for _, tt := range tests {
		t.Run(tt.size.String(), func(t *testing.T) {
			g, level, input := newTestGame(t, Options{DisableWaves: true})

			a := newAsteroid(g, tt.size)
			a.Pos = engine2000.Vec2{X: 300, Y: 100}
			e := level.CreateEntity(engine2000.LayerGame, a)
			step(level, input, 1)

			a.TakeDamage(a.Size.stats().health)
			adds, removes := level.PendingCount()
			assert.Equal(t, tt.adds, adds)
			assert.Equal(t, 1, removes)
			assert.Equal(t, tt.score, g.Score())

			step(level, input, 1)
			assert.True(t, e.Destroyed())
			if tt.children == "" {
				return
			}
			children := named(level, tt.children)
			require.Len(t, children, 3)
			var drift []float64
			for _, c := range children {
				child, ok := c.Prefab().(*Asteroid)
				require.True(t, ok)
				drift = append(drift, child.DriftX)
			}
			assert.ElementsMatch(t, []float64{-splitDrift, 0, splitDrift}, drift)
		})
	}
}

func TestAsteroidPartialDamage(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	a := newAsteroid(g, AsteroidLarge)
	a.Pos = engine2000.Vec2{X: 300, Y: 100}
	level.CreateEntity(engine2000.LayerGame, a)
	step(level, input, 1)

	a.TakeDamage(40)
	assert.Equal(t, 60.0, a.Health())
	adds, removes := level.PendingCount()
	assert.Zero(t, adds)
	assert.Zero(t, removes)
}

func TestMetalAsteroid(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})

	m := newMetalAsteroid(g, AsteroidSmall)
	m.Pos = engine2000.Vec2{X: 100, Y: 100}
	me := level.CreateEntity(engine2000.LayerGame, m)
	loner := newLoner(g)
	loner.Pos = engine2000.Vec2{X: 400, Y: 100}
	le := level.CreateEntity(engine2000.LayerGame, loner)
	shot := newShot(g, engine2000.Vec2{X: 500, Y: 300}, WeaponHeavy)
	level.CreateEntity(engine2000.LayerGame, shot)
	step(level, input, 1)

	t.Run("absorbs player shots", func(t *testing.T) {
		shot.OnSensorBegin(me)
		assert.False(t, shot.Active())
		assert.False(t, me.Destroyed())
		_, ok := me.Prefab().(Damageable)
		assert.False(t, ok)
	})

	t.Run("ignores enemies", func(t *testing.T) {
		m.OnSensorBegin(le)
		assert.Equal(t, LonerHealth, loner.Health())
	})

	t.Run("hurts the player", func(t *testing.T) {
		m.OnSensorBegin(g.Player().Entity())
		assert.Equal(t, PlayerMaxLives-1, g.Player().Lives())
		assert.Equal(t, PlayerMaxHealth, g.Player().Health())
	})
}
