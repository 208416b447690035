package xenon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phanxgames/engine2000"
)

func spawnPowerUp(t *testing.T, kind PowerUpKind) (*Game, *engine2000.Level, *PowerUp) {
	t.Helper()
	g, level, input := newTestGame(t, Options{DisableWaves: true})
	pu := newPowerUp(g, kind)
	pu.Pos = engine2000.Vec2{X: 100, Y: 0}
	level.CreateEntity(engine2000.LayerGame, pu)
	step(level, input, 1)
	return g, level, pu
}

func TestPowerUpShield(t *testing.T) {
	g, level, pu := spawnPowerUp(t, PowerUpShield)
	p := g.Player()
	p.TakeDamage(75)

	pu.OnSensorBegin(p.Entity())
	assert.Equal(t, 75.0, p.Health())
	_, removes := level.PendingCount()
	assert.Equal(t, 1, removes)

	// Collected once only.
	pu.OnSensorBegin(p.Entity())
	assert.Equal(t, 75.0, p.Health())
}

func TestPowerUpWeapon(t *testing.T) {
	g, _, pu := spawnPowerUp(t, PowerUpWeapon)

	pu.OnSensorBegin(g.Player().Entity())
	assert.Equal(t, WeaponMedium, g.Player().Weapon())
}

func TestPowerUpIgnoresOthers(t *testing.T) {
	g, level, pu := spawnPowerUp(t, PowerUpWeapon)

	loner := newLoner(g)
	loner.Pos = engine2000.Vec2{X: 300, Y: 100}
	le := level.CreateEntity(engine2000.LayerGame, loner)

	pu.OnSensorBegin(le)
	assert.Equal(t, WeaponLight, g.Player().Weapon())
	_, removes := level.PendingCount()
	assert.Zero(t, removes)
}

func TestPowerUpExpires(t *testing.T) {
	_, level, pu := spawnPowerUp(t, PowerUpShield)
	assert.InDelta(t, PowerUpLifetime-testDT, pu.Remaining(), 1e-9)

	pu.Update(PowerUpLifetime / 2)
	_, removes := level.PendingCount()
	assert.Zero(t, removes)

	pu.Update(PowerUpLifetime / 2)
	_, removes = level.PendingCount()
	assert.Equal(t, 1, removes)
}

func TestPowerUpCollectedByContact(t *testing.T) {
	g, level, input := newTestGame(t, Options{DisableWaves: true})
	pos := g.Player().Entity().Position()

	pu := newPowerUp(g, PowerUpWeapon)
	pu.Pos = engine2000.Vec2{X: pos.X + 16, Y: pos.Y - 40}
	e := level.CreateEntity(engine2000.LayerGame, pu)

	step(level, input, 120)
	assert.Equal(t, WeaponMedium, g.Player().Weapon())
	assert.True(t, e.Destroyed())
}
