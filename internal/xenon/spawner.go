package xenon

import "github.com/phanxgames/engine2000"

// Spawn margins keep wide sprites fully on screen horizontally.
const (
	asteroidMargin = 96
	powerUpMargin  = 32
)

// spawner rolls every wave row on its own timer.
type spawner struct {
	game   *Game
	waves  []Wave
	timers []float64
}

func newSpawner(g *Game, t WaveTable) *spawner {
	return &spawner{
		game:   g,
		waves:  t.Waves,
		timers: make([]float64, len(t.Waves)),
	}
}

func (s *spawner) update(dt float64) {
	for i, w := range s.waves {
		s.timers[i] += dt
		if s.timers[i] < w.Interval {
			continue
		}
		s.timers[i] = 0
		if s.game.rng.Float64() < w.Chance {
			s.game.Spawn(w.Kind)
		}
	}
}

// Spawn creates one kind at a random spawn point and returns its entity, or
// nil for an unknown kind.
func (g *Game) Spawn(kind SpawnKind) *engine2000.Entity {
	w, h := float64(g.level.ScreenWidth()), float64(g.level.ScreenHeight())
	var prefab engine2000.Prefab
	switch kind {
	case SpawnLoner:
		l := newLoner(g)
		l.FromRight = g.rng.IntN(2) == 1
		l.Pos.Y = g.rng.Float64() * h / 2
		l.Pos.X = -float64(sheetByName[TexLoner].FrameW)
		if l.FromRight {
			l.Pos.X = w
		}
		prefab = l
	case SpawnRusher:
		r := newRusher(g)
		r.FromBottom = g.rng.IntN(2) == 1
		r.Pos.X = g.rng.Float64() * (w - float64(sheetByName[TexRusher].FrameW))
		r.Pos.Y = -float64(sheetByName[TexRusher].FrameH)
		if r.FromBottom {
			r.Pos.Y = h
		}
		prefab = r
	case SpawnAsteroid:
		a := newAsteroid(g, AsteroidSize(g.rng.IntN(3)))
		a.Pos = engine2000.Vec2{X: g.randomX(asteroidMargin), Y: 0}
		prefab = a
	case SpawnMetalAsteroid:
		m := newMetalAsteroid(g, AsteroidSize(g.rng.IntN(3)))
		m.Pos = engine2000.Vec2{X: g.randomX(asteroidMargin), Y: 0}
		prefab = m
	case SpawnShield, SpawnWeapon:
		pk := PowerUpShield
		if kind == SpawnWeapon {
			pk = PowerUpWeapon
		}
		p := newPowerUp(g, pk)
		p.Pos = engine2000.Vec2{X: g.randomX(powerUpMargin), Y: -powerUpMargin}
		prefab = p
	default:
		logger.Warn("unknown spawn kind", "kind", kind)
		return nil
	}
	logger.Debug("spawn", "kind", kind)
	return g.level.CreateEntity(engine2000.LayerGame, prefab)
}

// randomX returns an x in [margin, width-margin).
func (g *Game) randomX(margin float64) float64 {
	span := float64(g.level.ScreenWidth()) - 2*margin
	if span <= 0 {
		return 0
	}
	return margin + g.rng.Float64()*span
}
