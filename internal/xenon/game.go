// Package xenon is a vertical shooter built on engine2000: a player ship,
// Loner and Rusher enemies, splitting asteroids, power-ups and a wave
// spawner driven by a YAML table.
package xenon

import (
	"fmt"
	"math/rand/v2"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/engine2000"
	"github.com/phanxgames/engine2000/ecs"
)

// Options configure a Game.
type Options struct {
	// Textures overrides placeholder sheets by name.
	Textures Textures
	// Atlas supplies sheets as regions named after the textures. It takes
	// precedence over Textures.
	Atlas *engine2000.Atlas
	// Waves is the spawn table. The zero value uses DefaultWaves.
	Waves WaveTable
	// Seed seeds the spawn rolls.
	Seed uint64
	// DisableWaves turns the spawner off; Spawn still works.
	DisableWaves bool
	// DebugDraw shows physics shapes.
	DebugDraw bool
}

// Game implements engine2000.Application.
type Game struct {
	opts Options
	art  *art
	rng      *rand.Rand

	level   *engine2000.Level
	world   donburi.World
	stats   *Stats
	player  *Player
	lives   *LifeDisplay
	spawner *spawner

	score    int
	gameOver bool
}

// New returns a game ready to be passed to engine2000.New.
func New(opts Options) *Game {
	if opts.Waves.Waves == nil {
		opts.Waves = DefaultWaves()
	}
	textures := PlaceholderTextures()
	for name, tex := range opts.Textures {
		textures[name] = tex
	}
	return &Game{
		opts: opts,
		art:  &art{atlas: opts.Atlas, textures: textures},
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
}

// OnInit implements engine2000.Application.
func (g *Game) OnInit(e *engine2000.Engine) error {
	if err := SetupLayers(e.Layers()); err != nil {
		return err
	}
	level, err := e.NewLevel()
	if err != nil {
		return fmt.Errorf("xenon: %w", err)
	}
	if err := g.Setup(level); err != nil {
		return err
	}
	e.SetCurrentLevel(level)
	return nil
}

// OnShutdown implements engine2000.ApplicationShutdown.
func (g *Game) OnShutdown(*engine2000.Engine) {
	d := g.Stats()
	logger.Info("game over", "score", g.score, "kills", d.Kills, "contacts", d.Contacts)
}

// Setup populates level. The level's layer table must already have the
// game's layers, see SetupLayers.
func (g *Game) Setup(level *engine2000.Level) error {
	if _, ok := level.LayerTable().LayerIndex(LayerPlayerProjectile); !ok {
		return fmt.Errorf("xenon: setup: layer %s missing", LayerPlayerProjectile)
	}
	g.level = level
	g.score = 0
	g.gameOver = false
	level.SetClearColor(engine2000.ColorBlack)

	g.world = donburi.NewWorld()
	ecs.Attach(level, g.world)
	g.stats = newStats(g.world)

	level.CreateEntity(engine2000.LayerBackground, engine2000.PrefabFunc(func(e *engine2000.Entity) {
		e.Name = "background"
		g.art.applySheet(engine2000.AddComponent[engine2000.Sprite](e), TexBackground)
	}))

	g.player = newPlayer(g)
	level.CreateEntity(engine2000.LayerPlayer, g.player)

	g.label("PLAYER ONE", titleX, titleY)
	level.CreateEntity(engine2000.LayerUI, &scoreDisplay{game: g})
	g.lives = &LifeDisplay{game: g}
	level.CreateEntity(engine2000.LayerUI, g.lives)

	g.spawner = newSpawner(g, g.opts.Waves)
	level.CreateEntity(engine2000.LayerBackground, &director{game: g})
	logger.Debug("level ready", "waves", len(g.opts.Waves.Waves))
	return nil
}

func (g *Game) Level() *engine2000.Level { return g.level }
func (g *Game) Player() *Player { return g.player }
func (g *Game) Lives() *LifeDisplay { return g.lives }
func (g *Game) Score() int { return g.score }
func (g *Game) GameOver() bool { return g.gameOver }

// AddScore adds n points.
func (g *Game) AddScore(n int) { g.score += n }

// Stats returns the session tally.
func (g *Game) Stats() StatsData {
	if g.stats == nil {
		return StatsData{}
	}
	return g.stats.Data()
}

func (g *Game) onPlayerDead() {
	g.gameOver = true
	logger.Info("player destroyed", "score", g.score)
}

// director runs the spawner and drains sensor events once per frame.
type director struct {
	game *Game
}

func (d *director) Build(e *engine2000.Entity) { e.Name = "director" }

func (d *director) Update(dt float64) {
	g := d.game
	if !g.opts.DisableWaves && !g.gameOver {
		g.spawner.update(dt)
	}
	g.stats.Process()
}
