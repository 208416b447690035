package xenon

import "github.com/phanxgames/engine2000"

// Player tuning.
const (
	PlayerSpeed           = 1.5
	PlayerFireDelay       = 0.3
	PlayerProjectileSpeed = 3.0
	PlayerMaxLives        = 3
	PlayerMaxHealth       = 100.0

	playerNeutralFrame = 3
	playerLeftFrame    = 0
	playerRightFrame   = 6
	playerBankDelay    = 0.05
	playerFlashTime    = 0.1
	playerDeathFirst   = 13
	playerDeathLast    = 20
	playerDeathDelay   = 0.1
	playerBottomGap    = 20
	shotImmunity       = 0.05
)

// WeaponLevel is the strength of the player's missiles.
type WeaponLevel int

const (
	WeaponLight WeaponLevel = iota
	WeaponMedium
	WeaponHeavy
)

func (w WeaponLevel) String() string {
	switch w {
	case WeaponMedium:
		return "medium"
	case WeaponHeavy:
		return "heavy"
	default:
		return "light"
	}
}

// Damage returns the damage one missile deals.
func (w WeaponLevel) Damage() float64 {
	switch w {
	case WeaponMedium:
		return 50
	case WeaponHeavy:
		return 100
	default:
		return 25
	}
}

// frames returns the missile sheet frames used at this level.
func (w WeaponLevel) frames() (first, last int) {
	switch w {
	case WeaponMedium:
		return 2, 3
	case WeaponHeavy:
		return 4, 5
	default:
		return 0, 1
	}
}

// Player is the ship under keyboard or gamepad control.
type Player struct {
	game    *Game
	entity  *engine2000.Entity
	sprite  *engine2000.Sprite
	physics *engine2000.PhysicsComponent
	bar     *engine2000.HealthBar

	health float64
	lives  int
	weapon WeaponLevel

	fireTimer  float64
	flashTimer float64
	bankTimer  float64
	frame      int

	dying      bool
	deathTimer float64
	dead       bool
}

func newPlayer(g *Game) *Player {
	return &Player{
		game:   g,
		health: PlayerMaxHealth,
		lives:  PlayerMaxLives,
		frame:  playerNeutralFrame,
	}
}

// Build implements engine2000.Prefab.
func (p *Player) Build(e *engine2000.Entity) {
	e.Name = "player"
	p.entity = e
	l := e.Level()

	p.sprite = engine2000.AddComponent[engine2000.Sprite](e)
	p.game.art.applySheet(p.sprite, TexShip)
	p.sprite.SetAnimationMode(engine2000.AnimControlled)
	p.sprite.SetCurrentFrame(p.frame)

	fw, fh := p.sprite.Size()
	e.Transform().SetPosition((float64(l.ScreenWidth())-fw)/2, float64(l.ScreenHeight())-fh-playerBottomGap)

	p.physics = engine2000.AddComponent[engine2000.PhysicsComponent](e)
	p.physics.SetLayer(layerPlayer)
	p.physics.CreateBody(l.PhysicsWorld(), engine2000.BodyDynamic)
	p.physics.CreateCollisionShapeFromSprite()
	p.physics.SetDebugDraw(p.game.opts.DebugDraw)
}

// Init places the health bar.
func (p *Player) Init() {
	l := p.entity.Level()
	l.CreateEntity(engine2000.LayerUI, engine2000.PrefabFunc(func(e *engine2000.Entity) {
		e.Name = "player-health"
		e.Transform().SetPosition(10, float64(l.ScreenHeight())-30)
		p.bar = engine2000.AddComponent[engine2000.HealthBar](e)
		p.bar.SetDimensions(200, 20)
		p.bar.SetHealth(p.health, PlayerMaxHealth)
	}))
}

func (p *Player) Entity() *engine2000.Entity { return p.entity }
func (p *Player) Health() float64 { return p.health }
func (p *Player) Lives() int { return p.lives }
func (p *Player) Weapon() WeaponLevel { return p.weapon }

// Dead reports whether the death animation has finished.
func (p *Player) Dead() bool { return p.dead }

// Dying reports whether the last life is lost.
func (p *Player) Dying() bool { return p.dying }

// Update moves, animates and fires.
func (p *Player) Update(dt float64) {
	if p.flashTimer > 0 {
		p.flashTimer -= dt
		if p.flashTimer <= 0 {
			p.sprite.SetVisible(true)
		}
	}
	if p.dying {
		p.updateDeath(dt)
		return
	}

	in := p.entity.Level().Input()
	var dir engine2000.Vec2
	if in.Key(engine2000.KeyLeft) || in.Key(engine2000.KeyA) || in.Button(engine2000.ButtonDPadLeft) {
		dir.X--
	}
	if in.Key(engine2000.KeyRight) || in.Key(engine2000.KeyD) || in.Button(engine2000.ButtonDPadRight) {
		dir.X++
	}
	if in.Key(engine2000.KeyUp) || in.Key(engine2000.KeyW) || in.Button(engine2000.ButtonDPadUp) {
		dir.Y--
	}
	if in.Key(engine2000.KeyDown) || in.Key(engine2000.KeyS) || in.Button(engine2000.ButtonDPadDown) {
		dir.Y++
	}
	p.physics.SetVelocity(dir.Scale(PlayerSpeed))
	p.clamp()
	p.bank(dir.X, dt)

	if p.fireTimer > 0 {
		p.fireTimer -= dt
	}
	if (in.Key(engine2000.KeySpace) || in.Button(engine2000.ButtonA)) && p.fireTimer <= 0 {
		p.shoot()
		p.fireTimer = PlayerFireDelay
	}
}

// clamp keeps the ship on screen.
func (p *Player) clamp() {
	l := p.entity.Level()
	w, h := p.sprite.Size()
	pos := p.physics.Position()
	c := engine2000.Vec2{
		X: min(max(pos.X, 0), float64(l.ScreenWidth())-w),
		Y: min(max(pos.Y, 0), float64(l.ScreenHeight())-h),
	}
	if c != pos {
		p.physics.SetPosition(c)
	}
}

// bank steps the frame toward the lean for the horizontal direction.
func (p *Player) bank(dx, dt float64) {
	target := playerNeutralFrame
	switch {
	case dx < 0:
		target = playerLeftFrame
	case dx > 0:
		target = playerRightFrame
	}
	if p.frame == target {
		p.bankTimer = 0
		return
	}
	p.bankTimer += dt
	if p.bankTimer < playerBankDelay {
		return
	}
	p.bankTimer = 0
	if p.frame < target {
		p.frame++
	} else {
		p.frame--
	}
	p.sprite.SetCurrentFrame(p.frame)
}

func (p *Player) shoot() {
	fw, fh := p.sprite.Size()
	pos := p.entity.Position()
	p.game.level.CreateEntity(engine2000.LayerGame, &PlayerProjectile{
		projectile: projectile{game: p.game},
		Pos:        engine2000.Vec2{X: pos.X + fw*0.4, Y: pos.Y + fh*0.2},
		Speed:      PlayerProjectileSpeed,
		Weapon:     p.weapon,
	})
}

// TakeDamage implements Damageable. Losing all health costs a life; losing
// the last life starts the death animation.
func (p *Player) TakeDamage(amount float64) {
	if p.dying {
		return
	}
	p.health -= amount
	p.sprite.SetVisible(false)
	p.flashTimer = playerFlashTime
	if p.health <= 0 {
		p.lives--
		logger.Info("player lost a life", "lives", p.lives)
		if p.lives <= 0 {
			p.health = 0
			p.die()
		} else {
			p.health = PlayerMaxHealth
		}
	}
	p.syncBar()
}

// GainHealth restores health up to the maximum.
func (p *Player) GainHealth(amount float64) {
	if p.dying {
		return
	}
	p.health = min(p.health+amount, PlayerMaxHealth)
	p.syncBar()
}

// UpgradeWeapon raises the weapon one level, up to WeaponHeavy.
func (p *Player) UpgradeWeapon() {
	if p.weapon < WeaponHeavy {
		p.weapon++
	}
	logger.Debug("weapon upgraded", "level", p.weapon)
}

func (p *Player) syncBar() {
	if p.bar != nil {
		p.bar.SetHealth(p.health, PlayerMaxHealth)
	}
}

func (p *Player) die() {
	p.dying = true
	p.frame = playerDeathFirst
	p.sprite.SetCurrentFrame(p.frame)
	p.physics.SetVelocity(engine2000.Vec2{})
}

func (p *Player) updateDeath(dt float64) {
	p.deathTimer += dt
	if p.deathTimer < playerDeathDelay {
		return
	}
	p.deathTimer = 0
	p.frame++
	if p.frame > playerDeathLast {
		p.dead = true
		p.game.onPlayerDead()
		p.entity.Level().RemoveEntity(p.entity)
		return
	}
	p.sprite.SetCurrentFrame(p.frame)
}
