package xenon

import "github.com/phanxgames/engine2000"

// Texture names. A backend that loads real art registers each under the same
// name; anything missing falls back to a solid placeholder of the right size.
const (
	TexBackground     = "background"
	TexShip           = "ship"
	TexLifeIcon       = "life"
	TexLoner          = "loner"
	TexRusher         = "rusher"
	TexAsteroidLarge  = "asteroid_large"
	TexAsteroidMedium = "asteroid_medium"
	TexAsteroidSmall  = "asteroid_small"
	TexMetalLarge     = "metal_large"
	TexMetalMedium    = "metal_medium"
	TexMetalSmall     = "metal_small"
	TexMissile        = "missile"
	TexEnemyShot      = "enemy_shot"
	TexShieldPowerUp  = "powerup_shield"
	TexWeaponPowerUp  = "powerup_weapon"
	TexExplosion      = "explosion"
	TexExplosionSmall = "explosion_small"
)

// Sheet describes the frame grid of a sprite sheet.
type Sheet struct {
	Name           string
	Cols, Rows     int
	FrameW, FrameH int
	Color          engine2000.Color
}

// Sheets lists every texture the game uses.
var Sheets = []Sheet{
	{TexBackground, 1, 1, 640, 480, engine2000.RGBA(8, 8, 32, 255)},
	{TexShip, 7, 3, 64, 64, engine2000.RGBA(200, 200, 220, 255)},
	{TexLifeIcon, 1, 1, 32, 16, engine2000.RGBA(200, 200, 220, 255)},
	{TexLoner, 4, 4, 64, 64, engine2000.RGBA(220, 80, 60, 255)},
	{TexRusher, 4, 6, 64, 32, engine2000.RGBA(230, 140, 40, 255)},
	{TexAsteroidLarge, 5, 5, 96, 96, engine2000.RGBA(130, 110, 90, 255)},
	{TexAsteroidMedium, 8, 3, 64, 64, engine2000.RGBA(130, 110, 90, 255)},
	{TexAsteroidSmall, 8, 2, 32, 32, engine2000.RGBA(130, 110, 90, 255)},
	{TexMetalLarge, 5, 5, 96, 96, engine2000.RGBA(150, 160, 170, 255)},
	{TexMetalMedium, 8, 3, 64, 64, engine2000.RGBA(150, 160, 170, 255)},
	{TexMetalSmall, 8, 2, 32, 32, engine2000.RGBA(150, 160, 170, 255)},
	{TexMissile, 2, 3, 16, 16, engine2000.RGBA(120, 220, 255, 255)},
	{TexEnemyShot, 8, 1, 16, 16, engine2000.RGBA(255, 90, 200, 255)},
	{TexShieldPowerUp, 4, 2, 32, 32, engine2000.RGBA(80, 160, 255, 255)},
	{TexWeaponPowerUp, 4, 2, 32, 32, engine2000.RGBA(255, 220, 60, 255)},
	{TexExplosion, 5, 2, 64, 64, engine2000.RGBA(255, 180, 40, 255)},
	{TexExplosionSmall, 5, 2, 16, 16, engine2000.RGBA(255, 240, 160, 255)},
}

var sheetByName = func() map[string]Sheet {
	m := make(map[string]Sheet, len(Sheets))
	for _, s := range Sheets {
		m[s.Name] = s
	}
	return m
}()

// Textures maps texture names to loaded textures.
type Textures map[string]engine2000.Texture

// PlaceholderTextures returns a solid-color texture for every sheet, sized to
// the full sheet so frame grids line up with the real art.
func PlaceholderTextures() Textures {
	t := make(Textures, len(Sheets))
	for _, s := range Sheets {
		t[s.Name] = placeholder(s)
	}
	return t
}

func placeholder(s Sheet) *engine2000.SolidTexture {
	return engine2000.NewSolidTexture(s.Name, s.Cols*s.FrameW, s.Rows*s.FrameH, s.Color)
}

// Get returns the named texture, or its placeholder.
func (t Textures) Get(name string) engine2000.Texture {
	if tex, ok := t[name]; ok && tex != nil {
		return tex
	}
	s, ok := sheetByName[name]
	if !ok {
		logger.Warn("unknown texture", "name", name)
		return engine2000.NewSolidTexture(name, 1, 1, engine2000.ColorWhite)
	}
	tex := placeholder(s)
	if t != nil {
		t[name] = tex
	}
	return tex
}

// art resolves sheets: atlas regions first, then loaded textures, then
// placeholders.
type art struct {
	atlas    *engine2000.Atlas
	textures Textures
}

// applySheet points sprite at the named sheet and starts looping over it.
func (a *art) applySheet(sprite *engine2000.Sprite, name string) {
	s := sheetByName[name]
	grid := s.Cols > 1 || s.Rows > 1
	if r, ok := a.atlas.Lookup(name); ok && r.Texture != nil {
		if grid {
			sprite.SetAnimatedRegion(r, s.Cols, s.Rows)
		} else {
			sprite.SetRegion(r)
		}
		return
	}
	if !grid {
		sprite.SetTexture(a.textures.Get(name))
		return
	}
	sprite.SetAnimatedTexture(a.textures.Get(name), s.Cols, s.Rows)
}
