package xenon

import (
	"fmt"
	"strconv"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/engine2000"
)

// KindLabel is the component kind of Label.
var KindLabel = engine2000.RegisterComponentKind("Label")

// Label draws a line of text at the entity position.
type Label struct {
	engine2000.BaseComponent

	Text  string
	Color engine2000.Color
}

// Kind implements engine2000.Component.
func (*Label) Kind() engine2000.ComponentKind { return KindLabel }

// Draw implements engine2000.Drawer.
func (l *Label) Draw(r engine2000.Renderer) {
	if l.Text == "" || l.Color.A <= 0 {
		return
	}
	pos := l.Entity().Position()
	r.DrawText(pos.X, pos.Y, l.Text, l.Color)
}

// HUD layout, as fractions of the screen.
const (
	titleX, titleY = 0.02, 0.02
	scoreX, scoreY = 0.02, 0.05
	livesX, livesY = 0.05, 0.87
	lifeSpacing    = 40.0

	maxScore      = 9999999999
	popupDuration = 1.0
	popupRise     = 30.0
)

// FormatScore renders the score as ten zero-padded digits.
func FormatScore(score int) string {
	return fmt.Sprintf("%010d", min(max(int64(score), 0), maxScore))
}

// label creates a HUD text entity at screen fractions (px, py).
func (g *Game) label(text string, px, py float64) *Label {
	var lb *Label
	g.level.CreateEntity(engine2000.LayerUI, engine2000.PrefabFunc(func(e *engine2000.Entity) {
		e.Name = "label"
		lb = engine2000.AddComponent[Label](e)
		lb.Text = text
		lb.Color = engine2000.ColorWhite
		engine2000.AddComponent[engine2000.UIElement](e).SetScreenPosition(px, py)
	}))
	return lb
}

// scoreDisplay keeps a label in sync with the game score.
type scoreDisplay struct {
	game  *Game
	label *Label
	shown int
}

func (s *scoreDisplay) Build(e *engine2000.Entity) {
	e.Name = "score"
	s.label = engine2000.AddComponent[Label](e)
	s.label.Color = engine2000.ColorWhite
	s.label.Text = FormatScore(0)
	engine2000.AddComponent[engine2000.UIElement](e).SetScreenPosition(scoreX, scoreY)
}

func (s *scoreDisplay) Update(float64) {
	if score := s.game.Score(); score != s.shown {
		s.shown = score
		s.label.Text = FormatScore(score)
	}
}

// LifeDisplay shows one icon per remaining life.
type LifeDisplay struct {
	game   *Game
	entity *engine2000.Entity
	icons  []*engine2000.Sprite
}

// Build implements engine2000.Prefab.
func (d *LifeDisplay) Build(e *engine2000.Entity) {
	e.Name = "lives"
	d.entity = e
	engine2000.AddComponent[engine2000.UIElement](e).SetScreenPosition(livesX, livesY)
}

// Init creates the icons.
func (d *LifeDisplay) Init() {
	for range PlayerMaxLives {
		d.entity.Level().CreateEntity(engine2000.LayerUI, engine2000.PrefabFunc(func(e *engine2000.Entity) {
			e.Name = "life-icon"
			sprite := engine2000.AddComponent[engine2000.Sprite](e)
			d.game.art.applySheet(sprite, TexLifeIcon)
			d.icons = append(d.icons, sprite)
		}))
	}
	d.Update(0)
}

// Visible returns the number of icons shown.
func (d *LifeDisplay) Visible() int {
	n := 0
	for _, icon := range d.icons {
		if icon.Visible() {
			n++
		}
	}
	return n
}

// Update lays the icons out in a row and hides lost lives.
func (d *LifeDisplay) Update(float64) {
	lives := 0
	if p := d.game.player; p != nil {
		lives = p.Lives()
	}
	pos := d.entity.Position()
	for i, icon := range d.icons {
		icon.Entity().Transform().SetPosition(pos.X+float64(i)*lifeSpacing, pos.Y)
		icon.SetVisible(i < lives)
	}
}

// ScorePopup floats a score value up from where it was earned and fades it
// out.
type ScorePopup struct {
	Pos   engine2000.Vec2
	Value int

	label *Label
}

// Build implements engine2000.Prefab.
func (p *ScorePopup) Build(e *engine2000.Entity) {
	e.Name = "score-popup"
	e.Transform().SetPosition(p.Pos.X, p.Pos.Y)
	p.label = engine2000.AddComponent[Label](e)
	p.label.Text = strconv.Itoa(p.Value)
	p.label.Color = engine2000.ColorYellow

	tweens := engine2000.AddComponent[engine2000.TweenComponent](e)
	tweens.Add(engine2000.TweenPosition(e, p.Pos.X, p.Pos.Y-popupRise, popupDuration, ease.OutQuad))
	fade := engine2000.TweenValue(e, &p.label.Color.A, 0, popupDuration, ease.Linear)
	fade.OnDone = func() { e.Level().RemoveEntity(e) }
	tweens.Add(fade)
}

// scored adds value to the score and shows a popup at pos.
func (g *Game) scored(pos engine2000.Vec2, value int) {
	g.AddScore(value)
	g.stats.recordKill(value)
	g.level.CreateEntity(engine2000.LayerUI, &ScorePopup{Pos: pos, Value: value})
}
