package engine2000

// UIElement positions an entity by screen percentage, so HUD layout follows
// the level size.
type UIElement struct {
	BaseComponent

	percentX, percentY float64
	scale              float64
	placed             bool
}

// Kind implements Component.
func (*UIElement) Kind() ComponentKind { return KindUIElement }

func (u *UIElement) setDefaults() {
	u.scale = 1
}

// SetScreenPosition places the entity at (px, py) fractions of the screen
// size. Before the entity joins a level the position is applied at Init.
func (u *UIElement) SetScreenPosition(px, py float64) {
	u.percentX, u.percentY = px, py
	u.placed = true
	u.apply()
}

// ScreenPosition returns the fractions last set.
func (u *UIElement) ScreenPosition() (px, py float64) { return u.percentX, u.percentY }

// SetUIScale sets the transform scale on both axes.
func (u *UIElement) SetUIScale(s float64) {
	u.scale = s
	if e := u.Entity(); e != nil {
		e.transform.SetScale(s, s)
	}
}

// UIScale returns the scale last set.
func (u *UIElement) UIScale() float64 { return u.scale }

// Init applies a screen position set before the entity had a level.
func (u *UIElement) Init() {
	if u.placed {
		u.apply()
	}
}

func (u *UIElement) apply() {
	l := u.Level()
	if l == nil {
		return
	}
	u.Entity().transform.SetPosition(float64(l.ScreenWidth())*u.percentX, float64(l.ScreenHeight())*u.percentY)
}
