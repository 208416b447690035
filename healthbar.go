package engine2000

// HealthBar draws a bordered bar at the entity's position whose fill tracks
// current/max health.
type HealthBar struct {
	BaseComponent

	Width, Height float64
	Border        Color
	Fill          Color

	current, max float64
	visible      bool
}

// Kind implements Component.
func (*HealthBar) Kind() ComponentKind { return KindHealthBar }

func (h *HealthBar) setDefaults() {
	h.Width, h.Height = 200, 20
	h.Border = ColorBlack
	h.Fill = ColorGreen
	h.current, h.max = 100, 100
	h.visible = true
}

// SetDimensions sets the outer size of the bar.
func (h *HealthBar) SetDimensions(w, height float64) {
	h.Width, h.Height = w, height
}

// SetHealth sets the current and maximum health.
func (h *HealthBar) SetHealth(current, max float64) {
	h.current, h.max = current, max
}

// Health returns the current and maximum health.
func (h *HealthBar) Health() (current, max float64) { return h.current, h.max }

func (h *HealthBar) SetVisible(v bool) { h.visible = v }
func (h *HealthBar) Visible() bool { return h.visible }

// Fraction returns current/max clamped to [0, 1].
func (h *HealthBar) Fraction() float64 {
	if h.max <= 0 {
		return 0
	}
	return min(max(h.current/h.max, 0), 1)
}

// Draw fills the border rect, then the inset health rect.
func (h *HealthBar) Draw(r Renderer) {
	if !h.visible {
		return
	}
	pos := h.Entity().Position()
	r.FillRect(Rect{X: pos.X, Y: pos.Y, Width: h.Width, Height: h.Height}, h.Border)
	if f := h.Fraction(); f > 0 {
		r.FillRect(Rect{X: pos.X + 2, Y: pos.Y + 2, Width: (h.Width - 4) * f, Height: h.Height - 4}, h.Fill)
	}
}
