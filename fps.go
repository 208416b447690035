package engine2000

import "fmt"

// statsOverlay wraps the platform renderer and draws the frame stats on top
// of every frame just before it is presented.
type statsOverlay struct {
	Renderer
	stats *FrameStats
}

var overlayBackground = Color{0, 0, 0, 0.5}

// Present draws the overlay, then presents.
func (o *statsOverlay) Present() {
	st := o.stats
	o.FillRect(Rect{X: 0, Y: 0, Width: 128, Height: 36}, overlayBackground)
	o.DrawText(4, 4, fmt.Sprintf("FPS: %.1f", st.FPS), ColorWhite)
	o.DrawText(4, 20, fmt.Sprintf("ENT: %d", st.Entities), ColorWhite)
	o.Renderer.Present()
}
