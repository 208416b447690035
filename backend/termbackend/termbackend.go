// Package termbackend runs engine2000 inside a terminal using tcell.
//
// The logical screen is scaled down onto the terminal grid: every cell shows
// the color of whatever covers it last. Terminals only report key presses
// and repeats, so a key stays held for HoldFrames frames after its last
// event.
package termbackend

import (
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/engine2000"
)

// DefaultHoldFrames is how long a key stays held after its last event.
const DefaultHoldFrames = 8

// Platform implements engine2000.Platform and engine2000.Screenshotter.
type Platform struct {
	// ScreenshotDir is where Screenshot writes PNGs.
	ScreenshotDir string
	// HoldFrames overrides DefaultHoldFrames when positive.
	HoldFrames int

	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen
	settings  engine2000.Settings
	recorder  *engine2000.RecordingRenderer
	input     *engine2000.InputState

	events chan tcell.Event
	done   chan struct{}
	held   [engine2000.KeyCount]int
	quit   bool
}

// New returns a platform that opens the process terminal on Init.
func New() *Platform {
	return &Platform{
		ScreenshotDir: engine2000.DefaultScreenshotDir,
		newScreen:     tcell.NewScreen,
	}
}

// NewWithScreen returns a platform drawing to screen, which Init initializes.
// Tests pass a tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Platform {
	p := New()
	p.newScreen = func() (tcell.Screen, error) { return screen, nil }
	return p
}

// Init implements engine2000.Platform.
func (p *Platform) Init(s engine2000.Settings) error {
	screen, err := p.newScreen()
	if err != nil {
		return fmt.Errorf("termbackend: open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termbackend: init screen: %w", err)
	}
	screen.HideCursor()
	screen.SetTitle(s.Title)

	p.screen = screen
	p.settings = s
	p.recorder = engine2000.NewRecordingRenderer()
	p.input = engine2000.NewInputState()
	p.events = make(chan tcell.Event, 100)
	p.done = make(chan struct{})
	if p.HoldFrames <= 0 {
		p.HoldFrames = DefaultHoldFrames
	}
	go p.pollEvents(screen, p.events, p.done)
	return nil
}

func (p *Platform) pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Renderer implements engine2000.Platform.
func (p *Platform) Renderer() engine2000.Renderer { return p.recorder }

// Input implements engine2000.Platform.
func (p *Platform) Input() *engine2000.InputState { return p.input }

// Screen returns the tcell screen once Init has run.
func (p *Platform) Screen() tcell.Screen { return p.screen }

// Run implements engine2000.Platform. Frames are paced by a ticker at the
// configured TPS; input events are handled as they arrive.
func (p *Platform) Run(frame func(dt float64) bool) error {
	interval := time.Second / time.Duration(p.settings.TPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for !p.quit {
		select {
		case ev := <-p.events:
			p.handleEvent(ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !p.Step(frame, dt) {
				return nil
			}
		}
	}
	return nil
}

// Step runs a single frame: it decays held keys, calls frame and draws the
// presented frame. It reports false once the frame callback or the user
// asked to stop.
func (p *Platform) Step(frame func(dt float64) bool, dt float64) bool {
	if p.quit {
		return false
	}
	p.pollInput()
	if !frame(dt) {
		return false
	}
	p.Draw()
	return !p.quit
}

// handleEvent folds one terminal event into the held-key table.
func (p *Platform) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			p.quit = true
			return
		}
		if k := keyOf(ev); k != engine2000.KeyUnknown {
			p.held[k] = p.HoldFrames
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
}

// pollInput reports every key still within its hold window as down.
func (p *Platform) pollInput() {
	p.input.ReleaseAll()
	for k, n := range p.held {
		if n <= 0 {
			continue
		}
		p.held[k] = n - 1
		p.input.SetKey(engine2000.Key(k), true)
	}
}

func keyOf(ev *tcell.EventKey) engine2000.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine2000.KeyUp
	case tcell.KeyDown:
		return engine2000.KeyDown
	case tcell.KeyLeft:
		return engine2000.KeyLeft
	case tcell.KeyRight:
		return engine2000.KeyRight
	case tcell.KeyEnter:
		return engine2000.KeyEnter
	case tcell.KeyEscape:
		return engine2000.KeyEscape
	case tcell.KeyRune:
	default:
		return engine2000.KeyUnknown
	}
	r := unicode.ToUpper(ev.Rune())
	switch {
	case r == ' ':
		return engine2000.KeySpace
	case r >= 'A' && r <= 'Z':
		return engine2000.KeyA + engine2000.Key(r-'A')
	case r >= '0' && r <= '9':
		return engine2000.Key0 + engine2000.Key(r-'0')
	}
	return engine2000.KeyUnknown
}

// Draw paints the last presented frame onto the terminal and shows it.
func (p *Platform) Draw() {
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	g := grid{
		cols: cols,
		rows: rows,
		sx:   float64(cols) / float64(p.settings.Width),
		sy:   float64(rows) / float64(p.settings.Height),
	}
	clearStyle := tcell.StyleDefault.Background(cellColor(p.recorder.ClearColor()))
	p.screen.Fill(' ', clearStyle)

	for _, cmd := range p.recorder.LastFrame() {
		switch cmd.Type {
		case engine2000.CommandFillRect:
			p.fill(g.cells(cmd.Dst), cmd.Color)
		case engine2000.CommandDrawRect:
			r := g.cells(cmd.Dst)
			p.fill(cellRect{r.x0, r.y0, r.x1, r.y0 + 1}, cmd.Color)
			p.fill(cellRect{r.x0, r.y1 - 1, r.x1, r.y1}, cmd.Color)
			p.fill(cellRect{r.x0, r.y0, r.x0 + 1, r.y1}, cmd.Color)
			p.fill(cellRect{r.x1 - 1, r.y0, r.x1, r.y1}, cmd.Color)
		case engine2000.CommandTexture:
			p.fill(g.cells(cmd.Dst), engine2000.TextureColor(cmd.Texture, cmd.Options.Tint))
		case engine2000.CommandText:
			x, y := g.cell(cmd.Dst.X, cmd.Dst.Y)
			p.text(x, y, cmd.Text, cmd.Color)
		}
	}
	p.screen.Show()
}

func (p *Platform) fill(r cellRect, c engine2000.Color) {
	if c.A < 0.5 {
		return
	}
	style := tcell.StyleDefault.Background(cellColor(c))
	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// text writes s on one row, keeping each cell's background.
func (p *Platform) text(x, y int, s string, c engine2000.Color) {
	cols, rows := p.screen.Size()
	if y < 0 || y >= rows {
		return
	}
	fg := cellColor(c)
	for _, r := range s {
		if x >= cols {
			return
		}
		if x >= 0 {
			_, _, style, _ := p.screen.GetContent(x, y)
			p.screen.SetContent(x, y, r, nil, style.Foreground(fg))
		}
		x++
	}
}

// Shutdown implements engine2000.Platform. It restores the terminal.
func (p *Platform) Shutdown() {
	if p.screen == nil {
		return
	}
	close(p.done)
	p.screen.Fini()
	p.screen = nil
}

// Screenshot implements engine2000.Screenshotter. The image is rasterized at
// the logical resolution, not the terminal's.
func (p *Platform) Screenshot(label string) error {
	img := engine2000.Rasterize(p.recorder.LastFrame(), p.recorder.ClearColor(), p.settings.Width, p.settings.Height)
	_, err := engine2000.SaveScreenshot(p.ScreenshotDir, label, img)
	return err
}

func cellColor(c engine2000.Color) tcell.Color {
	r, g, b, _ := c.Bytes()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// grid maps logical coordinates to terminal cells.
type grid struct {
	cols, rows int
	sx, sy     float64
}

type cellRect struct {
	x0, y0, x1, y1 int
}

func (g grid) cell(x, y float64) (int, int) {
	return int(math.Floor(x * g.sx)), int(math.Floor(y * g.sy))
}

// cells returns the cells covered by r, clipped to the grid. A rectangle
// smaller than a cell still covers the cell it starts in.
func (g grid) cells(r engine2000.Rect) cellRect {
	x0, y0 := g.cell(r.X, r.Y)
	x1 := int(math.Ceil(r.Right() * g.sx))
	y1 := int(math.Ceil(r.Bottom() * g.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return cellRect{
		x0: max(x0, 0), y0: max(y0, 0),
		x1: min(x1, g.cols), y1: min(y1, g.rows),
	}
}
