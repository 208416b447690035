package termbackend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/engine2000"
)

func newSimPlatform(t *testing.T) (*Platform, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	p := NewWithScreen(screen)
	s := engine2000.DefaultSettings()
	s.Width, s.Height = 64, 48
	if err := p.Init(s); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(32, 24)
	t.Cleanup(p.Shutdown)
	return p, screen
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want engine2000.Key
	}{
		{"arrow", tcell.KeyLeft, 0, engine2000.KeyLeft},
		{"enter", tcell.KeyEnter, 0, engine2000.KeyEnter},
		{"escape", tcell.KeyEscape, 0, engine2000.KeyEscape},
		{"space", tcell.KeyRune, ' ', engine2000.KeySpace},
		{"lower letter", tcell.KeyRune, 'w', engine2000.KeyW},
		{"upper letter", tcell.KeyRune, 'Q', engine2000.KeyQ},
		{"digit", tcell.KeyRune, '7', engine2000.Key7},
		{"punctuation", tcell.KeyRune, '?', engine2000.KeyUnknown},
		{"function key", tcell.KeyF1, 0, engine2000.KeyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
			if got := keyOf(ev); got != tt.want {
				t.Errorf("keyOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyHoldDecays(t *testing.T) {
	p, _ := newSimPlatform(t)
	p.HoldFrames = 2
	p.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))

	frames := 0
	frame := func(float64) bool { frames++; return true }
	var held []bool
	for range 4 {
		p.Step(frame, 1.0/60)
		p.input.BeginFrame()
		held = append(held, p.input.Key(engine2000.KeyUp))
	}
	want := []bool{true, true, false, false}
	for i := range want {
		if held[i] != want[i] {
			t.Errorf("frame %d: held = %v, want %v", i, held[i], want[i])
		}
	}
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
}

func TestCtrlCStops(t *testing.T) {
	p, _ := newSimPlatform(t)
	p.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	called := false
	if p.Step(func(float64) bool { called = true; return true }, 0) {
		t.Error("Step should report false after Ctrl-C")
	}
	if called {
		t.Error("frame should not run after Ctrl-C")
	}
}

func TestStepStopsWhenFrameFails(t *testing.T) {
	p, _ := newSimPlatform(t)
	if p.Step(func(float64) bool { return false }, 0) {
		t.Error("Step should report false when the frame callback does")
	}
}

func TestDrawScalesToCells(t *testing.T) {
	p, screen := newSimPlatform(t)
	r := p.recorder
	r.SetClearColor(engine2000.ColorBlack)
	r.Clear()
	// Logical 64x48 onto 32x24 cells: every cell is 2x2 logical pixels.
	r.FillRect(engine2000.Rect{X: 10, Y: 10, Width: 4, Height: 4}, engine2000.ColorRed)
	r.DrawTexture(engine2000.NewSolidTexture("ship", 2, 2, engine2000.ColorGreen),
		engine2000.Rect{}, engine2000.Rect{X: 40, Y: 20, Width: 2, Height: 2}, engine2000.DrawOptions{})
	r.FillRect(engine2000.Rect{X: 0, Y: 0, Width: 64, Height: 2}, engine2000.ColorBlue.WithAlpha(0.2))
	r.Present()
	p.Draw()

	red := tcell.NewRGBColor(255, 0, 0)
	green := tcell.NewRGBColor(0, 255, 0)
	black := tcell.NewRGBColor(0, 0, 0)
	tests := []struct {
		x, y int
		want tcell.Color
	}{
		{5, 5, red},
		{6, 6, red},
		{7, 7, black},
		{20, 10, green},
		{0, 0, black}, // translucent fill skipped
	}
	for _, tt := range tests {
		if got := background(screen, tt.x, tt.y); got != tt.want {
			t.Errorf("cell (%d,%d) bg = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawTextKeepsBackground(t *testing.T) {
	p, screen := newSimPlatform(t)
	r := p.recorder
	r.Clear()
	r.FillRect(engine2000.Rect{Width: 64, Height: 2}, engine2000.ColorBlue)
	r.DrawText(4, 0, "Hi", engine2000.ColorWhite)
	r.Present()
	p.Draw()

	mainc, _, style, _ := screen.GetContent(2, 0)
	fg, bg, _ := style.Decompose()
	if mainc != 'H' {
		t.Errorf("rune = %q, want 'H'", mainc)
	}
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("fg = %v, want white", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("bg = %v, want blue", bg)
	}
}

func TestGridCellsClip(t *testing.T) {
	g := grid{cols: 10, rows: 10, sx: 0.5, sy: 0.5}
	tests := []struct {
		name string
		r    engine2000.Rect
		want cellRect
	}{
		{"inside", engine2000.Rect{X: 2, Y: 2, Width: 4, Height: 4}, cellRect{1, 1, 3, 3}},
		{"sub-cell", engine2000.Rect{X: 3, Y: 3, Width: 0.5, Height: 0.5}, cellRect{1, 1, 2, 2}},
		{"clipped", engine2000.Rect{X: -4, Y: 16, Width: 10, Height: 10}, cellRect{0, 8, 3, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.cells(tt.r); got != tt.want {
				t.Errorf("cells = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScreenshot(t *testing.T) {
	p, _ := newSimPlatform(t)
	p.ScreenshotDir = t.TempDir()
	p.recorder.Clear()
	p.recorder.Present()
	if err := p.Screenshot("term"); err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
}
