// Package ebitenbackend runs engine2000 in a window using Ebitengine.
//
// The engine records each frame into a RecordingRenderer; the platform's
// Draw replays the last presented frame onto the Ebitengine screen.
package ebitenbackend

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/engine2000"
)

// Platform implements engine2000.Platform and engine2000.Screenshotter.
type Platform struct {
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// engine2000.DefaultScreenshotDir.
	ScreenshotDir string

	settings engine2000.Settings
	recorder *engine2000.RecordingRenderer
	input    *engine2000.InputState
	frame    func(dt float64) bool

	pixel  *ebiten.Image
	solids map[*engine2000.SolidTexture]*ebiten.Image

	screenshotQueue []string
	gamepads        []ebiten.GamepadID
	stopped         bool
}

// New returns an uninitialized platform.
func New() *Platform {
	return &Platform{ScreenshotDir: engine2000.DefaultScreenshotDir}
}

// Init implements engine2000.Platform.
func (p *Platform) Init(s engine2000.Settings) error {
	p.settings = s
	p.recorder = engine2000.NewRecordingRenderer()
	p.input = engine2000.NewInputState()
	p.solids = make(map[*engine2000.SolidTexture]*ebiten.Image)

	p.pixel = ebiten.NewImage(1, 1)
	p.pixel.Fill(whiteColor)

	ebiten.SetWindowTitle(s.Title)
	ebiten.SetWindowSize(s.Width, s.Height)
	ebiten.SetTPS(s.TPS)
	return nil
}

// Renderer implements engine2000.Platform.
func (p *Platform) Renderer() engine2000.Renderer { return p.recorder }

// Input implements engine2000.Platform.
func (p *Platform) Input() *engine2000.InputState { return p.input }

// Run implements engine2000.Platform. It blocks until the window closes or
// frame returns false.
func (p *Platform) Run(frame func(dt float64) bool) error {
	p.frame = frame
	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Shutdown implements engine2000.Platform.
func (p *Platform) Shutdown() {
	for _, img := range p.solids {
		img.Deallocate()
	}
	clear(p.solids)
}

// Screenshot implements engine2000.Screenshotter. The capture happens at the
// end of the next Draw.
func (p *Platform) Screenshot(label string) error {
	p.screenshotQueue = append(p.screenshotQueue, label)
	return nil
}

// Update implements ebiten.Game.
func (p *Platform) Update() error {
	if p.stopped {
		return ebiten.Termination
	}
	p.pollInput()
	dt := 1 / float64(ebiten.TPS())
	if !p.frame(dt) {
		p.stopped = true
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (p *Platform) Draw(screen *ebiten.Image) {
	screen.Fill(toColor(p.recorder.ClearColor().WithAlpha(1)))
	p.replay(screen, p.recorder.LastFrame())
	p.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical screen is always the configured
// size; Ebitengine scales it to the window.
func (p *Platform) Layout(_, _ int) (int, int) {
	return p.settings.Width, p.settings.Height
}

func (p *Platform) pollInput() {
	for k, ek := range keyMap {
		if k == int(engine2000.KeyUnknown) {
			continue
		}
		p.input.SetKey(engine2000.Key(k), ebiten.IsKeyPressed(ek))
	}
	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for b, eb := range buttonMap {
		down := false
		for _, id := range p.gamepads {
			if ebiten.IsStandardGamepadButtonPressed(id, eb) {
				down = true
				break
			}
		}
		p.input.SetButton(engine2000.Button(b), down)
	}
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file.
func (p *Platform) flushScreenshots(screen *ebiten.Image) {
	if len(p.screenshotQueue) == 0 {
		return
	}
	img := readScreen(screen)
	for _, label := range p.screenshotQueue {
		if _, err := engine2000.SaveScreenshot(p.ScreenshotDir, label, img); err != nil {
			engine2000.Logger().Error("screenshot failed", "label", label, "err", err)
		}
	}
	p.screenshotQueue = p.screenshotQueue[:0]
}

// readScreen copies the screen into a straight-alpha NRGBA image.
func readScreen(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// ImageTexture is an engine2000.Texture backed by an Ebitengine image.
type ImageTexture struct {
	Image *ebiten.Image
}

// Size implements engine2000.Texture.
func (t *ImageTexture) Size() (w, h int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// LoadTexture decodes an image file into a texture.
func LoadTexture(path string) (*ImageTexture, error) {
	start := time.Now()
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebitenbackend: load texture %s: %w", path, err)
	}
	engine2000.Logger().Debug("texture loaded", "path", path, "took", time.Since(start))
	return &ImageTexture{Image: img}, nil
}

// LoadAtlas loads a TexturePacker atlas and the page images it names,
// resolved relative to the JSON file.
func LoadAtlas(jsonPath string) (*engine2000.Atlas, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("ebitenbackend: read atlas %s: %w", jsonPath, err)
	}
	images, err := engine2000.AtlasPageImages(data)
	if err != nil {
		return nil, fmt.Errorf("ebitenbackend: atlas %s: %w", jsonPath, err)
	}
	dir := filepath.Dir(jsonPath)
	pages := make([]engine2000.Texture, 0, len(images))
	for _, name := range images {
		tex, err := LoadTexture(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		pages = append(pages, tex)
	}
	return engine2000.LoadAtlas(data, pages)
}
