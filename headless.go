package engine2000

// Snapshot is a frame captured by the headless platform.
type Snapshot struct {
	Label    string
	Frame    int
	Commands []RenderCommand
	// Path is the PNG written for the snapshot, empty unless ScreenshotDir
	// is set.
	Path string
}

// HeadlessPlatform runs the engine without a window: frames are driven as
// fast as possible with a fixed delta and drawn into a RecordingRenderer.
// It is the platform for tests, CI and scripted runs.
type HeadlessPlatform struct {
	// Frames caps the number of frames Run drives. Zero runs until the
	// engine quits.
	Frames int
	// DT is the delta passed to every frame. Zero means 1/TPS.
	DT float64
	// ScreenshotDir, if set, makes Screenshot also write a rasterized PNG.
	ScreenshotDir string

	settings  Settings
	renderer  *RecordingRenderer
	input     *InputState
	frames    int
	snapshots []Snapshot
	shutdown  bool
}

// NewHeadlessPlatform returns a platform that stops after frames frames.
func NewHeadlessPlatform(frames int) *HeadlessPlatform {
	return &HeadlessPlatform{Frames: frames}
}

// Init implements Platform.
func (p *HeadlessPlatform) Init(s Settings) error {
	p.settings = s
	p.renderer = NewRecordingRenderer()
	p.input = NewInputState()
	if p.DT <= 0 {
		p.DT = 1 / float64(s.TPS)
	}
	return nil
}

// Renderer implements Platform.
func (p *HeadlessPlatform) Renderer() Renderer { return p.renderer }

// Recorder returns the concrete recording renderer.
func (p *HeadlessPlatform) Recorder() *RecordingRenderer { return p.renderer }

// Input implements Platform.
func (p *HeadlessPlatform) Input() *InputState { return p.input }

// Run implements Platform.
func (p *HeadlessPlatform) Run(frame func(dt float64) bool) error {
	for p.Frames <= 0 || p.frames < p.Frames {
		p.frames++
		if !frame(p.DT) {
			break
		}
	}
	logger.Debug("headless run finished", "frames", p.frames)
	return nil
}

// FramesRun returns the number of frames Run has driven.
func (p *HeadlessPlatform) FramesRun() int { return p.frames }

// Screenshot implements Screenshotter by copying the last presented frame.
func (p *HeadlessPlatform) Screenshot(label string) error {
	last := p.renderer.LastFrame()
	snap := Snapshot{
		Label:    label,
		Frame:    p.frames,
		Commands: append([]RenderCommand(nil), last...),
	}
	if p.ScreenshotDir != "" {
		img := Rasterize(snap.Commands, p.renderer.ClearColor(), p.settings.Width, p.settings.Height)
		path, err := SaveScreenshot(p.ScreenshotDir, label, img)
		if err != nil {
			return err
		}
		snap.Path = path
	}
	p.snapshots = append(p.snapshots, snap)
	return nil
}

// Snapshots returns the captured frames in order.
func (p *HeadlessPlatform) Snapshots() []Snapshot { return p.snapshots }

// Shutdown implements Platform.
func (p *HeadlessPlatform) Shutdown() { p.shutdown = true }

// IsShutdown reports whether Shutdown ran.
func (p *HeadlessPlatform) IsShutdown() bool { return p.shutdown }
