package engine2000

import "fmt"

// Platform is a backend: it owns the window (or terminal), produces the
// Renderer and feeds the shared InputState. Run drives frames until frame
// returns false or the user closes the window.
type Platform interface {
	Init(s Settings) error
	Renderer() Renderer
	Input() *InputState
	Run(frame func(dt float64) bool) error
	Shutdown()
}

// Screenshotter is implemented by platforms that can capture a frame.
type Screenshotter interface {
	Screenshot(label string) error
}

// Application is the game. OnInit runs once the platform is up and must
// install a level with SetCurrentLevel.
type Application interface {
	OnInit(e *Engine) error
}

// ApplicationShutdown is implemented by applications that release resources
// when the engine shuts down. It runs before the level is destroyed.
type ApplicationShutdown interface {
	OnShutdown(e *Engine)
}

// Engine runs an Application on a Platform: one level at a time, one frame
// per platform tick.
type Engine struct {
	settings Settings
	app      Application
	platform Platform
	layers   *LayerTable

	renderer Renderer
	input    *InputState
	level    *Level
	runner   *TestRunner
	overlay  *statsOverlay

	stats       FrameStats
	initialized bool
	quit        bool
	shutdown    bool
}

// New creates an engine. Nothing is initialized until Init.
func New(settings Settings, app Application, platform Platform) *Engine {
	if settings.Debug {
		SetDebugMode(true)
	}
	return &Engine{
		settings: settings,
		app:      app,
		platform: platform,
		layers:   NewLayerTable(),
	}
}

// Init brings up the platform, then runs the application's OnInit.
func (e *Engine) Init() error {
	if e.initialized {
		return ErrAlreadyInitialized
	}
	if err := e.settings.Validate(); err != nil {
		return fmt.Errorf("engine2000: init: %w", err)
	}
	if err := e.platform.Init(e.settings); err != nil {
		return fmt.Errorf("engine2000: init platform: %w", err)
	}
	e.renderer = e.platform.Renderer()
	e.input = e.platform.Input()
	if e.input == nil {
		e.input = NewInputState()
	}
	if e.settings.ShowFPS || e.settings.Debug {
		e.overlay = &statsOverlay{Renderer: e.renderer, stats: &e.stats}
		e.renderer = e.overlay
	}
	e.initialized = true
	logger.Info("engine initialized", "title", e.settings.Title, "width", e.settings.Width, "height", e.settings.Height)

	if e.app != nil {
		if err := e.app.OnInit(e); err != nil {
			return fmt.Errorf("engine2000: application init: %w", err)
		}
	}
	if e.level == nil {
		return ErrNoLevel
	}
	return nil
}

// Run drives frames until Quit is called or the platform stops.
func (e *Engine) Run() error {
	if !e.initialized {
		return ErrNotInitialized
	}
	if err := e.platform.Run(e.Frame); err != nil {
		return fmt.Errorf("engine2000: run: %w", err)
	}
	return nil
}

// Frame runs one engine frame: script step, input snapshot, level update
// and render. It reports whether the engine wants another frame. Platforms
// call it from Run; tests may call it directly.
func (e *Engine) Frame(dt float64) bool {
	if e.quit || e.shutdown {
		return false
	}
	if e.runner != nil {
		e.runner.step(e)
	}
	e.input.BeginFrame()
	if e.level != nil {
		e.level.Update(dt)
		e.level.Render(e.renderer)
	} else {
		e.renderer.Clear()
		e.renderer.Present()
	}
	e.recordStats(dt)
	return !e.quit
}

// Quit stops Run after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Quitting reports whether Quit has been called.
func (e *Engine) Quitting() bool { return e.quit }

// Shutdown destroys the level, then shuts the platform down. Later calls do
// nothing.
func (e *Engine) Shutdown() {
	if e.shutdown {
		return
	}
	e.shutdown = true
	e.quit = true
	if s, ok := e.app.(ApplicationShutdown); ok && e.initialized {
		s.OnShutdown(e)
	}
	if e.level != nil {
		e.level.Destroy()
		e.level = nil
	}
	if e.initialized {
		e.platform.Shutdown()
	}
	logger.Info("engine shut down", "frames", e.stats.Frame)
}

// NewLevel creates a level sized to the screen, sharing the engine's input
// and physics layer table.
func (e *Engine) NewLevel() (*Level, error) {
	return NewLevel(e.input, e.layers, e.settings.Width, e.settings.Height, e.settings.Physics)
}

// SetCurrentLevel makes l the running level, destroying the previous one.
func (e *Engine) SetCurrentLevel(l *Level) {
	if e.level == l {
		return
	}
	if e.level != nil {
		e.level.Destroy()
	}
	e.level = l
}

// CurrentLevel returns the running level, or nil.
func (e *Engine) CurrentLevel() *Level { return e.level }

// SetTestRunner attaches a script runner. Its step runs at the start of every
// frame, before the input snapshot.
func (e *Engine) SetTestRunner(r *TestRunner) { e.runner = r }

// Screenshot asks the platform to capture the last presented frame.
func (e *Engine) Screenshot(label string) {
	s, ok := e.platform.(Screenshotter)
	if !ok {
		logger.Warn("platform cannot take screenshots", "label", label)
		return
	}
	if err := s.Screenshot(label); err != nil {
		logger.Error("screenshot failed", "label", label, "err", err)
	}
}

func (e *Engine) Settings() Settings { return e.settings }
func (e *Engine) Layers() *LayerTable { return e.layers }
func (e *Engine) Renderer() Renderer { return e.renderer }
func (e *Engine) Input() *InputState { return e.input }
func (e *Engine) Platform() Platform { return e.platform }
func (e *Engine) Stats() FrameStats { return e.stats }
func (e *Engine) Initialized() bool { return e.initialized }
