package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/engine2000"
	"github.com/phanxgames/engine2000/backend/ebitenbackend"
	"github.com/phanxgames/engine2000/backend/termbackend"
	"github.com/phanxgames/engine2000/internal/xenon"
)

var (
	flagBackend     string
	flagFrames      int
	flagScript      string
	flagAssets      string
	flagAtlas       string
	flagSeed        uint64
	flagWaves       string
	flagLog         string
	flagScreenshots string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the game",
	Long: `Start the game on the chosen backend.

Backends:
  ebiten    - Desktop window (default)
  term      - Terminal cells via tcell
  headless  - No output; use with --frames or a --script ending in quit

Assets:
  --assets points at a directory of PNG sheets named after the textures
  (ship.png, loner.png, ...). --atlas loads a TexturePacker JSON atlas
  whose regions carry the same names; its page images are read from the
  JSON's directory. Atlas regions win over --assets sheets, and anything
  still missing uses a solid placeholder.

Examples:
  xenon run
  xenon run --backend term --log xenon.log
  xenon run --backend headless --frames 600 --waves ./waves.yaml
  xenon run --backend headless --script ./smoke.json --screenshots ./shots`,
	Args: cobra.NoArgs,
	RunE: runGame,
}

func init() {
	runCmd.Flags().StringVar(&flagBackend, "backend", "", "Platform: ebiten, term or headless (default from settings)")
	runCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after this many frames (headless only, 0 = until quit)")
	runCmd.Flags().StringVar(&flagScript, "script", "", "Path to a JSON input script")
	runCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory of PNG sprite sheets")
	runCmd.Flags().StringVar(&flagAtlas, "atlas", "", "TexturePacker JSON atlas holding the sprite sheets")
	runCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Spawn RNG seed (0 = random)")
	runCmd.Flags().StringVar(&flagWaves, "waves", "", "Path to a spawn table YAML")
	runCmd.Flags().StringVar(&flagLog, "log", "", "Write logs to this file instead of stderr")
	runCmd.Flags().StringVar(&flagScreenshots, "screenshots", "", "Directory for headless screenshot PNGs")
}

func runGame(cmd *cobra.Command, _ []string) error {
	settings, err := engine2000.LoadSettings(flagConfig)
	if err != nil {
		return err
	}
	if flagBackend != "" {
		settings.Backend = flagBackend
	}
	if flagDebug {
		settings.Debug = true
	}

	closeLog, err := setupLogging(settings.Backend, flagLog, settings.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	platform, headless, err := newPlatform(settings.Backend)
	if err != nil {
		return err
	}

	opts, err := gameOptions(settings.Debug)
	if err != nil {
		return err
	}
	game := xenon.New(opts)
	eng := engine2000.New(settings, game, platform)

	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := engine2000.LoadTestScript(data)
		if err != nil {
			return err
		}
		eng.SetTestRunner(runner)
	}

	if err := eng.Init(); err != nil {
		return err
	}
	runErr := eng.Run()
	stats := eng.Stats()
	eng.Shutdown()
	if runErr != nil {
		return runErr
	}

	frames := stats.Frame
	if headless != nil {
		frames = headless.FramesRun()
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary(game, frames))
	return nil
}

// newPlatform builds the named backend. The headless platform is also
// returned on its own for its frame count.
func newPlatform(backend string) (engine2000.Platform, *engine2000.HeadlessPlatform, error) {
	switch backend {
	case "", "ebiten":
		return ebitenbackend.New(), nil, nil
	case "term":
		return termbackend.New(), nil, nil
	case "headless":
		p := engine2000.NewHeadlessPlatform(flagFrames)
		p.ScreenshotDir = flagScreenshots
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// setupLogging points the engine and game loggers at the log file, or away
// from the terminal when the term backend owns it.
func setupLogging(backend, path string, debug bool) (func(), error) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case backend == "term":
		w = io.Discard
	}

	engine2000.SetLogger(log.NewWithOptions(w, log.Options{Prefix: "engine2000", ReportTimestamp: true, Level: level}))
	xenon.SetLogger(log.NewWithOptions(w, log.Options{Prefix: "xenon", ReportTimestamp: true, Level: level}))
	return closeFn, nil
}

func gameOptions(debug bool) (xenon.Options, error) {
	waves, err := xenon.LoadWaves(flagWaves)
	if err != nil {
		return xenon.Options{}, err
	}
	textures, err := loadTextures(flagAssets)
	if err != nil {
		return xenon.Options{}, err
	}
	atlas, err := loadAtlas(flagAtlas)
	if err != nil {
		return xenon.Options{}, err
	}
	seed := flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return xenon.Options{
		Textures:  textures,
		Atlas:     atlas,
		Waves:     waves,
		Seed:      seed,
		DebugDraw: debug,
	}, nil
}

// loadTextures reads <dir>/<name>.png for every sheet that has a file.
func loadTextures(dir string) (xenon.Textures, error) {
	if dir == "" {
		return nil, nil
	}
	textures := make(xenon.Textures)
	for _, s := range xenon.Sheets {
		path := filepath.Join(dir, s.Name+".png")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Warn("sheet missing, using placeholder", "path", path)
			continue
		}
		tex, err := ebitenbackend.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		textures[s.Name] = tex
	}
	return textures, nil
}

// loadAtlas reads the atlas at path and reports which sheets it covers.
func loadAtlas(path string) (*engine2000.Atlas, error) {
	if path == "" {
		return nil, nil
	}
	atlas, err := ebitenbackend.LoadAtlas(path)
	if err != nil {
		return nil, err
	}
	covered := 0
	for _, s := range xenon.Sheets {
		if _, ok := atlas.Lookup(s.Name); ok {
			covered++
		}
	}
	log.Info("atlas loaded", "path", path, "regions", atlas.Len(), "sheets", covered)
	return atlas, nil
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	summaryKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	summaryValue = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	summaryBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func summary(game *xenon.Game, frames int) string {
	d := game.Stats()
	result := "survived"
	if game.GameOver() {
		result = "game over"
	}
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, summaryKey.Render(k), summaryValue.Render(v))
	}
	return summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		summaryTitle.Render("XENON 2000 - "+result),
		row("Score", xenon.FormatScore(game.Score())),
		row("Kills", strconv.Itoa(d.Kills)),
		row("Contacts", strconv.Itoa(d.Contacts)),
		row("Immune", strconv.Itoa(d.Suppressed)),
		row("Frames", strconv.Itoa(frames)),
	))
}
