// xenon runs the Xenon 2000 sample game on engine2000.
//
// Usage:
//
//	xenon run                    - Play in a window
//	xenon run --backend term     - Play in the terminal
//	xenon run --backend headless --frames 600 --script play.json
//	xenon layers                 - Print the physics layer collision matrix
//
// Global flags:
//
//	--config <path>  - Engine settings YAML (default: embedded defaults)
//	--debug          - Debug logging and physics shape outlines
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xenon",
	Short: "Xenon 2000 - a vertical shooter on engine2000",
	Long: `Xenon 2000 is the engine2000 sample game: fly the ship, shoot Loners,
Rushers and asteroids, and collect shield and weapon power-ups.

Controls:
  Arrows/WASD  - Move
  Space        - Fire
  Esc          - Quit (terminal backend)

Examples:
  xenon run
  xenon run --backend term
  xenon run --backend headless --frames 600 --seed 7
  xenon layers`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine settings YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging and physics shape outlines")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(layersCmd)
}
