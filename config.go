package engine2000

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// Settings configure an Engine and its platform.
type Settings struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	TPS     int    `yaml:"tps"`
	Debug   bool   `yaml:"debug"`
	ShowFPS bool   `yaml:"show_fps"`
	// Backend names the platform cmd tools should build: "ebiten", "term"
	// or "headless". The engine itself never reads it.
	Backend string        `yaml:"backend"`
	Physics PhysicsConfig `yaml:"physics"`
}

// DefaultSettings returns the embedded defaults: a 640×480 window at 60 TPS
// with the default physics config.
func DefaultSettings() Settings {
	var s Settings
	if err := yaml.Unmarshal(defaultSettingsYAML, &s); err != nil {
		return Settings{
			Title:   "Engine2000",
			Width:   640,
			Height:  480,
			TPS:     60,
			Backend: "ebiten",
			Physics: DefaultPhysicsConfig(),
		}
	}
	return s
}

// ParseSettings decodes YAML over the defaults, so a file only needs the
// fields it changes.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("engine2000: parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// LoadSettings reads settings from path. An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("engine2000: read settings %s: %w", path, err)
	}
	return ParseSettings(data)
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("engine2000: invalid screen size %dx%d", s.Width, s.Height)
	case s.TPS <= 0:
		return fmt.Errorf("engine2000: invalid tps %d", s.TPS)
	}
	return s.Physics.validate()
}
