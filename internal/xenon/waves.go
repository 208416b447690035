package xenon

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed waves.yaml
var defaultWavesYAML []byte

// SpawnKind names something the wave spawner can create.
type SpawnKind string

const (
	SpawnLoner         SpawnKind = "loner"
	SpawnRusher        SpawnKind = "rusher"
	SpawnAsteroid      SpawnKind = "asteroid"
	SpawnMetalAsteroid SpawnKind = "metal_asteroid"
	SpawnShield        SpawnKind = "shield"
	SpawnWeapon        SpawnKind = "weapon"
)

// SpawnKinds lists every valid kind.
var SpawnKinds = []SpawnKind{SpawnLoner, SpawnRusher, SpawnAsteroid, SpawnMetalAsteroid, SpawnShield, SpawnWeapon}

func (k SpawnKind) valid() bool {
	for _, v := range SpawnKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Wave is one row of the spawn table.
type Wave struct {
	Kind     SpawnKind `yaml:"kind"`
	Interval float64   `yaml:"interval"`
	Chance   float64   `yaml:"chance"`
}

// WaveTable is the decoded spawn table.
type WaveTable struct {
	Waves []Wave `yaml:"waves"`
}

// ErrInvalidWave is returned for a spawn table row that cannot be used.
var ErrInvalidWave = errors.New("xenon: invalid wave")

// Validate reports the first unusable row.
func (t WaveTable) Validate() error {
	for i, w := range t.Waves {
		switch {
		case !w.Kind.valid():
			return fmt.Errorf("%w: row %d: unknown kind %q", ErrInvalidWave, i, w.Kind)
		case !(w.Interval > 0):
			return fmt.Errorf("%w: row %d: interval %v", ErrInvalidWave, i, w.Interval)
		case w.Chance < 0 || w.Chance > 1:
			return fmt.Errorf("%w: row %d: chance %v", ErrInvalidWave, i, w.Chance)
		}
	}
	return nil
}

// ParseWaves decodes and validates a YAML spawn table.
func ParseWaves(data []byte) (WaveTable, error) {
	var t WaveTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return WaveTable{}, fmt.Errorf("xenon: parse waves: %w", err)
	}
	if err := t.Validate(); err != nil {
		return WaveTable{}, err
	}
	return t, nil
}

// LoadWaves reads a spawn table from path. An empty path returns
// DefaultWaves.
func LoadWaves(path string) (WaveTable, error) {
	if path == "" {
		return DefaultWaves(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return WaveTable{}, fmt.Errorf("xenon: read waves %s: %w", path, err)
	}
	return ParseWaves(data)
}

// DefaultWaves returns the embedded spawn table.
func DefaultWaves() WaveTable {
	t, err := ParseWaves(defaultWavesYAML)
	if err != nil {
		panic(err)
	}
	return t
}
