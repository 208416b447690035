package xenon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWaves(t *testing.T) {
	w := DefaultWaves()
	require.Len(t, w.Waves, len(SpawnKinds))
	assert.Equal(t, Wave{Kind: SpawnLoner, Interval: 1.0, Chance: 0.4}, w.Waves[0])
	assert.Equal(t, Wave{Kind: SpawnWeapon, Interval: 7.0, Chance: 0.15}, w.Waves[5])
}

func TestParseWaves(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
		wantErr bool
	}{
		{"valid", "waves:\n  - {kind: rusher, interval: 0.5, chance: 1}\n", false, false},
		{"empty", "waves: []\n", false, false},
		{"unknown kind", "waves:\n  - {kind: drone, interval: 1, chance: 0.5}\n", true, true},
		{"zero interval", "waves:\n  - {kind: loner, interval: 0, chance: 0.5}\n", true, true},
		{"chance above one", "waves:\n  - {kind: loner, interval: 1, chance: 1.5}\n", true, true},
		{"negative chance", "waves:\n  - {kind: loner, interval: 1, chance: -0.1}\n", true, true},
		{"bad yaml", "waves: [", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWaves([]byte(tt.data))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidWave))
		})
	}
}

func TestLoadWaves(t *testing.T) {
	w, err := LoadWaves("")
	require.NoError(t, err)
	assert.Equal(t, DefaultWaves(), w)

	path := filepath.Join(t.TempDir(), "waves.yaml")
	require.NoError(t, os.WriteFile(path, []byte("waves:\n  - {kind: asteroid, interval: 3, chance: 0.5}\n"), 0o644))
	w, err = LoadWaves(path)
	require.NoError(t, err)
	assert.Equal(t, []Wave{{Kind: SpawnAsteroid, Interval: 3, Chance: 0.5}}, w.Waves)

	_, err = LoadWaves(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
