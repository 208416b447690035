package xenon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phanxgames/engine2000"
)

const testDT = 1.0 / 60

// newTestGame sets up a game on a 640x480 level with the spawner off and
// commits the initial entities.
func newTestGame(t *testing.T, opts Options) (*Game, *engine2000.Level, *engine2000.InputState) {
	t.Helper()
	layers := engine2000.NewLayerTable()
	require.NoError(t, SetupLayers(layers))
	input := engine2000.NewInputState()
	level, err := engine2000.NewLevel(input, layers, 640, 480, engine2000.DefaultPhysicsConfig())
	require.NoError(t, err)
	t.Cleanup(level.Destroy)

	g := New(opts)
	require.NoError(t, g.Setup(level))
	step(level, input, 1)
	return g, level, input
}

func step(level *engine2000.Level, input *engine2000.InputState, frames int) {
	for range frames {
		input.BeginFrame()
		level.Update(testDT)
	}
}

// named returns the committed entities whose name starts with prefix.
func named(level *engine2000.Level, prefix string) []*engine2000.Entity {
	var out []*engine2000.Entity
	for l := engine2000.RenderLayer(0); l < engine2000.NumRenderLayers; l++ {
		for _, e := range level.Entities(l) {
			if strings.HasPrefix(e.Name, prefix) {
				out = append(out, e)
			}
		}
	}
	return out
}
