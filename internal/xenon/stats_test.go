package xenon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/engine2000"
	"github.com/phanxgames/engine2000/ecs"
)

func TestStatsCountsSensorEvents(t *testing.T) {
	world := donburi.NewWorld()
	s := newStats(world)

	publish := func(ev engine2000.SensorEvent) { ecs.SensorEventType.Publish(world, ev) }
	publish(engine2000.SensorEvent{Kind: engine2000.SensorBegin, SensorLayer: LayerPlayerProjectile, VisitorLayer: layerEnemy})
	publish(engine2000.SensorEvent{Kind: engine2000.SensorBegin, SensorLayer: LayerPlayerProjectile, VisitorLayer: layerEnemy})
	publish(engine2000.SensorEvent{Kind: engine2000.SensorBegin, SensorLayer: layerEnemy, VisitorLayer: layerPlayer, Suppressed: true})
	publish(engine2000.SensorEvent{Kind: engine2000.SensorEnd, SensorLayer: layerEnemy, VisitorLayer: layerPlayer})

	assert.Zero(t, s.Data().Contacts)
	s.Process()

	d := s.Data()
	assert.Equal(t, 2, d.Contacts)
	assert.Equal(t, 1, d.Suppressed)
	assert.Equal(t, map[string]int{"PlayerProjectile>Enemy": 2}, d.Pairs)

	s.recordKill(500)
	s.recordKill(250)
	d = s.Data()
	assert.Equal(t, 2, d.Kills)
	assert.Equal(t, 750, d.Score)

	// Data returns a copy.
	d.Pairs["x"] = 1
	assert.NotContains(t, s.Data().Pairs, "x")
}
