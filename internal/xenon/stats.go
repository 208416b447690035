package xenon

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/engine2000"
	"github.com/phanxgames/engine2000/ecs"
)

// StatsData is the running tally of a session.
type StatsData struct {
	// Contacts counts delivered sensor begins.
	Contacts int
	// Suppressed counts begins blocked by immunity.
	Suppressed int
	Kills      int
	Score      int
	// Pairs counts begins per "sensor>visitor" layer pair.
	Pairs map[string]int
}

// StatsComponent stores StatsData on the stats entry of the donburi world.
var StatsComponent = donburi.NewComponentType[StatsData]()

// Stats consumes the level's sensor events through a donburi world.
type Stats struct {
	world donburi.World
	entry *donburi.Entry
}

// newStats creates the stats entry and subscribes to sensor events.
func newStats(world donburi.World) *Stats {
	entity := world.Create(StatsComponent)
	s := &Stats{world: world, entry: world.Entry(entity)}
	StatsComponent.SetValue(s.entry, StatsData{Pairs: make(map[string]int)})
	ecs.SensorEventType.Subscribe(world, s.onSensor)
	return s
}

func (s *Stats) onSensor(_ donburi.World, ev engine2000.SensorEvent) {
	if ev.Kind != engine2000.SensorBegin {
		return
	}
	d := StatsComponent.Get(s.entry)
	if ev.Suppressed {
		d.Suppressed++
		return
	}
	d.Contacts++
	d.Pairs[ev.SensorLayer+">"+ev.VisitorLayer]++
}

// Process delivers the sensor events queued since the last call.
func (s *Stats) Process() {
	ecs.SensorEventType.ProcessEvents(s.world)
}

func (s *Stats) recordKill(score int) {
	d := StatsComponent.Get(s.entry)
	d.Kills++
	d.Score += score
}

// Data returns a copy of the tally.
func (s *Stats) Data() StatsData {
	d := *StatsComponent.Get(s.entry)
	pairs := make(map[string]int, len(d.Pairs))
	for k, v := range d.Pairs {
		pairs[k] = v
	}
	d.Pairs = pairs
	return d
}
