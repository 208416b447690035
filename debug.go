package engine2000

import "time"

// statsLogInterval is how many frames pass between debug stat log lines.
const statsLogInterval = 120

// FrameStats holds per-frame metrics. The engine refreshes them after every
// frame; in debug mode they are also logged periodically.
type FrameStats struct {
	Frame       int
	DT          float64
	FPS         float64 // exponentially smoothed
	Entities    int
	Bodies      int
	Shapes      int
	PhysicsStep time.Duration
	Rects       int
	Textures    int
	Texts       int
}

// frameSource is implemented by renderers that keep the last presented frame.
type frameSource interface {
	LastFrame() []RenderCommand
}

func (e *Engine) recordStats(dt float64) {
	st := &e.stats
	st.Frame++
	st.DT = dt
	if dt > 0 {
		fps := 1 / dt
		if st.FPS == 0 {
			st.FPS = fps
		} else {
			st.FPS += (fps - st.FPS) * 0.1
		}
	}
	if l := e.level; l != nil {
		w := l.PhysicsWorld()
		st.Entities = l.EntityCount()
		st.Bodies = w.BodyCount()
		st.Shapes = w.ShapeCount()
		st.PhysicsStep = w.LastStepDuration()
	}
	if fs, ok := e.platform.Renderer().(frameSource); ok {
		st.Rects, st.Textures, st.Texts = countDrawCalls(fs.LastFrame())
	}
	if e.settings.Debug && st.Frame%statsLogInterval == 0 {
		e.logStats()
	}
}

// logStats prints the current stats through the package logger.
func (e *Engine) logStats() {
	st := e.stats
	logger.Debug("frame stats",
		"frame", st.Frame,
		"fps", int(st.FPS+0.5),
		"entities", st.Entities,
		"bodies", st.Bodies,
		"shapes", st.Shapes,
		"physics", st.PhysicsStep,
		"rects", st.Rects,
		"textures", st.Textures,
		"texts", st.Texts,
	)
}
