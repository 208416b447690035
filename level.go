package engine2000

import "fmt"

// RenderLayer orders entities for update and drawing. Lower layers are drawn
// first.
type RenderLayer uint8

const (
	LayerBackground RenderLayer = iota
	LayerGame
	LayerForeground
	LayerPlayer
	LayerUI
	NumRenderLayers = 5
)

var renderLayerNames = [NumRenderLayers]string{"Background", "Game", "Foreground", "Player", "UI"}

func (l RenderLayer) String() string {
	if l < NumRenderLayers {
		return renderLayerNames[l]
	}
	return fmt.Sprintf("RenderLayer(%d)", uint8(l))
}

// DefaultClearColor is the color a level clears the frame to.
var DefaultClearColor = RGBA(64, 0, 64, 255)

type pendingAdd struct {
	entity *Entity
	layer  RenderLayer
}

// Level owns the entities of one game screen, grouped by render layer, and
// the physics world they simulate in. Structural changes are deferred:
// CreateEntity and RemoveEntity only queue work that the next Update commits,
// so gameplay code may create and remove entities from any callback.
type Level struct {
	input      Input
	layerTable *LayerTable
	world      *PhysicsWorld

	layers         [NumRenderLayers][]*Entity
	pendingAdds    []pendingAdd
	pendingRemoves []*Entity

	width, height int
	clearColor    Color
	frames        int
	destroyed     bool
}

// NewLevel creates a level with a physics world configured by cfg and
// filtered by layers. The screen size drives ScreenBounds checks.
func NewLevel(input Input, layers *LayerTable, width, height int, cfg PhysicsConfig) (*Level, error) {
	world, err := NewPhysicsWorld(cfg, layers)
	if err != nil {
		return nil, fmt.Errorf("engine2000: new level: %w", err)
	}
	world.SetBounds(float64(width), float64(height))
	return &Level{
		input:      input,
		layerTable: layers,
		world:      world,
		width:      width,
		height:     height,
		clearColor: DefaultClearColor,
	}, nil
}

// CreateEntity builds a new entity with prefab, initializes it and queues it
// for layer. The entity joins the layer on the next Update. The entity's
// level is set before Build runs, so Build may create physics bodies; Init
// runs after Build.
func (l *Level) CreateEntity(layer RenderLayer, prefab Prefab) *Entity {
	if l.destroyed {
		logger.Warn("create entity on destroyed level")
		return nil
	}
	if layer >= NumRenderLayers {
		logger.Warn("invalid render layer, using Game", "layer", layer)
		layer = LayerGame
	}
	e := newEntity("")
	e.layer = layer
	e.prefab = prefab
	e.level = l
	if prefab != nil {
		prefab.Build(e)
	}
	e.Init()
	l.pendingAdds = append(l.pendingAdds, pendingAdd{entity: e, layer: layer})
	return e
}

// RemoveEntity queues e for removal and destruction on the next Update.
// Removing an entity twice, or one that is already destroyed, does nothing.
func (l *Level) RemoveEntity(e *Entity) {
	if e == nil || e.destroyed {
		return
	}
	for _, q := range l.pendingRemoves {
		if q == e {
			return
		}
	}
	l.pendingRemoves = append(l.pendingRemoves, e)
}

// commit applies queued removals, then queued additions. Destroy hooks may
// queue further removals; those are drained in the same commit.
func (l *Level) commit() {
	for i := 0; i < len(l.pendingRemoves); i++ {
		e := l.pendingRemoves[i]
		l.pendingRemoves[i] = nil
		if !l.detach(e) && !l.dropPending(e) {
			continue
		}
		e.Destroy()
	}
	l.pendingRemoves = l.pendingRemoves[:0]

	for _, p := range l.pendingAdds {
		if p.entity.destroyed {
			continue
		}
		l.layers[p.layer] = append(l.layers[p.layer], p.entity)
	}
	l.pendingAdds = l.pendingAdds[:0]
}

// detach removes the first occurrence of e from the layers.
func (l *Level) detach(e *Entity) bool {
	for i := range l.layers {
		layer := l.layers[i]
		for j, x := range layer {
			if x != e {
				continue
			}
			copy(layer[j:], layer[j+1:])
			layer[len(layer)-1] = nil
			l.layers[i] = layer[:len(layer)-1]
			return true
		}
	}
	return false
}

// dropPending removes e from the pending additions.
func (l *Level) dropPending(e *Entity) bool {
	for i, p := range l.pendingAdds {
		if p.entity == e {
			l.pendingAdds = append(l.pendingAdds[:i], l.pendingAdds[i+1:]...)
			return true
		}
	}
	return false
}

// Update steps physics (dispatching sensor events), commits queued removals
// and additions, then updates every entity layer by layer.
func (l *Level) Update(dt float64) {
	if l.destroyed {
		return
	}
	l.world.Step()
	l.commit()
	for i := range l.layers {
		layer := l.layers[i]
		n := 0
		for _, e := range layer {
			if e == nil || e.destroyed {
				continue
			}
			e.Update(dt)
			layer[n] = e
			n++
		}
		clear(layer[n:])
		l.layers[i] = layer[:n]
	}
	l.frames++
}

// Render clears the frame, draws every layer in order and presents.
func (l *Level) Render(r Renderer) {
	if l.destroyed || r == nil {
		return
	}
	r.SetClearColor(l.clearColor)
	r.Clear()
	for _, layer := range l.layers {
		for _, e := range layer {
			if e != nil {
				e.Render(r)
			}
		}
	}
	r.Present()
}

// Destroy destroys every entity, including ones still pending, and then the
// physics world. Later calls do nothing.
func (l *Level) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	for i := range l.layers {
		for _, e := range l.layers[i] {
			if e != nil {
				e.Destroy()
			}
		}
		l.layers[i] = nil
	}
	for _, p := range l.pendingAdds {
		p.entity.Destroy()
	}
	l.pendingAdds = nil
	l.pendingRemoves = nil
	l.world.Destroy()
	logger.Debug("level destroyed", "frames", l.frames)
}

// Destroyed reports whether Destroy has run.
func (l *Level) Destroyed() bool { return l.destroyed }

// SetGravity sets the physics world's gravity.
func (l *Level) SetGravity(g Vec2) { l.world.SetGravity(g) }

// PhysicsWorld returns the level's physics world.
func (l *Level) PhysicsWorld() *PhysicsWorld { return l.world }

// LayerTable returns the physics layer table the level was created with.
func (l *Level) LayerTable() *LayerTable { return l.layerTable }

func (l *Level) ScreenWidth() int { return l.width }
func (l *Level) ScreenHeight() int { return l.height }

// Input returns the engine input the level reads from.
func (l *Level) Input() Input { return l.input }

// Entities returns the committed entities on layer. The slice must not be
// modified.
func (l *Level) Entities(layer RenderLayer) []*Entity {
	if layer >= NumRenderLayers {
		return nil
	}
	return l.layers[layer]
}

// EntityCount returns the number of committed entities across all layers.
func (l *Level) EntityCount() int {
	n := 0
	for _, layer := range l.layers {
		n += len(layer)
	}
	return n
}

// PendingCount returns the queued additions and removals.
func (l *Level) PendingCount() (adds, removes int) {
	return len(l.pendingAdds), len(l.pendingRemoves)
}

// Frames returns the number of Update calls.
func (l *Level) Frames() int { return l.frames }

func (l *Level) ClearColor() Color { return l.clearColor }
func (l *Level) SetClearColor(c Color) { l.clearColor = c }
