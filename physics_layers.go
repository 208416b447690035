package engine2000

import "fmt"

// MaxPhysicsLayers is the capacity of a LayerTable.
const MaxPhysicsLayers = 32

// Built-in physics layer names. They occupy the first BuiltinPhysicsLayers
// slots of every LayerTable.
const (
	PhysicsLayerDefault     = "Default"
	PhysicsLayerBackground  = "Background"
	PhysicsLayerEnvironment = "Environment"
	PhysicsLayerPlayer      = "Player"
	PhysicsLayerEnemy       = "Enemy"
	PhysicsLayerProjectile  = "Projectile"
	PhysicsLayerTrigger     = "Trigger"
	PhysicsLayerUI          = "UI"
)

// BuiltinPhysicsLayers is the number of reserved layer slots.
const BuiltinPhysicsLayers = 8

var builtinLayerNames = [BuiltinPhysicsLayers]string{
	PhysicsLayerDefault,
	PhysicsLayerBackground,
	PhysicsLayerEnvironment,
	PhysicsLayerPlayer,
	PhysicsLayerEnemy,
	PhysicsLayerProjectile,
	PhysicsLayerTrigger,
	PhysicsLayerUI,
}

// LayerTable maps physics layer names to slot indices and holds the symmetric
// collision matrix between slots. The engine owns one table and hands it to
// every level and physics world it creates. A LayerTable is not safe for
// concurrent use; confine it to the engine goroutine.
type LayerTable struct {
	names   [MaxPhysicsLayers]string
	index   map[string]int
	collide [MaxPhysicsLayers][MaxPhysicsLayers]bool
}

// NewLayerTable returns a table holding the built-in layers with the default
// matrix: everything collides, except that Background, UI and Trigger collide
// with nothing. Triggers still detect overlaps through sensor events.
func NewLayerTable() *LayerTable {
	t := &LayerTable{}
	t.Reset()
	return t
}

// Reset drops every custom layer and restores the default matrix.
func (t *LayerTable) Reset() {
	t.names = [MaxPhysicsLayers]string{}
	t.index = make(map[string]int, MaxPhysicsLayers)
	for i, name := range builtinLayerNames {
		t.names[i] = name
		t.index[name] = i
	}
	for i := range t.collide {
		for j := range t.collide[i] {
			t.collide[i][j] = true
		}
	}
	for _, name := range []string{PhysicsLayerBackground, PhysicsLayerUI, PhysicsLayerTrigger} {
		t.setRow(t.index[name], false)
	}
	env := t.index[PhysicsLayerEnvironment]
	for _, name := range []string{PhysicsLayerBackground, PhysicsLayerUI, PhysicsLayerTrigger} {
		t.set(env, t.index[name], false)
	}
}

func (t *LayerTable) set(i, j int, flag bool) {
	t.collide[i][j] = flag
	t.collide[j][i] = flag
}

func (t *LayerTable) setRow(i int, flag bool) {
	for j := 0; j < MaxPhysicsLayers; j++ {
		t.set(i, j, flag)
	}
}

// CreateLayer registers a custom layer in the first free slot and returns its
// index. The new layer collides with every layer; disable unwanted pairs with
// SetLayerCollision afterwards.
func (t *LayerTable) CreateLayer(name string) (int, error) {
	if name == "" {
		return -1, fmt.Errorf("%w: empty name", ErrInvalidLayer)
	}
	if _, ok := t.index[name]; ok {
		logger.Warn("create physics layer: name already exists", "layer", name)
		return -1, fmt.Errorf("%w: %q", ErrLayerExists, name)
	}
	for i := BuiltinPhysicsLayers; i < MaxPhysicsLayers; i++ {
		if t.names[i] != "" {
			continue
		}
		t.names[i] = name
		t.index[name] = i
		t.setRow(i, true)
		logger.Debug("created physics layer", "layer", name, "index", i)
		return i, nil
	}
	logger.Error("create physics layer: no free slots", "layer", name)
	return -1, fmt.Errorf("%w: cannot add %q", ErrLayerTableFull, name)
}

// RenameLayer renames the custom layer at index. Built-in layers cannot be
// renamed.
func (t *LayerTable) RenameLayer(index int, name string) error {
	if index < BuiltinPhysicsLayers || index >= MaxPhysicsLayers || t.names[index] == "" {
		logger.Error("rename physics layer: built-in or unused index", "index", index)
		return fmt.Errorf("%w: index %d", ErrInvalidLayer, index)
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidLayer)
	}
	if _, ok := t.index[name]; ok {
		logger.Error("rename physics layer: name already exists", "layer", name)
		return fmt.Errorf("%w: %q", ErrLayerExists, name)
	}
	delete(t.index, t.names[index])
	t.names[index] = name
	t.index[name] = index
	return nil
}

// LayerIndex returns the slot of the named layer.
func (t *LayerTable) LayerIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// LayerName returns the name in slot i, or "" for an unused or invalid slot.
func (t *LayerTable) LayerName(i int) string {
	if i < 0 || i >= MaxPhysicsLayers {
		return ""
	}
	return t.names[i]
}

// Layers returns the names of every registered layer in slot order.
func (t *LayerTable) Layers() []string {
	out := make([]string, 0, len(t.index))
	for _, name := range t.names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// SetLayerCollision sets whether layers a and b collide, in both directions.
// Unknown names log a warning and leave the matrix unchanged.
func (t *LayerTable) SetLayerCollision(a, b string, collide bool) {
	i, okA := t.index[a]
	j, okB := t.index[b]
	if !okA || !okB {
		logger.Warn("set layer collision: unknown layer", "a", a, "b", b)
		return
	}
	t.set(i, j, collide)
}

// ShouldLayersCollide reports whether layers a and b collide. Unknown names
// never collide.
func (t *LayerTable) ShouldLayersCollide(a, b string) bool {
	i, okA := t.index[a]
	j, okB := t.index[b]
	if !okA || !okB {
		return false
	}
	return t.collide[i][j]
}

// CollideIndices is ShouldLayersCollide for slot indices.
func (t *LayerTable) CollideIndices(i, j int) bool {
	if i < 0 || j < 0 || i >= MaxPhysicsLayers || j >= MaxPhysicsLayers {
		return false
	}
	if t.names[i] == "" || t.names[j] == "" {
		return false
	}
	return t.collide[i][j]
}
