package engine2000

import "fmt"

// BodyHandle refers to a simulation body owned by a PhysicsWorld. The zero
// handle is never valid. A handle goes stale once its body is destroyed,
// even if the slot is reused.
type BodyHandle struct {
	index      uint32
	generation uint32
}

// ShapeHandle refers to a simulation shape owned by a PhysicsWorld.
type ShapeHandle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero handle.
func (h BodyHandle) IsZero() bool { return h.generation == 0 }

// IsZero reports whether h is the zero handle.
func (h ShapeHandle) IsZero() bool { return h.generation == 0 }

func (h BodyHandle) String() string {
	return fmt.Sprintf("body(%d#%d)", h.index, h.generation)
}

func (h ShapeHandle) String() string {
	return fmt.Sprintf("shape(%d#%d)", h.index, h.generation)
}

// slotTable hands out generation-tagged indices over a slice of T. Freed
// indices are reused; every reuse bumps the generation so older handles fail
// validation.
type slotTable[T any] struct {
	items       []T
	generations []uint32
	live        []bool
	free        []uint32
	count       int
}

func (t *slotTable[T]) alloc(item T) (index, generation uint32) {
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.items))
		var zero T
		t.items = append(t.items, zero)
		t.generations = append(t.generations, 0)
		t.live = append(t.live, false)
	}
	t.generations[index]++
	t.items[index] = item
	t.live[index] = true
	t.count++
	return index, t.generations[index]
}

func (t *slotTable[T]) get(index, generation uint32) (T, bool) {
	var zero T
	if generation == 0 || int(index) >= len(t.items) || !t.live[index] || t.generations[index] != generation {
		return zero, false
	}
	return t.items[index], true
}

func (t *slotTable[T]) release(index, generation uint32) bool {
	if _, ok := t.get(index, generation); !ok {
		return false
	}
	var zero T
	t.items[index] = zero
	t.live[index] = false
	t.free = append(t.free, index)
	t.count--
	return true
}

func (t *slotTable[T]) each(fn func(index, generation uint32, item T)) {
	for i := range t.items {
		if t.live[i] {
			fn(uint32(i), t.generations[i], t.items[i])
		}
	}
}
