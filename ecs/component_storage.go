package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores components of a single type in fixed-size blocks so
// that pointers handed out by Get stay valid while the storage grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *blockStorage[T]) unwrap(item any) (T, bool) {
	switch v := item.(type) {
	case *T:
		return *v, true
	case T:
		return v, true
	}
	var zero T
	return zero, false
}

// Append adds a component to storage and returns its index, or -1 when the
// item has the wrong type.
func (cs *blockStorage[T]) Append(item any) int {
	value, ok := cs.unwrap(item)
	if !ok {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, new([blockSize]bool))
		}
	}

	cs.blocks[index/blockSize][index%blockSize] = value
	cs.filled[index/blockSize][index%blockSize] = true
	cs.count++
	return index
}

// Set overwrites an occupied slot.
func (cs *blockStorage[T]) Set(index int, item any) bool {
	if !cs.Has(index) {
		return false
	}
	value, ok := cs.unwrap(item)
	if !ok {
		return false
	}
	cs.blocks[index/blockSize][index%blockSize] = value
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

// Delete marks a component slot as empty.
func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	var zero T
	cs.filled[index/blockSize][index%blockSize] = false
	cs.blocks[index/blockSize][index%blockSize] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Len() int {
	return cs.count
}

// Compact moves every live component to the front of the storage and
// returns the old-to-new index mapping.
func (cs *blockStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.count)
	if cs.count == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (cs.count + blockSize - 1) / blockSize
	blocks := make([]*[blockSize]T, numBlocks)
	filled := make([]*[blockSize]bool, numBlocks)
	for i := range blocks {
		blocks[i] = new([blockSize]T)
		filled[i] = new([blockSize]bool)
	}

	writePos := 0
	for readIdx := range cs.Iter() {
		indexMap[readIdx] = writePos
		blocks[writePos/blockSize][writePos%blockSize] = cs.blocks[readIdx/blockSize][readIdx%blockSize]
		filled[writePos/blockSize][writePos%blockSize] = true
		writePos++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = writePos
	return indexMap
}

// Iter yields occupied indices in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
