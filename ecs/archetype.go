package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types. Rows are
// shared by every component storage of the archetype: row r of each storage
// belongs to the same entity.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []EntityId
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		if !registry.Registered(typ) {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = registry.getFactory(typ)()
	}

	return a
}

// Spawn stores the components for entity and returns the row they occupy.
func (a *Archetype) Spawn(entity EntityId, components []any) uint32 {
	row := -1
	for _, comp := range components {
		idx := a.storageIndex(componentType(comp))
		if idx == -1 {
			panic("component type " + componentType(comp).String() + " is not part of the archetype")
		}
		row = a.storages[idx].Append(comp)
	}

	for row >= len(a.entities) {
		a.entities = append(a.entities, 0)
	}
	a.entities[row] = entity
	return uint32(row)
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored
// at row, or nil
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(row))
}

// SetComponent overwrites the component stored at row.
func (a *Archetype) SetComponent(row uint32, component any) bool {
	idx := a.storageIndex(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(row), component)
}

// Delete frees a row. The slot is reused by a later Spawn.
func (a *Archetype) Delete(row uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	if int(row) < len(a.entities) {
		a.entities[row] = 0
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact removes empty rows from every storage. Callers owning an entity
// directory must re-read rows through Iter afterwards.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	entities := make([]EntityId, len(indexMap))
	for oldRow, newRow := range indexMap {
		entities[newRow] = a.entities[oldRow]
	}
	a.entities = entities
}

// Iter returns an iterator over the occupied rows and their entities, in row order
func (a *Archetype) Iter() iter.Seq2[uint32, EntityId] {
	return func(yield func(uint32, EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for row := range a.storages[0].Iter() {
			if !yield(uint32(row), a.entities[row]) {
				return
			}
		}
	}
}
