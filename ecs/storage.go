package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// ordered holds archetypes in creation order so iteration is stable.
	ordered []*Archetype

	entities []entityRecord
	free     []uint32
	alive    int

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](32),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.archetypes.Get(hashTypesToUint32(extractComponentTypes(components)))
	return archetype
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	archetype, _ := s.archetypes.Get(hashTypesToUint32(sorted))
	return archetype
}

// Archetypes returns every archetype in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, ok := s.archetypes.Get(archetypeId)
	if !ok {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes.Put(archetypeId, archetype)
		s.ordered = append(s.ordered, archetype)
	}
	return archetype
}

func (s *Storage) allocate() EntityId {
	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		return NewEntityId(index, s.entities[index].generation)
	}

	index := uint32(len(s.entities))
	s.entities = append(s.entities, entityRecord{generation: 1})
	return NewEntityId(index, 1)
}

func (s *Storage) lookup(id EntityId) *entityRecord {
	index := id.Index()
	if int(index) >= len(s.entities) {
		return nil
	}
	rec := &s.entities[index]
	if !rec.alive || rec.generation != id.Generation() {
		return nil
	}
	return rec
}

func (s *Storage) release(id EntityId) {
	rec := &s.entities[id.Index()]
	rec.alive = false
	rec.archetype = nil
	rec.generation++
	if rec.generation == 0 {
		rec.generation = 1
	}
	s.free = append(s.free, id.Index())
	s.alive--
}

// Spawn creates a new entity with the provided components. All components
// are attached before the entity becomes visible to views and queries.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	id := s.allocate()
	row := archetype.Spawn(id, components)

	s.entities[id.Index()] = entityRecord{
		archetype:  archetype,
		row:        row,
		generation: id.Generation(),
		alive:      true,
	}
	s.alive++
	return id
}

// Delete removes all data related to the entity ID. Deleting an entity that
// no longer exists is a no-op and returns false.
func (s *Storage) Delete(id EntityId) bool {
	rec := s.lookup(id)
	if rec == nil {
		return false
	}
	rec.archetype.Delete(rec.row)
	s.release(id)
	return true
}

// Clear deletes every entity. Singletons are kept, and handles to the
// removed entities stay stale forever.
func (s *Storage) Clear() {
	for index := range s.entities {
		rec := &s.entities[index]
		if rec.alive {
			s.release(NewEntityId(uint32(index), rec.generation))
		}
	}
	for _, archetype := range s.ordered {
		for row := range archetype.Iter() {
			archetype.Delete(row)
		}
		archetype.Compact()
	}
}

// Compact defragments every archetype and refreshes the entity directory.
func (s *Storage) Compact() {
	for _, archetype := range s.ordered {
		archetype.Compact()
		for row, id := range archetype.Iter() {
			s.entities[id.Index()].row = row
		}
	}
}

// Alive reports whether the handle refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	return s.lookup(id) != nil
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.alive
}

// AddComponent attaches a component to an existing entity, moving it to the
// matching archetype. If the entity already has a component of that type the
// value is replaced. The entity keeps its ID.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	rec := s.lookup(id)
	if rec == nil {
		return false
	}

	compType := componentType(component)
	oldArchetype := rec.archetype
	if oldArchetype.HasComponent(compType) {
		return oldArchetype.SetComponent(rec.row, component)
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range oldArchetype.types {
		components = append(components, oldArchetype.GetComponent(rec.row, typ))
	}
	components = append(components, component)

	s.move(rec, id, s.archetypeFor(newTypes), components)
	return true
}

// RemoveComponent detaches a component from an entity. An entity left with
// no components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	rec := s.lookup(id)
	if rec == nil || !rec.archetype.HasComponent(compType) {
		return false
	}

	oldArchetype := rec.archetype
	if len(oldArchetype.types) == 1 {
		return s.Delete(id)
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	components := make([]any, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
			components = append(components, oldArchetype.GetComponent(rec.row, typ))
		}
	}

	s.move(rec, id, s.archetypeFor(newTypes), components)
	return true
}

// move copies components into the target archetype before freeing the old row.
func (s *Storage) move(rec *entityRecord, id EntityId, target *Archetype, components []any) {
	oldArchetype, oldRow := rec.archetype, rec.row
	newRow := target.Spawn(id, components)
	oldArchetype.Delete(oldRow)

	rec.archetype = target
	rec.row = newRow
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	rec := s.lookup(id)
	if rec == nil {
		return nil
	}
	return rec.archetype.GetComponent(rec.row, compType)
}

// ArchetypeOf returns the archetype holding a live entity, or nil.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	rec := s.lookup(id)
	if rec == nil {
		return nil
	}
	return rec.archetype
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	rec := s.lookup(id)
	return rec != nil && rec.archetype.HasComponent(compType)
}

func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in all 4 bytes if on 64-bit system
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the entity's component of type T, or
// nil when the entity is gone or lacks the component.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// CountComponent returns the number of live entities carrying a T.
func CountComponent[T any](s *Storage) int {
	compType := reflect.TypeFor[T]()
	count := 0
	for _, archetype := range s.ordered {
		if archetype.HasComponent(compType) {
			count += archetype.Len()
		}
	}
	return count
}
