package ecs

// EntityId is a generational entity handle. The lower 32 bits index the
// storage's entity directory, the upper 32 bits hold the generation of that
// slot at the time the entity was spawned. A handle whose generation no
// longer matches its slot refers to a destroyed entity.
type EntityId uint64

// NewEntityId creates an EntityId from a directory index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the directory index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// entityRecord locates a live entity inside its archetype.
type entityRecord struct {
	archetype  *Archetype
	row        uint32
	generation uint32
	alive      bool
}
