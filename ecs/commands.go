package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations. Commands are
// applied when the buffer is flushed, either at a Scheduler barrier or at
// the end of the frame. This prevents structural changes to the ECS storage
// during system execution.
type Commands struct {
	deleteAll bool
	spawns    []spawnCommand
	deletes   []EntityId
	adds      []addComponentCommand
	removes   []removeComponentCommand
	defers    []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation. Deleting an entity that is
// already gone when the buffer is flushed is ignored.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// DeleteAll queues the removal of every entity in the storage. It is applied
// before any other queued command, so spawns queued in the same buffer
// survive it.
func (c *Commands) DeleteAll() {
	c.deleteAll = true
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	n := len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
	if c.deleteAll {
		n++
	}
	return n
}

// Flush flushes all commands to the provided storage, reseting the buffer state
func (c *Commands) Flush(storage *Storage) {
	if c.deleteAll {
		storage.Clear()
	}

	for _, cmd := range c.deletes {
		storage.Delete(cmd)
	}

	// Stale handles make adds and removes on deleted entities no-ops.
	for _, cmd := range c.removes {
		storage.RemoveComponent(cmd.entity, cmd.compType)
	}

	for _, cmd := range c.adds {
		storage.AddComponent(cmd.entity, cmd.component)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.deleteAll = false
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
