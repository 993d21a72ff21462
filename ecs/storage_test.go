package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/tieney/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.index, tt.generation)
			assert.Equal(t, tt.index, entityId.Index())
			assert.Equal(t, tt.generation, entityId.Generation())
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.EntityCount())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })

	type unregistered struct{}
	assert.False(t, storage.Registry().Registered(reflect.TypeOf(unregistered{})))
	assert.True(t, storage.Registry().Registered(reflect.TypeOf(Position{})))
	assert.PanicsWithValue(t, "component type ecs_test.unregistered not registered", func() {
		storage.Spawn(unregistered{})
	})
	assert.Zero(t, storage.EntityCount())
}

func TestSingletonExists(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var unbound ecs.Singleton[Score]
	assert.False(t, unbound.Exists())

	unbound.Init(storage)
	assert.False(t, unbound.Exists())

	storage.AddSingleton(Score(7))
	assert.True(t, unbound.Exists())
	assert.Equal(t, Score(7), *unbound.Get())
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	posComp := storage.GetComponent(id, reflect.TypeOf(Position{}))
	require.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "Test Entity", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestComponentPointersAreLive(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Hull{Current: 10, Max: 10})

	ecs.ReadComponent[Hull](storage, id).Current = 3
	assert.Equal(t, 3, ecs.ReadComponent[Hull](storage, id).Current)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Hull{Current: 100, Max: 100})
	require.NotNil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))

	assert.True(t, storage.Delete(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))
	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.EntityCount())
}

func TestDeleteStaleEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stale := storage.Spawn(Position{X: 1})
	require.True(t, storage.Delete(stale))

	// The freed slot is reused with a new generation.
	fresh := storage.Spawn(Position{X: 2})
	assert.Equal(t, stale.Index(), fresh.Index())
	assert.NotEqual(t, stale, fresh)

	assert.False(t, storage.Delete(stale), "stale handle must not delete the new entity")
	assert.True(t, storage.Alive(fresh))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, fresh).X)
	assert.Nil(t, ecs.ReadComponent[Position](storage, stale))

	assert.False(t, storage.Delete(ecs.NewEntityId(999, 1)))
}

func TestMultipleEntitiesSameArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id1 := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Velocity{DX: 0.1, DY: 0.1})
	id2 := storage.Spawn(&Velocity{DX: 0.2, DY: 0.2}, &Position{X: 2.0, Y: 2.0})
	id3 := storage.Spawn(&Position{X: 3.0, Y: 3.0}, &Velocity{DX: 0.3, DY: 0.3})

	assert.Len(t, storage.Archetypes(), 1)
	assert.Equal(t, 3, storage.Archetypes()[0].Len())

	for i, id := range []ecs.EntityId{id1, id2, id3} {
		pos := ecs.ReadComponent[Position](storage, id)
		require.NotNil(t, pos)
		assert.Equal(t, float32(i+1), pos.X)
	}
}

func TestAddComponentKeepsId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 6})
	assert.True(t, storage.AddComponent(id, Velocity{DX: 1, DY: 2}))

	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, id).X)
	assert.Equal(t, float32(2), ecs.ReadComponent[Velocity](storage, id).DY)
	assert.Len(t, storage.Archetypes(), 2)
	assert.Equal(t, 0, storage.Archetypes()[0].Len())

	// Adding an existing type replaces the value in place.
	assert.True(t, storage.AddComponent(id, &Velocity{DX: 9}))
	assert.Equal(t, float32(9), ecs.ReadComponent[Velocity](storage, id).DX)
	assert.Len(t, storage.Archetypes(), 2)
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5}, Velocity{DX: 1})
	assert.True(t, storage.RemoveComponent(id, reflect.TypeOf(Velocity{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Velocity{})))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, id).X)

	assert.False(t, storage.RemoveComponent(id, reflect.TypeOf(Velocity{})))

	// Removing the last component deletes the entity.
	assert.True(t, storage.RemoveComponent(id, reflect.TypeOf(Position{})))
	assert.False(t, storage.Alive(id))
}

func TestClear(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage, 7)

	ids := []ecs.EntityId{
		storage.Spawn(Position{X: 1}),
		storage.Spawn(Position{X: 2}, Velocity{}),
		storage.Spawn(Hull{Current: 1}),
	}

	storage.Clear()

	assert.Equal(t, 0, storage.EntityCount())
	for _, id := range ids {
		assert.False(t, storage.Alive(id))
	}
	assert.Equal(t, 0, ecs.CountComponent[Position](storage))
	assert.Equal(t, Score(7), *ecs.NewSingleton[Score](storage).Get())

	fresh := storage.Spawn(Position{X: 3})
	assert.True(t, storage.Alive(fresh))
	for _, id := range ids {
		assert.NotEqual(t, id, fresh)
	}
}

func TestCompactPreservesEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids, keep []ecs.EntityId
	for i := 0; i < 130; i++ {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	for i, id := range ids {
		if i%3 == 0 {
			keep = append(keep, id)
		} else {
			storage.Delete(id)
		}
	}

	storage.Compact()

	for _, id := range keep {
		pos := ecs.ReadComponent[Position](storage, id)
		require.NotNil(t, pos)
		assert.Equal(t, float32(id.Index()), pos.X)
	}
	assert.Equal(t, len(keep), ecs.CountComponent[Position](storage))
}

func TestCountComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{})
	storage.Spawn(Velocity{})
	doomed := storage.Spawn(Position{}, Hull{})
	storage.Delete(doomed)

	assert.Equal(t, 2, ecs.CountComponent[Position](storage))
	assert.Equal(t, 2, ecs.CountComponent[Velocity](storage))
	assert.Equal(t, 0, ecs.CountComponent[Hull](storage))
}

func TestGetArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{}, Velocity{})

	a := storage.GetArchetype(Velocity{}, Position{})
	require.NotNil(t, a)
	assert.Equal(t, a, storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeOf(Velocity{}), reflect.TypeOf(Position{})}))
	assert.Nil(t, storage.GetArchetype(Hull{}))
}

func TestArchetypeOf(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{})

	assert.Equal(t, storage.GetArchetype(Position{}, Velocity{}), storage.ArchetypeOf(id))

	storage.Delete(id)
	assert.Nil(t, storage.ArchetypeOf(id))
}
