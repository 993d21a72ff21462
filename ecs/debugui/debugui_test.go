package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tieney/ecs"
)

type point struct {
	X, Y float64
}

type body struct {
	Pos    point
	Mass   float32
	Frames uint32
	Name   string
	Alive  bool
	hidden int
	Next   *point
}

type tag struct {
	Label string
}

func newTarget() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[body](registry)
	ecs.RegisterComponent[tag](registry)
	return ecs.NewStorage(registry)
}

func TestReflectionCacheSkipsUnexported(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.GetFields(reflect.TypeOf(body{}))

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Pos", "Mass", "Frames", "Name", "Alive", "Next"}, names)
	assert.True(t, fields[0].IsStruct)
	assert.True(t, fields[5].IsPointer)
	assert.Equal(t, reflect.TypeOf(point{}), fields[5].Type)

	widgets := make([]widget, len(fields))
	for i, f := range fields {
		widgets[i] = f.widget
	}
	assert.Equal(t, []widget{widgetStruct, widgetFloat, widgetUint, widgetString, widgetBool, widgetStruct}, widgets)

	again := rc.GetFields(reflect.TypeOf(body{}))
	assert.Same(t, &fields[0], &again[0])

	assert.Nil(t, rc.GetFields(reflect.TypeOf(0)))
}

func TestSetFieldEditsStoredComponent(t *testing.T) {
	storage := newTarget()
	id := storage.Spawn(body{Mass: 1})

	val := reflect.ValueOf(storage.GetComponent(id, reflect.TypeOf(body{}))).Elem()
	assert.True(t, setField(val.Field(0).Field(1), 4.5))
	assert.True(t, setField(val.Field(1), 2.0))
	assert.True(t, setField(val.Field(2), uint64(3)))
	assert.True(t, setField(val.Field(3), "rock"))
	assert.True(t, setField(val.Field(4), true))

	got := ecs.ReadComponent[body](storage, id)
	assert.Equal(t, 4.5, got.Pos.Y)
	assert.Equal(t, float32(2), got.Mass)
	assert.Equal(t, uint32(3), got.Frames)
	assert.Equal(t, "rock", got.Name)
	assert.True(t, got.Alive)
}

func TestSetFieldRejectsMismatches(t *testing.T) {
	val := reflect.ValueOf(&body{}).Elem()
	assert.False(t, setField(val.Field(1), "x"))
	assert.False(t, setField(val.Field(2), int64(1)))
	assert.False(t, setField(val.Field(3), true))

	// Unaddressable values cannot be set.
	assert.False(t, setField(reflect.ValueOf(body{}).Field(1), 1.0))
}

func TestEntityBrowserCache(t *testing.T) {
	storage := newTarget()
	a := storage.Spawn(body{})
	b := storage.Spawn(tag{})
	c := storage.Spawn(body{}, tag{})

	eb := NewEntityBrowserComponent(10)
	eb.rebuildCacheIfNeeded(storage)
	require.Len(t, eb.cache.entities, 3)
	assert.Equal(t, []ecs.EntityId{a, b, c}, entityIds(eb.cache.entities))

	eb.filterText = "TAG"
	assert.Equal(t, []ecs.EntityId{b, c}, entityIds(eb.getFilteredEntities()))

	eb.filterText = formatEntityId(a)
	assert.Equal(t, []ecs.EntityId{a}, entityIds(eb.getFilteredEntities()))

	eb.filterText = "body  tag"
	assert.Equal(t, []ecs.EntityId{c}, entityIds(eb.getFilteredEntities()))

	eb.filterText = "body nothing"
	assert.Empty(t, eb.getFilteredEntities())

	eb.filterText = ""
	eb.cache.sortAscending = false
	eb.sortEntities()
	assert.Equal(t, []ecs.EntityId{c, b, a}, entityIds(eb.cache.entities))

	// Deleting changes the entity count and forces a rebuild.
	storage.Delete(b)
	eb.rebuildCacheIfNeeded(storage)
	assert.Equal(t, []ecs.EntityId{c, a}, entityIds(eb.cache.entities))
}

func TestEntityBrowserCacheExpires(t *testing.T) {
	storage := newTarget()
	old := storage.Spawn(tag{})

	eb := NewEntityBrowserComponent(10)
	eb.rebuildCacheIfNeeded(storage)

	// Same population, different entity.
	storage.Delete(old)
	fresh := storage.Spawn(tag{})
	eb.rebuildCacheIfNeeded(storage)
	assert.Equal(t, []ecs.EntityId{old}, entityIds(eb.cache.entities))

	for range refreshEvery {
		eb.rebuildCacheIfNeeded(storage)
	}
	assert.Equal(t, []ecs.EntityId{fresh}, entityIds(eb.cache.entities))
}

func entityIds(infos []EntityInfo) []ecs.EntityId {
	ids := make([]ecs.EntityId, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

func TestSchedulerStatsSorting(t *testing.T) {
	systems := []ecs.SystemStats{
		{Name: "b", LastDuration: time.Millisecond, MaxDuration: 5 * time.Millisecond},
		{Name: "a", LastDuration: 3 * time.Millisecond, MaxDuration: time.Millisecond},
		{Name: "c", LastDuration: 2 * time.Millisecond, MaxDuration: 2 * time.Millisecond},
	}
	names := func(stats []ecs.SystemStats) []string {
		out := make([]string, len(stats))
		for i, s := range stats {
			out[i] = s.Name
		}
		return out
	}

	ss := NewSchedulerStatsComponent()
	assert.Equal(t, []string{"a", "b", "c"}, names(ss.sorted(systems)))

	ss.sortColumn, ss.sortAscending = 1, false
	assert.Equal(t, []string{"a", "c", "b"}, names(ss.sorted(systems)))

	ss.sortColumn, ss.sortAscending = 3, true
	assert.Equal(t, []string{"a", "c", "b"}, names(ss.sorted(systems)))

	// The input is left untouched.
	assert.Equal(t, "b", systems[0].Name)
	assert.Equal(t, "0.500 ms", formatDuration(500*time.Microsecond))
}

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	assert.Equal(t, float32(0), ps.frameMs.mean())

	ps.record(10*time.Millisecond, 3)
	avg := ps.record(30*time.Millisecond, 9)
	assert.InDelta(t, 20.0, avg, 1e-4)
	assert.Equal(t, float32(9), ps.entities.peak())

	for range 4 {
		avg = ps.record(16*time.Millisecond, 1)
	}
	assert.InDelta(t, 16.0, avg, 1e-4)
	assert.InDelta(t, 16.0, ps.frameMs.peak(), 1e-4)
	assert.Equal(t, float32(1), ps.entities.peak())
	assert.Equal(t, 2, ps.frameMs.next)
}

func TestOverlayKeepsItsOwnStorage(t *testing.T) {
	target := newTarget()
	target.Spawn(body{})

	withSystems := NewOverlay(target, ecs.NewScheduler(target))
	assert.Equal(t, 3, withSystems.Windows())

	o := NewOverlay(target, nil)
	assert.Equal(t, 2, o.Windows())

	id := o.AddWindow(func() {})
	assert.Equal(t, 3, o.Windows())
	assert.True(t, o.RemoveWindow(id))
	assert.Equal(t, 2, o.Windows())

	target.Clear()
	assert.Equal(t, 2, o.Windows())
	assert.Equal(t, ImguiInputState{}, o.InputState())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "7:2", formatEntityId(ecs.NewEntityId(7, 2)))
	assert.Equal(t, "Position, Smoke", shortTypeNames([]string{"game.Position", "game.Smoke"}))
	assert.Equal(t, "##X.0.1", widgetId("X", []int{0, 1}))
}
