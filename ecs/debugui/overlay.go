package debugui

import (
	"time"

	"github.com/plus3/tieney/ecs"
)

// Overlay is a self-contained ECS world whose entities are ImGui windows
// inspecting a target storage. Clearing the target leaves the overlay intact.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
	lastFrame time.Time
}

// NewOverlay spawns the performance, systems, entity browser and inspector
// windows for target. targetScheduler may be nil to hide system timings.
func NewOverlay(target *ecs.Storage, targetScheduler *ecs.Scheduler) *Overlay {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)

	o := &Overlay{
		storage:   ecs.NewStorage(registry),
		lastFrame: time.Now(),
	}
	o.input = ecs.NewSingleton[ImguiInputState](o.storage)

	perf := NewPerformanceStatsComponent(120)
	browser := NewEntityBrowserComponent(100)
	inspector := NewComponentInspectorComponent()

	o.AddWindow(func() {
		now := time.Now()
		perf.Render(target, now.Sub(o.lastFrame))
		o.lastFrame = now
	})
	if targetScheduler != nil {
		systems := NewSchedulerStatsComponent()
		o.AddWindow(func() {
			systems.Render(targetScheduler)
		})
	}
	o.AddWindow(func() {
		browser.Render(target)
		inspector.Render(target, browser.GetSelectedEntity())
	})

	o.scheduler = ecs.NewScheduler(o.storage)
	o.scheduler.Register(&ImguiSystem{})
	return o
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// AddWindow registers an extra render function drawn every frame.
func (o *Overlay) AddWindow(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

// RemoveWindow drops a window added with AddWindow.
func (o *Overlay) RemoveWindow(id ecs.EntityId) bool {
	return o.storage.Delete(id)
}

// Windows returns the number of registered windows.
func (o *Overlay) Windows() int {
	return ecs.CountComponent[ImguiItem](o.storage)
}

// Update renders every window. It must run between the backend's
// BeginFrame and EndFrame.
func (o *Overlay) Update(dt float64) {
	o.scheduler.Once(dt)
}

// InputState reports whether ImGui captured input during the last Update.
func (o *Overlay) InputState() ImguiInputState {
	return *o.input.Get()
}
