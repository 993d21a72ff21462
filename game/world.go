package game

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/plus3/tieney/ecs"
)

// TickRate is the fixed simulation cadence.
const TickRate = 60

// Drawable is the read-only pair a front-end renders.
type Drawable struct {
	Position   Position
	Renderable Renderable
}

// Population counts live entities per category.
type Population struct {
	Players   int
	Asteroids int
	Missiles  int
	Smoke     int
}

type worldOptions struct {
	logger *slog.Logger
	rand   Rand
	extra  []ecs.System
}

// Option configures a World.
type Option func(*worldOptions)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *worldOptions) { o.logger = logger }
}

// WithRand sets the random source used for spawn jitter and particle sizing.
func WithRand(r Rand) Option {
	return func(o *worldOptions) { o.rand = r }
}

// WithSystems registers extra passes, such as a collider, after the movers.
func WithSystems(systems ...ecs.System) Option {
	return func(o *worldOptions) { o.extra = append(o.extra, systems...) }
}

// World owns the entity storage and runs the passes in a fixed order:
//
//  1. reset check, then a barrier so the new world is visible
//  2. player control, which queues spawn requests
//  3. spawns, then a barrier so they move this frame
//  4. asteroid, missile and smoke movers, then any extra systems
//  5. the end of frame flush applies queued deletions
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	rules     Rules
	logger    *slog.Logger

	stats     *ecs.Singleton[SpawnStats]
	drawables *ecs.View[struct {
		*Position
		*Renderable
	}]
}

// NewWorld builds a world with the initial ship and asteroid already spawned.
func NewWorld(rules Rules, keys KeyState, opts ...Option) *World {
	o := worldOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		o.rand = NewRand(time.Now().UnixNano())
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		rules:     rules,
		logger:    o.logger,
		stats:     ecs.NewSingleton[SpawnStats](storage),
	}
	ecs.NewSingleton[SpawnQueue](storage)
	w.drawables = ecs.NewView[struct {
		*Position
		*Renderable
	}](storage)

	w.scheduler.Register(NewResetSystem(rules, o.logger))
	w.scheduler.Barrier()
	w.scheduler.Register(NewPlayerControlSystem(rules, keys, o.rand))
	w.scheduler.Register(NewSpawnSystem(rules, o.rand))
	w.scheduler.Barrier()
	w.scheduler.Register(NewAsteroidMoverSystem(rules))
	w.scheduler.Register(NewMissileMoverSystem(rules))
	w.scheduler.Register(NewSmokeMoverSystem(rules))
	for _, system := range o.extra {
		w.scheduler.Register(system)
	}

	var cmds ecs.Commands
	LoadWorld(&cmds, rules)
	cmds.Flush(storage)

	return w
}

// Tick advances the simulation by one frame.
func (w *World) Tick() {
	w.scheduler.Once(1.0 / TickRate)
}

// Run ticks at the fixed cadence until ctx is cancelled.
func (w *World) Run(ctx context.Context) {
	w.logger.Info("simulation started", "tick_rate", TickRate)
	w.scheduler.Run(ctx, time.Second/TickRate)
	w.logger.Info("simulation stopped", "frames", w.scheduler.Frames())
}

// Drawables yields a copy of every entity's position and renderable.
func (w *World) Drawables() iter.Seq[Drawable] {
	return func(yield func(Drawable) bool) {
		for item := range w.drawables.Values() {
			if !yield(Drawable{Position: *item.Position, Renderable: *item.Renderable}) {
				return
			}
		}
	}
}

func (w *World) Population() Population {
	return Population{
		Players:   ecs.CountComponent[Player](w.storage),
		Asteroids: ecs.CountComponent[Asteroid](w.storage),
		Missiles:  ecs.CountComponent[Missile](w.storage),
		Smoke:     ecs.CountComponent[Smoke](w.storage),
	}
}

// Stats returns a snapshot of the lifecycle counters.
func (w *World) Stats() SpawnStats {
	return *w.stats.Get()
}

func (w *World) Rules() Rules {
	return w.rules
}

// Frames returns the number of completed ticks.
func (w *World) Frames() uint64 {
	return w.scheduler.Frames()
}

// Storage exposes the entity storage for tooling such as the debug overlay.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the scheduler for tooling such as the debug overlay.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}
