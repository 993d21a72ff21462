// Package terminal runs a game.World in a text terminal using tcell.
package terminal

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tieney/game"
)

// App drives a world from terminal events at the world's tick rate.
type App struct {
	screen tcell.Screen
	world  *game.World
	keys   *HoldKeys
	sound  CuePlayer
	logger *slog.Logger

	lastStats game.SpawnStats
}

type Option func(*App)

func WithSound(player CuePlayer) Option {
	return func(a *App) { a.sound = player }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// New wraps an initialised screen. keys must be the key state the world reads.
func New(screen tcell.Screen, world *game.World, keys game.KeyState, opts ...Option) *App {
	a := &App{
		screen: screen,
		world:  world,
		keys:   NewHoldKeys(keys, DefaultHold),
		sound:  silent{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.lastStats = world.Stats()
	return a
}

// Run polls events and ticks until ctx is cancelled or the player quits.
func (a *App) Run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / game.TickRate)
	defer ticker.Stop()

	a.logger.Info("terminal session started")
	defer func() {
		a.logger.Info("terminal session ended", "frames", a.world.Frames())
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			a.Step(now)
		}
	}
}

// HandleEvent applies one terminal event. It returns false on quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.keys.HandleKey(ev, now)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Step releases expired keys, advances the world one frame, plays the
// frame's cues and redraws.
func (a *App) Step(now time.Time) {
	a.keys.Expire(now)
	a.world.Tick()

	stats := a.world.Stats()
	for _, cue := range Cues(a.lastStats, stats) {
		a.sound.Play(cue)
	}
	a.lastStats = stats

	Draw(a.screen, a.world)
}
